package shape

import (
	"strings"
)

// basicNames are scalar type names of Go and of JVM primitive types.
var basicNames = map[string]struct{}{
	"bool": {}, "string": {}, "byte": {}, "rune": {}, "uintptr": {},
	"int": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"float32": {}, "float64": {}, "complex64": {}, "complex128": {},
	"boolean": {}, "char": {}, "short": {}, "long": {}, "float": {}, "double": {},
}

// jvmScalarNames are JVM library types that stand for a single value. They
// resolve as terminal without a catalog entry; a catalog entry wins.
var jvmScalarNames = map[string]struct{}{
	"java.lang.String": {}, "java.lang.CharSequence": {}, "java.lang.Number": {},
	"java.lang.Boolean": {}, "java.lang.Character": {}, "java.lang.Byte": {},
	"java.lang.Short": {}, "java.lang.Integer": {}, "java.lang.Long": {},
	"java.lang.Float": {}, "java.lang.Double": {},
	"java.math.BigDecimal": {}, "java.math.BigInteger": {},
	"java.util.Date": {}, "java.sql.Date": {}, "java.sql.Timestamp": {},
	"java.time.temporal.Temporal": {}, "java.time.Instant": {},
	"java.time.LocalDate": {}, "java.time.LocalTime": {}, "java.time.LocalDateTime": {},
	"java.time.OffsetDateTime": {}, "java.time.ZonedDateTime": {},
}

// opaqueNames resolve to shapes without members that are not terminal.
var opaqueNames = map[string]struct{}{
	"any": {}, "interface{}": {}, "error": {}, "java.lang.Object": {},
}

// IsBasic reports whether ref names a scalar built-in type.
func IsBasic(ref TypeRef) bool {
	_, ok := basicNames[string(ref)]
	return ok
}

// Deref strips leading pointer markers.
func Deref(ref TypeRef) TypeRef {
	return TypeRef(strings.TrimLeft(string(ref), "*"))
}

// SequenceOf parses composite sequence refs: "[]T" (ordered sequence),
// "[N]T" and "T[]" (arrays). ok is false for anything else.
func SequenceOf(ref TypeRef) (elem TypeRef, array, ok bool) {
	s := string(ref)

	switch {
	case strings.HasPrefix(s, "[]"):
		return TypeRef(s[2:]), false, true
	case strings.HasPrefix(s, "["):
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "", false, false
		}

		return TypeRef(s[end+1:]), true, true
	case strings.HasSuffix(s, "[]") && len(s) > 2:
		return TypeRef(s[:len(s)-2]), true, true
	}

	return "", false, false
}

// Builtin returns the shape of refs every provider understands without
// looking anything up: scalars, JVM value types, opaque types and
// composite sequences.
func Builtin(ref TypeRef) (*Shape, bool) {
	if ref == Unknown {
		return &Shape{Ref: Unknown}, true
	}

	if IsBasic(ref) {
		return &Shape{Ref: ref, Terminal: true}, true
	}

	if _, ok := jvmScalarNames[string(ref)]; ok {
		return &Shape{Ref: ref, Terminal: true}, true
	}

	if _, ok := opaqueNames[string(ref)]; ok || strings.HasPrefix(string(ref), "map[") {
		return &Shape{Ref: ref}, true
	}

	if elem, array, ok := SequenceOf(ref); ok {
		return &Shape{
			Ref:             ref,
			Array:           array,
			OrderedSequence: !array,
			ElementType:     elem,
		}, true
	}

	return nil, false
}
