package shape

import (
	"strings"

	"github.com/cockroachdb/errors"

	"path-explorer/internal/common"
)

// ErrTypeNotFound is returned by providers when a TypeRef cannot be located.
var ErrTypeNotFound = errors.New("type not found")

// NotFound wraps ErrTypeNotFound with the offending reference.
func NotFound(ref TypeRef) error {
	return errors.WithHint(
		errors.Wrapf(ErrTypeNotFound, "%q", string(ref)),
		"check the package patterns or the type catalog",
	)
}

// TypeRef identifies a type by its fully qualified name.
type TypeRef string

// Unknown is the opaque type used when an element type cannot be recovered.
// It has no members and is not terminal.
const Unknown TypeRef = "?"

// String returns the reference as a string.
func (r TypeRef) String() string {
	return string(r)
}

// IsZero reports whether the reference is empty.
func (r TypeRef) IsZero() bool {
	return r == ""
}

// compositePrefix returns the leading "[]", "[N]" and "*" markers of a ref.
func (r TypeRef) compositePrefix() (prefix, rest string) {
	s := string(r)
	for {
		switch {
		case strings.HasPrefix(s, "*"):
			prefix += "*"
			s = s[1:]
		case strings.HasPrefix(s, "["):
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return prefix, s
			}

			prefix += s[:end+1]
			s = s[end+1:]
		default:
			return prefix, s
		}
	}
}

// split separates a plain (non-composite) ref into package and name.
// The package ends at the last dot following the last slash.
func split(s string) (pkg, name string) {
	if strings.HasPrefix(s, "map[") || strings.ContainsAny(s, " {(") {
		return "", s
	}

	// Type arguments of generic instances may hold qualified names.
	base := s
	if i := strings.IndexByte(s, '['); i > 0 {
		base = s[:i]
	}

	start := strings.LastIndexByte(base, '/') + 1

	dot := strings.LastIndexByte(base[start:], '.')
	if dot < 0 {
		return "", s
	}

	return s[:start+dot], s[start+dot+1:]
}

// SimpleName returns the unqualified name, keeping composite markers:
// "example.com/store.Order" -> "Order", "[]example.com/store.Item" -> "[]Item".
func (r TypeRef) SimpleName() string {
	prefix, rest := r.compositePrefix()
	_, name := split(rest)

	return prefix + name
}

// PackageName returns the package part of a plain ref, or "" for composite
// and built-in refs.
func (r TypeRef) PackageName() string {
	prefix, rest := r.compositePrefix()
	if prefix != "" {
		return ""
	}

	pkg, _ := split(rest)

	return pkg
}

// PackageAlias returns the last element of the package path ("store").
func (r TypeRef) PackageAlias() string {
	return common.PkgAlias(r.PackageName())
}

// Origin tells how a member is accessed.
type Origin int

const (
	OriginField Origin = iota
	OriginGetter
	OriginSetter
)

// String returns a human-readable representation of the Origin.
func (o Origin) String() string {
	switch o {
	case OriginField:
		return "field"
	case OriginGetter:
		return "getter"
	case OriginSetter:
		return "setter"
	default:
		return common.UnknownStr
	}
}

// ParseOrigin parses the lower-case origin names used in catalogs.
func ParseOrigin(s string) (Origin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "field":
		return OriginField, nil
	case "getter":
		return OriginGetter, nil
	case "setter":
		return OriginSetter, nil
	default:
		return 0, errors.Newf("unknown member origin %q", s)
	}
}

// Member is a field or accessor reported on a Shape.
type Member struct {
	// Name is the field name, or the declared method name for accessors
	// ("getFirstName", "GetFirstName", "setName"). Component accessors carry
	// the component name.
	Name string
	// Type is the declared type (the parameter type for setters).
	Type TypeRef
	// DisplayType is the type as it should be shown to the user. When empty
	// the simple name of Type is used.
	DisplayType string
	// ElementType is the element type declared on a collection-typed member,
	// when the host type system records it.
	ElementType TypeRef
	Origin      Origin
	// Component marks record component accessors.
	Component bool
}

// Display returns the display type of the member.
func (m *Member) Display() string {
	if m.DisplayType != "" {
		return m.DisplayType
	}

	return m.Type.SimpleName()
}

// Method is a callable method on a Shape.
type Method struct {
	Name   string
	Params int
	// Result is the type of the first result, empty when nothing is returned.
	Result TypeRef
}

// Shape is the navigable structure of a type.
type Shape struct {
	Ref             TypeRef
	Terminal        bool
	Enum            bool
	EnumConstants   []string
	Array           bool
	OrderedSequence bool
	// ElementType is the element type of arrays and sequences, if known.
	ElementType TypeRef
	// Supertypes lists ancestors and implemented interfaces, nearest first.
	Supertypes []TypeRef
	Members    []Member
	Methods    []Method
}

// IsSequence reports whether the shape is an array or an ordered sequence.
func (s *Shape) IsSequence() bool {
	return s.Array || s.OrderedSequence
}

// Provider reports the shape of a type. Implementations must be
// deterministic for a given ref and safe for concurrent use.
type Provider interface {
	Shape(ref TypeRef) (*Shape, error)
}

// Locator reports the source location declaring a type.
type Locator interface {
	Locate(ref TypeRef) (string, error)
}
