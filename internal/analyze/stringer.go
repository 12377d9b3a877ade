package analyze

import (
	"go/types"
	"strconv"
	"strings"

	"path-explorer/internal/shape"
)

// TypeRef returns the reference the provider uses for t. Pointers are
// dereferenced; named types are qualified by their full package path.
//
//	*store.Order       -> "path-explorer/store.Order"
//	[]store.OrderItem  -> "[]path-explorer/store.OrderItem"
//	[3]int             -> "[3]int"
//	map[string]int     -> "map[string]int"
//	interface{}        -> "any"
func TypeRef(t types.Type) shape.TypeRef {
	return shape.TypeRef(typeString(deref(t)))
}

func typeString(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return tt.Name()

	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return obj.Name()
		}

		var b strings.Builder
		b.WriteString(obj.Pkg().Path())
		b.WriteByte('.')
		b.WriteString(obj.Name())

		if args := tt.TypeArgs(); args.Len() > 0 {
			b.WriteByte('[')

			for i := range args.Len() {
				if i > 0 {
					b.WriteByte(',')
				}

				b.WriteString(typeString(args.At(i)))
			}

			b.WriteByte(']')
		}

		return b.String()

	case *types.Pointer:
		return "*" + typeString(tt.Elem())

	case *types.Slice:
		return "[]" + typeString(tt.Elem())

	case *types.Array:
		return "[" + strconv.FormatInt(tt.Len(), 10) + "]" + typeString(tt.Elem())

	case *types.Map:
		return "map[" + typeString(tt.Key()) + "]" + typeString(tt.Elem())

	case *types.Interface:
		if tt.Empty() {
			return "any"
		}

		return types.TypeString(tt, pathQualifier)

	default:
		return types.TypeString(t, pathQualifier)
	}
}

// DisplayType returns t as shown to the user: package qualifiers dropped,
// pointers kept ("*Customer", "[]OrderItem", "Time").
func DisplayType(t types.Type) string {
	return types.TypeString(t, func(*types.Package) string { return "" })
}

func pathQualifier(p *types.Package) string {
	return p.Path()
}

// deref strips pointer types.
func deref(t types.Type) types.Type {
	for {
		ptr, ok := types.Unalias(t).(*types.Pointer)
		if !ok {
			return t
		}

		t = ptr.Elem()
	}
}
