package analyze

import (
	"go/types"
	"slices"
	"strings"

	"path-explorer/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "path-explorer/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type
	TypeKindAlias              // named type over a basic type (e.g., type OrderStatus string)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindAlias:
		return "alias"
	default:
		return common.UnknownStr
	}
}

// KindOf classifies a go/types.Type. Named types are classified by their
// underlying type, except named basics which are aliases.
func KindOf(t types.Type) TypeKind {
	t = types.Unalias(t)

	if named, ok := t.(*types.Named); ok {
		if _, basic := named.Underlying().(*types.Basic); basic {
			return TypeKindAlias
		}

		t = named.Underlying()
	}

	switch t.(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Struct:
		return TypeKindStruct
	case *types.Pointer:
		return TypeKindPointer
	case *types.Slice:
		return TypeKindSlice
	case *types.Array:
		return TypeKindArray
	case *types.Map:
		return TypeKindMap
	case *types.Interface:
		return TypeKindInterface
	default:
		return TypeKindUnknown
	}
}

// TypeGraph indexes the named types of the loaded packages and of
// everything they import.
type TypeGraph struct {
	// Types maps TypeID to the declaring type name.
	Types map[TypeID]*types.TypeName
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*types.TypeName),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the type name for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *types.TypeName {
	return g.Types[id]
}

// PackageInfo holds information about an indexed package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
	// Loaded is false for packages only reached through imports.
	Loaded bool
}

// Lookup resolves a type ID string like:
// - "path-explorer/store.Order" (full)
// - "store.Order" (short)
// - "Order" (name only).
//
// Short and name-only forms prefer loaded packages over imported ones, then
// the lexically smallest package path.
func (g *TypeGraph) Lookup(typeIDStr string) (*types.TypeName, bool) {
	if g == nil || typeIDStr == "" {
		return nil, false
	}

	lastDot := strings.LastIndex(typeIDStr, ".")
	if lastDot < 0 {
		return g.first(func(id TypeID) bool { return id.Name == typeIDStr })
	}

	pkgStr := typeIDStr[:lastDot]

	name := typeIDStr[lastDot+1:]
	if pkgStr == "" || name == "" {
		return nil, false
	}

	// 1) exact match (for fully qualified import path)
	if t := g.GetType(TypeID{PkgPath: pkgStr, Name: name}); t != nil {
		return t, true
	}

	// 2) suffix match (for short forms like "store.Order" vs "path-explorer/store.Order")
	return g.first(func(id TypeID) bool {
		return id.Name == name && strings.HasSuffix(id.PkgPath, "/"+pkgStr)
	})
}

func (g *TypeGraph) first(match func(TypeID) bool) (*types.TypeName, bool) {
	var ids []TypeID
	for id := range g.Types {
		if match(id) {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, false
	}

	slices.SortFunc(ids, func(a, b TypeID) int {
		if la, lb := g.loaded(a.PkgPath), g.loaded(b.PkgPath); la != lb {
			if la {
				return -1
			}

			return 1
		}

		return strings.Compare(a.PkgPath, b.PkgPath)
	})

	return g.Types[ids[0]], true
}

func (g *TypeGraph) loaded(pkgPath string) bool {
	info, ok := g.Packages[pkgPath]
	return ok && info.Loaded
}
