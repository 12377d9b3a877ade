// Package analyze provides package loading and the Go type provider.
//
// It uses golang.org/x/tools/go/packages with go/types to index the named
// types of the loaded packages and of their imports, and builds shapes of
// those types on demand.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeGraph: index of named types, with full, short ("store.Order")
//     and name-only lookups
//   - Provider: shape.Provider and shape.Locator over a TypeGraph
//
// Go types map onto shapes as follows: exported struct fields (promoted
// ones included) are fields; Get- and Is-prefixed methods without
// parameters are getters; one-parameter methods returning nothing or the
// receiver are setters; named basic types with constants are enumerations;
// slices are ordered sequences and arrays are arrays.
package analyze
