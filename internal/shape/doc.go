// Package shape defines the type descriptor contract consumed by the path
// navigator and a static, catalog-backed implementation of it.
//
// A Provider reports the Shape of a type identified by a TypeRef: whether it
// is terminal, an enumeration or a sequence, and which fields, getters,
// setters and methods it exposes. Concrete providers adapt a host type
// system; see package analyze for the go/types adapter.
//
// Key types:
//   - TypeRef: fully qualified type identifier (e.g. "example.com/store.Order")
//   - Shape: the navigable structure of one type
//   - Member: a field, getter or setter reported on a Shape
//   - Catalog: a Provider over a fixed set of shapes, loadable from YAML
package shape
