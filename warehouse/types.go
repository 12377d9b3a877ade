// Package warehouse declares types whose names collide with package store,
// so short and name-only type references have to be disambiguated.
package warehouse

// Bin is a storage location.
type Bin struct {
	Aisle string
	Shelf int
}

// Pick is one line of a pick list.
type Pick struct {
	SKU      string
	Quantity int
	From     Bin
}

// Order is a pick order sent to the warehouse floor.
type Order struct {
	Reference string
	Picks     []Pick
	Dock      [2]Bin
	Priority  int
}
