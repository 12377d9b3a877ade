// Package store is a sample order model used to exercise completion over
// Go packages: path-explorer explore --pkg ./store store.Order Items.first.
package store

import (
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Customer places orders.
type Customer struct {
	ID      int64
	Email   string
	Name    string
	Billing *Address
}

// Address is a postal address.
type Address struct {
	Street string
	City   string
	Zip    string
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// Order is a purchase by a customer.
type Order struct {
	ID       int64
	Status   OrderStatus
	Items    []OrderItem
	PlacedAt time.Time

	customer *Customer
	note     string
}

// GetCustomer returns the customer who placed the order.
func (o *Order) GetCustomer() *Customer { return o.customer }

// SetCustomer assigns the customer.
func (o *Order) SetCustomer(c *Customer) { o.customer = c }

// WithNote sets the order note and returns the order for chaining.
func (o *Order) WithNote(note string) *Order {
	o.note = note
	return o
}

// IsPaid reports whether the order has been paid.
func (o *Order) IsPaid() bool { return o.Status == StatusPaid }

// Total sums the order lines in minor currency units.
func (o *Order) Total() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}

	return total
}
