// Package pathexpr parses property-path expressions typed in mapping
// declarations into navigable segments.
//
// Expressions are dotted chains of property names and method calls:
//
//	address.country.
//	items.getFirst().product.na
//	orders.first.items
//
// Parsing never fails. Expressions are completion-time input and are
// expected to be transiently invalid while the user types; unbalanced
// parentheses simply accumulate into the current segment.
package pathexpr
