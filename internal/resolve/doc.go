// Package resolve picks the root a path expression starts from when a
// mapping method has several named source parameters, and delegates the
// rest of the path to the navigator.
package resolve
