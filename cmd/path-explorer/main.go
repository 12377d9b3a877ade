// Package main provides the CLI entrypoint for path-explorer.
//
// path-explorer completes property path expressions such as
// "order.items.first.price" against a set of typed source parameters:
//   - explore lists completions for one cursor position
//   - serve answers editor requests over a Unix domain socket
//   - parse shows how an expression splits into segments
//   - locate prints where a type is declared
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
