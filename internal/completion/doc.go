// Package completion holds the completion candidate model and the
// assembler that turns raw navigator output into the list returned to
// editors: prefix filtering, source/target kind conversion, deduplication
// and deterministic ordering.
package completion
