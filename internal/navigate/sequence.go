package navigate

import (
	"path-explorer/internal/shape"
)

// Property-style accessors available on every array and ordered sequence.
const (
	accessorFirst = "first"
	accessorLast  = "last"
	accessorEmpty = "empty"
)

var virtualProperties = map[string]struct{}{
	accessorFirst: {},
	accessorLast:  {},
	accessorEmpty: {},
}

// Call-style accessors available on ordered sequences but not on arrays.
var sequenceCalls = map[string]struct{}{
	"getFirst": {},
	"getLast":  {},
	"get":      {},
	"first":    {},
	"last":     {},
}

func isVirtualProperty(name string) bool {
	_, ok := virtualProperties[name]
	return ok
}

func isSequenceCall(name string) bool {
	_, ok := sequenceCalls[name]
	return ok
}

// elementType resolves the element type of a sequence. For ordered
// sequences the element type recorded on the member that led here wins
// over the sequence's own; shape.Unknown is used when neither is known.
func elementType(seq *shape.Shape, via *shape.Member) shape.TypeRef {
	if !seq.Array && via != nil && !via.ElementType.IsZero() {
		return via.ElementType
	}

	if !seq.ElementType.IsZero() {
		return seq.ElementType
	}

	return shape.Unknown
}

// virtualCandidates lists the property accessors of a sequence. All three
// navigate into the element type.
func virtualCandidates(seq *shape.Shape, via *shape.Member) []candidate {
	elem := elementType(seq, via)

	return []candidate{
		{name: accessorEmpty, display: elem.SimpleName(), origin: shape.OriginGetter},
		{name: accessorFirst, display: elem.SimpleName(), origin: shape.OriginGetter},
		{name: accessorLast, display: elem.SimpleName(), origin: shape.OriginGetter},
	}
}
