package navigate

import (
	"path-explorer/internal/shape"
)

// terminalTypes are scalar-like categories. A type is terminal when it is
// one of these or lists one of them among its supertypes.
var terminalTypes = map[shape.TypeRef]struct{}{
	"java.lang.CharSequence":      {},
	"java.lang.String":            {},
	"java.lang.Number":            {},
	"java.lang.Boolean":           {},
	"java.lang.Character":         {},
	"java.util.Date":              {},
	"java.time.temporal.Temporal": {},
	"time.Time":                   {},
	"time.Duration":               {},
	"time.Month":                  {},
	"time.Weekday":                {},
	"math/big.Int":                {},
	"math/big.Float":              {},
	"math/big.Rat":                {},
	"encoding/json.Number":        {},
}

// IsTerminal reports whether s has no navigable structure.
func IsTerminal(s *shape.Shape) bool {
	if s.Terminal || shape.IsBasic(s.Ref) {
		return true
	}

	if _, ok := terminalTypes[s.Ref]; ok {
		return true
	}

	for _, st := range s.Supertypes {
		if _, ok := terminalTypes[st]; ok {
			return true
		}

		if shape.IsBasic(st) {
			return true
		}
	}

	return false
}
