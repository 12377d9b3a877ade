package completion

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"

	"path-explorer/internal/shape"
)

// Kind is the origin of a completion candidate.
type Kind int

const (
	KindField Kind = iota
	KindGetter
	KindSetter
	KindParameter // source parameter name of a multi-source mapper
)

var kindNames = [...]string{"FIELD", "GETTER", "SETTER", "PARAMETER"}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	for i, name := range kindNames {
		if name == s {
			*k = Kind(i)
			return nil
		}
	}

	return errors.Newf("unknown completion kind %q", s)
}

// KindOf maps a member origin to a candidate kind.
func KindOf(o shape.Origin) Kind {
	switch o {
	case shape.OriginGetter:
		return KindGetter
	case shape.OriginSetter:
		return KindSetter
	default:
		return KindField
	}
}

// FieldInfo is a single completion candidate.
type FieldInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Kind Kind   `json:"kind"`
}

// String formats the candidate as "name: type (KIND)".
func (f FieldInfo) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Name, f.Type, f.Kind)
}

// Result is the outcome of resolving one path expression.
type Result struct {
	ClassName   string      `json:"className"`
	SimpleName  string      `json:"simpleName"`
	PackageName string      `json:"packageName"`
	Path        string      `json:"path"`
	Completions []FieldInfo `json:"completions"`
}

// Names returns the candidate names in order.
func (r Result) Names() []string {
	names := make([]string, len(r.Completions))
	for i, c := range r.Completions {
		names[i] = c.Name
	}

	return names
}

// IsEmpty reports whether the result has no candidates.
func (r Result) IsEmpty() bool {
	return len(r.Completions) == 0
}

// MarshalJSON keeps an empty completion list as [] rather than null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result

	p := plain(r)
	if p.Completions == nil {
		p.Completions = []FieldInfo{}
	}

	return json.Marshal(p)
}
