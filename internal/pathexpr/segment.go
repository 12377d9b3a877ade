package pathexpr

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind distinguishes property steps from call steps.
type Kind int

const (
	Field  Kind = iota // property access: address
	Method             // call form: getFirst(), get(0)
)

// Segment is one step of a path expression.
// A Field segment with an empty name stands for the cursor after a dot.
type Segment struct {
	Name string
	Kind Kind
}

// FieldSegment creates a property segment.
func FieldSegment(name string) Segment {
	return Segment{Name: name, Kind: Field}
}

// MethodSegment creates a call segment.
func MethodSegment(name string) Segment {
	return Segment{Name: name, Kind: Method}
}

// IsPartial reports whether the segment is a property name still being typed.
func (s Segment) IsPartial() bool {
	return s.Kind == Field && s.Name != ""
}

// String renders the segment the way it appears in an expression.
func (s Segment) String() string {
	if s.Kind == Method {
		return s.Name + "()"
	}

	return s.Name
}
