package navigate

import (
	"path-explorer/internal/completion"
	"path-explorer/internal/shape"
)

// excludedSetters are one-argument methods that are never property writers.
var excludedSetters = map[string]struct{}{
	"equals":    {},
	"toString":  {},
	"wait":      {},
	"notify":    {},
	"notifyAll": {},
}

// candidate is a member under its property name.
type candidate struct {
	name    string
	display string
	origin  shape.Origin
}

func (c candidate) fieldInfo() completion.FieldInfo {
	return completion.FieldInfo{
		Name: c.name,
		Type: c.display,
		Kind: completion.KindOf(c.origin),
	}
}

// enumerate lists the properties of s: fields not shadowed by an accessor,
// then getters, then setters. Duplicate names are left for the assembler.
func enumerate(s *shape.Shape) []candidate {
	var fields, getters, setters []candidate

	for i := range s.Members {
		m := &s.Members[i]

		switch m.Origin {
		case shape.OriginField:
			fields = append(fields, candidate{name: m.Name, display: m.Display(), origin: shape.OriginField})

		case shape.OriginGetter:
			name := m.Name
			if !m.Component {
				name = PropertyName(m.Name)
			}

			if name == "class" {
				continue
			}

			getters = append(getters, candidate{name: name, display: m.Display(), origin: shape.OriginGetter})

		case shape.OriginSetter:
			if _, ok := excludedSetters[m.Name]; ok {
				continue
			}

			setters = append(setters, candidate{name: SetterPropertyName(m.Name), display: m.Display(), origin: shape.OriginSetter})
		}
	}

	// A field is hidden by any accessor with the same property name,
	// including setters.
	shadowed := make(map[string]struct{}, len(getters)+len(setters))
	for _, c := range getters {
		shadowed[c.name] = struct{}{}
	}

	for _, c := range setters {
		shadowed[c.name] = struct{}{}
	}

	out := make([]candidate, 0, len(fields)+len(getters)+len(setters))
	for _, c := range fields {
		if _, ok := shadowed[c.name]; !ok {
			out = append(out, c)
		}
	}

	out = append(out, getters...)
	out = append(out, setters...)

	return out
}

// findMember looks up a readable property by name: component accessors,
// then fields, then getters by accessor or property name.
func findMember(s *shape.Shape, name string) *shape.Member {
	for i := range s.Members {
		m := &s.Members[i]
		if m.Origin == shape.OriginGetter && m.Component && m.Name == name {
			return m
		}
	}

	for i := range s.Members {
		m := &s.Members[i]
		if m.Origin == shape.OriginField && m.Name == name {
			return m
		}
	}

	capped := capitalize(name)
	accessors := map[string]struct{}{
		name:           {},
		"get" + capped: {},
		"is" + capped:  {},
		"Get" + capped: {},
		"Is" + capped:  {},
	}

	for i := range s.Members {
		m := &s.Members[i]
		if m.Origin != shape.OriginGetter {
			continue
		}

		if _, ok := accessors[m.Name]; ok {
			return m
		}
	}

	for i := range s.Members {
		m := &s.Members[i]
		if m.Origin == shape.OriginGetter && !m.Component && PropertyName(m.Name) == name {
			return m
		}
	}

	return nil
}

// findMethod looks up a call target taking at most one argument.
func findMethod(s *shape.Shape, name string) *shape.Method {
	for i := range s.Methods {
		m := &s.Methods[i]
		if m.Name == name && m.Params <= 1 && !m.Result.IsZero() {
			return m
		}
	}

	return nil
}

func toFieldInfos(cs []candidate) []completion.FieldInfo {
	out := make([]completion.FieldInfo, len(cs))
	for i, c := range cs {
		out[i] = c.fieldInfo()
	}

	return out
}
