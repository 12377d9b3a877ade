package pathexpr

import (
	"strings"
)

// Parse splits a path expression into segments.
//
//	"field1.field2"        -> [field1, field2]
//	"items.getFirst().name" -> [items, getFirst(), name]
//	"address."             -> [address, ""]
//	"address.str"          -> [address, str]
//
// Empty input yields no segments.
func Parse(path string) []Segment {
	if path == "" {
		return nil
	}

	var (
		segments []Segment
		current  strings.Builder
		depth    int
	)

	for _, r := range path {
		switch {
		case r == '(':
			depth++
			current.WriteRune(r)

		case r == ')':
			depth--
			current.WriteRune(r)

			// Closing the outermost paren completes a call.
			if depth == 0 {
				if name := methodName(current.String()); name != "" {
					segments = append(segments, MethodSegment(name))
				}

				current.Reset()
			}

		case r == '.' && depth == 0:
			if name := strings.TrimSpace(current.String()); name != "" {
				segments = append(segments, FieldSegment(name))
			}

			current.Reset()

		default:
			current.WriteRune(r)
		}
	}

	// A trailing dot yields an empty segment: the cursor sits after a
	// completed step.
	remaining := strings.TrimSpace(current.String())
	if remaining != "" || (strings.HasSuffix(path, ".") && len(segments) > 0) {
		segments = append(segments, FieldSegment(remaining))
	}

	return segments
}

// methodName extracts the name of a call like "getFirst()" or "get(0)".
func methodName(call string) string {
	if open := strings.IndexByte(call, '('); open >= 0 {
		return strings.TrimSpace(call[:open])
	}

	return strings.TrimSpace(call)
}

// HasPartialSegment reports whether the expression ends inside a property
// name rather than after a dot or a call.
func HasPartialSegment(path string) bool {
	if path == "" {
		return false
	}

	last := path[len(path)-1]

	return last != '.' && last != ')'
}

// PartialSegment returns the name of a trailing partial property segment,
// or "" when the expression ends after a dot or a call.
func PartialSegment(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}

	if last := segments[len(segments)-1]; last.IsPartial() {
		return last.Name
	}

	return ""
}
