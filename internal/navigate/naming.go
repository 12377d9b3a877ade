package navigate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PropertyName converts a getter name to the property it exposes.
//
//	getFirstName -> firstName
//	isActive     -> active
//	getURL       -> url
//	getXMLParser -> xmlParser
//	GetFirstName -> FirstName (Go accessors keep the exported spelling)
//	name         -> name
func PropertyName(accessor string) string {
	if rest, ok := lowerPrefix(accessor, "get"); ok {
		return decapitalize(rest)
	}

	if rest, ok := lowerPrefix(accessor, "is"); ok {
		return decapitalize(rest)
	}

	if rest, ok := upperPrefix(accessor, "Get"); ok {
		return rest
	}

	if rest, ok := upperPrefix(accessor, "Is"); ok {
		return rest
	}

	return accessor
}

// SetterPropertyName converts a setter name to the property it assigns.
// Fluent setters ("fullName(x)") are already property names.
func SetterPropertyName(accessor string) string {
	if rest, ok := lowerPrefix(accessor, "set"); ok {
		return decapitalize(rest)
	}

	if rest, ok := upperPrefix(accessor, "Set"); ok {
		return rest
	}

	return accessor
}

func lowerPrefix(s, prefix string) (string, bool) {
	if len(s) > len(prefix) && strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}

	return "", false
}

// upperPrefix matches Go-style accessors, where the prefix is followed by
// an upper-case rune ("GetName" but not "Getaway").
func upperPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}

	rest := s[len(prefix):]

	r, _ := utf8.DecodeRuneInString(rest)
	if rest == "" || !unicode.IsUpper(r) {
		return "", false
	}

	return rest, true
}

// decapitalize lower-cases the first letter, or the whole leading acronym:
// "FirstName" -> "firstName", "URL" -> "url", "XMLParser" -> "xmlParser".
func decapitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	if len(runes) > 1 && unicode.IsUpper(runes[1]) {
		i := 0
		for i < len(runes) && unicode.IsUpper(runes[i]) {
			i++
		}

		if i == len(runes) {
			return strings.ToLower(s)
		}

		// Keep the last upper-case letter with the word that follows it.
		if i > 1 {
			return strings.ToLower(string(runes[:i-1])) + string(runes[i-1:])
		}
	}

	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

// capitalize upper-cases the first letter.
func capitalize(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + s[size:]
}
