package resolve

import (
	"strings"

	"github.com/cockroachdb/errors"

	"path-explorer/internal/shape"
)

// TargetMarker is the synthetic parameter name that marks a completion
// request for the write target of a mapping.
const TargetMarker = "$target"

// SingleSourceName is the parameter name used by the single-root form.
const SingleSourceName = "source"

var (
	// ErrNoSources is returned when a request names no source parameter.
	ErrNoSources = errors.New("sources list cannot be empty")
	// ErrInvalidParameter is returned for a parameter with a blank name or type.
	ErrInvalidParameter = errors.New("invalid source parameter")
)

// SourceParameter is a named root of a mapping method.
type SourceParameter struct {
	Name string        `json:"name"`
	Type shape.TypeRef `json:"type"`
}

// NewSourceParameter validates and creates a SourceParameter.
func NewSourceParameter(name, typeName string) (SourceParameter, error) {
	p := SourceParameter{Name: strings.TrimSpace(name), Type: shape.TypeRef(strings.TrimSpace(typeName))}
	if err := p.Validate(); err != nil {
		return SourceParameter{}, err
	}

	return p, nil
}

// Validate checks that both name and type are set.
func (p SourceParameter) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Wrap(ErrInvalidParameter, "parameter name cannot be blank")
	}

	if strings.TrimSpace(p.Type.String()) == "" {
		return errors.Wrapf(ErrInvalidParameter, "parameter %q: type cannot be blank", p.Name)
	}

	return nil
}

// ParseSourceParameter parses the "name=type" form used on the command line.
func ParseSourceParameter(s string) (SourceParameter, error) {
	name, typeName, ok := strings.Cut(s, "=")
	if !ok {
		return SourceParameter{}, errors.WithHint(
			errors.Wrapf(ErrInvalidParameter, "%q", s),
			"use name=type, e.g. person=com.example.Person",
		)
	}

	return NewSourceParameter(name, typeName)
}

// Request is a completion request for one cursor position.
type Request struct {
	Sources            []SourceParameter `json:"sources"`
	PathExpression     string            `json:"pathExpression"`
	IsEnum             bool              `json:"isEnum"`
	IsTargetCompletion bool              `json:"isTargetCompletion"`
}

// targetContext reports whether candidates should be presented as writable.
func (r Request) targetContext() bool {
	return r.IsTargetCompletion || (len(r.Sources) == 1 && r.Sources[0].Name == TargetMarker)
}
