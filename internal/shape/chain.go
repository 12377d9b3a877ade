package shape

import (
	"github.com/cockroachdb/errors"
)

// Chain asks each provider in turn and returns the first shape found.
type Chain []Provider

// Shape implements Provider.
func (c Chain) Shape(ref TypeRef) (*Shape, error) {
	for _, p := range c {
		s, err := p.Shape(ref)
		if err == nil {
			return s, nil
		}

		if !errors.Is(err, ErrTypeNotFound) {
			return nil, err
		}
	}

	return nil, NotFound(ref)
}

// Locate implements Locator using the first provider that can locate ref.
func (c Chain) Locate(ref TypeRef) (string, error) {
	for _, p := range c {
		l, ok := p.(Locator)
		if !ok {
			continue
		}

		path, err := l.Locate(ref)
		if err == nil {
			return path, nil
		}

		if !errors.Is(err, ErrTypeNotFound) {
			return "", err
		}
	}

	return "", NotFound(ref)
}
