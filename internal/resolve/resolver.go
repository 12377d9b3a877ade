package resolve

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"path-explorer/internal/completion"
	"path-explorer/internal/navigate"
	"path-explorer/internal/shape"
)

// Resolver routes a path expression to the source parameter it starts
// from. It is immutable and safe for concurrent use.
type Resolver struct {
	nav      *navigate.Navigator
	provider shape.Provider
	log      *zap.SugaredLogger
}

// New creates a Resolver. provider is used to check that a parameter type
// exists before navigating into it; it is usually the navigator's own.
func New(nav *navigate.Navigator, provider shape.Provider) *Resolver {
	return &Resolver{
		nav:      nav,
		provider: provider,
		log:      zap.NewNop().Sugar(),
	}
}

// WithLogger returns a copy of the resolver logging to log.
func (r *Resolver) WithLogger(log *zap.SugaredLogger) *Resolver {
	c := *r
	if log != nil {
		c.log = log
	}

	return &c
}

// NavigateFromSources resolves path against sources in source context.
func (r *Resolver) NavigateFromSources(sources []SourceParameter, path string, isEnum bool) (completion.Result, error) {
	return r.Resolve(Request{Sources: sources, PathExpression: path, IsEnum: isEnum})
}

// ExploreSingle resolves path from a single root type.
func (r *Resolver) ExploreSingle(typeName shape.TypeRef, path string) (completion.Result, error) {
	p, err := NewSourceParameter(SingleSourceName, typeName.String())
	if err != nil {
		return completion.Result{}, err
	}

	return r.NavigateFromSources([]SourceParameter{p}, path, false)
}

// Resolve lists the completions for req. Only an empty source list, an
// invalid parameter or a parameter type that cannot be located are errors;
// paths that lead nowhere produce an empty result.
func (r *Resolver) Resolve(req Request) (completion.Result, error) {
	if len(req.Sources) == 0 {
		return completion.Result{}, ErrNoSources
	}

	for _, p := range req.Sources {
		if err := p.Validate(); err != nil {
			return completion.Result{}, err
		}
	}

	path := req.PathExpression
	target := req.targetContext()

	if strings.TrimSpace(path) == "" {
		if len(req.Sources) == 1 {
			return r.navigate(req.Sources[0], "", req.IsEnum, target)
		}

		return r.parameters(req.Sources, ""), nil
	}

	first, rest := splitFirst(path)

	if p, ok := findParameter(req.Sources, first); ok {
		return r.navigate(p, rest, req.IsEnum, target)
	}

	// A leading prefix of a parameter name completes the name, whatever
	// follows the first dot.
	if matches := filterByPrefix(req.Sources, first); len(matches) > 0 {
		return r.parameters(matches, first), nil
	}

	if len(req.Sources) == 1 {
		return r.navigate(req.Sources[0], path, req.IsEnum, target)
	}

	r.log.Debugw("path matches no source parameter", "path", path)

	return completion.Empty("", path), nil
}

// navigate delegates to the navigator after checking the parameter type
// can be located.
func (r *Resolver) navigate(p SourceParameter, path string, isEnum, isTarget bool) (completion.Result, error) {
	if _, err := r.provider.Shape(p.Type); err != nil {
		return completion.Result{}, errors.Wrapf(err, "source parameter %q", p.Name)
	}

	return completion.Finalize(r.nav.Navigate(p.Type, path, isEnum, isTarget)), nil
}

// parameters lists parameter names as candidates. The result is tagged
// with the type of the first listed parameter when it can be resolved.
func (r *Resolver) parameters(matches []SourceParameter, path string) completion.Result {
	items := make([]completion.FieldInfo, len(matches))
	for i, p := range matches {
		items[i] = completion.FieldInfo{Name: p.Name, Type: p.Type.String(), Kind: completion.KindParameter}
	}

	var ref shape.TypeRef
	if s, err := r.provider.Shape(matches[0].Type); err == nil {
		ref = s.Ref
	}

	return completion.NewResult(ref, path, items)
}

// splitFirst splits path at its first dot. The leading part is trimmed.
func splitFirst(path string) (first, rest string) {
	first, rest, _ = strings.Cut(path, ".")
	return strings.TrimSpace(first), rest
}

func findParameter(sources []SourceParameter, name string) (SourceParameter, bool) {
	for _, p := range sources {
		if p.Name == name {
			return p, true
		}
	}

	return SourceParameter{}, false
}

func filterByPrefix(sources []SourceParameter, prefix string) []SourceParameter {
	if prefix == "" {
		return sources
	}

	lower := strings.ToLower(prefix)

	var out []SourceParameter
	for _, p := range sources {
		if strings.HasPrefix(strings.ToLower(p.Name), lower) {
			out = append(out, p)
		}
	}

	return out
}
