package analyze

import (
	"cmp"
	"go/token"
	"go/types"
	"slices"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"path-explorer/internal/shape"
)

// Provider reports shapes of Go types found in loaded packages. Shapes are
// built on first use and cached; the provider is safe for concurrent use.
type Provider struct {
	graph *TypeGraph
	fset  *token.FileSet
	log   *zap.SugaredLogger

	mu sync.Mutex
	// seen maps every ref handed out to the type it was made from, so refs
	// of composite and generic types resolve back to the same type.
	seen   map[shape.TypeRef]types.Type
	shapes map[shape.TypeRef]*shape.Shape
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger logs shape construction at debug level.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Provider) {
		if log != nil {
			p.log = log
		}
	}
}

// Load loads the packages matching patterns from the current directory.
func Load(patterns []string, opts ...Option) (*Provider, error) {
	return LoadDir("", patterns, opts...)
}

// LoadDir loads the packages matching patterns relative to dir.
func LoadDir(dir string, patterns []string, opts ...Option) (*Provider, error) {
	a := NewAnalyzer(dir)

	graph, err := a.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	return NewProvider(graph, a.FileSet(), opts...), nil
}

// NewProvider creates a provider over an indexed type graph.
func NewProvider(graph *TypeGraph, fset *token.FileSet, opts ...Option) *Provider {
	p := &Provider{
		graph:  graph,
		fset:   fset,
		log:    zap.NewNop().Sugar(),
		seen:   make(map[shape.TypeRef]types.Type),
		shapes: make(map[shape.TypeRef]*shape.Shape),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Graph returns the indexed type graph.
func (p *Provider) Graph() *TypeGraph {
	return p.graph
}

// Shape implements shape.Provider. Besides full refs it accepts the short
// forms "store.Order" and "Order" for named types.
func (p *Provider) Shape(ref shape.TypeRef) (*shape.Shape, error) {
	ref = shape.Deref(ref)

	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.shapes[ref]; ok {
		return s, nil
	}

	t, ok := p.lookup(ref)
	if !ok {
		if s, ok := shape.Builtin(ref); ok {
			return s, nil
		}

		return nil, shape.NotFound(ref)
	}

	s := p.build(t)
	p.shapes[ref] = s
	p.shapes[s.Ref] = s

	p.log.Debugw("built shape", "type", s.Ref, "members", len(s.Members), "methods", len(s.Methods))

	return s, nil
}

// Locate implements shape.Locator. It returns "file:line" of the
// declaration of a named type.
func (p *Provider) Locate(ref shape.TypeRef) (string, error) {
	ref = shape.Deref(ref)

	p.mu.Lock()
	t, ok := p.lookup(ref)
	p.mu.Unlock()

	if !ok {
		return "", shape.NotFound(ref)
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return "", errors.Newf("type %q has no declaration", string(ref))
	}

	pos := p.fset.Position(named.Obj().Pos())
	if !pos.IsValid() {
		return "", errors.WithHint(
			errors.Newf("no source position for %q", string(ref)),
			"only types of packages loaded from source can be located",
		)
	}

	return pos.Filename + ":" + strconv.Itoa(pos.Line), nil
}

// lookup finds the type behind ref. Callers hold p.mu.
func (p *Provider) lookup(ref shape.TypeRef) (types.Type, bool) {
	if t, ok := p.seen[ref]; ok {
		return t, true
	}

	if shape.IsBasic(ref) {
		return nil, false
	}

	obj, ok := p.graph.Lookup(ref.String())
	if !ok {
		return nil, false
	}

	return obj.Type(), true
}

// ref returns the ref of t and remembers the mapping. Callers hold p.mu.
func (p *Provider) ref(t types.Type) shape.TypeRef {
	r := TypeRef(t)
	if _, ok := p.seen[r]; !ok {
		p.seen[r] = deref(t)
	}

	return r
}

// build computes the shape of t. Callers hold p.mu.
func (p *Provider) build(t types.Type) *shape.Shape {
	t = types.Unalias(deref(t))
	s := &shape.Shape{Ref: p.ref(t)}

	under := t.Underlying()
	named, _ := t.(*types.Named)

	switch KindOf(t) {
	case TypeKindBasic:
		s.Terminal = true

	case TypeKindAlias:
		s.Terminal = true
		s.EnumConstants = enumConstants(named)
		s.Enum = len(s.EnumConstants) > 0

	case TypeKindStruct:
		st := under.(*types.Struct)
		s.Members = p.fields(st)
		s.Supertypes = p.embedded(st)

	case TypeKindSlice:
		s.OrderedSequence = true
		s.ElementType = p.ref(under.(*types.Slice).Elem())

	case TypeKindArray:
		s.Array = true
		s.ElementType = p.ref(under.(*types.Array).Elem())

	case TypeKindPointer, TypeKindMap, TypeKindInterface, TypeKindUnknown:
		// No fields; methods only.
	}

	p.methods(t, s)

	return s
}

// fields lists exported fields, including those promoted from embedded
// structs. Shallower fields hide deeper ones with the same name.
func (p *Provider) fields(st *types.Struct) []shape.Member {
	var (
		out     []shape.Member
		names   = make(map[string]bool)
		visited = make(map[types.Type]bool)
		level   = []*types.Struct{st}
	)

	for len(level) > 0 {
		var next []*types.Struct

		// Names introduced at this depth.
		depth := make(map[string]bool)

		for _, cur := range level {
			for i := range cur.NumFields() {
				f := cur.Field(i)

				if f.Embedded() {
					if inner, ok := embeddedStruct(f.Type(), visited); ok {
						next = append(next, inner)
					}
				}

				if !f.Exported() || names[f.Name()] || depth[f.Name()] {
					continue
				}

				depth[f.Name()] = true
				out = append(out, shape.Member{
					Name:        f.Name(),
					Type:        p.ref(f.Type()),
					DisplayType: DisplayType(f.Type()),
					Origin:      shape.OriginField,
				})
			}
		}

		for name := range depth {
			names[name] = true
		}

		level = next
	}

	return out
}

// embedded lists the named types embedded in st, nearest first.
func (p *Provider) embedded(st *types.Struct) []shape.TypeRef {
	var out []shape.TypeRef

	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}

		if _, ok := types.Unalias(deref(f.Type())).(*types.Named); ok {
			out = append(out, p.ref(f.Type()))
		}
	}

	return out
}

func embeddedStruct(t types.Type, visited map[types.Type]bool) (*types.Struct, bool) {
	t = types.Unalias(deref(t))
	if visited[t] {
		return nil, false
	}

	visited[t] = true

	st, ok := t.Underlying().(*types.Struct)

	return st, ok
}

// methods adds the exported methods of t, and the getters and setters
// among them. Methods of *T are included for non-interface types. The
// method set is ordered by name.
func (p *Provider) methods(t types.Type, s *shape.Shape) {
	recv := t
	if !types.IsInterface(t) {
		recv = types.NewPointer(t)
	}

	mset := types.NewMethodSet(recv)
	for i := range mset.Len() {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		sig := fn.Type().(*types.Signature)
		params, results := sig.Params(), sig.Results()

		m := shape.Method{Name: fn.Name(), Params: params.Len()}
		if results.Len() > 0 {
			m.Result = p.ref(results.At(0).Type())
		}

		s.Methods = append(s.Methods, m)

		switch {
		case params.Len() == 0 && results.Len() == 1 && isGoGetter(fn.Name()):
			res := results.At(0).Type()
			s.Members = append(s.Members, shape.Member{
				Name:        fn.Name(),
				Type:        p.ref(res),
				DisplayType: DisplayType(res),
				Origin:      shape.OriginGetter,
			})

		case params.Len() == 1 && !sig.Variadic() && isSetterResult(t, results):
			param := params.At(0).Type()
			s.Members = append(s.Members, shape.Member{
				Name:        fn.Name(),
				Type:        p.ref(param),
				DisplayType: DisplayType(param),
				Origin:      shape.OriginSetter,
			})
		}
	}
}

// isGoGetter reports whether name is a Get- or Is-prefixed accessor.
func isGoGetter(name string) bool {
	for _, prefix := range []string{"Get", "Is"} {
		if len(name) > len(prefix) && name[:len(prefix)] == prefix && isUpper(name[len(prefix)]) {
			return true
		}
	}

	return false
}

// isSetterResult accepts setters returning nothing or their receiver.
func isSetterResult(recv types.Type, results *types.Tuple) bool {
	switch results.Len() {
	case 0:
		return true
	case 1:
		res := results.At(0).Type()
		return types.Identical(res, recv) || types.Identical(res, types.NewPointer(recv))
	default:
		return false
	}
}

// enumConstants lists the package-level constants of a named basic type in
// declaration order.
func enumConstants(named *types.Named) []string {
	if named == nil || named.Obj().Pkg() == nil {
		return nil
	}

	scope := named.Obj().Pkg().Scope()

	var consts []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && c.Exported() && types.Identical(c.Type(), named) {
			consts = append(consts, c)
		}
	}

	slices.SortStableFunc(consts, func(a, b *types.Const) int {
		return cmp.Compare(a.Pos(), b.Pos())
	})

	out := make([]string, len(consts))
	for i, c := range consts {
		out[i] = c.Name()
	}

	return out
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
