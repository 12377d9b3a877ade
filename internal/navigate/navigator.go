package navigate

import (
	"go.uber.org/zap"

	"path-explorer/internal/completion"
	"path-explorer/internal/pathexpr"
	"path-explorer/internal/shape"
)

// Navigator resolves path expressions from a single root type.
// It holds no per-call state and is safe for concurrent use.
type Navigator struct {
	provider shape.Provider
	log      *zap.SugaredLogger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger logs navigation dead ends at debug level.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(n *Navigator) {
		if log != nil {
			n.log = log
		}
	}
}

// New creates a Navigator reading type shapes from provider.
func New(provider shape.Provider, opts ...Option) *Navigator {
	n := &Navigator{
		provider: provider,
		log:      zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Provider returns the shape provider the navigator reads from.
func (n *Navigator) Provider() shape.Provider {
	return n.provider
}

// cursor is the position reached while walking a path.
type cursor struct {
	shape *shape.Shape
	// via is the member traversed to reach shape; nil after a virtual
	// accessor or a call.
	via *shape.Member
}

// Navigate lists the properties reachable at the end of path, starting from
// root. isEnum lists enumeration constants for an empty path; isTarget
// presents every property as writable. Dead ends yield an empty result.
func (n *Navigator) Navigate(root shape.TypeRef, path string, isEnum, isTarget bool) completion.Result {
	rootShape, err := n.provider.Shape(root)
	if err != nil {
		n.log.Debugw("root type not resolvable", "type", root, "error", err)
		return completion.Empty(root, path)
	}

	// Tag results with the canonical ref, not the spelling the caller used.
	root = rootShape.Ref

	segments := pathexpr.Parse(path)
	if len(segments) == 0 {
		return n.listRoot(root, rootShape, path, isEnum, isTarget)
	}

	cur := cursor{shape: rootShape}

	for _, seg := range segments[:len(segments)-1] {
		next, ok := n.step(cur, seg)
		if !ok {
			n.log.Debugw("path dead end", "type", cur.shape.Ref, "segment", seg.String(), "path", path)
			return completion.Empty(root, path)
		}

		cur = next
	}

	last := segments[len(segments)-1]
	prefix := last.Name

	if prefix == "" || last.Kind == pathexpr.Method {
		if prefix != "" {
			next, ok := n.step(cur, last)
			if !ok {
				n.log.Debugw("path dead end", "type", cur.shape.Ref, "segment", last.String(), "path", path)
				return completion.Empty(root, path)
			}

			cur = next
		}

		prefix = ""
	}

	if IsTerminal(cur.shape) {
		return completion.Empty(cur.shape.Ref, path)
	}

	items := completion.FilterByPrefix(n.members(cur), prefix)
	if isTarget {
		items = completion.ToSetters(items)
	} else {
		items = completion.DropSetters(items)
	}

	return completion.NewResult(cur.shape.Ref, path, items)
}

// listRoot handles the empty path.
func (n *Navigator) listRoot(root shape.TypeRef, s *shape.Shape, path string, isEnum, isTarget bool) completion.Result {
	if isEnum && s.Enum {
		display := root.SimpleName()

		items := make([]completion.FieldInfo, len(s.EnumConstants))
		for i, c := range s.EnumConstants {
			items[i] = completion.FieldInfo{Name: c, Type: display, Kind: completion.KindField}
		}

		return completion.NewResult(root, path, items)
	}

	if IsTerminal(s) {
		return completion.Empty(root, path)
	}

	items := n.members(cursor{shape: s})
	if isTarget {
		items = completion.ToSetters(items)
	}

	return completion.NewResult(root, path, items)
}

// members lists the properties at a cursor, including the virtual
// accessors of sequences.
func (n *Navigator) members(c cursor) []completion.FieldInfo {
	cs := enumerate(c.shape)
	if c.shape.IsSequence() {
		cs = append(cs, virtualCandidates(c.shape, c.via)...)
	}

	return toFieldInfos(cs)
}

// step moves the cursor through one segment.
func (n *Navigator) step(cur cursor, seg pathexpr.Segment) (cursor, bool) {
	s := cur.shape
	if seg.Name != "" && IsTerminal(s) {
		return cursor{}, false
	}

	switch seg.Kind {
	case pathexpr.Field:
		if seg.Name == "" {
			return cur, true
		}

		if isVirtualProperty(seg.Name) && s.IsSequence() {
			return n.enter(elementType(s, cur.via), nil)
		}

		m := findMember(s, seg.Name)
		if m == nil {
			return cursor{}, false
		}

		return n.enter(m.Type, m)

	case pathexpr.Method:
		if isSequenceCall(seg.Name) && s.IsSequence() {
			// Arrays only support the property forms.
			if s.Array {
				return cursor{}, false
			}

			return n.enter(elementType(s, cur.via), nil)
		}

		m := findMethod(s, seg.Name)
		if m == nil {
			return cursor{}, false
		}

		return n.enter(m.Result, nil)
	}

	return cursor{}, false
}

// enter resolves ref into a cursor.
func (n *Navigator) enter(ref shape.TypeRef, via *shape.Member) (cursor, bool) {
	s, err := n.provider.Shape(ref)
	if err != nil {
		n.log.Debugw("type not resolvable", "type", ref, "error", err)
		return cursor{}, false
	}

	return cursor{shape: s, via: via}, true
}
