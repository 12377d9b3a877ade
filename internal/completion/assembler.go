package completion

import (
	"slices"
	"strings"

	"path-explorer/internal/shape"
)

// FilterByPrefix keeps candidates whose name starts with prefix, ignoring
// case. An empty prefix keeps everything.
func FilterByPrefix(items []FieldInfo, prefix string) []FieldInfo {
	if prefix == "" {
		return items
	}

	lower := strings.ToLower(prefix)

	var out []FieldInfo
	for _, f := range items {
		if strings.HasPrefix(strings.ToLower(f.Name), lower) {
			out = append(out, f)
		}
	}

	return out
}

// DropSetters removes setter candidates. Source paths are only read.
func DropSetters(items []FieldInfo) []FieldInfo {
	var out []FieldInfo
	for _, f := range items {
		if f.Kind != KindSetter {
			out = append(out, f)
		}
	}

	return out
}

// ToSetters presents fields and getters as setters for target paths.
// Setters and parameters are left as they are.
func ToSetters(items []FieldInfo) []FieldInfo {
	out := make([]FieldInfo, len(items))
	for i, f := range items {
		if f.Kind == KindField || f.Kind == KindGetter {
			f.Kind = KindSetter
		}

		out[i] = f
	}

	return out
}

// Dedupe keeps the first candidate for each name, preserving order.
func Dedupe(items []FieldInfo) []FieldInfo {
	seen := make(map[string]struct{}, len(items))

	var out []FieldInfo
	for _, f := range items {
		if _, ok := seen[f.Name]; ok {
			continue
		}

		seen[f.Name] = struct{}{}
		out = append(out, f)
	}

	return out
}

// Sort orders candidates by name. Equal names keep their relative order.
func Sort(items []FieldInfo) []FieldInfo {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b FieldInfo) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out
}

// Empty builds a result without candidates tagged with ref.
func Empty(ref shape.TypeRef, path string) Result {
	return Result{
		ClassName:   ref.String(),
		SimpleName:  ref.SimpleName(),
		PackageName: ref.PackageName(),
		Path:        path,
	}
}

// NewResult builds a result tagged with ref whose candidates are sorted by
// name and unique by name. Among duplicates the first produced wins.
func NewResult(ref shape.TypeRef, path string, items []FieldInfo) Result {
	r := Empty(ref, path)
	r.Completions = Dedupe(Sort(items))

	return r
}

// Finalize sorts and deduplicates the candidates of an existing result.
func Finalize(r Result) Result {
	r.Completions = Dedupe(Sort(r.Completions))
	return r
}
