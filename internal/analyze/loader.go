package analyze

import (
	"go/token"
	"go/types"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and indexes their named types.
type Analyzer struct {
	graph *TypeGraph
	fset  *token.FileSet
	dir   string
}

// NewAnalyzer creates a new Analyzer. Patterns are resolved relative to
// dir; an empty dir means the current directory.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
		fset:  token.NewFileSet(),
		dir:   dir,
	}
}

// LoadPackages loads the specified packages and indexes their types.
// Patterns are standard Go package patterns (e.g., "./store", "path-explorer/warehouse").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no package patterns given")
	}

	cfg := &packages.Config{
		Mode: LoadMode,
		Fset: a.fset,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	// Check for package errors
	var errs error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = errors.CombineErrors(errs, errors.Newf("%s: %s", pkg.PkgPath, e.Error()))
		}
	}

	if errs != nil {
		return nil, errors.WithHint(
			errors.Wrap(errs, "package errors"),
			"check that the patterns name buildable packages of the current module",
		)
	}

	seen := make(map[*types.Package]bool)

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			return nil, errors.Newf("package %s has no type information", pkg.PkgPath)
		}

		a.indexPackage(pkg.Types, seen)
	}

	for _, pkg := range pkgs {
		a.graph.Packages[pkg.Types.Path()].Loaded = true
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// FileSet returns the file set positions of indexed types refer to.
func (a *Analyzer) FileSet() *token.FileSet {
	return a.fset
}

// indexPackage records the exported type names of pkg and of its
// transitive imports.
func (a *Analyzer) indexPackage(pkg *types.Package, seen map[*types.Package]bool) {
	if seen[pkg] {
		return
	}

	seen[pkg] = true

	if _, ok := a.graph.Packages[pkg.Path()]; !ok {
		info := &PackageInfo{Path: pkg.Path(), Name: pkg.Name()}
		a.graph.Packages[pkg.Path()] = info

		scope := pkg.Scope()
		for _, name := range scope.Names() {
			// Only process exported type names
			typeName, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !typeName.Exported() {
				continue
			}

			id := TypeID{PkgPath: pkg.Path(), Name: name}
			a.graph.Types[id] = typeName
			info.Types = append(info.Types, id)
		}
	}

	for _, imp := range pkg.Imports() {
		a.indexPackage(imp, seen)
	}
}
