package shape

import (
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// CatalogVersions is the range of catalog schema versions this package reads.
const CatalogVersions = "^1"

// ErrUnsupportedVersion is returned for catalogs of an unknown schema version.
var ErrUnsupportedVersion = errors.New("unsupported catalog version")

// Catalog is a Provider over a fixed set of shapes.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	shapes map[TypeRef]*Shape
}

// NewCatalog creates a catalog holding the given shapes.
func NewCatalog(shapes ...Shape) *Catalog {
	c := &Catalog{shapes: make(map[TypeRef]*Shape, len(shapes))}
	for i := range shapes {
		s := shapes[i]
		c.shapes[s.Ref] = &s
	}

	return c
}

// Shape implements Provider. Pointer markers are ignored; built-in refs
// resolve without being listed.
func (c *Catalog) Shape(ref TypeRef) (*Shape, error) {
	ref = Deref(ref)
	if s, ok := c.shapes[ref]; ok {
		return s, nil
	}

	if s, ok := Builtin(ref); ok {
		return s, nil
	}

	return nil, NotFound(ref)
}

// Refs returns the listed refs in sorted order.
func (c *Catalog) Refs() []TypeRef {
	refs := make([]TypeRef, 0, len(c.shapes))
	for ref := range c.shapes {
		refs = append(refs, ref)
	}

	slices.Sort(refs)

	return refs
}

// catalogFile is the YAML representation of a catalog.
type catalogFile struct {
	Version string      `yaml:"version"`
	Types   []shapeYAML `yaml:"types"`
}

type shapeYAML struct {
	Ref        string       `yaml:"ref"`
	Terminal   bool         `yaml:"terminal,omitempty"`
	Enum       bool         `yaml:"enum,omitempty"`
	Constants  []string     `yaml:"constants,omitempty"`
	Array      bool         `yaml:"array,omitempty"`
	Sequence   bool         `yaml:"sequence,omitempty"`
	Element    string       `yaml:"element,omitempty"`
	Supertypes []string     `yaml:"supertypes,omitempty"`
	Members    []memberYAML `yaml:"members,omitempty"`
	Methods    []methodYAML `yaml:"methods,omitempty"`
}

type memberYAML struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Display   string `yaml:"display,omitempty"`
	Element   string `yaml:"element,omitempty"`
	Origin    string `yaml:"origin,omitempty"`
	Component bool   `yaml:"component,omitempty"`
}

type methodYAML struct {
	Name   string `yaml:"name"`
	Params int    `yaml:"params,omitempty"`
	Result string `yaml:"result,omitempty"`
}

// LoadCatalogFile loads a YAML catalog from the given path.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog %s", path)
	}

	c, err := ParseCatalog(data)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}

	return c, nil
}

// CatalogFiles lists the files matching a catalog pattern. Patterns use
// doublestar syntax; a plain path matches itself.
func CatalogFiles(pattern string) ([]string, error) {
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid catalog pattern %q", pattern)
	}

	if len(files) == 0 {
		return nil, errors.WithHint(
			errors.Newf("no catalog matches %q", pattern),
			"check types.catalog or the --catalog flag",
		)
	}

	return files, nil
}

// LoadCatalogs loads every catalog file matching pattern ("types/**/*.yaml")
// into one catalog. A ref declared by two files is an error.
func LoadCatalogs(pattern string) (*Catalog, error) {
	files, err := CatalogFiles(pattern)
	if err != nil {
		return nil, err
	}

	var (
		shapes []Shape
		origin = make(map[TypeRef]string)
	)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog %s", file)
		}

		parsed, err := parseShapes(data)
		if err != nil {
			return nil, errors.Wrapf(err, "catalog %s", file)
		}

		for _, s := range parsed {
			if prev, ok := origin[s.Ref]; ok {
				return nil, errors.Newf("type %s is declared in both %s and %s", s.Ref, prev, file)
			}

			origin[s.Ref] = file
		}

		shapes = append(shapes, parsed...)
	}

	return NewCatalog(shapes...), nil
}

// ParseCatalog parses YAML data into a Catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	shapes, err := parseShapes(data)
	if err != nil {
		return nil, err
	}

	return NewCatalog(shapes...), nil
}

func parseShapes(data []byte) ([]Shape, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog YAML")
	}

	if err := checkVersion(cf.Version); err != nil {
		return nil, err
	}

	shapes := make([]Shape, 0, len(cf.Types))
	for i, t := range cf.Types {
		s, err := t.toShape()
		if err != nil {
			return nil, errors.Wrapf(err, "types[%d]", i)
		}

		shapes = append(shapes, s)
	}

	return shapes, nil
}

// checkVersion accepts a missing version as the current one.
func checkVersion(version string) error {
	if version == "" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return errors.Wrapf(ErrUnsupportedVersion, "%q", version)
	}

	constraint, err := semver.NewConstraint(CatalogVersions)
	if err != nil {
		return errors.Wrap(err, "invalid catalog version constraint")
	}

	if !constraint.Check(v) {
		return errors.WithHint(
			errors.Wrapf(ErrUnsupportedVersion, "%s", version),
			"this build reads catalog versions "+CatalogVersions,
		)
	}

	return nil
}

func (t shapeYAML) toShape() (Shape, error) {
	if t.Ref == "" {
		return Shape{}, errors.New("missing ref")
	}

	s := Shape{
		Ref:             TypeRef(t.Ref),
		Terminal:        t.Terminal,
		Enum:            t.Enum || len(t.Constants) > 0,
		EnumConstants:   t.Constants,
		Array:           t.Array,
		OrderedSequence: t.Sequence,
		ElementType:     TypeRef(t.Element),
	}

	for _, st := range t.Supertypes {
		s.Supertypes = append(s.Supertypes, TypeRef(st))
	}

	for i, m := range t.Members {
		if m.Name == "" || m.Type == "" {
			return Shape{}, errors.Newf("%s: members[%d]: name and type are required", t.Ref, i)
		}

		origin, err := ParseOrigin(m.Origin)
		if err != nil {
			return Shape{}, errors.Wrapf(err, "%s: members[%d]", t.Ref, i)
		}

		s.Members = append(s.Members, Member{
			Name:        m.Name,
			Type:        TypeRef(m.Type),
			DisplayType: m.Display,
			ElementType: TypeRef(m.Element),
			Origin:      origin,
			Component:   m.Component,
		})
	}

	for i, m := range t.Methods {
		if m.Name == "" {
			return Shape{}, errors.Newf("%s: methods[%d]: name is required", t.Ref, i)
		}

		s.Methods = append(s.Methods, Method{
			Name:   m.Name,
			Params: m.Params,
			Result: TypeRef(m.Result),
		})
	}

	return s, nil
}
