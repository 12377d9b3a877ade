package navigate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"path-explorer/internal/completion"
	"path-explorer/internal/shape"
)

func loadBeans(t *testing.T) *Navigator {
	t.Helper()

	catalog, err := shape.LoadCatalogFile("testdata/beans.yaml")
	require.NoError(t, err)

	return New(catalog)
}

// simpleCatalog holds field-only types.
func simpleCatalog() *shape.Catalog {
	str := shape.TypeRef("java.lang.String")

	return shape.NewCatalog(
		shape.Shape{
			Ref: "com.example.Person",
			Members: []shape.Member{
				{Name: "firstName", Type: str},
				{Name: "address", Type: "com.example.Address"},
			},
		},
		shape.Shape{
			Ref: "com.example.Address",
			Members: []shape.Member{
				{Name: "street", Type: str},
				{Name: "city", Type: str},
				{Name: "state", Type: str},
				{Name: "zipCode", Type: str},
				{Name: "country", Type: "com.example.Country"},
			},
		},
		shape.Shape{
			Ref:     "com.example.Country",
			Members: []shape.Member{{Name: "name", Type: str}},
		},
	)
}

func kindsByName(r completion.Result) map[string]completion.Kind {
	kinds := make(map[string]completion.Kind, len(r.Completions))
	for _, c := range r.Completions {
		kinds[c.Name] = c.Kind
	}

	return kinds
}

func TestNavigate_RootFields(t *testing.T) {
	nav := New(simpleCatalog())

	r := nav.Navigate("com.example.Person", "", false, false)
	assert.Equal(t, "com.example.Person", r.ClassName)
	assert.Equal(t, "Person", r.SimpleName)
	assert.Equal(t, "com.example", r.PackageName)
	assert.Equal(t, []string{"address", "firstName"}, r.Names())
	assert.Equal(t, completion.KindField, kindsByName(r)["firstName"])
	assert.Equal(t, "String", r.Completions[1].Type)
}

func TestNavigate_NestedAndPrefix(t *testing.T) {
	nav := New(simpleCatalog())

	r := nav.Navigate("com.example.Person", "address.", false, false)
	assert.Equal(t, "com.example.Address", r.ClassName)
	assert.Equal(t, []string{"city", "country", "state", "street", "zipCode"}, r.Names())

	r = nav.Navigate("com.example.Person", "address.st", false, false)
	assert.Equal(t, []string{"state", "street"}, r.Names())

	r = nav.Navigate("com.example.Person", "address.ST", false, false)
	assert.Equal(t, []string{"state", "street"}, r.Names())

	r = nav.Navigate("com.example.Person", "address.country.", false, false)
	assert.Equal(t, []string{"name"}, r.Names())

	r = nav.Navigate("com.example.Person", "fir", false, false)
	assert.Equal(t, []string{"firstName"}, r.Names())
}

func TestNavigate_UndeclaredValueTypes(t *testing.T) {
	nav := New(simpleCatalog())

	for _, path := range []string{"firstName.", "address.city.", "address.country.name."} {
		r := nav.Navigate("com.example.Person", path, false, false)
		assert.Empty(t, r.Completions, path)
		assert.Equal(t, "java.lang.String", r.ClassName, path)
		assert.Equal(t, "String", r.SimpleName, path)
		assert.Equal(t, "java.lang", r.PackageName, path)
	}

	r := nav.Navigate("java.lang.Integer", "", false, false)
	assert.Empty(t, r.Completions)
	assert.Equal(t, "java.lang.Integer", r.ClassName)
}

func TestNavigate_GettersShadowFields(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("com.example.Person", "", false, false)
	assert.Equal(t, []string{"address", "age", "firstName", "fullName", "lastName", "orders"}, r.Names())

	for _, c := range r.Completions {
		assert.Equal(t, completion.KindGetter, c.Kind, c.Name)
	}

	assert.NotContains(t, r.Names(), "class")
}

func TestNavigate_Collections(t *testing.T) {
	nav := loadBeans(t)

	tests := []struct {
		name      string
		root      shape.TypeRef
		path      string
		className string
		expected  []string
	}{
		{"virtual accessors", "com.example.Person", "orders.", "java.util.List", []string{"empty", "first", "last"}},
		{"first property", "com.example.Order", "items.first.", "com.example.OrderItem", []string{"price", "product", "quantity"}},
		{"last property", "com.example.Order", "items.last.product.", "com.example.Product", []string{"name", "price", "sku"}},
		{"getFirst call", "com.example.Order", "items.getFirst().product.", "com.example.Product", []string{"name", "price", "sku"}},
		{"get call with index", "com.example.Order", "items.get(0).product.na", "com.example.Product", []string{"name"}},
		{"first call", "com.example.Order", "items.first().quantity.", "int", nil},
		{"numeric subtype is terminal", "com.example.Order", "items.first.price.", "java.math.BigDecimal", nil},
		{"empty enters the element", "com.example.Order", "items.empty.", "com.example.OrderItem", []string{"price", "product", "quantity"}},
		{"deep chain", "com.example.Person", "orders.first.items.first.product.na", "com.example.Product", []string{"name"}},
		{"array property", "com.example.Company", "employees.first.", "com.example.Person", []string{"address", "age", "firstName", "fullName", "lastName", "orders"}},
		{"array rejects calls", "com.example.Company", "employees.getFirst().", "com.example.Company", nil},
		{"raw list element is opaque", "com.example.Company", "rawList.first.", shape.Unknown.String(), nil},
		{"list size call", "com.example.Order", "items.size().", "int", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := nav.Navigate(tt.root, tt.path, false, false)
			assert.Equal(t, tt.className, r.ClassName)
			assert.Equal(t, tt.path, r.Path)

			if tt.expected == nil {
				assert.Empty(t, r.Completions)
			} else {
				assert.Equal(t, tt.expected, r.Names())
			}
		})
	}
}

func TestNavigate_VirtualAccessorTypes(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("com.example.Order", "items.", false, false)
	require.Len(t, r.Completions, 3)
	assert.Equal(t, completion.FieldInfo{Name: "empty", Type: "OrderItem", Kind: completion.KindGetter}, r.Completions[0])
	assert.Equal(t, "OrderItem", r.Completions[1].Type)

	r = nav.Navigate("com.example.Company", "rawList.", false, false)
	require.Len(t, r.Completions, 3)
	assert.Equal(t, "?", r.Completions[2].Type)
}

func TestNavigate_Records(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("com.example.PersonRecord", "", false, false)
	// Component accessors keep their names, even when they look like getters.
	assert.Equal(t, []string{"firstName", "getter", "lastName"}, r.Names())

	r = nav.Navigate("com.example.PersonRecord", "firstName.", false, false)
	assert.Empty(t, r.Completions)
	assert.Equal(t, "java.lang.String", r.ClassName)
}

func TestNavigate_SourceDropsSetters(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("com.example.Mixed", "builder.", false, false)
	assert.Equal(t, []string{"id"}, r.Names())

	// The empty path lists everything the root exposes.
	r = nav.Navigate("com.example.PersonBuilder", "", false, false)
	kinds := kindsByName(r)
	assert.Equal(t, []string{"fullName", "id", "nickname", "url"}, r.Names())
	assert.Equal(t, completion.KindSetter, kinds["nickname"])
	assert.Equal(t, completion.KindGetter, kinds["id"])
}

func TestNavigate_TargetConvertsToSetters(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("com.example.ImmutablePerson", "", false, true)
	assert.Equal(t, []string{"age", "name"}, r.Names())

	for _, c := range r.Completions {
		assert.Equal(t, completion.KindSetter, c.Kind, c.Name)
	}

	r = nav.Navigate("com.example.ImmutablePerson", "", false, false)
	for _, c := range r.Completions {
		assert.Equal(t, completion.KindGetter, c.Kind, c.Name)
	}

	r = nav.Navigate("com.example.Mixed", "builder.", false, true)
	assert.Equal(t, []string{"fullName", "id", "nickname", "url"}, r.Names())

	for _, c := range r.Completions {
		assert.Equal(t, completion.KindSetter, c.Kind, c.Name)
	}
}

func TestNavigate_AccessorNaming(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("com.example.Mixed", "", false, false)
	assert.Equal(t, []string{"active", "builder", "id", "url", "visible", "xmlParser"}, r.Names())

	// Properties derived from getters are navigable by their property name.
	r = nav.Navigate("com.example.Mixed", "xmlParser.", false, false)
	assert.Equal(t, "java.lang.String", r.ClassName)
}

func TestNavigate_Enum(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("com.example.Status", "", true, false)
	assert.Equal(t, []string{"A", "B", "C"}, r.Names())

	for _, c := range r.Completions {
		assert.Equal(t, completion.KindField, c.Kind)
		assert.Equal(t, "Status", c.Type)
	}

	r = nav.Navigate("com.example.Status", "", false, false)
	assert.Empty(t, r.Completions)

	// Constants are only listed for the empty path.
	r = nav.Navigate("com.example.Status", "A", true, false)
	assert.Empty(t, r.Completions)
}

func TestNavigate_MethodSegments(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("com.example.Person", "getAddress().ci", false, false)
	assert.Equal(t, []string{"city"}, r.Names())

	r = nav.Navigate("com.example.Person", "getAddress()", false, false)
	assert.Equal(t, "com.example.Address", r.ClassName)
	assert.Len(t, r.Completions, 5)

	r = nav.Navigate("com.example.Person", "getFullName().", false, false)
	assert.Empty(t, r.Completions)

	r = nav.Navigate("com.example.Person", "missing().", false, false)
	assert.Empty(t, r.Completions)
	assert.Equal(t, "com.example.Person", r.ClassName)
}

func TestNavigate_DeadEnds(t *testing.T) {
	nav := loadBeans(t)

	tests := []struct {
		name string
		root shape.TypeRef
		path string
	}{
		{"unknown member", "com.example.Person", "nope.x"},
		{"unknown member with trailing dot", "com.example.Person", "nope."},
		{"terminal mid-path", "com.example.Person", "firstName.length."},
		{"unresolvable member type", "com.example.Person", "class."},
		{"virtual accessor on non-sequence", "com.example.Person", "address.first."},
		{"unbalanced parens", "com.example.Person", "getAddress(.city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := nav.Navigate(tt.root, tt.path, false, false)
			assert.Empty(t, r.Completions)
			assert.Equal(t, tt.path, r.Path)
		})
	}
}

func TestNavigate_TerminalAndUnknownRoots(t *testing.T) {
	nav := loadBeans(t)

	r := nav.Navigate("java.lang.String", "", false, false)
	assert.Empty(t, r.Completions)
	assert.Equal(t, "String", r.SimpleName)

	r = nav.Navigate("int", "", false, true)
	assert.Empty(t, r.Completions)

	r = nav.Navigate("com.example.Missing", "a.b", false, false)
	assert.Empty(t, r.Completions)
	assert.Equal(t, "com.example.Missing", r.ClassName)
	assert.Equal(t, "Missing", r.SimpleName)
}

func TestNavigate_GoStyleAccessors(t *testing.T) {
	nav := New(shape.NewCatalog(shape.Shape{
		Ref: "example.com/store.Customer",
		Members: []shape.Member{
			{Name: "Email", Type: "string"},
			{Name: "FullName", Type: "string"},
			{Name: "GetFullName", Type: "string", Origin: shape.OriginGetter},
			{Name: "IsActive", Type: "bool", Origin: shape.OriginGetter},
			{Name: "SetEmail", Type: "string", Origin: shape.OriginSetter},
		},
	}))

	r := nav.Navigate("example.com/store.Customer", "", false, false)
	kinds := kindsByName(r)
	assert.Equal(t, []string{"Active", "Email", "FullName"}, r.Names())
	assert.Equal(t, completion.KindGetter, kinds["FullName"])
	assert.Equal(t, completion.KindSetter, kinds["Email"])

	r = nav.Navigate("example.com/store.Customer", "Active.", false, false)
	assert.Equal(t, "bool", r.ClassName)
}

func TestNavigate_Properties(t *testing.T) {
	nav := loadBeans(t)

	paths := []string{
		"", "a", "ad", "address.", "address.c", "orders.first.", "orders.first.items.first.",
		"getAddress().", "items", "x.y.z", "orders.f",
	}

	for _, path := range paths {
		for _, target := range []bool{false, true} {
			first := nav.Navigate("com.example.Person", path, false, target)
			second := nav.Navigate("com.example.Person", path, false, target)
			assert.Equal(t, first, second, "navigation is deterministic: %q", path)

			names := first.Names()
			assert.IsNonDecreasing(t, names, "sorted: %q", path)

			seen := map[string]bool{}
			for _, name := range names {
				assert.False(t, seen[name], "duplicate %q for %q", name, path)
				seen[name] = true
			}
		}
	}
}

func TestNavigate_PrefixProperty(t *testing.T) {
	nav := loadBeans(t)

	for _, prefix := range []string{"a", "A", "fi", "LAST", "o"} {
		r := nav.Navigate("com.example.Person", prefix, false, false)
		assert.NotEmpty(t, r.Completions, prefix)

		for _, c := range r.Completions {
			assert.Truef(t, len(c.Name) >= len(prefix), "%q too short for %q", c.Name, prefix)
			assert.Equalf(t, lower(prefix), lower(c.Name[:len(prefix)]), "%q does not start with %q", c.Name, prefix)
		}
	}
}

func TestNavigate_TrailingDotEquivalence(t *testing.T) {
	nav := loadBeans(t)

	viaField := nav.Navigate("com.example.Person", "address.", false, false)
	viaCall := nav.Navigate("com.example.Person", "getAddress().", false, false)
	viaCallNoDot := nav.Navigate("com.example.Person", "getAddress()", false, false)

	assert.Equal(t, viaField.ClassName, viaCall.ClassName)
	assert.Equal(t, viaField.Completions, viaCall.Completions)
	assert.Equal(t, viaField.Completions, viaCallNoDot.Completions)
}

func lower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}

	return string(out)
}
