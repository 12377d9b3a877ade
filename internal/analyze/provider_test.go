package analyze

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"path-explorer/internal/navigate"
	"path-explorer/internal/shape"
)

const fixturePkg = "path-explorer/internal/analyze/fixture"

func loadFixture(t *testing.T) *Provider {
	t.Helper()

	p, err := Load([]string{fixturePkg, "path-explorer/store"})
	require.NoError(t, err)

	return p
}

func memberNames(s *shape.Shape, origin shape.Origin) []string {
	var names []string
	for _, m := range s.Members {
		if m.Origin == origin {
			names = append(names, m.Name)
		}
	}

	return names
}

func findMember(t *testing.T, s *shape.Shape, name string) shape.Member {
	t.Helper()

	for _, m := range s.Members {
		if m.Name == name {
			return m
		}
	}

	require.Failf(t, "member not found", "%s has no member %s", s.Ref, name)

	return shape.Member{}
}

func TestProvider_StructFields(t *testing.T) {
	p := loadFixture(t)

	s, err := p.Shape(fixturePkg + ".Account")
	require.NoError(t, err)
	assert.Equal(t, shape.TypeRef(fixturePkg+".Account"), s.Ref)
	assert.False(t, s.Terminal)

	// Embedded fields are promoted after the direct ones; unexported
	// fields are skipped.
	assert.Equal(t, []string{
		"Audit", "ID", "Owner", "Tags", "Scores", "Labels", "Level", "History", "Notifier", "Page",
		"CreatedBy", "CreatedAt",
	}, memberNames(s, shape.OriginField))
	assert.Equal(t, []shape.TypeRef{fixturePkg + ".Audit"}, s.Supertypes)

	owner := findMember(t, s, "Owner")
	assert.Equal(t, shape.TypeRef(fixturePkg+".Profile"), owner.Type)
	assert.Equal(t, "*Profile", owner.Display())

	assert.Equal(t, shape.TypeRef("[]string"), findMember(t, s, "Tags").Type)
	assert.Equal(t, shape.TypeRef("[3]int"), findMember(t, s, "Scores").Type)
	assert.Equal(t, shape.TypeRef("time.Time"), findMember(t, s, "CreatedAt").Type)
	page := findMember(t, s, "Page")
	assert.Equal(t, "Page[Entry]", page.Display())
}

func TestProvider_Accessors(t *testing.T) {
	p := loadFixture(t)

	s, err := p.Shape("fixture.Profile")
	require.NoError(t, err)

	assert.Equal(t, []string{"Active"}, memberNames(s, shape.OriginField))
	assert.Equal(t, []string{"GetName", "IsActive"}, memberNames(s, shape.OriginGetter))
	assert.Equal(t, []string{"SetName", "WithEmail"}, memberNames(s, shape.OriginSetter))

	methods := make(map[string]shape.Method)
	for _, m := range s.Methods {
		methods[m.Name] = m
	}

	assert.Len(t, methods, 6)
	assert.Equal(t, shape.Method{Name: "Primary", Result: fixturePkg + ".Entry"}, methods["Primary"])
	assert.Equal(t, 2, methods["Match"].Params)
	assert.True(t, methods["SetName"].Result.IsZero())
	assert.Equal(t, shape.TypeRef(fixturePkg+".Profile"), methods["WithEmail"].Result)
}

func TestProvider_Enum(t *testing.T) {
	p := loadFixture(t)

	s, err := p.Shape("fixture.Level")
	require.NoError(t, err)
	assert.True(t, s.Terminal)
	assert.True(t, s.Enum)
	assert.Equal(t, []string{"LevelLow", "LevelHigh", "LevelMedium"}, s.EnumConstants)

	s, err = p.Shape("store.OrderStatus")
	require.NoError(t, err)
	assert.Equal(t, []string{"StatusPending", "StatusPaid", "StatusShipped", "StatusCancelled"}, s.EnumConstants)
}

func TestProvider_Sequences(t *testing.T) {
	p := loadFixture(t)

	s, err := p.Shape("fixture.History")
	require.NoError(t, err)
	assert.True(t, s.OrderedSequence)
	assert.False(t, s.Array)
	assert.Equal(t, shape.TypeRef(fixturePkg+".Entry"), s.ElementType)

	// Composite refs handed out by the provider resolve back.
	_, err = p.Shape(fixturePkg + ".Account")
	require.NoError(t, err)

	s, err = p.Shape("[3]int")
	require.NoError(t, err)
	assert.True(t, s.Array)
	assert.Equal(t, shape.TypeRef("int"), s.ElementType)
}

func TestProvider_BuiltinsAndErrors(t *testing.T) {
	p := loadFixture(t)

	s, err := p.Shape("string")
	require.NoError(t, err)
	assert.True(t, s.Terminal)

	s, err = p.Shape("*fixture.Entry")
	require.NoError(t, err)
	assert.Equal(t, shape.TypeRef(fixturePkg+".Entry"), s.Ref)

	s, err = p.Shape("fixture.Alias")
	require.NoError(t, err)
	assert.Equal(t, shape.TypeRef(fixturePkg+".Entry"), s.Ref)

	_, err = p.Shape("fixture.Missing")
	require.ErrorIs(t, err, shape.ErrTypeNotFound)
}

func TestProvider_Locate(t *testing.T) {
	p := loadFixture(t)

	loc, err := p.Locate("fixture.Account")
	require.NoError(t, err)
	assert.Regexp(t, `fixture[/\\]fixture\.go:27$`, loc)

	_, err = p.Locate("fixture.Missing")
	require.ErrorIs(t, err, shape.ErrTypeNotFound)

	_, err = p.Locate("[]string")
	require.Error(t, err)
}

func TestProvider_Concurrent(t *testing.T) {
	p := loadFixture(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for _, ref := range []shape.TypeRef{"fixture.Account", "fixture.Profile", "store.Order", "time.Time"} {
				_, err := p.Shape(ref)
				assert.NoError(t, err)
			}
		}()
	}

	wg.Wait()

	a, err := p.Shape("fixture.Account")
	require.NoError(t, err)

	b, err := p.Shape(fixturePkg + ".Account")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestProvider_Navigation(t *testing.T) {
	p := loadFixture(t)
	nav := navigate.New(p)

	tests := []struct {
		name      string
		path      string
		target    bool
		className string
		expected  []string
	}{
		{"root", "", false, fixturePkg + ".Account", []string{
			"Audit", "CreatedAt", "CreatedBy", "History", "ID", "Labels", "Level", "Notifier", "Owner", "Page", "Scores", "Tags",
		}},
		{"pointer field", "Owner.", false, fixturePkg + ".Profile", []string{"Active", "Name"}},
		{"pointer field as target", "Owner.", true, fixturePkg + ".Profile", []string{"Active", "Name", "WithEmail"}},
		{"named slice", "History.first.", false, fixturePkg + ".Entry", []string{"At", "Note"}},
		{"named slice call", "History.getLast().N", false, fixturePkg + ".Entry", []string{"Note"}},
		{"slice accessors", "Tags.", false, "[]string", []string{"empty", "first", "last"}},
		{"array element", "Scores.first.", false, "int", nil},
		{"array rejects calls", "Scores.get(0).", false, fixturePkg + ".Account", nil},
		{"generic instance", "Page.Items.first.", false, fixturePkg + ".Entry", []string{"At", "Note"}},
		{"interface method", "Notifier.Channel().", false, "string", nil},
		{"method result", "Owner.Primary().", false, fixturePkg + ".Entry", []string{"At", "Note"}},
		{"terminal time", "CreatedAt.", false, "time.Time", nil},
		{"promoted through embedded", "Audit.Cr", false, fixturePkg + ".Audit", []string{"CreatedAt", "CreatedBy"}},
		{"map is opaque", "Labels.", false, "map[string]string", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := nav.Navigate(fixturePkg+".Account", tt.path, false, tt.target)
			assert.Equal(t, tt.className, r.ClassName)

			if tt.expected == nil {
				assert.Empty(t, r.Completions)
			} else {
				assert.Equal(t, tt.expected, r.Names())
			}
		})
	}

	r := nav.Navigate("fixture.Level", "", true, false)
	assert.Equal(t, []string{"LevelHigh", "LevelLow", "LevelMedium"}, r.Names())

	r = nav.Navigate("store.Order", "Items.first.", false, false)
	assert.Equal(t, []string{"Name", "ProductID", "Quantity", "UnitPrice"}, r.Names())

	r = nav.Navigate("store.Order", "", false, false)
	assert.Equal(t, []string{"Customer", "ID", "Items", "Paid", "PlacedAt", "Status"}, r.Names())

	r = nav.Navigate("store.Order", "GetCustomer().Billing.", false, false)
	assert.Equal(t, "path-explorer/store.Address", r.ClassName)
	assert.Equal(t, []string{"City", "Street", "Zip"}, r.Names())
}
