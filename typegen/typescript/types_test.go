package typescript

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/entmirror/typegen"
)

// checkSource type-checks a single self-contained file.
func checkSource(t *testing.T, path, src string) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	require.NoError(t, err)
	pkg, err := (&types.Config{}).Check(path, fset, []*ast.File{f}, nil)
	require.NoError(t, err)
	return pkg
}

// fakeScope treats the listed type names of pkg as entities.
type fakeScope map[*types.TypeName]*typegen.SourceEntity

func newScope(pkg *types.Package, names ...string) fakeScope {
	s := fakeScope{}
	for _, n := range names {
		obj := pkg.Scope().Lookup(n).(*types.TypeName)
		s[obj] = &typegen.SourceEntity{Name: n, Object: obj}
	}
	return s
}

func (s fakeScope) EntityFor(obj *types.TypeName) *typegen.SourceEntity { return s[obj] }

func (s fakeScope) Lookup(name string) *typegen.SourceEntity {
	for _, e := range s {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// fieldType returns the type of field on struct type owner.
func fieldType(t *testing.T, pkg *types.Package, owner, field string) types.Type {
	t.Helper()
	st := pkg.Scope().Lookup(owner).Type().Underlying().(*types.Struct)
	for i := 0; i < st.NumFields(); i++ {
		if st.Field(i).Name() == field {
			return st.Field(i).Type()
		}
	}
	t.Fatalf("no field %s.%s", owner, field)
	return nil
}

const entitySrc = `package entity

type Status string

const (
	StatusArchived Status = "archived"
	StatusActive   Status = "active"
	statusAlias           = StatusActive
)

type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityHigh
)

type Plain string

type ID [16]byte

func (id ID) MarshalText() ([]byte, error) { return nil, nil }

type Raw struct{ data []byte }

func (r *Raw) MarshalJSON() ([]byte, error) { return r.data, nil }

type Address struct {
	Line1 string  ` + "`json:\"line1\"`" + `
	Zip   *string ` + "`json:\"zip\"`" + `
	Note  string  ` + "`json:\"-\"`" + `
	Extra string  ` + "`json:\"extra,omitempty\"`" + `
	hidden string
}

type Node struct {
	Children []Node ` + "`json:\"children\"`" + `
}

type Tenant struct{}

type Facility struct{}

type Sample struct {
	Name      string
	Count     int64
	Ratio     float32
	On        bool
	Blob      []byte
	Fixed     [4]byte
	Tags      []string
	Tenant    *Tenant
	Tenants   []*Tenant
	Sites     map[string]Facility
	ByLevel   map[Priority]string
	ByID      map[ID]int
	ByStatus  map[Status]bool
	Anything  any
	Iface     interface{ Do() }
	Status    Status
	Priority  Priority
	Plain     Plain
	ID        ID
	Raw       Raw
	Address   Address
	Inline    struct{ A string; B *int ` + "`json:\"b\"`" + ` }
	Empty     struct{}
	Nested    [][]Status
	Node      Node
	Ch        chan int
	Fn        func()
	Cplx      complex128
	BadKey    map[Address]string
}
`

func TestResolve(t *testing.T) {
	pkg := checkSource(t, "example.com/entity", entitySrc)
	scope := newScope(pkg, "Tenant", "Facility")
	g := NewGenerator()

	tests := []struct {
		field    string
		want     string
		wantRefs []string
	}{
		{"Name", "string", nil},
		{"Count", "number", nil},
		{"Ratio", "number", nil},
		{"On", "boolean", nil},
		{"Blob", "string", nil},
		{"Fixed", "number[]", nil},
		{"Tags", "string[]", nil},
		{"Tenant", "Tenant | null", []string{"Tenant"}},
		{"Tenants", "(Tenant | null)[]", []string{"Tenant"}},
		{"Sites", "Record<string, Facility>", []string{"Facility"}},
		{"ByLevel", "Record<number, string>", nil},
		{"ByID", "Record<string, number>", nil},
		{"ByStatus", "Record<string, boolean>", nil},
		{"Anything", "unknown", nil},
		{"Iface", "unknown", nil},
		{"Status", "'active' | 'archived'", nil},
		{"Priority", "1 | 2", nil},
		{"Plain", "string", nil},
		{"ID", "string", nil},
		{"Raw", "unknown", nil},
		{"Address", "{ line1: string; zip?: string | null; extra?: string }", nil},
		{"Inline", "{ A: string; b?: number | null }", nil},
		{"Empty", "Record<string, never>", nil},
		{"Nested", "('active' | 'archived')[][]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := g.Resolve(fieldType(t, pkg, "Sample", tt.field), scope)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.wantRefs, got.Refs)
		})
	}
}

func TestResolveUnresolvable(t *testing.T) {
	pkg := checkSource(t, "example.com/entity", entitySrc)
	scope := newScope(pkg)
	g := NewGenerator()

	for _, field := range []string{"Node", "Ch", "Fn", "Cplx", "BadKey"} {
		t.Run(field, func(t *testing.T) {
			_, err := g.Resolve(fieldType(t, pkg, "Sample", field), scope)
			assert.Error(t, err)
		})
	}
}

func TestResolveInvalidType(t *testing.T) {
	_, err := NewGenerator().Resolve(types.Typ[types.Invalid], fakeScope{})
	assert.ErrorContains(t, err, "could not be checked")
}

func TestResolveTypeMapping(t *testing.T) {
	timePkg := checkSource(t, "time", `package time

type Time struct{ wall uint64 }

func (t Time) MarshalJSON() ([]byte, error) { return nil, nil }

type Duration int64
`)
	g := NewGenerator()

	got, err := g.Resolve(timePkg.Scope().Lookup("Time").Type(), fakeScope{})
	require.NoError(t, err)
	assert.Equal(t, "string", got.Text, "mapping wins over MarshalJSON")

	got, err = g.Resolve(timePkg.Scope().Lookup("Duration").Type(), fakeScope{})
	require.NoError(t, err)
	assert.Equal(t, "number", got.Text)

	g.TypeMapping = map[string]string{"time.Duration": "string"}
	got, err = g.Resolve(timePkg.Scope().Lookup("Duration").Type(), fakeScope{})
	require.NoError(t, err)
	assert.Equal(t, "string", got.Text, "custom mapping")
}

func TestOverride(t *testing.T) {
	pkg := checkSource(t, "example.com/entity", entitySrc)
	scope := newScope(pkg, "Tenant", "Facility")

	got := NewGenerator().Override("Record<string, Tenant | Facility[]> | Partial<Unknown>", scope)
	assert.Equal(t, "Record<string, Tenant | Facility[]> | Partial<Unknown>", got.Text)
	assert.Equal(t, []string{"Tenant", "Facility"}, got.Refs)
}

func TestNullable(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "string | null", g.Nullable("string"))
	assert.Equal(t, "string | null", g.Nullable("string | null"))
	assert.Equal(t, "unknown", g.Nullable("unknown"))
	assert.Equal(t, "unknown", g.Unknown())
}

func TestIsTopLevelUnion(t *testing.T) {
	assert.True(t, isTopLevelUnion("string | null"))
	assert.False(t, isTopLevelUnion("string"))
	assert.False(t, isTopLevelUnion("{ a: string | null }"))
	assert.False(t, isTopLevelUnion("Record<string, number | null>"))
	assert.False(t, isTopLevelUnion("(Tenant | null)[]"))
}

func TestQuoteString(t *testing.T) {
	assert.Equal(t, `'front_desk'`, quoteString("front_desk"))
	assert.Equal(t, `'it\'s'`, quoteString("it's"))
	assert.Equal(t, `'a\\b\n'`, quoteString("a\\b\n"))
	assert.Equal(t, "tenantId", propertyKey("tenantId"))
	assert.Equal(t, "'tenant-id'", propertyKey("tenant-id"))
}
