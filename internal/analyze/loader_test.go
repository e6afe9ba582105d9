package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadStore(t *testing.T) (*Package, *Analyzer) {
	t.Helper()

	analyzer := NewAnalyzer()
	pkgs, err := analyzer.LoadPackages("rowmapper/store")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	return pkgs[0], analyzer
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	pkgs, err := analyzer.LoadPackages("rowmapper/store", "rowmapper/warehouse")
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	byPath := map[string]*Package{}
	for _, p := range pkgs {
		byPath[p.Path] = p
	}

	require.Contains(t, byPath, "rowmapper/store")
	require.Contains(t, byPath, "rowmapper/warehouse")

	assert.Equal(t, "store", byPath["rowmapper/store"].Name)
	assert.NotEmpty(t, byPath["rowmapper/store"].Dir)
	assert.Equal(t, []string{"Location", "Stock"}, byPath["rowmapper/warehouse"].StructNames())
}

func TestAnalyzer_Selection(t *testing.T) {
	pkg, _ := loadStore(t)

	var selected []string
	for _, s := range pkg.Selected() {
		selected = append(selected, s.ID.Name)
	}

	// Entity is tagged, Product is tagged, Customer and Shipment carry
	// directives, Order is suppressed. Note has nothing.
	assert.Equal(t, []string{"Entity", "Product", "Customer", "Order", "Shipment"}, selected)
	assert.False(t, pkg.Struct("Note").Selected)
}

func TestAnalyzer_Directives(t *testing.T) {
	pkg, _ := loadStore(t)

	customer := pkg.Struct("Customer")
	require.NotNil(t, customer)
	assert.True(t, customer.Generate)
	assert.False(t, customer.Suppress)

	order := pkg.Struct("Order")
	require.NotNil(t, order)
	assert.True(t, order.Suppress)
}

func TestAnalyzer_Fields(t *testing.T) {
	pkg, _ := loadStore(t)

	customer := pkg.Struct("Customer")
	require.NotNil(t, customer)

	assert.Equal(t,
		[]string{"Entity", "Email", "FullName", "Address", "IsActive", "BirthDate", "ExternalID", "Session", "score"},
		customer.FieldNames())

	entity := customer.Field("Entity")
	require.NotNil(t, entity)
	assert.True(t, entity.Embedded)
	require.NotNil(t, entity.Parent)
	assert.Equal(t, "Entity", entity.Parent.Name)

	address := customer.Field("Address")
	require.NotNil(t, address)
	assert.True(t, address.Pointer())
	assert.Equal(t, "string", address.Elem().String())

	ext := customer.Field("ExternalID")
	require.NotNil(t, ext)
	assert.Equal(t, Meta{Column: "external_id", Convert: "string-to-uuid"}, ext.Meta)

	assert.True(t, customer.Field("Session").Meta.Ignore)

	score := customer.Field("score")
	require.NotNil(t, score)
	assert.False(t, score.Exported)
}

func TestAnalyzer_PointerEmbed(t *testing.T) {
	pkg, _ := loadStore(t)

	order := pkg.Struct("Order")
	require.NotNil(t, order)

	entity := order.Field("Entity")
	require.NotNil(t, entity)
	assert.True(t, entity.Pointer())
	require.NotNil(t, entity.Parent)
	assert.Equal(t, TypeID{PkgPath: "rowmapper/store", Name: "Entity"}, *entity.Parent)
}

func TestAnalyzer_ForeignEmbed(t *testing.T) {
	pkg, analyzer := loadStore(t)

	loc := pkg.Struct("Shipment").Field("Location")
	require.NotNil(t, loc)
	assert.True(t, loc.Foreign)
	assert.Nil(t, loc.Parent)

	diags := analyzer.Diagnostics()
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "foreign_embed", diags.Warnings[0].Code)
	assert.Equal(t, "Shipment", diags.Warnings[0].Type)
	assert.Contains(t, diags.Warnings[0].Message, "warehouse.Location")
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want Meta
		rest []string
	}{
		{"-", Meta{Ignore: true}, nil},
		{"id", Meta{Column: "id"}, nil},
		{",suppress", Meta{Suppress: true}, nil},
		{"tags,convert=array-to-string-slice", Meta{Column: "tags", Convert: "array-to-string-slice"}, nil},
		{"name, suppress ,ignore", Meta{Column: "name", Suppress: true, Ignore: true}, nil},
		{"x,omitempty", Meta{Column: "x"}, []string{"omitempty"}},
		{"", Meta{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, rest := ParseTag(tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestClose(t *testing.T) {
	a := &StructInfo{ID: TypeID{Name: "A"}, Selected: true, Fields: []FieldInfo{
		{Name: "B", Embedded: true, Parent: &TypeID{Name: "B"}},
	}}
	b := &StructInfo{ID: TypeID{Name: "B"}, Order: 1, Fields: []FieldInfo{
		{Name: "C", Embedded: true, Parent: &TypeID{Name: "C"}},
		{Name: "D", Embedded: true, Parent: &TypeID{Name: "D"}, Meta: Meta{Ignore: true}},
	}}
	c := &StructInfo{ID: TypeID{Name: "C"}, Order: 2}
	d := &StructInfo{ID: TypeID{Name: "D"}, Order: 3}

	pkg := &Package{Structs: map[string]*StructInfo{"A": a, "B": b, "C": c, "D": d}}
	Close(pkg)

	assert.True(t, b.Selected)
	assert.True(t, c.Selected)
	assert.False(t, d.Selected)
	assert.Len(t, pkg.Selected(), 3)
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: "rowmapper/store", Name: "Order"}
	assert.Equal(t, "rowmapper/store.Order", id.String())

	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
}
