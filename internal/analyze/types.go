package analyze

import (
	"cmp"
	"go/types"
	"reflect"
	"slices"
	"strings"
)

// TagKey is the struct tag key read by the analyzer.
const TagKey = "rowmap"

// Directives recognized in type doc comments.
const (
	DirectiveGenerate = "//rowmap:generate"
	DirectiveSuppress = "//rowmap:suppress"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "rowmapper/store"
	Name    string // e.g., "Customer"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Meta is the mapping metadata of one field, from its tag or an overrides file.
type Meta struct {
	Column   string
	Ignore   bool
	Suppress bool
	Convert  string
}

// ParseTag parses a rowmap tag value: "column,suppress,convert=<id>" or "-".
// Unknown options are returned in rest.
func ParseTag(value string) (m Meta, rest []string) {
	if value == "-" {
		m.Ignore = true

		return m, nil
	}

	parts := strings.Split(value, ",")
	m.Column = strings.TrimSpace(parts[0])

	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)

		switch {
		case opt == "":
		case opt == "suppress":
			m.Suppress = true
		case opt == "ignore":
			m.Ignore = true
		case strings.HasPrefix(opt, "convert="):
			m.Convert = strings.TrimPrefix(opt, "convert=")
		default:
			rest = append(rest, opt)
		}
	}

	return m, rest
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     types.Type        // Declared type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Meta     Meta              // Parsed rowmap metadata

	// Parent is set for embedded structs declared in the same package.
	Parent *TypeID
	// Foreign is set for embedded structs of another package; they are not mapped.
	Foreign bool
}

// HasTag returns true if the field carries a rowmap tag.
func (f *FieldInfo) HasTag() bool {
	_, ok := f.Tag.Lookup(TagKey)

	return ok
}

// Pointer reports whether the declared type is a pointer.
func (f *FieldInfo) Pointer() bool {
	_, ok := f.Type.(*types.Pointer)

	return ok
}

// Elem returns the pointee for pointer fields and the declared type otherwise.
func (f *FieldInfo) Elem() types.Type {
	if p, ok := f.Type.(*types.Pointer); ok {
		return p.Elem()
	}

	return f.Type
}

// StructInfo describes a named struct type.
type StructInfo struct {
	ID       TypeID
	Fields   []FieldInfo
	Generate bool // //rowmap:generate
	Suppress bool // //rowmap:suppress
	Selected bool
	Order    int // declaration order within the package
}

// Field returns the field with the given name, or nil.
func (s *StructInfo) Field(name string) *FieldInfo {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}

	return nil
}

// FieldNames lists the field names in declaration order.
func (s *StructInfo) FieldNames() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}

	return out
}

// Package holds the structs of one loaded package.
type Package struct {
	Path    string // Import path
	Name    string // Package name
	Dir     string // Directory of the package sources
	Structs map[string]*StructInfo
	Types   *types.Package
}

// Struct returns the named struct, or nil.
func (p *Package) Struct(name string) *StructInfo {
	return p.Structs[name]
}

// Sorted returns all structs in declaration order.
func (p *Package) Sorted() []*StructInfo {
	out := make([]*StructInfo, 0, len(p.Structs))
	for _, s := range p.Structs {
		out = append(out, s)
	}

	sortByOrder(out)

	return out
}

// Selected returns the selected structs in declaration order.
func (p *Package) Selected() []*StructInfo {
	var out []*StructInfo

	for _, s := range p.Sorted() {
		if s.Selected {
			out = append(out, s)
		}
	}

	return out
}

// StructNames lists every struct name in declaration order.
func (p *Package) StructNames() []string {
	sorted := p.Sorted()

	out := make([]string, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, s.ID.Name)
	}

	return out
}

func sortByOrder(structs []*StructInfo) {
	slices.SortFunc(structs, func(a, b *StructInfo) int {
		return cmp.Compare(a.Order, b.Order)
	})
}
