package mapping

// Version is the overrides file version this package reads.
const Version = "1"

// File is the root of an overrides file.
type File struct {
	Version string         `yaml:"version"`
	Types   []TypeOverride `yaml:"types"`
}

// TypeOverride holds the overrides of one struct type.
type TypeOverride struct {
	// Type is "pkg.Type", "import/path.Type" or a bare type name.
	Type     string          `yaml:"type"`
	Suppress *bool           `yaml:"suppress_warnings,omitempty"`
	Fields   []FieldOverride `yaml:"fields,omitempty"`
}

// FieldOverride holds the overrides of one field.
type FieldOverride struct {
	Field    string `yaml:"field"`
	Column   string `yaml:"column,omitempty"`
	Ignore   *bool  `yaml:"ignore,omitempty"`
	Convert  string `yaml:"convert,omitempty"`
	Suppress *bool  `yaml:"suppress_warnings,omitempty"`
}

// Lookup returns the override of the given type reference, or nil.
func (f *File) Lookup(ref string) *TypeOverride {
	for i := range f.Types {
		if f.Types[i].Type == ref {
			return &f.Types[i]
		}
	}

	return nil
}
