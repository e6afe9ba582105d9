package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/types"
	"strings"

	"rowmapper/internal/analyze"
	"rowmapper/internal/diagnostic"
)

// SchemaImportPath is the import path of the schema builder package.
const SchemaImportPath = "rowmapper/schema"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FileSuffix is appended to the package name to form the output file name.
	FileSuffix string
	// GenerateComments adds a doc comment to every schema accessor.
	GenerateComments bool
	// DebugDir receives unformatted sources when formatting fails. Empty disables it.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       "_rowmap.go",
		GenerateComments: true,
	}
}

// Generator generates schema builder code for analyzed packages.
type Generator struct {
	config GeneratorConfig
	diags  diagnostic.Diagnostics
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.FileSuffix == "" {
		config.FileSuffix = DefaultGeneratorConfig().FileSuffix
	}

	return &Generator{config: config}
}

// Diagnostics returns the findings collected during generation.
func (g *Generator) Diagnostics() *diagnostic.Diagnostics {
	return &g.diags
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "store_rowmap.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate emits one file per package with selected structs. Packages
// without selected structs produce no file.
func (g *Generator) Generate(pkgs ...*analyze.Package) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, pkg := range pkgs {
		file, err := g.generatePackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pkg.Path, err)
		}

		if file != nil {
			files = append(files, *file)
		}
	}

	return files, nil
}

func (g *Generator) generatePackage(pkg *analyze.Package) (*GeneratedFile, error) {
	structs, err := g.orderStructs(pkg)
	if err != nil {
		return nil, err
	}

	if len(structs) == 0 {
		return nil, nil
	}

	imports := newImportSet(pkg.Path)
	schemaPkg := imports.add(SchemaImportPath, "schema")

	data := fileData{
		PackageName: pkg.Name,
		Comments:    g.config.GenerateComments,
	}

	for _, s := range structs {
		data.Schemas = append(data.Schemas, g.buildSchema(pkg, s, imports, schemaPkg))
	}

	data.ImportGroups = imports.groups()

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	filename := pkg.Name + g.config.FileSuffix

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if dbgErr := writeDebugUnformatted(g.config.DebugDir, filename, buf.Bytes()); dbgErr != nil {
			err = errors.Join(err, dbgErr)
		}

		return &GeneratedFile{Dir: pkg.Dir, Filename: filename, Content: buf.Bytes()},
			fmt.Errorf("formatting %s: %w", filename, err)
	}

	return &GeneratedFile{Dir: pkg.Dir, Filename: filename, Content: formatted}, nil
}

// orderStructs returns the selected structs with every embedded parent
// before its children.
func (g *Generator) orderStructs(pkg *analyze.Package) ([]*analyze.StructInfo, error) {
	selected := pkg.Selected()

	names := make([]string, len(selected))
	index := make(map[string]int, len(selected))

	for i, s := range selected {
		names[i] = s.ID.Name
		index[s.ID.Name] = i
	}

	order, err := topoSort(names, func(i int) []int {
		var deps []int

		for _, f := range selected[i].Fields {
			if f.Parent == nil || f.Meta.Ignore {
				continue
			}

			if j, ok := index[f.Parent.Name]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		if errors.Is(err, errCycle) {
			g.diags.AddError("embed_cycle", err.Error(), pkg.Path, "")
		}

		return nil, err
	}

	out := make([]*analyze.StructInfo, len(order))
	for i, j := range order {
		out[i] = selected[j]
	}

	return out, nil
}

func (g *Generator) buildSchema(
	pkg *analyze.Package,
	s *analyze.StructInfo,
	imports *importSet,
	schemaPkg string,
) schemaData {
	name := s.ID.Name
	sd := schemaData{
		Type:     name,
		Func:     name + "Schema",
		Var:      "rowmap" + capitalize(name),
		Builder:  "build" + capitalize(name) + "Schema",
		Pkg:      schemaPkg,
		Suppress: s.Suppress,
	}

	qualifier := imports.qualifier
	typeString := func(t types.Type) string { return types.TypeString(t, qualifier) }

	for _, f := range s.Fields {
		if f.Name == "_" {
			continue
		}

		switch {
		case f.Parent != nil:
			if f.Meta.Ignore {
				continue
			}

			if pkg.Struct(f.Parent.Name) == nil {
				g.diags.AddWarning("unsupported_embed",
					fmt.Sprintf("embedded %s has no schema", f.Parent.Name), name, f.Name)

				continue
			}

			sd.Fields = append(sd.Fields, fieldData{
				Kind:    "embed",
				Name:    f.Name,
				Parent:  f.Parent.Name + "Schema",
				Elem:    typeString(f.Elem()),
				Pointer: f.Pointer(),
			})
		case f.Foreign:
			continue
		default:
			fd := fieldData{
				Kind:    "field",
				Name:    f.Name,
				Elem:    typeString(f.Type),
				Options: options(schemaPkg, f.Meta),
			}

			if f.Pointer() {
				fd.Kind = "nullable"
				fd.Elem = typeString(f.Elem())
			}

			sd.Fields = append(sd.Fields, fd)
		}
	}

	return sd
}

// options renders the schema options of a field in a fixed order.
func options(schemaPkg string, m analyze.Meta) []string {
	var out []string

	if m.Column != "" {
		out = append(out, fmt.Sprintf("%s.Column(%q)", schemaPkg, m.Column))
	}

	if m.Ignore {
		out = append(out, schemaPkg+".Ignore()")
	}

	if m.Convert != "" {
		out = append(out, fmt.Sprintf("%s.Convert(%q)", schemaPkg, m.Convert))
	}

	if m.Suppress {
		out = append(out, schemaPkg+".SuppressWarnings()")
	}

	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
