package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"rowmapper/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// BuildTag excludes previously generated files while loading, so a stale
// schema file never stops regeneration.
const BuildTag = "rowmapgen"

// Analyzer loads Go packages and extracts their struct types.
type Analyzer struct {
	// Dir is the working directory for package patterns. Empty means the current one.
	Dir   string
	diags diagnostic.Diagnostics
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Diagnostics returns the findings collected while loading.
func (a *Analyzer) Diagnostics() *diagnostic.Diagnostics {
	return &a.diags
}

// LoadPackages loads the packages matched by patterns (e.g. "./store",
// "rowmapper/store") and extracts their structs.
func (a *Analyzer) LoadPackages(patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode:       LoadMode,
		Dir:        a.Dir,
		BuildFlags: []string{"-tags=" + BuildTag},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		p, err := a.processPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		out = append(out, p)
	}

	return out, nil
}

// processPackage extracts the structs of a loaded package and marks the selected ones.
func (a *Analyzer) processPackage(pkg *packages.Package) (*Package, error) {
	p := &Package{
		Path:    pkg.PkgPath,
		Name:    pkg.Name,
		Structs: make(map[string]*StructInfo),
		Types:   pkg.Types,
	}

	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	order := 0

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				if _, isStruct := ts.Type.(*ast.StructType); !isStruct || ts.Assign.IsValid() {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				info, err := a.analyzeStruct(pkg, ts)
				if err != nil {
					return nil, err
				}

				if info == nil {
					continue
				}

				info.Generate = hasDirective(doc, DirectiveGenerate)
				info.Suppress = hasDirective(doc, DirectiveSuppress)
				info.Order = order
				order++

				p.Structs[info.ID.Name] = info
			}
		}
	}

	a.selectStructs(p)

	return p, nil
}

// analyzeStruct extracts the fields of a struct type declaration.
// Generic structs are skipped.
func (a *Analyzer) analyzeStruct(pkg *packages.Package, ts *ast.TypeSpec) (*StructInfo, error) {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("no type information for %s", ts.Name.Name)
	}

	id := TypeID{PkgPath: pkg.PkgPath, Name: obj.Name()}

	if ts.TypeParams != nil && ts.TypeParams.NumFields() > 0 {
		a.diags.AddInfo("generic_type", "generic struct types are not supported", id.Name, "")

		return nil, nil
	}

	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("%s is not a struct", id)
	}

	info := &StructInfo{ID: id}

	for i := range st.NumFields() {
		field := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		fi := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     field.Type(),
			Tag:      tag,
			Embedded: field.Embedded(),
			Index:    i,
		}

		if value, ok := tag.Lookup(TagKey); ok {
			meta, rest := ParseTag(value)
			fi.Meta = meta

			for _, opt := range rest {
				a.diags.AddWarning("unknown_tag_option",
					fmt.Sprintf("unknown rowmap tag option %q", opt), id.Name, fi.Name)
			}
		}

		if fi.Embedded {
			if named := embeddedStruct(field.Type()); named != nil {
				if named.Obj().Pkg() != nil && named.Obj().Pkg().Path() == pkg.PkgPath {
					fi.Parent = &TypeID{PkgPath: pkg.PkgPath, Name: named.Obj().Name()}
				} else {
					fi.Foreign = true
				}
			}
		}

		info.Fields = append(info.Fields, fi)
	}

	return info, nil
}

// selectStructs marks structs with directives or rowmap tags, then every
// same-package struct they embed.
func (a *Analyzer) selectStructs(p *Package) {
	for _, s := range p.Structs {
		s.Selected = s.Generate || s.Suppress

		for i := range s.Fields {
			if s.Fields[i].HasTag() {
				s.Selected = true
			}
		}
	}

	Close(p)

	for _, s := range p.Selected() {
		for _, f := range s.Fields {
			if f.Foreign && !f.Meta.Ignore {
				a.diags.AddWarning("foreign_embed",
					fmt.Sprintf("embedded %s belongs to another package and is not mapped",
						types.TypeString(f.Type, types.RelativeTo(p.Types))),
					s.ID.Name, f.Name)
			}
		}
	}
}

// Close marks every same-package struct embedded by a selected struct as
// selected, transitively.
func Close(p *Package) {
	for changed := true; changed; {
		changed = false

		for _, s := range p.Structs {
			if !s.Selected {
				continue
			}

			for _, f := range s.Fields {
				if f.Parent == nil || f.Meta.Ignore {
					continue
				}

				if parent := p.Structs[f.Parent.Name]; parent != nil && !parent.Selected {
					parent.Selected = true
					changed = true
				}
			}
		}
	}
}

// embeddedStruct returns the named struct behind an embedded field type, or nil.
func embeddedStruct(t types.Type) *types.Named {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil
	}

	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil
	}

	return named
}

func hasDirective(doc *ast.CommentGroup, directive string) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == directive {
			return true
		}
	}

	return false
}
