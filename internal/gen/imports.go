package gen

import (
	"go/types"
	"path"
	"sort"
	"strconv"
	"strings"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet assigns a unique local name to every imported package.
type importSet struct {
	self   string
	byPath map[string]importSpec
	names  map[string]string // local name -> path
}

func newImportSet(self string) *importSet {
	return &importSet{
		self:   self,
		byPath: make(map[string]importSpec),
		names:  make(map[string]string),
	}
}

// add imports pkgPath and returns its local name. name is the package
// name; it gets a numeric suffix when another path already uses it.
func (s *importSet) add(pkgPath, name string) string {
	if spec, ok := s.byPath[pkgPath]; ok {
		return localName(spec)
	}

	if name == "" {
		name = path.Base(pkgPath)
	}

	local := name
	for i := 2; ; i++ {
		if _, taken := s.names[local]; !taken {
			break
		}

		local = name + strconv.Itoa(i)
	}

	spec := importSpec{Path: pkgPath}
	if local != path.Base(pkgPath) {
		spec.Alias = local
	}

	s.byPath[pkgPath] = spec
	s.names[local] = pkgPath

	return local
}

// qualifier is a types.Qualifier that imports every foreign package it sees.
func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg == nil || pkg.Path() == s.self {
		return ""
	}

	return s.add(pkg.Path(), pkg.Name())
}

// groups returns the non-empty import groups: standard library, third-party
// and same-module, each sorted by path.
func (s *importSet) groups() [][]importSpec {
	var std, external, local []importSpec

	root, _, _ := strings.Cut(s.self, "/")
	schemaRoot, _, _ := strings.Cut(SchemaImportPath, "/")

	for _, spec := range s.byPath {
		first, _, _ := strings.Cut(spec.Path, "/")

		switch {
		case first == root:
			local = append(local, spec)
		case strings.Contains(first, "."), first == schemaRoot:
			external = append(external, spec)
		default:
			std = append(std, spec)
		}
	}

	var out [][]importSpec

	for _, group := range [][]importSpec{std, external, local} {
		if len(group) == 0 {
			continue
		}

		sort.Slice(group, func(i, j int) bool { return group[i].Path < group[j].Path })
		out = append(out, group)
	}

	return out
}

func localName(spec importSpec) string {
	if spec.Alias != "" {
		return spec.Alias
	}

	return path.Base(spec.Path)
}
