package mapping

import (
	"strings"

	"rowmapper/internal/analyze"
)

// ResolveType finds the struct named by ref in pkgs. ref is "pkg.Type"
// (package name), "import/path.Type" or a bare "Type". A bare name that
// exists in more than one package is ambiguous and resolves to nothing.
func ResolveType(ref string, pkgs []*analyze.Package) (*analyze.Package, *analyze.StructInfo, bool) {
	qual, name := "", ref
	if i := strings.LastIndex(ref, "."); i >= 0 {
		qual, name = ref[:i], ref[i+1:]
	}

	var (
		foundPkg *analyze.Package
		found    *analyze.StructInfo
		matches  int
	)

	for _, p := range pkgs {
		if qual != "" && qual != p.Name && qual != p.Path {
			continue
		}

		if s := p.Struct(name); s != nil {
			foundPkg, found = p, s
			matches++
		}
	}

	if matches != 1 {
		return nil, nil, matches > 1
	}

	return foundPkg, found, false
}

// typeRefs lists every struct as "pkg.Type".
func typeRefs(pkgs []*analyze.Package) []string {
	var out []string

	for _, p := range pkgs {
		for _, name := range p.StructNames() {
			out = append(out, p.Name+"."+name)
		}
	}

	return out
}
