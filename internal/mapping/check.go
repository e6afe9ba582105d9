package mapping

import (
	"fmt"
	"sort"

	"rowmapper/convert"
	"rowmapper/convert/ext"
	"rowmapper/internal/analyze"
	"rowmapper/internal/diagnostic"
	"rowmapper/internal/match"
	"rowmapper/logging"
	"rowmapper/naming"
)

// KnownConverters lists the IDs of the built-in and extension converters.
func KnownConverters() []string {
	var ids []string

	for _, c := range convert.Builtins() {
		ids = append(ids, c.ID())
	}

	for _, c := range ext.All(logging.Nop()) {
		ids = append(ids, c.ID())
	}

	sort.Strings(ids)

	return ids
}

// Check reports column collisions of the selected structs under strategy,
// and converter IDs that are neither built in nor extensions. extra lists
// the IDs of application converters registered at runtime.
func Check(pkgs []*analyze.Package, strategy naming.Strategy, extra ...string) *diagnostic.Diagnostics {
	if strategy == nil {
		strategy = naming.Identity
	}

	known := map[string]struct{}{}
	for _, id := range append(KnownConverters(), extra...) {
		known[id] = struct{}{}
	}

	res := &diagnostic.Diagnostics{}

	for _, p := range pkgs {
		for _, s := range p.Selected() {
			checkConverters(res, s, known)
			checkColumns(res, p, s, strategy)
		}
	}

	return res
}

func checkConverters(res *diagnostic.Diagnostics, s *analyze.StructInfo, known map[string]struct{}) {
	for _, f := range s.Fields {
		if f.Meta.Convert == "" || f.Meta.Ignore {
			continue
		}

		if _, ok := known[f.Meta.Convert]; ok {
			continue
		}

		ids := make([]string, 0, len(known))
		for id := range known {
			ids = append(ids, id)
		}

		res.AddWarning("unknown_converter",
			fmt.Sprintf("converter %q is not built in; register it before mapping", f.Meta.Convert),
			s.ID.Name, f.Name, match.Suggest(f.Meta.Convert, ids, maxSuggestions)...)
	}
}

type column struct {
	name  string
	path  string
	depth int
}

// checkColumns flattens s like the runtime resolver does: own fields first,
// then embedded parents one level deeper. The shallowest field claims a
// column; ties go to the first declared.
func checkColumns(res *diagnostic.Diagnostics, p *analyze.Package, s *analyze.StructInfo, strategy naming.Strategy) {
	cols := flatten(p, s, strategy, 0, "", map[string]bool{})

	sort.SliceStable(cols, func(i, j int) bool { return cols[i].depth < cols[j].depth })

	owner := map[string]column{}

	for _, c := range cols {
		winner, taken := owner[c.name]
		if !taken {
			owner[c.name] = c

			continue
		}

		res.AddWarning("column_collision",
			fmt.Sprintf("column %q of %s is shadowed by %s", c.name, c.path, winner.path),
			s.ID.Name, c.path)
	}
}

func flatten(
	p *analyze.Package,
	s *analyze.StructInfo,
	strategy naming.Strategy,
	depth int,
	prefix string,
	visiting map[string]bool,
) []column {
	if visiting[s.ID.Name] {
		return nil
	}

	visiting[s.ID.Name] = true
	defer delete(visiting, s.ID.Name)

	var out, embeds []column

	for _, f := range s.Fields {
		if f.Meta.Ignore || f.Foreign || f.Name == "_" {
			continue
		}

		if f.Parent != nil {
			if parent := p.Struct(f.Parent.Name); parent != nil {
				embeds = append(embeds, flatten(p, parent, strategy, depth+1, prefix+parent.ID.Name+".", visiting)...)
			}

			continue
		}

		name := f.Meta.Column
		if name == "" {
			name = strategy.Transform(f.Name)
		}

		out = append(out, column{name: name, path: prefix + f.Name, depth: depth})
	}

	return append(out, embeds...)
}
