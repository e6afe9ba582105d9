package mapping

import (
	"rowmapper/internal/analyze"
)

// Apply merges the overrides into the analyzed packages and selects every
// listed type. Entries that do not resolve are skipped; Validate reports them.
func Apply(f *File, pkgs []*analyze.Package) {
	if f == nil {
		return
	}

	touched := map[*analyze.Package]struct{}{}

	for i := range f.Types {
		to := &f.Types[i]

		p, s, _ := ResolveType(to.Type, pkgs)
		if s == nil {
			continue
		}

		s.Selected = true
		if to.Suppress != nil {
			s.Suppress = *to.Suppress
		}

		for j := range to.Fields {
			applyField(s.Field(to.Fields[j].Field), &to.Fields[j])
		}

		touched[p] = struct{}{}
	}

	for p := range touched {
		analyze.Close(p)
	}
}

func applyField(fi *analyze.FieldInfo, fo *FieldOverride) {
	if fi == nil {
		return
	}

	if fo.Column != "" {
		fi.Meta.Column = fo.Column
	}

	if fo.Ignore != nil {
		fi.Meta.Ignore = *fo.Ignore
	}

	if fo.Convert != "" {
		fi.Meta.Convert = fo.Convert
	}

	if fo.Suppress != nil {
		fi.Meta.Suppress = *fo.Suppress
	}
}
