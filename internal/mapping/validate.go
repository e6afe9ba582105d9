package mapping

import (
	"fmt"

	"rowmapper/internal/analyze"
	"rowmapper/internal/diagnostic"
	"rowmapper/internal/match"
)

// maxSuggestions caps the "did you mean" list of a diagnostic.
const maxSuggestions = 3

// Validate checks an overrides file against the analyzed packages.
func Validate(f *File, pkgs []*analyze.Package) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("overrides_is_nil", "overrides file is nil", "", "")

		return res
	}

	if f.Version != Version {
		res.AddError("unsupported_version",
			fmt.Sprintf("unsupported overrides version %q, want %q", f.Version, Version), "", "")

		return res
	}

	seenTypes := map[string]struct{}{}

	for i := range f.Types {
		to := &f.Types[i]

		if to.Type == "" {
			res.AddError("missing_type", fmt.Sprintf("types[%d] has no type", i), "", "")

			continue
		}

		if _, dup := seenTypes[to.Type]; dup {
			res.AddError("duplicate_type", fmt.Sprintf("type %q listed twice", to.Type), to.Type, "")

			continue
		}

		seenTypes[to.Type] = struct{}{}

		_, s, ambiguous := ResolveType(to.Type, pkgs)
		if ambiguous {
			res.AddError("ambiguous_type",
				fmt.Sprintf("type %q exists in several packages, qualify it", to.Type), to.Type, "")

			continue
		}

		if s == nil {
			res.AddError("unknown_type", fmt.Sprintf("type %q not found", to.Type), to.Type, "",
				match.Suggest(to.Type, typeRefs(pkgs), maxSuggestions)...)

			continue
		}

		validateFields(res, to, s)
	}

	return res
}

func validateFields(res *diagnostic.Diagnostics, to *TypeOverride, s *analyze.StructInfo) {
	seen := map[string]struct{}{}

	for j := range to.Fields {
		fo := &to.Fields[j]

		if fo.Field == "" {
			res.AddError("missing_field", fmt.Sprintf("fields[%d] has no field", j), to.Type, "")

			continue
		}

		if _, dup := seen[fo.Field]; dup {
			res.AddError("duplicate_field", fmt.Sprintf("field %q listed twice", fo.Field), to.Type, fo.Field)

			continue
		}

		seen[fo.Field] = struct{}{}

		fi := s.Field(fo.Field)
		if fi == nil {
			res.AddError("unknown_field", fmt.Sprintf("field %q not found", fo.Field), to.Type, fo.Field,
				match.Suggest(fo.Field, s.FieldNames(), maxSuggestions)...)

			continue
		}

		if (fi.Parent != nil || fi.Foreign) && (fo.Column != "" || fo.Convert != "" || fo.Suppress != nil) {
			res.AddError("embed_override", "only ignore applies to an embedded struct", to.Type, fo.Field)

			continue
		}

		if fo.Ignore != nil && *fo.Ignore && (fo.Column != "" || fo.Convert != "") {
			res.AddWarning("ignored_with_metadata", "field is ignored, column and convert have no effect",
				to.Type, fo.Field)
		}
	}
}
