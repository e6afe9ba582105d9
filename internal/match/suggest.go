package match

import (
	"sort"
)

// MinSuggestScore is the lowest Score a candidate needs to be suggested.
const MinSuggestScore = 0.5

// Suggest returns up to limit candidates most similar to name, best first.
// Candidates that compare equal after normalization come before all others.
// A limit of zero or less means no limit.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	norm := NormalizeIdent(name)

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		s := LevenshteinNormalized(norm, NormalizeIdent(c))
		if s < MinSuggestScore {
			continue
		}

		ranked = append(ranked, scored{name: c, score: s})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
