package match

import "unicode/utf8"

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	// row[j] is the distance between the current prefix of ra and rb[:j].
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i, ca := range ra {
		diag := row[0]
		row[0] = i + 1

		for j, cb := range rb {
			sub := diag
			if ca != cb {
				sub++
			}

			diag = row[j+1]
			row[j+1] = min(row[j+1]+1, row[j]+1, sub)
		}
	}

	return row[len(rb)]
}

// LevenshteinNormalized maps the edit distance onto [0, 1], where 1 means equal.
func LevenshteinNormalized(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(longest)
}

// Score compares two identifiers after NormalizeIdent.
func Score(a, b string) float64 {
	return LevenshteinNormalized(NormalizeIdent(a), NormalizeIdent(b))
}
