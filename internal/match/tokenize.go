package match

import (
	"strings"
	"unicode"
)

// TokenizeIdent splits an identifier into lowercase words. Separators
// ('_', '-', ' ') are dropped and acronyms stay in one word:
//
//	"firstName"  -> first, name
//	"UserID"     -> user, id
//	"XMLParser"  -> xml, parser
//	"birth_date" -> birth, date
func TokenizeIdent(s string) []string {
	var words []string

	runes := []rune(s)
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, strings.ToLower(string(runes[start:end])))
		}

		start = -1
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)

			continue
		}

		if start >= 0 && wordStartsAt(runes, i) {
			flush(i)
		}

		if start < 0 {
			start = i
		}
	}

	flush(len(runes))

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// wordStartsAt reports whether runes[i] opens a new word: an upper-case
// letter after a lower-case one or a digit ("orderId"), or the last capital
// of an acronym followed by a lower-case letter ("XMLParser").
func wordStartsAt(runes []rune, i int) bool {
	if i == 0 || !unicode.IsUpper(runes[i]) {
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
