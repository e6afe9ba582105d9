package match

import "strings"

// NormalizeIdent folds an identifier to a separator-free lower-case form,
// so "UserID", "user_id" and "user-id" all become "userid".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}
