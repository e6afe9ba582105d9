// Package diagnostic provides structured errors, warnings and infos for
// rowmap-gen.
//
// Key capabilities:
//   - Stable codes such as "unknown_field" or "column_collision"
//   - "did you mean" suggestions for misspelled names
//   - Joining error diagnostics into a single error
package diagnostic
