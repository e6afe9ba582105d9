// Package analyze loads Go packages and extracts the struct types that
// rowmap-gen emits schemas for.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. A struct is
// selected when its doc carries a //rowmap:generate or //rowmap:suppress
// directive, when any of its fields has a rowmap tag, or when it is embedded
// by another selected struct of the same package.
package analyze
