package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// Strategy transforms a declared field name into the expected column name.
type Strategy interface {
	// Transform returns the column name for fieldName. It must be deterministic.
	Transform(fieldName string) string
	// String returns a human-readable strategy name used in logs.
	String() string
}

// Strategy names accepted by Parse.
const (
	IdentityName        = "identity"
	LowerUnderscoreName = "lower_underscore"
	LowerDashesName     = "lower_dashes"
)

type identity struct{}

func (identity) Transform(fieldName string) string { return fieldName }
func (identity) String() string                    { return IdentityName }

type joined struct {
	name string
	sep  string
}

// Transform starts a new segment before every upper-case letter except the
// first rune and lowercases the result. Every other rune is kept, so
// "userID" becomes "user_i_d" and "first-name" stays "first-name".
func (j joined) Transform(fieldName string) string {
	var sb strings.Builder

	sb.Grow(len(fieldName) + 4)

	for i, r := range fieldName {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteString(j.sep)
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

func (j joined) String() string { return j.name }

var (
	// Identity leaves field names untouched.
	Identity Strategy = identity{}
	// LowerUnderscore splits before each capital, lowercases and joins with "_".
	LowerUnderscore Strategy = joined{name: LowerUnderscoreName, sep: "_"}
	// LowerDashes splits before each capital, lowercases and joins with "-".
	LowerDashes Strategy = joined{name: LowerDashesName, sep: "-"}
)

// Parse returns the strategy registered under name. An empty name selects Identity.
func Parse(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", IdentityName:
		return Identity, nil
	case LowerUnderscoreName, "snake", "snake_case":
		return LowerUnderscore, nil
	case LowerDashesName, "kebab", "kebab-case":
		return LowerDashes, nil
	default:
		return nil, fmt.Errorf("unknown naming strategy %q", name)
	}
}

// Func adapts a plain function to a Strategy.
type Func struct {
	Name string
	Fn   func(string) string
}

// Transform calls f.Fn.
func (f Func) Transform(fieldName string) string { return f.Fn(fieldName) }

func (f Func) String() string { return f.Name }
