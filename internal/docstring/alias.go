package docstring

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// NormalizeAlias removes every whitespace character from s and case-folds
// the rest, so that "  My Alias  " and "myalias" compare equal.
func NormalizeAlias(s string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return cases.Fold().String(stripped)
}
