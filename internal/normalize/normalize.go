package normalize

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold applies NFKC compatibility folding and turns NBSP into a plain space.
// Full-width digits, letters and the full-width tilde come out as ASCII.
func Fold(s string) string {
	t := transform.Chain(norm.NFKC, runes.Map(func(r rune) rune {
		if r == '\u00a0' {
			return ' '
		}
		return r
	}))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Fields folds s and splits it on whitespace, including the ideographic space.
func Fields(s string) []string {
	return strings.Fields(Fold(s))
}
