// Package location turns free-text region names into the site's area codes.
package location

import (
	"strings"

	"job104-crawler/internal/config"
	"job104-crawler/internal/normalize"
)

// MinSharedChars is how many distinct characters an input must share with a
// canonical name to count as a match.
const MinSharedChars = 3

type Resolver struct {
	table []config.Location
	sep   string
}

// NewResolver keeps table order; matches are reported in that order.
func NewResolver(table []config.Location, sep string) *Resolver {
	return &Resolver{table: table, sep: sep}
}

// Codes returns the codes of every canonical name sharing at least
// MinSharedChars distinct characters with each input, in (input, table) order.
// The comparison is on character sets, so one input can match several regions
// (竹嘉縣市 matches both 新竹縣市 and 嘉義縣市) and repeated inputs repeat codes.
func (r *Resolver) Codes(names []string) []string {
	var codes []string
	for _, name := range names {
		in := charSet(normalize.Fold(name))
		for _, loc := range r.table {
			if sharedChars(in, charSet(loc.Name)) >= MinSharedChars {
				codes = append(codes, loc.Code)
			}
		}
	}
	return codes
}

// Resolve joins the matched codes into the area query value.
func (r *Resolver) Resolve(names []string) string {
	return strings.Join(r.Codes(names), r.sep)
}

func charSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, c := range s {
		set[c] = struct{}{}
	}
	return set
}

func sharedChars(a, b map[rune]struct{}) int {
	n := 0
	for c := range a {
		if _, ok := b[c]; ok {
			n++
		}
	}
	return n
}
