// internal/nlu/textnorm/fold.go

// Package textnorm folds utterances and catalog names into a comparable form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const tatweel = 'ـ'

// Fold lowercases s and strips combining marks (harakat, hamza carriers,
// Latin accents) and tatweel. Hamza-carrying alefs fold to a bare alef.
func Fold(s string) string {
	// transform chains keep internal state, so one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.Map(func(r rune) rune {
		if r == tatweel {
			return -1
		}
		return r
	}, out)
	return strings.ToLower(out)
}

// FoldAll folds every element of in.
func FoldAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Fold(s)
	}
	return out
}

// ContainsAny reports whether folded text contains any of the keywords
// after folding them.
func ContainsAny(folded string, keywords []string) bool {
	for _, k := range keywords {
		if fk := Fold(k); fk != "" && strings.Contains(folded, fk) {
			return true
		}
	}
	return false
}
