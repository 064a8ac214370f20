// internal/nlu/fuzzy/matcher.go

// Package fuzzy resolves free-form phrases to canonical catalog entries.
package fuzzy

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/nlu/textnorm"
)

// Matcher scores candidates against catalog entries using a
// Ratcliff/Obershelp similarity ratio with two substring floors.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	threshold      float64
	containedFloor float64
	containsFloor  float64
}

func New(settings menu.MatchSettings) *Matcher {
	return &Matcher{
		threshold:      settings.Threshold,
		containedFloor: settings.ContainedFloor,
		containsFloor:  settings.ContainsFloor,
	}
}

// Ratio returns the similarity of a and b in [0,1], computed over runes.
// Two empty strings are identical.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// Score returns the effective score of candidate against entry after
// folding both and applying the substring floors.
func (m *Matcher) Score(candidate, entry string) float64 {
	c := textnorm.Fold(candidate)
	e := textnorm.Fold(entry)

	score := Ratio(c, e)
	if c != "" && strings.Contains(e, c) && score < m.containedFloor {
		score = m.containedFloor
	}
	if e != "" && strings.Contains(c, e) && score < m.containsFloor {
		score = m.containsFloor
	}
	return score
}

// Match returns the catalog entry with the highest score at or above the
// threshold. Ties keep the entry seen first.
func (m *Matcher) Match(candidate string, catalog []string) (string, bool) {
	if strings.TrimSpace(textnorm.Fold(candidate)) == "" {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, entry := range catalog {
		score := m.Score(candidate, entry)
		if score > bestScore && score >= m.threshold {
			best = entry
			bestScore = score
		}
	}
	return best, best != ""
}

func (m *Matcher) Threshold() float64 {
	return m.threshold
}

func splitRunes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}
