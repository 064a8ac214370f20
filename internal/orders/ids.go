package orders

import (
	"math/rand"
	"strings"
	"unicode/utf8"
)

// IDLength is the number of symbols in an order id.
const IDLength = 5

// IDGenerator draws order ids from a fixed numeral alphabet. Draws are
// independent; collisions are not checked.
type IDGenerator struct {
	alphabet []rune
	intn     func(n int) int
}

func NewIDGenerator(alphabet []rune) *IDGenerator {
	return &IDGenerator{
		alphabet: append([]rune(nil), alphabet...),
		intn:     rand.Intn,
	}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() string {
	var b strings.Builder
	for i := 0; i < IDLength; i++ {
		b.WriteRune(g.alphabet[g.intn(len(g.alphabet))])
	}
	return b.String()
}

// Valid reports whether id has the right length and only uses the alphabet.
func (g *IDGenerator) Valid(id string) bool {
	if utf8.RuneCountInString(id) != IDLength {
		return false
	}
	for _, r := range id {
		if !g.contains(r) {
			return false
		}
	}
	return true
}

func (g *IDGenerator) contains(r rune) bool {
	for _, a := range g.alphabet {
		if a == r {
			return true
		}
	}
	return false
}
