// internal/nlu/extract/names.go
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/nlu/textnorm"
)

// NameExtractor finds a self-introduced customer name.
type NameExtractor struct {
	patterns  []*regexp.Regexp
	history   *regexp.Regexp
	stopwords map[string]struct{}
}

// NewNameExtractor compiles the configured patterns. Settings have already
// validated them, so compilation cannot fail here.
func NewNameExtractor(settings *menu.Settings) *NameExtractor {
	raw := settings.NamePatterns()
	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		patterns = append(patterns, regexp.MustCompile(p))
	}

	return &NameExtractor{
		patterns:  patterns,
		history:   regexp.MustCompile(settings.HistoryPattern()),
		stopwords: toSet(settings.NameStopwords()),
	}
}

// Extract tries each cue pattern in order and returns the first capture
// that is not a stopword. Without a cue it falls back to the first token
// that is not a stopword and is longer than one letter.
func (n *NameExtractor) Extract(utterance string) (string, bool) {
	for _, re := range n.patterns {
		for _, m := range re.FindAllStringSubmatch(utterance, -1) {
			if len(m) < 2 {
				continue
			}
			name := strings.TrimSpace(m[1])
			if name != "" && !n.isStopword(name) {
				return name, true
			}
		}
	}

	for _, token := range strings.Fields(utterance) {
		token = strings.TrimFunc(token, unicode.IsPunct)
		if utf8.RuneCountInString(token) > 1 && !n.isStopword(token) {
			return token, true
		}
	}
	return "", false
}

// FromHistory scans history newest first and returns the most recent
// "my name is" capture.
func (n *NameExtractor) FromHistory(history []string) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		m := n.history.FindStringSubmatch(history[i])
		if len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

func (n *NameExtractor) isStopword(word string) bool {
	_, ok := n.stopwords[textnorm.Fold(word)]
	return ok
}
