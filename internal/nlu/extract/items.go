// internal/nlu/extract/items.go

// Package extract pulls menu items and customer names out of free-form
// utterances.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"voice-order-workers/internal/menu"
	"voice-order-workers/internal/nlu/fuzzy"
	"voice-order-workers/internal/nlu/textnorm"
)

const maxWindow = 3

// ItemExtractor resolves catalog items mentioned in an utterance. Matching
// runs on folded text and results are always canonical catalog names.
type ItemExtractor struct {
	catalog    []string
	folded     []string
	matcher    *fuzzy.Matcher
	verbCue    *regexp.Regexp
	delimiters *regexp.Regexp
	stopwords  map[string]struct{}
}

func NewItemExtractor(settings *menu.Settings, matcher *fuzzy.Matcher) *ItemExtractor {
	catalog := settings.Catalog().Items()

	verbs := make([]string, 0, len(settings.RequestVerbs()))
	seen := make(map[string]struct{})
	for _, v := range textnorm.FoldAll(settings.RequestVerbs()) {
		if _, dup := seen[v]; dup || v == "" {
			continue
		}
		seen[v] = struct{}{}
		verbs = append(verbs, regexp.QuoteMeta(v))
	}

	return &ItemExtractor{
		catalog:    catalog,
		folded:     textnorm.FoldAll(catalog),
		matcher:    matcher,
		verbCue:    regexp.MustCompile(`(?:` + strings.Join(verbs, "|") + `)\s+(.+)`),
		delimiters: regexp.MustCompile(settings.SegmentDelimiters()),
		stopwords:  toSet(settings.ItemStopwords()),
	}
}

// Extract returns the items found in utterance, never nil. The first of
// three passes that yields anything wins: exact mentions in catalog order,
// then phrases following a request verb, then a 1-3 word sliding window.
func (e *ItemExtractor) Extract(utterance string) []string {
	text := textnorm.Fold(utterance)

	if items := e.exact(text); len(items) > 0 {
		return items
	}
	if items := e.verbCued(text); len(items) > 0 {
		return items
	}
	return e.window(text)
}

func (e *ItemExtractor) exact(text string) []string {
	var items []string
	for i, f := range e.folded {
		if strings.Contains(text, f) {
			items = append(items, e.catalog[i])
		}
	}
	return items
}

func (e *ItemExtractor) verbCued(text string) []string {
	m := e.verbCue.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	var items []string
	for _, segment := range e.delimiters.Split(m[1], -1) {
		segment = strings.TrimSpace(segment)
		if utf8.RuneCountInString(segment) <= 2 || e.isStopword(segment) {
			continue
		}

		words := strings.Fields(segment)
		kept := words[:0]
		for _, w := range words {
			if !e.isStopword(w) {
				kept = append(kept, w)
			}
		}
		cleaned := strings.Join(kept, " ")
		if cleaned == "" || e.isStopword(cleaned) {
			continue
		}

		if item, ok := e.matcher.Match(cleaned, e.catalog); ok {
			items = append(items, item)
		}
	}
	return items
}

func (e *ItemExtractor) window(text string) []string {
	items := []string{}
	seen := make(map[string]struct{})

	words := strings.Fields(text)
	for i := range words {
		for j := i + 1; j <= len(words) && j <= i+maxWindow; j++ {
			candidate := strings.Join(words[i:j], " ")
			if utf8.RuneCountInString(candidate) <= 2 {
				continue
			}
			item, ok := e.matcher.Match(candidate, e.catalog)
			if !ok {
				continue
			}
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			items = append(items, item)
		}
	}
	return items
}

func (e *ItemExtractor) isStopword(s string) bool {
	_, ok := e.stopwords[s]
	return ok
}

// toSet folds words into a lookup set.
func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range textnorm.FoldAll(words) {
		set[w] = struct{}{}
	}
	return set
}
