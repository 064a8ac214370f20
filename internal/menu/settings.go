// internal/menu/settings.go
package menu

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// MatchSettings tunes the fuzzy matcher.
type MatchSettings struct {
	Threshold      float64 `yaml:"threshold"`
	ContainedFloor float64 `yaml:"contained_floor"` // candidate inside entry
	ContainsFloor  float64 `yaml:"contains_floor"`  // entry inside candidate
}

// Contact holds the customer-service strings quoted in replies.
type Contact struct {
	Phone          string `yaml:"phone"`
	Hours          string `yaml:"hours"`
	Address        string `yaml:"address"`
	ComplaintPhone string `yaml:"complaint_phone"`
}

// Options is the plain, file-loadable form of Settings.
type Options struct {
	Items             []string          `yaml:"items"`
	Prices            map[string]string `yaml:"prices"`
	DefaultPrice      string            `yaml:"default_price"`
	GreetingKeywords  []string          `yaml:"greeting_keywords"`
	MenuKeywords      []string          `yaml:"menu_keywords"`
	ItemStopwords     []string          `yaml:"item_stopwords"`
	NameStopwords     []string          `yaml:"name_stopwords"`
	RequestVerbs      []string          `yaml:"request_verbs"`
	SegmentDelimiters string            `yaml:"segment_delimiters"`
	NamePatterns      []string          `yaml:"name_patterns"`
	HistoryPattern    string            `yaml:"history_pattern"`
	Numerals          string            `yaml:"numerals"`
	ETA               string            `yaml:"eta"`
	Contact           Contact           `yaml:"contact"`
	Matching          MatchSettings     `yaml:"matching"`
}

// Settings is the validated, read-only configuration threaded into every
// resolver component at construction time. Accessors hand out copies.
type Settings struct {
	catalog           Catalog
	prices            map[string]string
	defaultPrice      string
	greetingKeywords  []string
	menuKeywords      []string
	itemStopwords     []string
	nameStopwords     []string
	requestVerbs      []string
	segmentDelimiters string
	namePatterns      []string
	historyPattern    string
	numerals          []rune
	eta               string
	contact           Contact
	matching          MatchSettings
}

// New validates opts and freezes them into Settings.
func New(opts Options) (*Settings, error) {
	catalog, err := NewCatalog(opts.Items)
	if err != nil {
		return nil, err
	}

	numerals := []rune(opts.Numerals)
	if len(numerals) != 10 {
		return nil, fmt.Errorf("%w: numerals must hold 10 symbols, got %d", ErrInvalidSetting, len(numerals))
	}
	seen := make(map[rune]struct{}, len(numerals))
	for _, r := range numerals {
		if _, dup := seen[r]; dup {
			return nil, fmt.Errorf("%w: numeral %q repeated", ErrInvalidSetting, r)
		}
		seen[r] = struct{}{}
	}

	m := opts.Matching
	for name, v := range map[string]float64{
		"threshold":       m.Threshold,
		"contained_floor": m.ContainedFloor,
		"contains_floor":  m.ContainsFloor,
	} {
		if v <= 0 || v > 1 {
			return nil, fmt.Errorf("%w: matching.%s must be in (0,1], got %v", ErrInvalidSetting, name, v)
		}
	}

	if opts.ETA == "" {
		return nil, fmt.Errorf("%w: eta is required", ErrInvalidSetting)
	}
	if len(opts.RequestVerbs) == 0 {
		return nil, fmt.Errorf("%w: at least one request verb is required", ErrInvalidSetting)
	}
	if utf8.RuneCountInString(opts.DefaultPrice) == 0 {
		return nil, fmt.Errorf("%w: default_price is required", ErrInvalidSetting)
	}

	for _, p := range append(append([]string{}, opts.NamePatterns...), opts.HistoryPattern, opts.SegmentDelimiters) {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidSetting, p, err)
		}
	}
	if opts.HistoryPattern == "" || opts.SegmentDelimiters == "" {
		return nil, fmt.Errorf("%w: history_pattern and segment_delimiters are required", ErrInvalidSetting)
	}

	prices := make(map[string]string, len(opts.Prices))
	for k, v := range opts.Prices {
		prices[k] = v
	}

	return &Settings{
		catalog:           catalog,
		prices:            prices,
		defaultPrice:      opts.DefaultPrice,
		greetingKeywords:  clone(opts.GreetingKeywords),
		menuKeywords:      clone(opts.MenuKeywords),
		itemStopwords:     clone(opts.ItemStopwords),
		nameStopwords:     clone(opts.NameStopwords),
		requestVerbs:      clone(opts.RequestVerbs),
		segmentDelimiters: opts.SegmentDelimiters,
		namePatterns:      clone(opts.NamePatterns),
		historyPattern:    opts.HistoryPattern,
		numerals:          numerals,
		eta:               opts.ETA,
		contact:           opts.Contact,
		matching:          opts.Matching,
	}, nil
}

func (s *Settings) Catalog() Catalog { return s.catalog }

// Price returns the display price of item, or the default price when the
// item has no entry.
func (s *Settings) Price(item string) string {
	if p, ok := s.prices[item]; ok && p != "" {
		return p
	}
	return s.defaultPrice
}

func (s *Settings) GreetingKeywords() []string { return clone(s.greetingKeywords) }
func (s *Settings) MenuKeywords() []string     { return clone(s.menuKeywords) }
func (s *Settings) ItemStopwords() []string    { return clone(s.itemStopwords) }
func (s *Settings) NameStopwords() []string    { return clone(s.nameStopwords) }
func (s *Settings) RequestVerbs() []string     { return clone(s.requestVerbs) }
func (s *Settings) SegmentDelimiters() string  { return s.segmentDelimiters }
func (s *Settings) NamePatterns() []string     { return clone(s.namePatterns) }
func (s *Settings) HistoryPattern() string     { return s.historyPattern }
func (s *Settings) ETA() string                { return s.eta }
func (s *Settings) Contact() Contact           { return s.contact }
func (s *Settings) Matching() MatchSettings    { return s.matching }

// Numerals returns the 10-symbol alphabet used for order identifiers.
func (s *Settings) Numerals() []rune {
	out := make([]rune, len(s.numerals))
	copy(out, s.numerals)
	return out
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
