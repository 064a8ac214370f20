// internal/menu/loader.go
package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML menu file and overlays it on DefaultOptions. Keys
// missing from the file keep their built-in values; lists present in the
// file replace the defaults wholesale.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML menu settings on top of DefaultOptions.
func Parse(data []byte) (*Settings, error) {
	opts := DefaultOptions()

	var overlay Options
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("decode menu settings: %w", err)
	}
	merge(&opts, overlay)

	return New(opts)
}

func merge(dst *Options, src Options) {
	if len(src.Items) > 0 {
		dst.Items = src.Items
		// a new catalog brings its own price table
		dst.Prices = map[string]string{}
	}
	for k, v := range src.Prices {
		if dst.Prices == nil {
			dst.Prices = map[string]string{}
		}
		dst.Prices[k] = v
	}
	setString(&dst.DefaultPrice, src.DefaultPrice)
	setList(&dst.GreetingKeywords, src.GreetingKeywords)
	setList(&dst.MenuKeywords, src.MenuKeywords)
	setList(&dst.ItemStopwords, src.ItemStopwords)
	setList(&dst.NameStopwords, src.NameStopwords)
	setList(&dst.RequestVerbs, src.RequestVerbs)
	setString(&dst.SegmentDelimiters, src.SegmentDelimiters)
	setList(&dst.NamePatterns, src.NamePatterns)
	setString(&dst.HistoryPattern, src.HistoryPattern)
	setString(&dst.Numerals, src.Numerals)
	setString(&dst.ETA, src.ETA)
	setString(&dst.Contact.Phone, src.Contact.Phone)
	setString(&dst.Contact.Hours, src.Contact.Hours)
	setString(&dst.Contact.Address, src.Contact.Address)
	setString(&dst.Contact.ComplaintPhone, src.Contact.ComplaintPhone)
	if src.Matching.Threshold != 0 {
		dst.Matching.Threshold = src.Matching.Threshold
	}
	if src.Matching.ContainedFloor != 0 {
		dst.Matching.ContainedFloor = src.Matching.ContainedFloor
	}
	if src.Matching.ContainsFloor != 0 {
		dst.Matching.ContainsFloor = src.Matching.ContainsFloor
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setList(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = v
	}
}
