// internal/menu/catalog.go

// Package menu holds the restaurant catalog and the fixed resolver settings
// (keywords, stopwords, patterns, contact strings) shared by the extractors,
// the dialogue handlers and the order resolver.
package menu

import (
	"errors"
	"fmt"
	"strings"

	"voice-order-workers/internal/nlu/textnorm"
)

var (
	ErrEmptyCatalog   = errors.New("EMPTY_CATALOG")
	ErrEmptyItemName  = errors.New("EMPTY_ITEM_NAME")
	ErrDuplicateItem  = errors.New("DUPLICATE_ITEM")
	ErrInvalidSetting = errors.New("INVALID_SETTING")
)

// Catalog is an ordered set of canonical item names. The zero value is an
// empty catalog; use NewCatalog to build a populated one.
type Catalog struct {
	items []string
	index map[string]struct{}
}

// NewCatalog validates and copies items. Names are trimmed, must be
// non-empty, and must be unique after folding.
func NewCatalog(items []string) (Catalog, error) {
	if len(items) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	c := Catalog{
		items: make([]string, 0, len(items)),
		index: make(map[string]struct{}, len(items)),
	}
	folded := make(map[string]string, len(items))
	for i, raw := range items {
		name := strings.TrimSpace(raw)
		if name == "" {
			return Catalog{}, fmt.Errorf("%w: position %d", ErrEmptyItemName, i)
		}
		key := textnorm.Fold(name)
		if prev, ok := folded[key]; ok {
			return Catalog{}, fmt.Errorf("%w: %q collides with %q", ErrDuplicateItem, name, prev)
		}
		folded[key] = name
		c.items = append(c.items, name)
		c.index[name] = struct{}{}
	}
	return c, nil
}

// Items returns a copy of the catalog in order.
func (c Catalog) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

func (c Catalog) Len() int {
	return len(c.items)
}

// Contains reports exact membership of a canonical name.
func (c Catalog) Contains(item string) bool {
	_, ok := c.index[item]
	return ok
}
