package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("keeps order and trims", func(t *testing.T) {
		c, err := NewCatalog([]string{" بيتزا ", "برجر", "فلافل"})
		require.NoError(t, err)
		assert.Equal(t, []string{"بيتزا", "برجر", "فلافل"}, c.Items())
		assert.Equal(t, 3, c.Len())
		assert.True(t, c.Contains("برجر"))
		assert.False(t, c.Contains("بيتز"))
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		_, err := NewCatalog(nil)
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})

	t.Run("rejects blank names", func(t *testing.T) {
		_, err := NewCatalog([]string{"بيتزا", "  "})
		assert.ErrorIs(t, err, ErrEmptyItemName)
	})

	t.Run("rejects names equal after folding", func(t *testing.T) {
		_, err := NewCatalog([]string{"Pizza", "pizza"})
		assert.ErrorIs(t, err, ErrDuplicateItem)

		_, err = NewCatalog([]string{"أرز", "ارز"})
		assert.ErrorIs(t, err, ErrDuplicateItem)
	})

	t.Run("items copy does not leak", func(t *testing.T) {
		c, err := NewCatalog([]string{"بيتزا"})
		require.NoError(t, err)
		items := c.Items()
		items[0] = "changed"
		assert.Equal(t, []string{"بيتزا"}, c.Items())
	})
}

func TestDefault(t *testing.T) {
	s := Default()

	assert.True(t, s.Catalog().Contains("دجاج مشوي"))
	assert.Equal(t, "15 دقيقة", s.ETA())
	assert.Len(t, s.Numerals(), 10)
	assert.Len(t, s.ItemStopwords(), 15)
	assert.Len(t, s.NameStopwords(), 20)
	assert.Equal(t, 0.6, s.Matching().Threshold)
	assert.Equal(t, "011-123-4567", s.Contact().ComplaintPhone)
}

func TestSettings_Price(t *testing.T) {
	s := Default()

	assert.Equal(t, "45,000 ليرة", s.Price("دجاج مشوي"))
	assert.Equal(t, "10,000 ليرة", s.Price("كنافة"), "unlisted item falls back to default price")
}

func TestSettings_AccessorsReturnCopies(t *testing.T) {
	s := Default()

	kw := s.GreetingKeywords()
	kw[0] = "changed"
	assert.NotEqual(t, "changed", s.GreetingKeywords()[0])

	nums := s.Numerals()
	nums[0] = 'x'
	assert.Equal(t, '٠', s.Numerals()[0])
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
	}{
		{name: "short numeral alphabet", mutate: func(o *Options) { o.Numerals = "٠١٢" }},
		{name: "repeated numeral", mutate: func(o *Options) { o.Numerals = "٠٠٢٣٤٥٦٧٨٩" }},
		{name: "threshold above one", mutate: func(o *Options) { o.Matching.Threshold = 1.5 }},
		{name: "zero floor", mutate: func(o *Options) { o.Matching.ContainsFloor = 0 }},
		{name: "missing eta", mutate: func(o *Options) { o.ETA = "" }},
		{name: "no request verbs", mutate: func(o *Options) { o.RequestVerbs = nil }},
		{name: "bad name pattern", mutate: func(o *Options) { o.NamePatterns = []string{"اسمي\\s+("} }},
		{name: "missing history pattern", mutate: func(o *Options) { o.HistoryPattern = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := New(opts)
			assert.ErrorIs(t, err, ErrInvalidSetting)
		})
	}
}

func TestParse_OverlaysDefaults(t *testing.T) {
	data := []byte(`
items:
  - مناقيش
  - فطاير
prices:
  مناقيش: "5,000 ليرة"
eta: "20 دقيقة"
matching:
  threshold: 0.7
`)

	s, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"مناقيش", "فطاير"}, s.Catalog().Items())
	assert.Equal(t, "5,000 ليرة", s.Price("مناقيش"))
	assert.Equal(t, "10,000 ليرة", s.Price("فطاير"))
	assert.Equal(t, "20 دقيقة", s.ETA())
	assert.Equal(t, 0.7, s.Matching().Threshold)
	assert.Equal(t, 0.9, s.Matching().ContainsFloor)
	assert.Equal(t, "123456789", s.Contact().Phone)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: [بيتزا, برجر]\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"بيتزا", "برجر"}, s.Catalog().Items())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("items: [unterminated\n"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}
