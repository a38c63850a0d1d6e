package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	s := NewSuggester(DefaultRules)

	t.Run("exact keyword", func(t *testing.T) {
		got, ok := s.Suggest("CARREFOUR MUSCAT")
		assert.True(t, ok)
		assert.Equal(t, "Groceries", got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got, ok := s.Suggest("talabat delivery")
		assert.True(t, ok)
		assert.Equal(t, "Dining", got)
	})

	t.Run("earlier rule wins", func(t *testing.T) {
		got, ok := s.Suggest("LULU PHARMACY")
		assert.True(t, ok)
		assert.Equal(t, "Groceries", got)
	})

	t.Run("fuzzy fallback on typo", func(t *testing.T) {
		got, ok := s.Suggest("CARREFUR")
		assert.True(t, ok)
		assert.Equal(t, "Groceries", got)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		_, ok := s.Suggest("MYSTERY SHOP 42")
		assert.False(t, ok)
	})

	t.Run("empty vendor", func(t *testing.T) {
		_, ok := s.Suggest("   ")
		assert.False(t, ok)
	})

	t.Run("short tokens skip fuzzy", func(t *testing.T) {
		_, ok := s.Suggest("XY")
		assert.False(t, ok)
	})
}
