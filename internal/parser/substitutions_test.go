package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSubstitutions(t *testing.T) {
	t.Run("should skip labels and cap at five", func(t *testing.T) {
		text := "Here are some substitutes for buttermilk:\n" +
			"- Greek yogurt\n" +
			"- Sour cream\n" +
			"* Milk with lemon juice, Kefir\n" +
			"• Silken tofu\n" +
			"- Coconut cream\n"

		got := ParseSubstitutions(text)

		assert.Equal(t, []string{"Greek yogurt", "Sour cream", "Milk with lemon juice", "Kefir", "Silken tofu"}, got)
	})

	t.Run("should drop lines mentioning substitutes", func(t *testing.T) {
		got := ParseSubstitutions("Good Substitute options\nApplesauce\nNote: use less sugar")

		assert.Equal(t, []string{"Applesauce"}, got)
	})

	t.Run("should return an empty list for empty text", func(t *testing.T) {
		got := ParseSubstitutions("")

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
