package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeftoverPrompt(t *testing.T) {
	t.Run("should quote the description verbatim", func(t *testing.T) {
		prompt := LeftoverPrompt(nil, "my mom's \"famous\" stew\nand rice")

		assert.Contains(t, prompt, `leftover ingredients: "my mom's "famous" stew`+"\n"+`and rice", suggest`)
		assert.NotContains(t, prompt, `\"`)
		assert.NotContains(t, prompt, `\n`)
	})

	t.Run("should list leftovers when no description is given", func(t *testing.T) {
		prompt := LeftoverPrompt([]string{"rice", "peas"}, "  ")

		assert.Contains(t, prompt, "using these leftover ingredients: rice, peas.")
		assert.Contains(t, prompt, "- rice (leftover)\n- peas (leftover)")
	})
}

func TestSuggestionPrompt(t *testing.T) {
	prompt := SuggestionPrompt([]string{"tofu", "spinach"})

	assert.Contains(t, prompt, "tofu, spinach")
	assert.Contains(t, prompt, "2-3 sentences")
}
