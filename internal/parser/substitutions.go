package parser

import (
	"regexp"
	"strings"
)

const maxSubstitutions = 5

var substitutionSplitRe = regexp.MustCompile(`\n|,|-|\*|•`)

// ParseSubstitutions extracts a short list of ingredient substitutes from a
// completion. Label lines and sentences mentioning "substitute" are skipped.
func ParseSubstitutions(text string) []string {
	out := make([]string, 0, maxSubstitutions)
	for _, item := range substitutionSplitRe.Split(normalize(text), -1) {
		item = strings.TrimSpace(item)
		if item == "" || strings.Contains(item, ":") || strings.Contains(strings.ToLower(item), "substitute") {
			continue
		}
		out = append(out, item)
		if len(out) == maxSubstitutions {
			break
		}
	}
	return out
}
