package enricher

import (
	"regexp"
	"strings"
	"unicode"
)

const ellipsis = "..."

// claudeSkill matches "claude skill" and "claude 技能" in any casing or spacing.
var claudeSkill = regexp.MustCompile(`(?i)claude\s*(?:skill|技能)`)

func normalizeTerms(s string) string {
	return strings.TrimSpace(claudeSkill.ReplaceAllString(s, "Claude Skill"))
}

// truncate limits s to maxLen runes. Overflowing text keeps its first
// maxLen-3 runes, loses trailing whitespace and gets an ellipsis.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	keep := max(0, maxLen-len(ellipsis))
	return strings.TrimRightFunc(string(r[:keep]), unicode.IsSpace) + ellipsis
}
