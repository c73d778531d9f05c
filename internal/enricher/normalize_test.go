package enricher

import "testing"

func TestNormalizeTerms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"a claude skill", "a Claude Skill"},
		{"CLAUDE   SKILL tools", "Claude Skill tools"},
		{"一个claude技能", "一个Claude Skill"},
		{"  Claude 技能  ", "Claude Skill"},
		{"claude code", "claude code"},
	}
	for _, tt := range tests {
		if got := normalizeTerms(tt.in); got != tt.want {
			t.Errorf("normalizeTerms(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"overflow", "abcdef", 5, "ab..."},
		{"trailing space trimmed", "ab  cdefgh", 7, "ab..."},
		{"runes", "一二三四五六", 5, "一二..."},
		{"tiny limit", "abcdef", 2, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}
