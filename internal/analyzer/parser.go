package analyzer

import (
	"regexp"
	"strings"
)

var (
	bulletPrefixRe = regexp.MustCompile(`(?m)^[ \t]*[-•][ \t]*`)
	blankRunRe     = regexp.MustCompile(`\n[ \t]*\n`)
)

// Parse turns one opaque model response into an Analysis. Pattern misses are
// never errors; they degrade to the sentinel score and empty lists.
func Parse(raw string) Analysis {
	text := normalize(raw)

	result := Analysis{
		Score:           extractScore(text),
		Strengths:       []string{},
		Improvements:    []string{},
		Recommendations: []string{},
	}

	for _, rule := range sectionRules {
		lines := extractSection(text, rule)
		switch rule.name {
		case "strengths":
			result.Strengths = lines
		case "improvements":
			result.Improvements = lines
		case "recommendations":
			result.Recommendations = lines
		}
	}

	return result
}

// normalize scrubs the formatting noise the prompt forbids but the model
// sometimes emits anyway: asterisks, leading list bullets, and stacked blank
// lines. Both strips run to a fixpoint so re-normalizing changes nothing,
// even for doubled bullets like "- - item".
func normalize(raw string) string {
	text := strings.ReplaceAll(raw, "*", "")
	for bulletPrefixRe.MatchString(text) {
		text = bulletPrefixRe.ReplaceAllString(text, "")
	}
	for blankRunRe.MatchString(text) {
		text = blankRunRe.ReplaceAllString(text, "\n")
	}
	return strings.TrimSpace(text)
}

func splitLines(body string) []string {
	parts := strings.Split(body, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
