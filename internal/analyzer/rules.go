package analyzer

import "regexp"

// The parser trades schema validation for ordered heuristic extraction with
// safe defaults: model output is natural language, and rejecting atypical
// phrasing would break the feature. Each rule either captures or skips;
// first capture wins.

// scoreRule extracts a 0-10 score from one phrasing of the model.
type scoreRule struct {
	name string
	re   *regexp.Regexp
}

// Ordered by specificity: the explicit "Overall Score" label beats a bare
// "Score", which beats positional "/10" forms.
var scoreRules = []scoreRule{
	{name: "overall-score", re: regexp.MustCompile(`(?i)Overall Score:?\s*(\d+(?:\.\d+)?)`)},
	{name: "score", re: regexp.MustCompile(`(?i)Score:?\s*(\d+(?:\.\d+)?)`)},
	{name: "slash-ten", re: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*/\s*10`)},
	{name: "out-of-ten", re: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*out of 10`)},
}

// sectionRule locates one list section between its header and the next
// expected header (or end of text for the last section).
type sectionRule struct {
	name   string
	header *regexp.Regexp
	next   *regexp.Regexp
}

var sectionRules = []sectionRule{
	{
		name:   "strengths",
		header: regexp.MustCompile(`(?i)Key Strengths:?`),
		next:   regexp.MustCompile(`(?i)Areas for Improvement`),
	},
	{
		name:   "improvements",
		header: regexp.MustCompile(`(?i)Areas for Improvement:?`),
		next:   regexp.MustCompile(`(?i)Specific Recommendations`),
	},
	{
		name:   "recommendations",
		header: regexp.MustCompile(`(?i)Specific Recommendations:?`),
		next:   nil,
	},
}

// extractScore runs the ordered score rules over the normalized text.
// Returns ScoreNotSpecified when nothing matches.
func extractScore(text string) string {
	for _, rule := range scoreRules {
		if m := rule.re.FindStringSubmatch(text); len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	return ScoreNotSpecified
}

// extractSection pulls the lines of one section. A missing header yields an
// empty list, not an error. Lines echoing the next section's header are a
// boundary artifact of the source model and are dropped.
func extractSection(text string, rule sectionRule) []string {
	loc := rule.header.FindStringIndex(text)
	if loc == nil {
		return []string{}
	}
	body := text[loc[1]:]
	if rule.next != nil {
		if nloc := rule.next.FindStringIndex(body); nloc != nil {
			body = body[:nloc[0]]
		}
	}

	lines := []string{}
	for _, line := range splitLines(body) {
		if line == "" {
			continue
		}
		if rule.next != nil && rule.next.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
