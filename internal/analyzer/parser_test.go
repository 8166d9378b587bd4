package analyzer

import (
	"reflect"
	"testing"
)

func TestParseFullResponse(t *testing.T) {
	raw := `Overall Score: 7

Key Strengths:
- Strong technical background
- Clear project descriptions
- Relevant certifications

Areas for Improvement:
- Quantify achievements
- Tighten the summary section

Specific Recommendations:
- Add metrics to each role
- Lead with impact statements
- Trim the resume to two pages`

	got := Parse(raw)

	if got.Score != "7" {
		t.Fatalf("score = %q, want %q", got.Score, "7")
	}
	wantStrengths := []string{
		"Strong technical background",
		"Clear project descriptions",
		"Relevant certifications",
	}
	if !reflect.DeepEqual(got.Strengths, wantStrengths) {
		t.Errorf("strengths = %v, want %v", got.Strengths, wantStrengths)
	}
	wantImprovements := []string{
		"Quantify achievements",
		"Tighten the summary section",
	}
	if !reflect.DeepEqual(got.Improvements, wantImprovements) {
		t.Errorf("improvements = %v, want %v", got.Improvements, wantImprovements)
	}
	wantRecs := []string{
		"Add metrics to each role",
		"Lead with impact statements",
		"Trim the resume to two pages",
	}
	if !reflect.DeepEqual(got.Recommendations, wantRecs) {
		t.Errorf("recommendations = %v, want %v", got.Recommendations, wantRecs)
	}
}

func TestParseScoreVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"overall-score label", "Overall Score: 7", "7"},
		{"overall-score no colon", "Overall Score 8.5", "8.5"},
		{"bare score label", "Score: 6", "6"},
		{"slash ten", "I'd rate this resume 7/10 overall.", "7"},
		{"slash ten spaced", "This resume is 8 / 10.", "8"},
		{"out of ten", "The resume scores 6.5 out of 10.", "6.5"},
		{"decimal", "Overall Score: 7.5", "7.5"},
		{"no pattern", "A solid resume with room to grow.", ScoreNotSpecified},
		{"empty", "", ScoreNotSpecified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.raw).Score; got != tc.want {
				t.Errorf("Parse(%q).Score = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseScorePrecedence(t *testing.T) {
	raw := "Overall Score: 7\nAlso worth noting this reads like a 9/10 effort."
	if got := Parse(raw).Score; got != "7" {
		t.Fatalf("score = %q, want explicit label to win over 9/10", got)
	}
}

func TestParseMissingSections(t *testing.T) {
	got := Parse("Overall Score: 5\nNo structured feedback here.")
	if len(got.Strengths) != 0 || len(got.Improvements) != 0 || len(got.Recommendations) != 0 {
		t.Fatalf("expected empty sections, got %+v", got)
	}
	if got.Strengths == nil || got.Improvements == nil || got.Recommendations == nil {
		t.Fatal("sections must be empty slices, not nil")
	}
}

func TestParseStripsMarkdownNoise(t *testing.T) {
	raw := `**Overall Score:** 8

**Key Strengths:**
- * Strong fundamentals *
•  Good formatting


Areas for Improvement:
- More detail needed`

	got := Parse(raw)
	if got.Score != "8" {
		t.Fatalf("score = %q, want %q", got.Score, "8")
	}
	wantStrengths := []string{"Strong fundamentals", "Good formatting"}
	if !reflect.DeepEqual(got.Strengths, wantStrengths) {
		t.Errorf("strengths = %v, want %v", got.Strengths, wantStrengths)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"mixed noise", "**Header**\n\n\n- item one\n\n•item two\n\n\n\nEnd"},
		{"doubled bullets", "Key Strengths:\n- - item one\n• - item two"},
		{"bullet only lines", "- -\n- item"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			once := normalize(tc.raw)
			twice := normalize(once)
			if once != twice {
				t.Fatalf("normalize not stable:\nonce:  %q\ntwice: %q", once, twice)
			}
		})
	}
}

func TestParseStableOverNormalizedInput(t *testing.T) {
	raw := "Overall Score: 7\n\nKey Strengths:\n- - Clear writing\n•  Good layout"
	first := Parse(raw)
	second := Parse(normalize(raw))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse not stable over normalized input:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	wantStrengths := []string{"Clear writing", "Good layout"}
	if !reflect.DeepEqual(first.Strengths, wantStrengths) {
		t.Errorf("strengths = %v, want %v", first.Strengths, wantStrengths)
	}
}

func TestParseSectionBoundaries(t *testing.T) {
	raw := `Key Strengths:
- Solid experience
- Good writing
Areas for Improvement:
- Needs metrics
Specific Recommendations:
- Add numbers`

	got := Parse(raw)
	wantStrengths := []string{"Solid experience", "Good writing"}
	if !reflect.DeepEqual(got.Strengths, wantStrengths) {
		t.Errorf("strengths = %v, want %v", got.Strengths, wantStrengths)
	}
	wantImprovements := []string{"Needs metrics"}
	if !reflect.DeepEqual(got.Improvements, wantImprovements) {
		t.Errorf("improvements = %v, want %v", got.Improvements, wantImprovements)
	}
	wantRecs := []string{"Add numbers"}
	if !reflect.DeepEqual(got.Recommendations, wantRecs) {
		t.Errorf("recommendations = %v, want %v", got.Recommendations, wantRecs)
	}
}
