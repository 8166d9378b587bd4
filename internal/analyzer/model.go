package analyzer

// ScoreNotSpecified is the sentinel score when no pattern matches. It is a
// defined fallback the caller must handle, not an error.
const ScoreNotSpecified = "Not specified"

// Analysis is the structured result parsed from the model's free text.
// No field is ever absent: lists default to empty slices and the score
// defaults to ScoreNotSpecified.
type Analysis struct {
	Score           string   `json:"score"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations []string `json:"recommendations"`
}
