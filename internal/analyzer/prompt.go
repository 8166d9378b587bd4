package analyzer

import "fmt"

// AnalysisPrompt builds the model prompt for a role-targeted resume review.
// The output-format instructions here are load-bearing: the parser's rules
// key off "Overall Score" and the three section headers, and the dash-list
// requirement keeps markdown out of the reply. Changing either side without
// the other breaks extraction.
func AnalysisPrompt(role, resumeText string) string {
	return fmt.Sprintf(`Analyze this resume for a %s position. Provide a detailed analysis in the following format:

1. Overall Score: [number between 0 and 10]
2. Key Strengths (list 3-5 points)
3. Areas for Improvement (list 3-5 points)
4. Specific Recommendations (list 3-5 points)

Important:
- Do not use asterisks (*) or markdown-style bullets
- Use plain text with dashes (-) for lists
- Keep each point on a new line
- Do not include any special formatting characters
- For the score, use format: "Overall Score: X" where X is a number between 0 and 10

Resume content:
%s`, role, resumeText)
}
