package coverletter

import "fmt"

// BodyPrompt builds the model prompt for the letter body. The header and
// salutation are composed locally, so the prompt asks for body text only.
func BodyPrompt(companyName, jobTitle, jobID, resumeText string) string {
	return fmt.Sprintf(`You are a professional cover letter writer. Write ONLY the body of a compelling, professional cover letter (do not include any header or salutation). Use proper paragraph structure (not a single block of text). Use the following information to tailor the letter for the job application. Highlight relevant skills and experiences from the resume, show enthusiasm for the specific role and company, keep it concise but comprehensive (300-500 words), use a professional tone, and mention the specific company name, job title, and job ID. Do NOT repeat the header info in the body.

Company Name: %s
Job Title: %s
Job ID: %s

Resume Content:
%s

Cover Letter Body:`, companyName, jobTitle, jobID, resumeText)
}
