package users

import "time"

// User is a job-seeker record. AnalysisCount and UnlimitedAnalysis gate the
// AI features; ResumeKey points at the stored resume object, if any.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FullName          string    `json:"fullName"`
	ResumeKey         string    `json:"resumeKey,omitempty"`
	AnalysisCount     int       `json:"analysisCount"`
	UnlimitedAnalysis bool      `json:"unlimitedAnalysis"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
