package coverletter

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard-backend/internal/extract"
	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/quota"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/telemetry"
)

// Request carries one cover letter generation job.
type Request struct {
	JobID       string
	JobTitle    string
	CompanyName string
	Contact     Contact
	Resume      []byte
}

// Result is the assembled letter plus the post-charge quota view.
type Result struct {
	CoverLetter string
	Quota       quota.Snapshot
}

// Service sequences one generation: quota check, text extraction, prompt,
// model call, compose, quota commit. Cover letters draw from the same quota
// pool as analyses.
type Service struct {
	Quota *quota.Service
	LLM   llm.Client
	// ExtractText overrides the PDF text extractor. Nil means extract.Text.
	ExtractText func(data []byte) (string, error)
	// Now overrides the clock for the letter date. Nil means time.Now.
	Now func() time.Time
}

// Generate runs the full pipeline for one request.
func (s *Service) Generate(ctx context.Context, userID string, req Request) (Result, error) {
	if userID == "" {
		return Result{}, errors.New("userID is required")
	}
	if req.JobID == "" || req.JobTitle == "" || req.CompanyName == "" {
		return Result{}, errors.New("jobId, jobTitle and companyName are required")
	}

	if _, err := s.Quota.Check(ctx, userID); err != nil {
		return Result{}, err
	}

	extractFn := s.ExtractText
	if extractFn == nil {
		extractFn = extract.Text
	}
	resumeText, err := extractFn(req.Resume)
	if err != nil {
		metrics.IncCoverLetterFailed()
		return Result{}, err
	}

	prompt := BodyPrompt(req.CompanyName, req.JobTitle, req.JobID, resumeText)

	start := time.Now()
	body, err := s.LLM.Generate(ctx, prompt)
	metrics.ObserveModelCallDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncCoverLetterFailed()
		return Result{}, err
	}
	body = strings.TrimSpace(body)

	nowFn := s.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	letter := Compose(req.Contact, body, nowFn())

	snap, err := s.Quota.Commit(ctx, userID)
	if err != nil {
		metrics.IncCoverLetterFailed()
		return Result{}, err
	}

	metrics.IncCoverLetterCompleted()
	telemetry.Info("coverletter.completed", map[string]any{
		"user_id":   userID,
		"job_id":    req.JobID,
		"company":   req.CompanyName,
		"remaining": snap.RemainingValue(),
	})

	return Result{CoverLetter: letter, Quota: snap}, nil
}
