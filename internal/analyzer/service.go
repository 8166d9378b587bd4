package analyzer

import (
	"context"
	"errors"
	"time"

	"jobboard-backend/internal/extract"
	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/quota"
	"jobboard-backend/internal/shared/metrics"
	"jobboard-backend/internal/shared/telemetry"
)

// Service sequences one resume analysis: quota check, text extraction,
// prompt, model call, parse, quota commit. Steps run strictly in order and
// any failure aborts the rest, so a user is never charged for a failed call.
type Service struct {
	Quota *quota.Service
	LLM   llm.Client
	// ExtractText overrides the PDF text extractor. Nil means extract.Text.
	ExtractText func(data []byte) (string, error)
}

// Result is the assembled analysis response.
type Result struct {
	Analysis Analysis
	Quota    quota.Snapshot
}

// Analyze runs the full pipeline for one uploaded resume.
func (s *Service) Analyze(ctx context.Context, userID, role string, resume []byte) (Result, error) {
	if userID == "" || role == "" {
		return Result{}, errors.New("userID and role are required")
	}

	if _, err := s.Quota.Check(ctx, userID); err != nil {
		if errors.Is(err, quota.ErrLimitReached) {
			metrics.IncAnalysisRejected()
		}
		return Result{}, err
	}

	extractFn := s.ExtractText
	if extractFn == nil {
		extractFn = extract.Text
	}
	resumeText, err := extractFn(resume)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	prompt := AnalysisPrompt(role, resumeText)

	start := time.Now()
	raw, err := s.LLM.Generate(ctx, prompt)
	metrics.ObserveModelCallDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	analysis := Parse(raw)

	snap, err := s.Quota.Commit(ctx, userID)
	if err != nil {
		// The model already answered; losing the commit race still means
		// the caller gets no result and no charge.
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"user_id":   userID,
		"role":      role,
		"score":     analysis.Score,
		"remaining": snap.RemainingValue(),
	})

	return Result{Analysis: analysis, Quota: snap}, nil
}
