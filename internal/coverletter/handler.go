package coverletter

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/extract"
	"jobboard-backend/internal/llm"
	"jobboard-backend/internal/quota"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
)

const maxResumeBytes = 5 << 20

// Handler exposes the cover letter endpoint.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover letter routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cover-letter/generate", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	req := Request{
		JobID:       c.PostForm("jobId"),
		JobTitle:    c.PostForm("jobTitle"),
		CompanyName: c.PostForm("companyName"),
		Contact: Contact{
			Name:     c.PostForm("name"),
			Address:  c.PostForm("address"),
			Email:    c.PostForm("email"),
			Phone:    c.PostForm("phone"),
			LinkedIn: c.PostForm("linkedin"),
			GitHub:   c.PostForm("github"),
		},
	}
	switch {
	case req.JobID == "":
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please provide a job ID", nil)
		return
	case req.JobTitle == "":
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please provide a job title", nil)
		return
	case req.CompanyName == "":
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please provide a company name", nil)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please upload a resume", nil)
		return
	}
	if fileHeader.Size > maxResumeBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume exceeds 5MB limit", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read resume file", nil)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxResumeBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read resume file", nil)
		return
	}
	if len(data) > maxResumeBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume exceeds 5MB limit", nil)
		return
	}
	req.Resume = data

	res, err := h.Svc.Generate(c.Request.Context(), userID, req)
	if err != nil {
		writeGenerateError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"success":           true,
		"message":           "Cover letter generated successfully",
		"coverLetter":       res.CoverLetter,
		"remainingAnalyses": res.Quota.RemainingValue(),
		"unlimitedAnalysis": res.Quota.UnlimitedAnalysis,
	})
}

func writeGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quota.ErrLimitReached):
		respond.Error(c, http.StatusBadRequest, "quota_exceeded", quota.LimitMessage(quota.DefaultLimit), nil)
	case errors.Is(err, quota.ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	case errors.Is(err, extract.ErrExtraction):
		respond.Error(c, http.StatusInternalServerError, "extraction_error", "Failed to extract text from resume", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "upstream_error", "Cover letter service is not configured", nil)
	case errors.Is(err, llm.ErrUpstream):
		respond.Error(c, http.StatusInternalServerError, "upstream_error", "Cover letter generation failed", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate cover letter", nil)
	}
}
