package analyzer

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

// Handler exposes the resume analysis endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.listRoles)
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) listRoles(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"roles": AvailableRoles})
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	// Any non-empty role is accepted; AvailableRoles is a suggestion list
	// for clients, not a server-side allowlist.
	role := c.PostForm("role")
	if role == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "role is required", nil)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
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

	res, err := h.Svc.Analyze(c.Request.Context(), userID, role, data)
	if err != nil {
		writeAnalyzeError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"analysis":          res.Analysis,
		"remainingAnalyses": res.Quota.RemainingValue(),
		"unlimitedAnalysis": res.Quota.UnlimitedAnalysis,
	})
}

func writeAnalyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quota.ErrLimitReached):
		respond.Error(c, http.StatusBadRequest, "quota_exceeded", quota.LimitMessage(quota.DefaultLimit), nil)
	case errors.Is(err, quota.ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	case errors.Is(err, extract.ErrExtraction):
		respond.Error(c, http.StatusInternalServerError, "extraction_error", "Failed to extract text from resume", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "upstream_error", "Analysis service is not configured", nil)
	case errors.Is(err, llm.ErrUpstream):
		respond.Error(c, http.StatusInternalServerError, "upstream_error", "Analysis service failed", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to analyze resume", nil)
	}
}
