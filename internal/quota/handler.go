package quota

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
)

// Handler exposes quota endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches quota routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.getUsage)
}

// RegisterDevRoutes attaches dev-only quota routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/usage/reset", h.resetUsage)
}

func (h *Handler) getUsage(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	snap, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeQuotaError(c, err, "failed to fetch usage")
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"analysisCount":     snap.AnalysisCount,
		"unlimitedAnalysis": snap.UnlimitedAnalysis,
		"limit":             snap.Limit,
		"remainingAnalyses": snap.RemainingValue(),
	})
}

func (h *Handler) resetUsage(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	snap, err := h.Svc.Reset(c.Request.Context(), userID)
	if err != nil {
		writeQuotaError(c, err, "failed to reset usage")
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"analysisCount":     snap.AnalysisCount,
		"unlimitedAnalysis": snap.UnlimitedAnalysis,
		"limit":             snap.Limit,
		"remainingAnalyses": snap.RemainingValue(),
	})
}

func writeQuotaError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
