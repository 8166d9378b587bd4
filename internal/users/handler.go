package users

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
	"jobboard-backend/internal/shared/storage/object"
	"jobboard-backend/internal/shared/telemetry"
)

const maxResumeBytes = 5 << 20

// Handler exposes profile endpoints.
type Handler struct {
	Repo  Repo
	Store object.ObjectStore
}

func NewHandler(repo Repo, store object.ObjectStore) *Handler {
	return &Handler{Repo: repo, Store: store}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.me)
	rg.POST("/users/resume", h.updateResume)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	user, err := h.Repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// First touch for a token-authenticated user: create the record
			// from the verified claims instead of bouncing the client.
			if name := middleware.UserNameFromContext(c); name != "" || middleware.UserEmailFromContext(c) != "" {
				user = User{
					ID:       userID,
					Email:    middleware.UserEmailFromContext(c),
					FullName: name,
				}
				if err := h.Repo.Upsert(c.Request.Context(), user); err != nil {
					respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
					return
				}
				user, err = h.Repo.GetByID(c.Request.Context(), userID)
				if err == nil {
					respond.OK(c, gin.H{"user": user})
					return
				}
			}
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		return
	}

	respond.OK(c, gin.H{"user": user})
}

func (h *Handler) updateResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please upload a resume file", nil)
		return
	}
	if fileHeader.Size > maxResumeBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Resume file is too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Could not read uploaded file", nil)
		return
	}
	defer file.Close()

	if _, err := h.Repo.GetByID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		return
	}

	storageKey, size, mimeType, err := h.Store.Save(c.Request.Context(), userID, fileHeader.Filename, io.LimitReader(file, maxResumeBytes))
	if err != nil {
		telemetry.Error("users.resume.save_failed", map[string]any{
			"err":        err.Error(),
			"user_id":    userID,
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		return
	}

	if err := h.Repo.SetResume(c.Request.Context(), userID, storageKey); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update user", nil)
		return
	}

	telemetry.Info("users.resume.updated", map[string]any{
		"user_id":    userID,
		"size_bytes": size,
		"mime_type":  mimeType,
		"request_id": c.GetString("requestId"),
	})

	respond.OK(c, gin.H{"success": true, "message": "Resume updated successfully"})
}
