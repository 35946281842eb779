package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/middleware"
	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

// PreferenceHandler handles saved per-user UI preferences such as remembered
// list filters
type PreferenceHandler struct {
	repo   *repository.PreferenceRepository
	logger *logrus.Entry
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(repo *repository.PreferenceRepository, logger *logrus.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		repo:   repo,
		logger: logger.WithField("handler", "preference"),
	}
}

// GetPreference returns the caller's saved preference for a key
func (h *PreferenceHandler) GetPreference(c *gin.Context) {
	key := c.Param("key")
	pref, err := h.repo.Get(middleware.GetUserID(c), key)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Preference not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get preference")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve preference")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": pref})
}

// SavePreference upserts the caller's preference for a key
func (h *PreferenceHandler) SavePreference(c *gin.Context) {
	key := c.Param("key")

	var req models.SavePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	pref := &models.UserPreference{
		UserID: middleware.GetUserID(c),
		Key:    key,
		Value:  req.Value,
	}
	if err := h.repo.Save(pref); err != nil {
		h.logger.WithError(err).Error("Failed to save preference")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save preference")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": pref})
}
