package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/repository"
	"goparts-service/internal/services"
)

// PartHandler handles part HTTP requests
type PartHandler struct {
	repo    *repository.PartRepository
	pricing *services.PricingService
	logger  *logrus.Entry
}

// NewPartHandler creates a new part handler
func NewPartHandler(repo *repository.PartRepository, pricing *services.PricingService, logger *logrus.Logger) *PartHandler {
	return &PartHandler{
		repo:    repo,
		pricing: pricing,
		logger:  logger.WithField("handler", "part"),
	}
}

// GetPart retrieves a part by ID
func (h *PartHandler) GetPart(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	part, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Part not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get part")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve part")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": part})
}

// ListParts lists active parts, optionally filtered by category
func (h *PartHandler) ListParts(c *gin.Context) {
	page, limit := parsePagination(c)

	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid categoryId format")
			return
		}
		categoryID = &id
	}

	parts, total, err := h.repo.List(categoryID, limit, (page-1)*limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list parts")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve parts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       parts,
		"pagination": buildPagination(page, limit, total),
	})
}

// GetTierPrices derives the four customer-tier prices from the part's latest
// unit price
func (h *PartHandler) GetTierPrices(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	prices, err := h.pricing.TierPricesForPart(id)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Part not found")
			return
		}
		h.logger.WithError(err).Error("Failed to derive tier prices")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to derive tier prices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": prices})
}
