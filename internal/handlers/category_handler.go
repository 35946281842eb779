package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/middleware"
	"goparts-service/internal/models"
	"goparts-service/internal/repository"
	"goparts-service/internal/services"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	service *services.CategoryService
	logger  *logrus.Entry
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *services.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.WithField("handler", "category"),
	}
}

// CreateCategory creates a new category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	category, err := h.service.CreateCategory(req, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			respondError(c, http.StatusConflict, "DUPLICATE_NAME", "A category with this name already exists")
			return
		}
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}

// GetCategory retrieves a category by ID
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.service.GetCategory(id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get category")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// ListCategories lists categories ordered by display order
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	page, limit := parsePagination(c)
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))

	categories, total, err := h.service.ListCategories(includeInactive, limit, (page-1)*limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list categories")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       categories,
		"pagination": buildPagination(page, limit, total),
	})
}

// ListCategoryRollups lists categories with derived inventory rollups
func (h *CategoryHandler) ListCategoryRollups(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))

	rollups, err := h.service.ListCategoryRollups(includeInactive)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list category rollups")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve category rollups")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rollups})
}

// UpdateCategory applies a partial update to a category
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	category, err := h.service.UpdateCategory(id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		case errors.Is(err, repository.ErrDuplicateName):
			respondError(c, http.StatusConflict, "DUPLICATE_NAME", "A category with this name already exists")
		default:
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// ReorderCategories reassigns display order from the full ordered id list.
// On failure the client must re-fetch the list rather than trust its local
// ordering.
func (h *CategoryHandler) ReorderCategories(c *gin.Context) {
	var req models.ReorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.ReorderCategories(req); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "One or more categories not found")
			return
		}
		h.logger.WithError(err).Error("Failed to reorder categories")
		respondError(c, http.StatusBadRequest, "REORDER_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteCategory hard-deletes a category with no parts
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		case errors.Is(err, repository.ErrCategoryHasParts):
			respondError(c, http.StatusConflict, "CATEGORY_HAS_PARTS", err.Error())
		default:
			h.logger.WithError(err).Error("Failed to delete category")
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MergeCategories moves every part from the source category into the target
// and deactivates the source
func (h *CategoryHandler) MergeCategories(c *gin.Context) {
	sourceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.MergeCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.MergeCategories(sourceID, req.TargetCategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Source or target category not found")
			return
		}
		respondError(c, http.StatusBadRequest, "MERGE_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReassignParts moves an explicit set of parts to a target category
func (h *CategoryHandler) ReassignParts(c *gin.Context) {
	var req models.ReassignPartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	moved, err := h.service.ReassignParts(req)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Target category not found")
			return
		}
		h.logger.WithError(err).Error("Failed to reassign parts")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reassign parts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "partsMoved": moved})
}
