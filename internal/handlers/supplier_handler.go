package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

// SupplierHandler handles supplier HTTP requests
type SupplierHandler struct {
	repo   *repository.SupplierRepository
	logger *logrus.Entry
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(repo *repository.SupplierRepository, logger *logrus.Logger) *SupplierHandler {
	return &SupplierHandler{
		repo:   repo,
		logger: logger.WithField("handler", "supplier"),
	}
}

// CreateSupplier creates a new supplier
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req models.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	supplier := &models.Supplier{
		ID:          uuid.New(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Country:     req.Country,
		IsActive:    true,
	}
	if err := h.repo.Create(supplier); err != nil {
		h.logger.WithError(err).Error("Failed to create supplier")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create supplier")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": supplier})
}

// GetSupplier retrieves a supplier by ID
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Supplier not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get supplier")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve supplier")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": supplier})
}

// ListSuppliers lists suppliers, active only by default
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))

	suppliers, err := h.repo.List(includeInactive)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list suppliers")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve suppliers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": suppliers})
}

// UpdateSupplier applies a partial update to a supplier. Assigning real
// details to a placeholder supplier clears the placeholder flag.
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Supplier not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get supplier")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve supplier")
		return
	}

	var req struct {
		Name        *string `json:"name,omitempty"`
		ContactName *string `json:"contactName,omitempty"`
		Email       *string `json:"email,omitempty"`
		Phone       *string `json:"phone,omitempty"`
		Country     *string `json:"country,omitempty"`
		IsActive    *bool   `json:"isActive,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if req.Name != nil {
		supplier.Name = *req.Name
		supplier.IsPlaceholder = false
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Country != nil {
		supplier.Country = *req.Country
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := h.repo.Update(supplier); err != nil {
		h.logger.WithError(err).Error("Failed to update supplier")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": supplier})
}
