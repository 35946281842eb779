package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

// OrderHandler handles order HTTP requests. Orders are created exclusively by
// quote conversion; this handler only reads them.
type OrderHandler struct {
	repo   *repository.OrderRepository
	logger *logrus.Entry
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(repo *repository.OrderRepository, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		repo:   repo,
		logger: logger.WithField("handler", "order"),
	}
}

// GetOrder retrieves an order by ID
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get order")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// ListOrders lists orders matching the query filters, newest first
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var filters models.OrderListFilters
	filters.Page, filters.Limit = parsePagination(c)

	if raw := c.Query("supplierId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid supplierId format")
			return
		}
		filters.SupplierID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !models.IsValidOrderStatus(status) {
			respondError(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid status filter")
			return
		}
		filters.Status = &status
	}

	orders, total, err := h.repo.List(filters)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       orders,
		"pagination": buildPagination(filters.Page, filters.Limit, total),
	})
}
