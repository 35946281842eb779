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

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	repo   *repository.CustomerRepository
	logger *logrus.Entry
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(repo *repository.CustomerRepository, logger *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{
		repo:   repo,
		logger: logger.WithField("handler", "customer"),
	}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer := &models.Customer{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
	if err := h.repo.Create(customer); err != nil {
		h.logger.WithError(err).Error("Failed to create customer")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": customer})
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get customer")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
}

// ListCustomers lists customers, optionally filtered by a search term
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, limit := parsePagination(c)
	search := c.Query("search")

	customers, total, err := h.repo.List(search, limit, (page-1)*limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list customers")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       customers,
		"pagination": buildPagination(page, limit, total),
	})
}

// UpdateCustomer applies a partial update to a customer
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get customer")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve customer")
		return
	}

	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Company != nil {
		customer.Company = *req.Company
	}
	if req.Street != nil {
		customer.Street = *req.Street
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.PostalCode != nil {
		customer.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		customer.Country = *req.Country
	}

	if err := h.repo.Update(customer); err != nil {
		h.logger.WithError(err).Error("Failed to update customer")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
}
