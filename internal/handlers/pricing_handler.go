package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/models"
	"goparts-service/internal/repository"
	"goparts-service/internal/services"
)

// PricingHandler handles freight and agent-fee pricing reference requests.
// Profit and margin are derived from cost/sell at read time, never stored.
type PricingHandler struct {
	repo   *repository.PricingRepository
	logger *logrus.Entry
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(repo *repository.PricingRepository, logger *logrus.Logger) *PricingHandler {
	return &PricingHandler{
		repo:   repo,
		logger: logger.WithField("handler", "pricing"),
	}
}

// freightView decorates a freight record with its derived margin
type freightView struct {
	*models.FreightPricing
	models.PricingMargin
}

// agentFeeView decorates an agent-fee record with its derived margin
type agentFeeView struct {
	*models.AgentFeePricing
	models.PricingMargin
}

// Freight pricing

// CreateFreight creates a freight pricing record
func (h *PricingHandler) CreateFreight(c *gin.Context) {
	var record models.FreightPricing
	if err := c.ShouldBindJSON(&record); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if record.Method != models.ShippingMethodSea && record.Method != models.ShippingMethodAir {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "method must be sea or air")
		return
	}
	if record.CostPrice.IsNegative() || record.SellPrice.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "prices must not be negative")
		return
	}
	record.IsActive = true

	if err := h.repo.CreateFreight(&record); err != nil {
		h.logger.WithError(err).Error("Failed to create freight pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create freight pricing")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": freightView{
		FreightPricing: &record,
		PricingMargin:  services.Margin(record.CostPrice, record.SellPrice),
	}})
}

// ListFreight lists active freight pricing records, optionally by method
func (h *PricingHandler) ListFreight(c *gin.Context) {
	var method *models.ShippingMethod
	if raw := c.Query("method"); raw != "" {
		m := models.ShippingMethod(raw)
		if m != models.ShippingMethodSea && m != models.ShippingMethodAir {
			respondError(c, http.StatusBadRequest, "INVALID_FILTER", "method must be sea or air")
			return
		}
		method = &m
	}

	records, err := h.repo.ListFreight(method)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list freight pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve freight pricing")
		return
	}

	views := make([]freightView, 0, len(records))
	for i := range records {
		views = append(views, freightView{
			FreightPricing: &records[i],
			PricingMargin:  services.Margin(records[i].CostPrice, records[i].SellPrice),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

// UpdateFreight updates a freight pricing record
func (h *PricingHandler) UpdateFreight(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.repo.GetFreightByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPricingRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Freight pricing record not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get freight pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve freight pricing")
		return
	}

	// bind onto the loaded record so omitted fields keep their values
	if err := c.ShouldBindJSON(record); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	record.ID = id
	if record.CostPrice.IsNegative() || record.SellPrice.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "prices must not be negative")
		return
	}

	if err := h.repo.UpdateFreight(record); err != nil {
		h.logger.WithError(err).Error("Failed to update freight pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update freight pricing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": freightView{
		FreightPricing: record,
		PricingMargin:  services.Margin(record.CostPrice, record.SellPrice),
	}})
}

// DeleteFreight deletes a freight pricing record
func (h *PricingHandler) DeleteFreight(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteFreight(id); err != nil {
		if errors.Is(err, repository.ErrPricingRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Freight pricing record not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete freight pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete freight pricing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Agent fee pricing

// CreateAgentFee creates an agent fee pricing record
func (h *PricingHandler) CreateAgentFee(c *gin.Context) {
	var record models.AgentFeePricing
	if err := c.ShouldBindJSON(&record); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if record.AgentName == "" || record.ServiceType == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "agentName and serviceType are required")
		return
	}
	if record.CostPrice.IsNegative() || record.SellPrice.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "prices must not be negative")
		return
	}
	record.IsActive = true

	if err := h.repo.CreateAgentFee(&record); err != nil {
		h.logger.WithError(err).Error("Failed to create agent fee pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create agent fee pricing")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": agentFeeView{
		AgentFeePricing: &record,
		PricingMargin:   services.Margin(record.CostPrice, record.SellPrice),
	}})
}

// ListAgentFees lists active agent fee pricing records
func (h *PricingHandler) ListAgentFees(c *gin.Context) {
	records, err := h.repo.ListAgentFees()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list agent fee pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve agent fee pricing")
		return
	}

	views := make([]agentFeeView, 0, len(records))
	for i := range records {
		views = append(views, agentFeeView{
			AgentFeePricing: &records[i],
			PricingMargin:   services.Margin(records[i].CostPrice, records[i].SellPrice),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

// UpdateAgentFee updates an agent fee pricing record
func (h *PricingHandler) UpdateAgentFee(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.repo.GetAgentFeeByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPricingRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Agent fee pricing record not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get agent fee pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve agent fee pricing")
		return
	}

	if err := c.ShouldBindJSON(record); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	record.ID = id
	if record.CostPrice.IsNegative() || record.SellPrice.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "prices must not be negative")
		return
	}

	if err := h.repo.UpdateAgentFee(record); err != nil {
		h.logger.WithError(err).Error("Failed to update agent fee pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update agent fee pricing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": agentFeeView{
		AgentFeePricing: record,
		PricingMargin:   services.Margin(record.CostPrice, record.SellPrice),
	}})
}

// DeleteAgentFee deletes an agent fee pricing record
func (h *PricingHandler) DeleteAgentFee(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.DeleteAgentFee(id); err != nil {
		if errors.Is(err, repository.ErrPricingRecordNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Agent fee pricing record not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete agent fee pricing")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete agent fee pricing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
