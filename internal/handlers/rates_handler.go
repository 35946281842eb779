package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/services"
)

// RatesHandler handles exchange rate HTTP requests
type RatesHandler struct {
	service *services.RatesService
	logger  *logrus.Entry
}

// NewRatesHandler creates a new rates handler
func NewRatesHandler(service *services.RatesService, logger *logrus.Logger) *RatesHandler {
	return &RatesHandler{
		service: service,
		logger:  logger.WithField("handler", "rates"),
	}
}

// RefreshRates fetches and stores fresh AUD exchange rates
// @Summary Refresh exchange rates
// @Tags exchange-rates
// @Produce json
// @Success 200 {object} models.RefreshRatesResponse
// @Router /exchange-rates/refresh [post]
func (h *RatesHandler) RefreshRates(c *gin.Context) {
	response := h.service.RefreshRates()
	status := http.StatusOK
	if !response.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, response)
}

// ListRates returns recently stored rates, newest first
func (h *RatesHandler) ListRates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rates, err := h.service.ListRates(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list exchange rates")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve exchange rates")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rates})
}
