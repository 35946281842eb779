package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/middleware"
	"goparts-service/internal/models"
	"goparts-service/internal/repository"
	"goparts-service/internal/services"
)

// quoteFilterPreferenceKey is the preference slot holding a user's remembered
// quote list filters
const quoteFilterPreferenceKey = "quotes.listFilters"

// QuoteHandler handles quote HTTP requests
type QuoteHandler struct {
	service     services.QuoteService
	preferences *repository.PreferenceRepository
	logger      *logrus.Entry
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(service services.QuoteService, preferences *repository.PreferenceRepository, logger *logrus.Logger) *QuoteHandler {
	return &QuoteHandler{
		service:     service,
		preferences: preferences,
		logger:      logger.WithField("handler", "quote"),
	}
}

// quoteView decorates a quote with its derived expiry flag. The flag is
// computed at read time and never stored.
type quoteView struct {
	*models.Quote
	IsExpired bool `json:"isExpired"`
}

func newQuoteView(q *models.Quote, now time.Time) quoteView {
	return quoteView{Quote: q, IsExpired: q.IsExpired(now)}
}

// CreateQuote creates a new quote
// @Summary Create quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body models.CreateQuoteRequest true "Quote"
// @Success 201 {object} models.Quote
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req models.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	quote, err := h.service.CreateQuote(c.Request.Context(), req, middleware.GetUserID(c))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": newQuoteView(quote, time.Now())})
}

// GetQuote retrieves a quote by ID
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := h.service.GetQuote(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get quote")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": newQuoteView(quote, time.Now())})
}

// ListQuotes lists quotes matching the query filters. When the request does
// not name a status the user's saved filter preference is applied;
// ?status=all clears it for one request.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	filters, ok := h.parseListFilters(c)
	if !ok {
		return
	}

	quotes, total, err := h.service.ListQuotes(c.Request.Context(), filters)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list quotes")
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve quotes")
		return
	}

	now := time.Now()
	views := make([]quoteView, 0, len(quotes))
	for i := range quotes {
		views = append(views, newQuoteView(&quotes[i], now))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       views,
		"pagination": buildPagination(filters.Page, filters.Limit, total),
	})
}

func (h *QuoteHandler) parseListFilters(c *gin.Context) (models.QuoteListFilters, bool) {
	var filters models.QuoteListFilters
	filters.Page, filters.Limit = parsePagination(c)

	if raw := c.Query("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid customerId format")
			return filters, false
		}
		filters.CustomerID = &id
	}

	switch raw := c.Query("status"); raw {
	case "all":
		// explicit override, no status filter
	case "":
		if status := h.savedStatusFilter(c); status != nil {
			filters.Status = status
		}
	default:
		status := models.QuoteStatus(raw)
		if !models.IsValidQuoteStatus(status) {
			respondError(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid status filter")
			return filters, false
		}
		filters.Status = &status
	}

	for param, target := range map[string]**time.Time{
		"dateFrom": &filters.DateFrom,
		"dateTo":   &filters.DateTo,
	} {
		if raw := c.Query(param); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid "+param+" format, expected RFC3339")
				return filters, false
			}
			*target = &t
		}
	}

	return filters, true
}

// savedStatusFilter loads the user's remembered status filter, if any.
// Preference lookups are best-effort; failures never block the list.
func (h *QuoteHandler) savedStatusFilter(c *gin.Context) *models.QuoteStatus {
	if h.preferences == nil {
		return nil
	}
	pref, err := h.preferences.Get(middleware.GetUserID(c), quoteFilterPreferenceKey)
	if err != nil {
		if !errors.Is(err, repository.ErrPreferenceNotFound) {
			h.logger.WithError(err).Warn("Failed to load quote filter preference")
		}
		return nil
	}
	raw, ok := pref.Value["status"].(string)
	if !ok {
		return nil
	}
	status := models.QuoteStatus(raw)
	if !models.IsValidQuoteStatus(status) {
		return nil
	}
	return &status
}

// UpdateQuote applies a partial update and recomputes totals
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	quote, err := h.service.UpdateQuote(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
			return
		}
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": newQuoteView(quote, time.Now())})
}

// UpdateQuoteStatus sets a new status on a quote
func (h *QuoteHandler) UpdateQuoteStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	quote, err := h.service.UpdateQuoteStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
			return
		}
		respondError(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": newQuoteView(quote, time.Now())})
}

// ConvertQuote converts a quote into a purchase order
// @Summary Convert quote to order
// @Tags quotes
// @Produce json
// @Success 200 {object} models.ConvertQuoteResponse
// @Router /quotes/{id}/convert [post]
func (h *QuoteHandler) ConvertQuote(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ConvertQuoteToOrder(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
			return
		}
		respondError(c, http.StatusConflict, "CONVERSION_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
