package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"goparts-service/internal/middleware"
	"goparts-service/internal/models"
	"goparts-service/internal/repository"
	"goparts-service/internal/services"
)

func newQuoteRouter(t *testing.T) (*gin.Engine, *gorm.DB, services.QuoteService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{}, &models.Part{}, &models.Supplier{},
		&models.Quote{}, &models.QuoteLineItem{},
		&models.Order{}, &models.OrderLineItem{},
		&models.UserPreference{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	quoteService := services.NewQuoteService(repository.NewQuoteRepository(db), nil, log)
	preferenceRepo := repository.NewPreferenceRepository(db)
	handler := NewQuoteHandler(quoteService, preferenceRepo, log)

	router := gin.New()
	router.Use(middleware.IdentityMiddleware())
	router.GET("/api/v1/quotes", handler.ListQuotes)
	return router, db, quoteService
}

func seedQuote(t *testing.T, db *gorm.DB, svc services.QuoteService, status models.QuoteStatus) *models.Quote {
	t.Helper()

	customer := &models.Customer{Name: "Apex Motors", Email: "parts@apexmotors.example"}
	require.NoError(t, db.Create(customer).Error)
	part := &models.Part{PartNumber: "X-" + string(status), Name: "Part", UnitPrice: decimal.NewFromInt(10), IsActive: true}
	require.NoError(t, db.Create(part).Error)

	quote, err := svc.CreateQuote(context.Background(), models.CreateQuoteRequest{
		CustomerID: customer.ID,
		Items: []models.QuoteLineItemRequest{{
			PartID:    &part.ID,
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(10),
		}},
	}, "tester")
	require.NoError(t, err)

	if status != models.QuoteStatusDraft {
		quote, err = svc.UpdateQuoteStatus(context.Background(), quote.ID, status)
		require.NoError(t, err)
	}
	return quote
}

type quoteListResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		Status    string `json:"status"`
		IsExpired bool   `json:"isExpired"`
	} `json:"data"`
}

func listQuotes(t *testing.T, router *gin.Engine, url, userID string) quoteListResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("X-User-ID", userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp quoteListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListQuotesAppliesSavedStatusFilter(t *testing.T) {
	router, db, svc := newQuoteRouter(t)

	seedQuote(t, db, svc, models.QuoteStatusDraft)
	seedQuote(t, db, svc, models.QuoteStatusSent)

	// remembered filter for this user: only sent quotes
	require.NoError(t, repository.NewPreferenceRepository(db).Save(&models.UserPreference{
		UserID: "buyer-1",
		Key:    quoteFilterPreferenceKey,
		Value:  models.JSON{"status": "sent"},
	}))

	resp := listQuotes(t, router, "/api/v1/quotes", "buyer-1")
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "sent", resp.Data[0].Status)

	// explicit status wins over the saved preference
	resp = listQuotes(t, router, "/api/v1/quotes?status=draft", "buyer-1")
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "draft", resp.Data[0].Status)

	// status=all clears the saved filter for one request
	resp = listQuotes(t, router, "/api/v1/quotes?status=all", "buyer-1")
	assert.Len(t, resp.Data, 2)

	// a user with no saved preference sees everything
	resp = listQuotes(t, router, "/api/v1/quotes", "buyer-2")
	assert.Len(t, resp.Data, 2)
}

func TestListQuotesRejectsUnknownStatus(t *testing.T) {
	router, _, _ := newQuoteRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes?status=bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
