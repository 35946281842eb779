package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

func newQuoteFixture(t *testing.T) (*gorm.DB, QuoteService, *models.Customer, *models.Part) {
	t.Helper()
	db := newTestDB(t)

	customer := &models.Customer{Name: "Apex Motors", Email: "parts@apexmotors.example"}
	require.NoError(t, db.Create(customer).Error)

	part := &models.Part{
		PartNumber: "BRK-2041",
		Name:       "Front brake rotor",
		UnitPrice:  money("100"),
		StockLevel: 12,
		IsActive:   true,
	}
	require.NoError(t, db.Create(part).Error)

	svc := NewQuoteService(repository.NewQuoteRepository(db), nil, newTestLogger())
	return db, svc, customer, part
}

func catalogItem(partID uuid.UUID, qty int, price string) models.QuoteLineItemRequest {
	return models.QuoteLineItemRequest{
		PartID:    &partID,
		Quantity:  qty,
		UnitPrice: money(price),
	}
}

func customItem(name string, qty int, price string) models.QuoteLineItemRequest {
	return models.QuoteLineItemRequest{
		IsCustomPart:   true,
		CustomPartName: &name,
		Quantity:       qty,
		UnitPrice:      money(price),
	}
}

func TestCreateQuoteDerivesTotals(t *testing.T) {
	_, svc, customer, part := newQuoteFixture(t)

	quote, err := svc.CreateQuote(context.Background(), models.CreateQuoteRequest{
		CustomerID:        customer.ID,
		Items:             []models.QuoteLineItemRequest{catalogItem(part.ID, 2, "100")},
		SeaShippingCost:   money("50"),
		AirShippingCost:   money("80"),
		AgentFees:         money("10"),
		LocalShippingFees: money("5"),
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, models.QuoteStatusDraft, quote.Status)
	assert.Equal(t, models.ShippingMethodSea, quote.SelectedShipping)
	assert.Regexp(t, `^QTE-\d{4}-\d{6}$`, quote.QuoteNumber)
	assert.True(t, quote.TotalBidItemsCost.Equal(money("200")))
	assert.True(t, quote.SubtotalAmount.Equal(money("265")))
	assert.True(t, quote.GSTAmount.Equal(money("26.50")))
	assert.True(t, quote.GrandTotalAmount.Equal(money("291.50")))
	assert.Equal(t, "tester", quote.CreatedBy)
	// default 30-day validity
	assert.Equal(t, quote.QuoteDate.Add(30*24*time.Hour).Unix(), quote.ExpiryDate.Unix())
}

func TestCreateQuoteRejectsInvalidItems(t *testing.T) {
	_, svc, customer, part := newQuoteFixture(t)

	cases := []models.QuoteLineItemRequest{
		catalogItem(part.ID, 0, "100"),  // zero quantity
		catalogItem(part.ID, 2, "-1"),   // negative price
		{Quantity: 1, UnitPrice: money("10")}, // neither catalog nor custom
	}
	for _, item := range cases {
		_, err := svc.CreateQuote(context.Background(), models.CreateQuoteRequest{
			CustomerID: customer.ID,
			Items:      []models.QuoteLineItemRequest{item},
		}, "tester")
		assert.Error(t, err)
	}
}

func TestUpdateQuoteRecalculatesTotals(t *testing.T) {
	_, svc, customer, part := newQuoteFixture(t)
	ctx := context.Background()

	quote, err := svc.CreateQuote(ctx, models.CreateQuoteRequest{
		CustomerID:        customer.ID,
		Items:             []models.QuoteLineItemRequest{catalogItem(part.ID, 2, "100")},
		SeaShippingCost:   money("50"),
		AirShippingCost:   money("80"),
		AgentFees:         money("10"),
		LocalShippingFees: money("5"),
	}, "tester")
	require.NoError(t, err)

	air := models.ShippingMethodAir
	updated, err := svc.UpdateQuote(ctx, quote.ID, models.UpdateQuoteRequest{
		SelectedShipping: &air,
	})
	require.NoError(t, err)

	assert.True(t, updated.TotalBidItemsCost.Equal(money("200")))
	assert.True(t, updated.SubtotalAmount.Equal(money("295")))
	assert.True(t, updated.GSTAmount.Equal(money("29.50")))
	assert.True(t, updated.GrandTotalAmount.Equal(money("324.50")))

	// fetch confirms the recomputed totals and items were persisted together
	fetched, err := svc.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.True(t, fetched.GrandTotalAmount.Equal(money("324.50")))
}

func TestUpdateQuoteStatusRejectsConversionShortcut(t *testing.T) {
	_, svc, customer, part := newQuoteFixture(t)
	ctx := context.Background()

	quote, err := svc.CreateQuote(ctx, models.CreateQuoteRequest{
		CustomerID: customer.ID,
		Items:      []models.QuoteLineItemRequest{catalogItem(part.ID, 1, "10")},
	}, "tester")
	require.NoError(t, err)

	_, err = svc.UpdateQuoteStatus(ctx, quote.ID, models.QuoteStatusConvertedToOrder)
	assert.Error(t, err)

	// any non-terminal status is reachable from any other
	for _, status := range []models.QuoteStatus{
		models.QuoteStatusSent,
		models.QuoteStatusRejected,
		models.QuoteStatusAccepted,
		models.QuoteStatusDraft,
	} {
		_, err := svc.UpdateQuoteStatus(ctx, quote.ID, status)
		assert.NoError(t, err, "transition to %s", status)
	}
}

func TestConvertQuoteToOrder(t *testing.T) {
	db, svc, customer, part := newQuoteFixture(t)
	ctx := context.Background()

	quote, err := svc.CreateQuote(ctx, models.CreateQuoteRequest{
		CustomerID: customer.ID,
		Items: []models.QuoteLineItemRequest{
			catalogItem(part.ID, 2, "100"),
			customItem("One-off bracket", 1, "35"),
		},
		SeaShippingCost:   money("50"),
		AirShippingCost:   money("80"),
		AgentFees:         money("10"),
		LocalShippingFees: money("5"),
	}, "tester")
	require.NoError(t, err)

	resp, err := svc.ConvertQuoteToOrder(ctx, quote.ID, "tester")
	require.NoError(t, err)
	require.NotNil(t, resp.Order)

	// order totals are a snapshot of the quote
	assert.True(t, resp.Order.TotalAmount.Equal(quote.GrandTotalAmount))
	assert.True(t, resp.Order.Subtotal.Equal(quote.SubtotalAmount))
	assert.Equal(t, models.OrderStatusPending, resp.Order.Status)
	assert.Regexp(t, `^ORD-\d{4}-\d{6}$`, resp.Order.OrderNumber)

	// only the catalog item is carried over
	assert.Equal(t, 1, resp.DroppedCustomItems)
	require.Len(t, resp.Order.Items, 1)
	assert.Equal(t, part.ID, resp.Order.Items[0].PartID)
	assert.Equal(t, "Front brake rotor", resp.Order.Items[0].PartName)

	// no supplier existed, so a placeholder was created
	var supplier models.Supplier
	require.NoError(t, db.Where("id = ?", resp.Order.SupplierID).First(&supplier).Error)
	assert.True(t, supplier.IsPlaceholder)
	assert.Equal(t, "Pending Supplier Assignment", supplier.Name)

	// quote is terminally converted with back-references
	assert.Equal(t, models.QuoteStatusConvertedToOrder, resp.Quote.Status)
	require.NotNil(t, resp.Quote.ConvertedToOrderID)
	assert.Equal(t, resp.Order.ID, *resp.Quote.ConvertedToOrderID)
	require.NotNil(t, resp.Quote.ConvertedToOrderNumber)
	assert.Equal(t, resp.Order.OrderNumber, *resp.Quote.ConvertedToOrderNumber)
}

func TestConvertQuoteUsesExistingSupplier(t *testing.T) {
	db, svc, customer, part := newQuoteFixture(t)
	ctx := context.Background()

	supplier := &models.Supplier{Name: "Osaka Parts Trading", IsActive: true}
	require.NoError(t, db.Create(supplier).Error)

	quote, err := svc.CreateQuote(ctx, models.CreateQuoteRequest{
		CustomerID: customer.ID,
		Items:      []models.QuoteLineItemRequest{catalogItem(part.ID, 1, "100")},
	}, "tester")
	require.NoError(t, err)

	resp, err := svc.ConvertQuoteToOrder(ctx, quote.ID, "tester")
	require.NoError(t, err)
	assert.Equal(t, supplier.ID, resp.Order.SupplierID)

	var placeholders int64
	require.NoError(t, db.Model(&models.Supplier{}).Where("is_placeholder = ?", true).Count(&placeholders).Error)
	assert.Zero(t, placeholders)
}

func TestConvertedQuoteIsTerminal(t *testing.T) {
	_, svc, customer, part := newQuoteFixture(t)
	ctx := context.Background()

	quote, err := svc.CreateQuote(ctx, models.CreateQuoteRequest{
		CustomerID: customer.ID,
		Items:      []models.QuoteLineItemRequest{catalogItem(part.ID, 1, "100")},
	}, "tester")
	require.NoError(t, err)

	_, err = svc.ConvertQuoteToOrder(ctx, quote.ID, "tester")
	require.NoError(t, err)

	_, err = svc.ConvertQuoteToOrder(ctx, quote.ID, "tester")
	assert.Error(t, err, "double conversion must be rejected")

	fee := money("1")
	_, err = svc.UpdateQuote(ctx, quote.ID, models.UpdateQuoteRequest{AgentFees: &fee})
	assert.Error(t, err, "converted quotes are read-only")

	_, err = svc.UpdateQuoteStatus(ctx, quote.ID, models.QuoteStatusDraft)
	assert.Error(t, err, "converted quotes cannot change status")
}
