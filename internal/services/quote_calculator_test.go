package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"goparts-service/internal/models"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateQuoteTotals(t *testing.T) {
	items := []models.QuoteLineItem{
		{Quantity: 2, UnitPrice: money("100")},
	}

	totals := CalculateQuoteTotals(items, money("50"), money("80"), models.ShippingMethodSea, money("10"), money("5"))

	assert.True(t, totals.BidItemsTotal.Equal(money("200")), "bid items: %s", totals.BidItemsTotal)
	assert.True(t, totals.SelectedShipping.Equal(money("50")))
	assert.True(t, totals.Subtotal.Equal(money("265")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.GST.Equal(money("26.50")), "gst: %s", totals.GST)
	assert.True(t, totals.GrandTotal.Equal(money("291.50")), "grand total: %s", totals.GrandTotal)
}

func TestCalculateQuoteTotalsAirShipping(t *testing.T) {
	items := []models.QuoteLineItem{
		{Quantity: 2, UnitPrice: money("100")},
	}

	sea := CalculateQuoteTotals(items, money("50"), money("80"), models.ShippingMethodSea, money("10"), money("5"))
	air := CalculateQuoteTotals(items, money("50"), money("80"), models.ShippingMethodAir, money("10"), money("5"))

	// switching freight never touches the bid items total
	assert.True(t, air.BidItemsTotal.Equal(sea.BidItemsTotal))
	assert.True(t, air.Subtotal.Equal(money("295")))
	assert.True(t, air.GST.Equal(money("29.50")))
	assert.True(t, air.GrandTotal.Equal(money("324.50")))
}

func TestCalculateQuoteTotalsEmptyQuote(t *testing.T) {
	totals := CalculateQuoteTotals(nil, decimal.Zero, decimal.Zero, models.ShippingMethodSea, decimal.Zero, decimal.Zero)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GST.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestRecalculateQuoteIsIdempotent(t *testing.T) {
	quote := &models.Quote{
		Items: []models.QuoteLineItem{
			{Quantity: 3, UnitPrice: money("19.99")},
		},
		SeaShippingCost:   money("42.10"),
		AirShippingCost:   money("120"),
		SelectedShipping:  models.ShippingMethodSea,
		AgentFees:         money("7.35"),
		LocalShippingFees: money("3.15"),
	}

	RecalculateQuote(quote)
	first := *quote
	RecalculateQuote(quote)

	assert.True(t, quote.SubtotalAmount.Equal(first.SubtotalAmount))
	assert.True(t, quote.GSTAmount.Equal(first.GSTAmount))
	assert.True(t, quote.GrandTotalAmount.Equal(first.GrandTotalAmount))
}

func TestRecalculateQuoteRoundsToCents(t *testing.T) {
	quote := &models.Quote{
		Items: []models.QuoteLineItem{
			{Quantity: 3, UnitPrice: money("33.33")},
		},
		SelectedShipping: models.ShippingMethodSea,
	}

	RecalculateQuote(quote)

	// 99.99 subtotal, 9.999 GST rounds to 10.00, grand total rounds from 109.989
	assert.True(t, quote.SubtotalAmount.Equal(money("99.99")))
	assert.True(t, quote.GSTAmount.Equal(money("10.00")), "gst: %s", quote.GSTAmount)
	assert.True(t, quote.GrandTotalAmount.Equal(money("109.99")), "grand: %s", quote.GrandTotalAmount)
}
