package services

import (
	"github.com/shopspring/decimal"

	"goparts-service/internal/models"
)

// gstRate is the fixed 10% GST applied to every quote subtotal. Not
// configurable.
var gstRate = decimal.NewFromFloat(0.10)

// QuoteTotals holds the full set of derived monetary rollups for a quote.
// All four values are always recomputed together from the line items and fee
// inputs; nothing is incrementally patched.
type QuoteTotals struct {
	BidItemsTotal    decimal.Decimal
	SelectedShipping decimal.Decimal
	Subtotal         decimal.Decimal
	GST              decimal.Decimal
	GrandTotal       decimal.Decimal
}

// BidItemsTotal sums unitPrice * quantity over all line items
func BidItemsTotal(items []models.QuoteLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimalFromInt(item.Quantity)))
	}
	return total
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// SelectedShippingCost picks the freight cost matching the selected method
func SelectedShippingCost(sea, air decimal.Decimal, selected models.ShippingMethod) decimal.Decimal {
	if selected == models.ShippingMethodSea {
		return sea
	}
	return air
}

// CalculateQuoteTotals derives every monetary rollup for a quote. Pure and
// deterministic; validation of quantities and prices happens in the caller
// before this runs.
func CalculateQuoteTotals(items []models.QuoteLineItem, sea, air decimal.Decimal, selected models.ShippingMethod, agentFees, localShippingFees decimal.Decimal) QuoteTotals {
	bidItems := BidItemsTotal(items)
	shipping := SelectedShippingCost(sea, air, selected)
	subtotal := bidItems.Add(shipping).Add(agentFees).Add(localShippingFees)
	gst := subtotal.Mul(gstRate)
	return QuoteTotals{
		BidItemsTotal:    bidItems,
		SelectedShipping: shipping,
		Subtotal:         subtotal,
		GST:              gst,
		GrandTotal:       subtotal.Add(gst),
	}
}

// applyTotals writes freshly calculated totals onto a quote, rounded to cents
// only at this persistence boundary.
func applyTotals(quote *models.Quote, totals QuoteTotals) {
	quote.TotalBidItemsCost = totals.BidItemsTotal.Round(2)
	quote.SubtotalAmount = totals.Subtotal.Round(2)
	quote.GSTAmount = totals.GST.Round(2)
	quote.GrandTotalAmount = totals.GrandTotal.Round(2)
}

// RecalculateQuote recomputes and applies all derived totals for a quote from
// its current line items and fee inputs
func RecalculateQuote(quote *models.Quote) {
	totals := CalculateQuoteTotals(
		quote.Items,
		quote.SeaShippingCost,
		quote.AirShippingCost,
		quote.SelectedShipping,
		quote.AgentFees,
		quote.LocalShippingFees,
	)
	applyTotals(quote, totals)
}
