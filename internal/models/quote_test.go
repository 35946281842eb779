package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestQuoteLineItemValidate(t *testing.T) {
	partID := uuid.New()

	tests := []struct {
		name    string
		item    QuoteLineItem
		wantErr bool
	}{
		{
			name: "catalog item",
			item: QuoteLineItem{PartID: &partID, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
		{
			name: "custom item",
			item: QuoteLineItem{IsCustomPart: true, CustomPartName: strPtr("Bracket"), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
		{
			name:    "zero quantity",
			item:    QuoteLineItem{PartID: &partID, Quantity: 0, UnitPrice: decimal.NewFromInt(10)},
			wantErr: true,
		},
		{
			name:    "negative price",
			item:    QuoteLineItem{PartID: &partID, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
			wantErr: true,
		},
		{
			name:    "custom item referencing a part",
			item:    QuoteLineItem{IsCustomPart: true, CustomPartName: strPtr("Bracket"), PartID: &partID, Quantity: 1},
			wantErr: true,
		},
		{
			name:    "custom item without a name",
			item:    QuoteLineItem{IsCustomPart: true, Quantity: 1},
			wantErr: true,
		},
		{
			name:    "neither shape",
			item:    QuoteLineItem{Quantity: 1},
			wantErr: true,
		},
		{
			name:    "catalog item with custom fields",
			item:    QuoteLineItem{PartID: &partID, CustomPartName: strPtr("Bracket"), Quantity: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteIsExpiredDerivedAtReadTime(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.False(t, (&Quote{Status: QuoteStatusSent, ExpiryDate: future}).IsExpired(now))
	assert.True(t, (&Quote{Status: QuoteStatusSent, ExpiryDate: past}).IsExpired(now))
	assert.True(t, (&Quote{Status: QuoteStatusDraft, ExpiryDate: past}).IsExpired(now))

	// accepted and converted quotes never display as expired
	assert.False(t, (&Quote{Status: QuoteStatusAccepted, ExpiryDate: past}).IsExpired(now))
	assert.False(t, (&Quote{Status: QuoteStatusConvertedToOrder, ExpiryDate: past}).IsExpired(now))
}

func TestDocumentNumberFormats(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

	quoteNumber := GenerateQuoteNumber(at)
	orderNumber := GenerateOrderNumber(at)

	assert.Regexp(t, `^QTE-2026-\d{6}$`, quoteNumber)
	assert.Regexp(t, `^ORD-2026-\d{6}$`, orderNumber)

	// the six digit suffix is zero padded even for small timestamp remainders
	early := time.Unix(0, int64(42)*int64(time.Millisecond))
	assert.Regexp(t, `-000042$`, GenerateQuoteNumber(early))
}
