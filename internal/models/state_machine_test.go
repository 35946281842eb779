package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionQuoteStatus(t *testing.T) {
	working := []QuoteStatus{
		QuoteStatusDraft,
		QuoteStatusSent,
		QuoteStatusAccepted,
		QuoteStatusRejected,
		QuoteStatusExpired,
	}

	// any working status may follow any other, including going backwards
	for _, from := range working {
		for _, to := range working {
			assert.True(t, CanTransitionQuoteStatus(from, to), "%s -> %s", from, to)
		}
	}

	// converted_to_order is terminal and unreachable by plain update
	for _, status := range working {
		assert.False(t, CanTransitionQuoteStatus(QuoteStatusConvertedToOrder, status))
		assert.False(t, CanTransitionQuoteStatus(status, QuoteStatusConvertedToOrder))
	}

	assert.False(t, CanTransitionQuoteStatus(QuoteStatusDraft, QuoteStatus("archived")))
}

func TestValidateQuoteStatusTransitionErrors(t *testing.T) {
	assert.NoError(t, ValidateQuoteStatusTransition(QuoteStatusSent, QuoteStatusAccepted))
	assert.Error(t, ValidateQuoteStatusTransition(QuoteStatusConvertedToOrder, QuoteStatusDraft))
	assert.Error(t, ValidateQuoteStatusTransition(QuoteStatusAccepted, QuoteStatusConvertedToOrder))
	assert.Error(t, ValidateQuoteStatusTransition(QuoteStatusDraft, QuoteStatus("bogus")))
}

func TestIsTerminalQuoteStatus(t *testing.T) {
	assert.True(t, IsTerminalQuoteStatus(QuoteStatusConvertedToOrder))
	assert.False(t, IsTerminalQuoteStatus(QuoteStatusRejected))
	assert.False(t, IsTerminalQuoteStatus(QuoteStatusExpired))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range AllOrderStatuses {
		assert.True(t, IsValidOrderStatus(status))
	}
	assert.False(t, IsValidOrderStatus(OrderStatus("returned")))
}
