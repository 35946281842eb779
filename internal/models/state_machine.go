package models

import "fmt"

// AllQuoteStatuses lists every persistable quote status
var AllQuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusAccepted,
	QuoteStatusRejected,
	QuoteStatusExpired,
	QuoteStatusConvertedToOrder,
}

// IsValidQuoteStatus checks whether the value is a known quote status
func IsValidQuoteStatus(status QuoteStatus) bool {
	for _, s := range AllQuoteStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// AllOrderStatuses lists every persistable order status
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPlaced,
	OrderStatusShipped,
	OrderStatusReceived,
	OrderStatusCancelled,
}

// IsValidOrderStatus checks whether the value is a known order status
func IsValidOrderStatus(status OrderStatus) bool {
	for _, s := range AllOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransitionQuoteStatus checks if a quote status transition is allowed.
// The quote lifecycle deliberately has no strict graph between the working
// statuses; the two rules are that converted_to_order is terminal and can
// only be reached through the conversion operation, never a plain update.
func CanTransitionQuoteStatus(from, to QuoteStatus) bool {
	if !IsValidQuoteStatus(to) {
		return false
	}
	if from == QuoteStatusConvertedToOrder {
		return false
	}
	if to == QuoteStatusConvertedToOrder {
		return false
	}
	return true
}

// ValidateQuoteStatusTransition returns an error if the transition is invalid
func ValidateQuoteStatusTransition(from, to QuoteStatus) error {
	if !IsValidQuoteStatus(to) {
		return fmt.Errorf("unknown quote status %q", to)
	}
	if from == QuoteStatusConvertedToOrder {
		return fmt.Errorf("quote has been converted to an order and can no longer change status")
	}
	if to == QuoteStatusConvertedToOrder {
		return fmt.Errorf("status %s can only be reached via the convert-to-order operation", QuoteStatusConvertedToOrder)
	}
	return nil
}

// IsTerminalQuoteStatus checks if the quote status is a terminal state
func IsTerminalQuoteStatus(status QuoteStatus) bool {
	return status == QuoteStatusConvertedToOrder
}

// DisplayName returns a human-readable name for the quote status
func (s QuoteStatus) DisplayName() string {
	switch s {
	case QuoteStatusDraft:
		return "Draft"
	case QuoteStatusSent:
		return "Sent"
	case QuoteStatusAccepted:
		return "Accepted"
	case QuoteStatusRejected:
		return "Rejected"
	case QuoteStatusExpired:
		return "Expired"
	case QuoteStatusConvertedToOrder:
		return "Converted to Order"
	default:
		return string(s)
	}
}
