package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft            QuoteStatus = "draft"
	QuoteStatusSent             QuoteStatus = "sent"
	QuoteStatusAccepted         QuoteStatus = "accepted"
	QuoteStatusRejected         QuoteStatus = "rejected"
	QuoteStatusExpired          QuoteStatus = "expired"
	QuoteStatusConvertedToOrder QuoteStatus = "converted_to_order"
)

// ShippingMethod selects which of the two quoted freight costs applies
type ShippingMethod string

const (
	ShippingMethodSea ShippingMethod = "sea"
	ShippingMethodAir ShippingMethod = "air"
)

// Quote represents a priced, non-binding offer to a customer.
//
// Money invariants, enforced by the service on every write:
//
//	subtotal   = totalBidItemsCost + selected shipping + agentFees + localShippingFees
//	gstAmount  = subtotal * 0.10
//	grandTotal = subtotal + gstAmount
type Quote struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	QuoteNumber string      `json:"quoteNumber" gorm:"not null;uniqueIndex:idx_quotes_quote_number"`
	CustomerID  uuid.UUID   `json:"customerId" gorm:"type:uuid;not null;index:idx_quotes_customer"`
	Status      QuoteStatus `json:"status" gorm:"type:varchar(30);not null;default:'draft';index:idx_quotes_status"`

	TotalBidItemsCost decimal.Decimal `json:"totalBidItemsCost" gorm:"type:decimal(12,2);not null;default:0"`
	SeaShippingCost   decimal.Decimal `json:"seaShippingCost" gorm:"type:decimal(12,2);not null;default:0"`
	AirShippingCost   decimal.Decimal `json:"airShippingCost" gorm:"type:decimal(12,2);not null;default:0"`
	SelectedShipping  ShippingMethod  `json:"selectedShipping" gorm:"type:varchar(10);not null;default:'sea'"`
	AgentFees         decimal.Decimal `json:"agentFees" gorm:"type:decimal(12,2);not null;default:0"`
	LocalShippingFees decimal.Decimal `json:"localShippingFees" gorm:"type:decimal(12,2);not null;default:0"`
	SubtotalAmount    decimal.Decimal `json:"subtotalAmount" gorm:"type:decimal(12,2);not null;default:0"`
	GSTAmount         decimal.Decimal `json:"gstAmount" gorm:"type:decimal(12,2);not null;default:0"`
	GrandTotalAmount  decimal.Decimal `json:"grandTotalAmount" gorm:"type:decimal(12,2);not null;default:0"`

	QuoteDate  time.Time `json:"quoteDate" gorm:"not null"`
	ExpiryDate time.Time `json:"expiryDate" gorm:"not null"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedBy  string    `json:"createdBy"`

	// Set only when the quote is converted into an order. Terminal.
	ConvertedToOrderID     *uuid.UUID `json:"convertedToOrderId,omitempty" gorm:"type:uuid"`
	ConvertedToOrderNumber *string    `json:"convertedToOrderNumber,omitempty"`

	CreatedAt time.Time      `json:"createdAt" gorm:"index:idx_quotes_created,sort:desc"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Customer *Customer       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []QuoteLineItem `json:"items" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// QuoteLineItem is one priced row within a quote. Exactly one of the two
// shapes must hold: a catalog part reference (PartID set, custom fields empty)
// or a custom free-text item (IsCustomPart true, PartID nil).
type QuoteLineItem struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	QuoteID uuid.UUID `json:"quoteId" gorm:"type:uuid;not null;index:idx_quote_line_items_quote"`

	PartID                *uuid.UUID `json:"partId,omitempty" gorm:"type:uuid"`
	IsCustomPart          bool       `json:"isCustomPart" gorm:"not null;default:false"`
	CustomPartName        *string    `json:"customPartName,omitempty"`
	CustomPartDescription *string    `json:"customPartDescription,omitempty"`

	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Part *Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

// Validate checks the line item shape invariant and quantity/price bounds
func (li *QuoteLineItem) Validate() error {
	if li.Quantity <= 0 {
		return fmt.Errorf("line item quantity must be greater than zero")
	}
	if li.UnitPrice.IsNegative() {
		return fmt.Errorf("line item unit price must not be negative")
	}
	if li.IsCustomPart {
		if li.PartID != nil {
			return fmt.Errorf("custom line item must not reference a catalog part")
		}
		if li.CustomPartName == nil || *li.CustomPartName == "" {
			return fmt.Errorf("custom line item requires a custom part name")
		}
		return nil
	}
	if li.PartID == nil {
		return fmt.Errorf("line item must reference a catalog part or be marked custom")
	}
	if li.CustomPartName != nil || li.CustomPartDescription != nil {
		return fmt.Errorf("catalog line item must not carry custom part fields")
	}
	return nil
}

// IsExpired reports whether the quote should display as expired. Derived at
// read time, never cached: accepted and converted quotes never expire.
func (q *Quote) IsExpired(now time.Time) bool {
	if q.Status == QuoteStatusAccepted || q.Status == QuoteStatusConvertedToOrder {
		return false
	}
	return q.ExpiryDate.Before(now)
}

// BeforeCreate hook to assign an ID and generate the quote number
func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.QuoteNumber == "" {
		q.QuoteNumber = GenerateQuoteNumber(time.Now())
	}
	return
}

// BeforeCreate hook to assign an ID
func (li *QuoteLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// GenerateQuoteNumber creates a quote number in the form
// QTE-<4-digit year>-<last 6 digits of the millisecond timestamp>.
func GenerateQuoteNumber(now time.Time) string {
	return fmt.Sprintf("QTE-%d-%06d", now.Year(), now.UnixMilli()%1000000)
}

// QuoteLineItemRequest represents one line item in a create/update request
type QuoteLineItemRequest struct {
	PartID                *uuid.UUID      `json:"partId,omitempty"`
	IsCustomPart          bool            `json:"isCustomPart"`
	CustomPartName        *string         `json:"customPartName,omitempty"`
	CustomPartDescription *string         `json:"customPartDescription,omitempty"`
	Quantity              int             `json:"quantity" binding:"required"`
	UnitPrice             decimal.Decimal `json:"unitPrice"`
}

// CreateQuoteRequest represents a request to create a quote
type CreateQuoteRequest struct {
	CustomerID        uuid.UUID              `json:"customerId" binding:"required"`
	Items             []QuoteLineItemRequest `json:"items" binding:"required,min=1"`
	SeaShippingCost   decimal.Decimal        `json:"seaShippingCost"`
	AirShippingCost   decimal.Decimal        `json:"airShippingCost"`
	SelectedShipping  ShippingMethod         `json:"selectedShipping"`
	AgentFees         decimal.Decimal        `json:"agentFees"`
	LocalShippingFees decimal.Decimal        `json:"localShippingFees"`
	QuoteDate         *time.Time             `json:"quoteDate,omitempty"`
	ExpiryDate        *time.Time             `json:"expiryDate,omitempty"`
	Notes             *string                `json:"notes,omitempty"`
}

// UpdateQuoteRequest represents a partial update of a quote. Any change to
// items, fees or shipping selection triggers a full recalculation of totals.
type UpdateQuoteRequest struct {
	Items             []QuoteLineItemRequest `json:"items,omitempty"`
	SeaShippingCost   *decimal.Decimal       `json:"seaShippingCost,omitempty"`
	AirShippingCost   *decimal.Decimal       `json:"airShippingCost,omitempty"`
	SelectedShipping  *ShippingMethod        `json:"selectedShipping,omitempty"`
	AgentFees         *decimal.Decimal       `json:"agentFees,omitempty"`
	LocalShippingFees *decimal.Decimal       `json:"localShippingFees,omitempty"`
	QuoteDate         *time.Time             `json:"quoteDate,omitempty"`
	ExpiryDate        *time.Time             `json:"expiryDate,omitempty"`
	Notes             *string                `json:"notes,omitempty"`
}

// UpdateQuoteStatusRequest represents a status update request
type UpdateQuoteStatusRequest struct {
	Status QuoteStatus `json:"status" binding:"required"`
	Notes  string      `json:"notes"`
}

// QuoteListFilters represents filters for quote list queries
type QuoteListFilters struct {
	CustomerID *uuid.UUID
	Status     *QuoteStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// TableName returns the table name for the QuoteLineItem model
func (QuoteLineItem) TableName() string {
	return "quote_line_items"
}
