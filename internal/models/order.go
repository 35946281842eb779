package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle status of a purchase order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a purchase order created from an accepted quote. Monetary
// fields are a snapshot of the quote at conversion time and are not
// recalculated afterwards.
type Order struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	OrderNumber string      `json:"orderNumber" gorm:"not null;uniqueIndex:idx_orders_order_number"`
	QuoteID     *uuid.UUID  `json:"quoteId,omitempty" gorm:"type:uuid;index:idx_orders_quote"`
	SupplierID  uuid.UUID   `json:"supplierId" gorm:"type:uuid;not null;index:idx_orders_supplier"`
	CustomerID  uuid.UUID   `json:"customerId" gorm:"type:uuid;not null;index:idx_orders_customer"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`

	Subtotal          decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null;default:0"`
	GSTAmount         decimal.Decimal `json:"gstAmount" gorm:"type:decimal(12,2);not null;default:0"`
	ShippingCost      decimal.Decimal `json:"shippingCost" gorm:"type:decimal(12,2);not null;default:0"`
	ShippingMethod    ShippingMethod  `json:"shippingMethod" gorm:"type:varchar(10);not null;default:'sea'"`
	AgentFees         decimal.Decimal `json:"agentFees" gorm:"type:decimal(12,2);not null;default:0"`
	LocalShippingFees decimal.Decimal `json:"localShippingFees" gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount       decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`

	Notes     string         `json:"notes" gorm:"type:text"`
	CreatedBy string         `json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index:idx_orders_created,sort:desc"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Supplier *Supplier       `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Items    []OrderLineItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderLineItem is one catalog part row in a purchase order. Custom quote
// line items are not carried over at conversion.
type OrderLineItem struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID       `json:"orderId" gorm:"type:uuid;not null;index:idx_order_line_items_order"`
	PartID     uuid.UUID       `json:"partId" gorm:"type:uuid;not null"`
	PartName   string          `json:"partName" gorm:"not null"`
	PartNumber string          `json:"partNumber"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// BeforeCreate hook to assign an ID and generate the order number
func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.OrderNumber == "" {
		o.OrderNumber = GenerateOrderNumber(time.Now())
	}
	return
}

// BeforeCreate hook to assign an ID
func (li *OrderLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}

// GenerateOrderNumber creates an order number in the form
// ORD-<4-digit year>-<last 6 digits of the millisecond timestamp>.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%06d", now.Year(), now.UnixMilli()%1000000)
}

// ConvertQuoteResponse reports the outcome of a quote conversion
type ConvertQuoteResponse struct {
	Success            bool   `json:"success"`
	Order              *Order `json:"order"`
	Quote              *Quote `json:"quote"`
	DroppedCustomItems int    `json:"droppedCustomItems"`
}

// OrderListFilters represents filters for order list queries
type OrderListFilters struct {
	SupplierID *uuid.UUID
	Status     *OrderStatus
	Page       int
	Limit      int
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for the OrderLineItem model
func (OrderLineItem) TableName() string {
	return "order_line_items"
}
