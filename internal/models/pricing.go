package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FreightPricing is a reference record for a shipping route and method.
// Profit and margin are derived from cost and sell price at read time.
type FreightPricing struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	Method      ShippingMethod  `json:"method" gorm:"type:varchar(10);not null;index:idx_freight_pricing_method"`
	Route       string          `json:"route" gorm:"not null"`
	Description *string         `json:"description,omitempty"`
	CostPrice   decimal.Decimal `json:"costPrice" gorm:"type:decimal(12,2);not null"`
	SellPrice   decimal.Decimal `json:"sellPrice" gorm:"type:decimal(12,2);not null"`
	IsActive    bool            `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// AgentFeePricing is a reference record for an agent fee schedule row
type AgentFeePricing struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	AgentName   string          `json:"agentName" gorm:"not null"`
	ServiceType string          `json:"serviceType" gorm:"not null"`
	CostPrice   decimal.Decimal `json:"costPrice" gorm:"type:decimal(12,2);not null"`
	SellPrice   decimal.Decimal `json:"sellPrice" gorm:"type:decimal(12,2);not null"`
	IsActive    bool            `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PricingMargin holds the derived profit figures for a pricing record
type PricingMargin struct {
	Profit        decimal.Decimal `json:"profit"`
	MarginPercent decimal.Decimal `json:"marginPercent"`
}

// ExchangeRate records one fetched currency rate with its source
type ExchangeRate struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	BaseCurrency   string          `json:"baseCurrency" gorm:"type:varchar(3);not null;default:'AUD'"`
	TargetCurrency string          `json:"targetCurrency" gorm:"type:varchar(3);not null;index:idx_exchange_rates_target"`
	Rate           decimal.Decimal `json:"rate" gorm:"type:decimal(16,8);not null"`
	Source         string          `json:"source" gorm:"not null"`
	FetchedAt      time.Time       `json:"fetchedAt" gorm:"not null;index:idx_exchange_rates_fetched,sort:desc"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// RefreshedRate is one successfully refreshed rate in the refresh envelope
type RefreshedRate struct {
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Source         string          `json:"source"`
}

// RefreshRatesResponse is the JSON envelope returned by a rate refresh.
// Success is true when at least one currency was fetched and stored.
type RefreshRatesResponse struct {
	Success   bool            `json:"success"`
	Rates     []RefreshedRate `json:"rates,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// BeforeCreate hook to assign an ID
func (f *FreightPricing) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook to assign an ID
func (a *AgentFeePricing) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook to assign an ID
func (e *ExchangeRate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FreightPricing model
func (FreightPricing) TableName() string {
	return "freight_pricing"
}

// TableName returns the table name for the AgentFeePricing model
func (AgentFeePricing) TableName() string {
	return "agent_fee_pricing"
}

// TableName returns the table name for the ExchangeRate model
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}
