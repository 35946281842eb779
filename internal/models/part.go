package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Part represents a catalog part available for quoting
type Part struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	PartNumber        string          `json:"partNumber" gorm:"not null;uniqueIndex:idx_parts_part_number"`
	Name              string          `json:"name" gorm:"not null"`
	Description       *string         `json:"description,omitempty"`
	CategoryID        *uuid.UUID      `json:"categoryId,omitempty" gorm:"type:uuid;index:idx_parts_category"`
	SupplierID        *uuid.UUID      `json:"supplierId,omitempty" gorm:"type:uuid;index"`
	UnitPrice         decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2);not null;default:0"`
	StockLevel        int             `json:"stockLevel" gorm:"not null;default:0"`
	LowStockThreshold int             `json:"lowStockThreshold" gorm:"not null;default:5"`
	IsActive          bool            `json:"isActive" gorm:"not null;default:true"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// PartPriceHistory records a historical purchase price for a part. The most
// recent entry is the base price used for tier price calculation.
type PartPriceHistory struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	PartID     uuid.UUID       `json:"partId" gorm:"type:uuid;not null;index:idx_part_price_history_part"`
	UnitPrice  decimal.Decimal `json:"unitPrice" gorm:"type:decimal(12,2);not null"`
	SupplierID *uuid.UUID      `json:"supplierId,omitempty" gorm:"type:uuid"`
	RecordedAt time.Time       `json:"recordedAt" gorm:"not null;index:idx_part_price_history_recorded,sort:desc"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// PricingTier identifies a customer pricing tier
type PricingTier string

const (
	TierInternal  PricingTier = "internal"
	TierWholesale PricingTier = "wholesale"
	TierTrade     PricingTier = "trade"
	TierRetail    PricingTier = "retail"
)

// TierPrices holds the derived sell price per pricing tier for a part
type TierPrices struct {
	PartID    uuid.UUID       `json:"partId"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Internal  decimal.Decimal `json:"internal"`
	Wholesale decimal.Decimal `json:"wholesale"`
	Trade     decimal.Decimal `json:"trade"`
	Retail    decimal.Decimal `json:"retail"`
}

// BeforeCreate hook to assign an ID
func (p *Part) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook to assign an ID
func (h *PartPriceHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Part model
func (Part) TableName() string {
	return "parts"
}

// TableName returns the table name for the PartPriceHistory model
func (PartPriceHistory) TableName() string {
	return "part_price_history"
}
