package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a parts supplier that orders are placed with.
// IsPlaceholder marks suppliers auto-created during quote conversion when no
// active supplier existed; they should be replaced with real records later.
type Supplier struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name          string    `json:"name" gorm:"not null"`
	ContactName   string    `json:"contactName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Country       string    `json:"country" gorm:"default:'JP'"`
	IsActive      bool      `json:"isActive" gorm:"not null;default:true;index:idx_suppliers_active"`
	IsPlaceholder bool      `json:"isPlaceholder" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BeforeCreate hook to assign an ID
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
