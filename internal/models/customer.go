package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer that quotes are issued to
type Customer struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email" gorm:"not null;index:idx_customers_email"`
	Phone      string    `json:"phone"`
	Company    string    `json:"company"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country" gorm:"default:'AU'"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BeforeCreate hook to assign an ID
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// UpdateCustomerRequest represents a partial update of a customer
type UpdateCustomerRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Company    *string `json:"company,omitempty"`
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
