package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category represents a parts category used to group catalog parts.
// DisplayOrder is a dense positive ranking among active categories.
type Category struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name         string    `json:"name" gorm:"not null;uniqueIndex:idx_categories_name"`
	Description  *string   `json:"description,omitempty"`
	DisplayOrder int       `json:"displayOrder" gorm:"not null;default:1;index:idx_categories_display_order"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relationships
	Parts []Part `json:"parts,omitempty" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate hook to assign an ID
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CategoryRollup is the derived per-category inventory summary. It is never
// persisted; the repository computes it from the parts table at read time.
type CategoryRollup struct {
	Category
	PartCount           int             `json:"partCount"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	AverageStockLevel   float64         `json:"averageStockLevel"`
	LowStockCount       int             `json:"lowStockCount"`
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// UpdateCategoryRequest represents a partial update of a category
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// ReorderCategoriesRequest carries the full ordered list of category ids.
// DisplayOrder is reassigned as index+1 for every id, in one transaction.
type ReorderCategoriesRequest struct {
	CategoryIDs []uuid.UUID `json:"categoryIds" binding:"required,min=1"`
}

// MergeCategoriesRequest moves every part from the source category to the
// target category, then deactivates the source. Irreversible.
type MergeCategoriesRequest struct {
	TargetCategoryID uuid.UUID `json:"targetCategoryId" binding:"required"`
}

// ReassignPartsRequest moves an explicit set of parts to the target category.
type ReassignPartsRequest struct {
	PartIDs          []uuid.UUID `json:"partIds" binding:"required,min=1"`
	TargetCategoryID uuid.UUID   `json:"targetCategoryId" binding:"required"`
}

// MergeCategoriesResponse reports the outcome of a category merge
type MergeCategoriesResponse struct {
	Success    bool      `json:"success"`
	PartsMoved int64     `json:"partsMoved"`
	SourceID   uuid.UUID `json:"sourceId"`
	TargetID   uuid.UUID `json:"targetId"`
}

// PaginationInfo represents pagination information
type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Error represents error details
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
