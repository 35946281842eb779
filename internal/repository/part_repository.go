package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"goparts-service/internal/models"
)

var ErrPartNotFound = errors.New("part not found")

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) GetByID(id uuid.UUID) (*models.Part, error) {
	var part models.Part
	err := r.db.Preload("Category").Where("id = ?", id).First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return &part, nil
}

// List retrieves parts, optionally filtered by category
func (r *PartRepository) List(categoryID *uuid.UUID, limit, offset int) ([]models.Part, int64, error) {
	query := r.db.Model(&models.Part{}).Where("is_active = ?", true)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var parts []models.Part
	err := query.Order("part_number ASC").Limit(limit).Offset(offset).Find(&parts).Error
	if err != nil {
		return nil, 0, err
	}
	return parts, total, nil
}

// LatestPrice returns the most recent historical unit price for a part,
// falling back to the part's own unit price when no history exists.
func (r *PartRepository) LatestPrice(partID uuid.UUID) (decimal.Decimal, error) {
	var history models.PartPriceHistory
	err := r.db.
		Where("part_id = ?", partID).
		Order("recorded_at DESC").
		First(&history).Error
	if err == nil {
		return history.UnitPrice, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	part, err := r.GetByID(partID)
	if err != nil {
		return decimal.Zero, err
	}
	return part.UnitPrice, nil
}
