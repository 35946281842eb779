package repository

import (
	"errors"

	"gorm.io/gorm"

	"goparts-service/internal/models"
)

var ErrExchangeRateNotFound = errors.New("exchange rate not found")

type ExchangeRateRepository struct {
	db *gorm.DB
}

func NewExchangeRateRepository(db *gorm.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// Create stores a fetched rate with its source and timestamp
func (r *ExchangeRateRepository) Create(rate *models.ExchangeRate) error {
	return r.db.Create(rate).Error
}

// Latest returns the most recently fetched rate for a target currency
func (r *ExchangeRateRepository) Latest(targetCurrency string) (*models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := r.db.
		Where("target_currency = ?", targetCurrency).
		Order("fetched_at DESC").
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExchangeRateNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// List returns recent rates, newest first
func (r *ExchangeRateRepository) List(limit int) ([]models.ExchangeRate, error) {
	if limit <= 0 {
		limit = 50
	}
	var rates []models.ExchangeRate
	err := r.db.Order("fetched_at DESC").Limit(limit).Find(&rates).Error
	return rates, err
}
