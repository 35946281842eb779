package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goparts-service/internal/models"
)

var ErrPricingRecordNotFound = errors.New("pricing record not found")

type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// Freight pricing

func (r *PricingRepository) CreateFreight(record *models.FreightPricing) error {
	return r.db.Create(record).Error
}

func (r *PricingRepository) GetFreightByID(id uuid.UUID) (*models.FreightPricing, error) {
	var record models.FreightPricing
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPricingRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PricingRepository) ListFreight(method *models.ShippingMethod) ([]models.FreightPricing, error) {
	var records []models.FreightPricing
	query := r.db.Where("is_active = ?", true).Order("route ASC")
	if method != nil {
		query = query.Where("method = ?", *method)
	}
	err := query.Find(&records).Error
	return records, err
}

func (r *PricingRepository) UpdateFreight(record *models.FreightPricing) error {
	return r.db.Save(record).Error
}

func (r *PricingRepository) DeleteFreight(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.FreightPricing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPricingRecordNotFound
	}
	return nil
}

// Agent fee pricing

func (r *PricingRepository) CreateAgentFee(record *models.AgentFeePricing) error {
	return r.db.Create(record).Error
}

func (r *PricingRepository) GetAgentFeeByID(id uuid.UUID) (*models.AgentFeePricing, error) {
	var record models.AgentFeePricing
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPricingRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PricingRepository) ListAgentFees() ([]models.AgentFeePricing, error) {
	var records []models.AgentFeePricing
	err := r.db.Where("is_active = ?", true).Order("agent_name ASC").Find(&records).Error
	return records, err
}

func (r *PricingRepository) UpdateAgentFee(record *models.AgentFeePricing) error {
	return r.db.Save(record).Error
}

func (r *PricingRepository) DeleteAgentFee(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.AgentFeePricing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPricingRecordNotFound
	}
	return nil
}
