package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goparts-service/internal/models"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *SupplierRepository) GetByID(id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.Where("id = ?", id).First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) List(includeInactive bool) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	query := r.db.Order("name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&suppliers).Error
	return suppliers, err
}

func (r *SupplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}
