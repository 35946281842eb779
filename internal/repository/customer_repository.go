package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goparts-service/internal/models"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *CustomerRepository) GetByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// List retrieves customers, optionally filtered by a name/company search term
func (r *CustomerRepository) List(search string, limit, offset int) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR company ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}
