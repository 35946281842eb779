package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goparts-service/internal/models"
)

var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrSupplierNotFound = errors.New("no supplier found")
)

// QuoteRepositoryInterface defines persistence operations for quotes and the
// records touched during quote conversion (orders, suppliers). Conversion and
// other multi-step writes run through WithTransaction so every step commits or
// rolls back together.
type QuoteRepositoryInterface interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	GetByNumber(ctx context.Context, quoteNumber string) (*models.Quote, error)
	List(ctx context.Context, filters models.QuoteListFilters) ([]models.Quote, int64, error)
	Update(ctx context.Context, quote *models.Quote) error
	ReplaceItems(ctx context.Context, quoteID uuid.UUID, items []models.QuoteLineItem) error

	FindActiveSupplier(ctx context.Context) (*models.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	CreateOrder(ctx context.Context, order *models.Order) error

	WithTransaction(ctx context.Context, fn func(txRepo QuoteRepositoryInterface) error) error
}

type QuoteRepository struct {
	db *gorm.DB
}

// Ensure QuoteRepository implements the interface
var _ QuoteRepositoryInterface = (*QuoteRepository)(nil)

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create creates a quote with its line items
func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

// GetByID retrieves a quote with items, part references and customer
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Part").
		Preload("Customer").
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// GetByNumber retrieves a quote by its human-readable quote number
func (r *QuoteRepository) GetByNumber(ctx context.Context, quoteNumber string) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Part").
		Preload("Customer").
		Where("quote_number = ?", quoteNumber).
		First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// List retrieves quotes matching the given filters, newest first
func (r *QuoteRepository) List(ctx context.Context, filters models.QuoteListFilters) ([]models.Quote, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Quote{})

	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("quote_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("quote_date <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}

	var quotes []models.Quote
	err := query.
		Preload("Items").
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// Update saves the quote row. Line items are managed via ReplaceItems.
func (r *QuoteRepository) Update(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Omit("Items", "Customer").Save(quote).Error
}

// ReplaceItems deletes the quote's line items and inserts the new set, so the
// persisted items always match the recalculated totals written alongside.
func (r *QuoteRepository) ReplaceItems(ctx context.Context, quoteID uuid.UUID, items []models.QuoteLineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", quoteID).Delete(&models.QuoteLineItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].QuoteID = quoteID
		}
		return tx.Create(&items).Error
	})
}

// FindActiveSupplier returns the first active supplier, if any
func (r *QuoteRepository) FindActiveSupplier(ctx context.Context) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// CreateSupplier creates a supplier record
func (r *QuoteRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

// CreateOrder creates an order with its line items
func (r *QuoteRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// WithTransaction runs fn against a repository bound to a single database
// transaction. Any error rolls back every write made inside fn.
func (r *QuoteRepository) WithTransaction(ctx context.Context, fn func(txRepo QuoteRepositoryInterface) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&QuoteRepository{db: tx})
	})
}
