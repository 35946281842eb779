package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"goparts-service/internal/models"
)

// Cache TTL constants
const (
	CategoryCacheTTL     = 30 * time.Minute // Categories rarely change
	CategoryListCacheTTL = 15 * time.Minute // Category lists
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryHasParts = errors.New("category still has parts assigned; merge or reassign them before deleting")
	ErrDuplicateName    = errors.New("a category with this name already exists")
)

type CategoryRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCategoryRepository(db *gorm.DB, redis *redis.Client) *CategoryRepository {
	return &CategoryRepository{
		db:    db,
		redis: redis,
	}
}

// invalidateCategoryCaches invalidates all category caches
func (r *CategoryRepository) invalidateCategoryCaches(ctx context.Context, categoryID *string) {
	if r.redis == nil {
		return
	}

	if categoryID != nil {
		r.redis.Del(ctx, fmt.Sprintf("goparts:categories:category:%s", *categoryID))
	}
	pattern := "goparts:categories:list:*"
	keys, _ := r.redis.Keys(ctx, pattern).Result()
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("name = ?", category.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	err := r.db.Create(category).Error
	if err == nil {
		r.invalidateCategoryCaches(context.Background(), nil)
	}
	return err
}

// GetByID retrieves a category by ID with caching
func (r *CategoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("goparts:categories:category:%s", id)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var category models.Category
			if err := json.Unmarshal([]byte(val), &category); err == nil {
				return &category, nil
			}
		}
	}

	var category models.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(category)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryCacheTTL)
		}
	}

	return &category, nil
}

// GetAll retrieves categories ordered by display order, with caching
func (r *CategoryRepository) GetAll(includeInactive bool, limit, offset int) ([]models.Category, int64, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("goparts:categories:list:%t:%d:%d", includeInactive, limit, offset)

	type categoriesResult struct {
		Categories []models.Category `json:"categories"`
		Total      int64             `json:"total"`
	}

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var result categoriesResult
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Categories, result.Total, nil
			}
		}
	}

	var categories []models.Category
	var total int64
	query := r.db.Model(&models.Category{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	query.Count(&total)
	err := query.Order("display_order ASC").Limit(limit).Offset(offset).Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	if r.redis != nil {
		result := categoriesResult{Categories: categories, Total: total}
		data, err := json.Marshal(result)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryListCacheTTL)
		}
	}

	return categories, total, nil
}

// rollupRow is the raw aggregate row returned by the rollup query
type rollupRow struct {
	CategoryID          uuid.UUID
	PartCount           int
	TotalInventoryValue decimal.Decimal
	AverageStockLevel   float64
	LowStockCount       int
}

// GetAllWithRollup retrieves categories together with their derived part
// rollups (part count, inventory value, average stock, low stock count).
// Rollups are computed from the parts table on every call, never cached.
func (r *CategoryRepository) GetAllWithRollup(includeInactive bool) ([]models.CategoryRollup, error) {
	var categories []models.Category
	query := r.db.Model(&models.Category{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("display_order ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	var rows []rollupRow
	err := r.db.Model(&models.Part{}).
		Select("category_id AS category_id, " +
			"COUNT(*) AS part_count, " +
			"COALESCE(SUM(unit_price * stock_level), 0) AS total_inventory_value, " +
			"COALESCE(AVG(stock_level), 0) AS average_stock_level, " +
			"COUNT(*) FILTER (WHERE stock_level < low_stock_threshold) AS low_stock_count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID]rollupRow, len(rows))
	for _, row := range rows {
		byCategory[row.CategoryID] = row
	}

	rollups := make([]models.CategoryRollup, len(categories))
	for i, category := range categories {
		rollups[i] = models.CategoryRollup{
			Category:            category,
			TotalInventoryValue: decimal.Zero,
		}
		if row, ok := byCategory[category.ID]; ok {
			rollups[i].PartCount = row.PartCount
			rollups[i].TotalInventoryValue = row.TotalInventoryValue
			rollups[i].AverageStockLevel = row.AverageStockLevel
			rollups[i].LowStockCount = row.LowStockCount
		}
	}
	return rollups, nil
}

// PartCount returns the number of parts assigned to a category
func (r *CategoryRepository) PartCount(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Part{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// NextDisplayOrder returns max(display_order)+1 across all categories
func (r *CategoryRepository) NextDisplayOrder() (int, error) {
	var max int
	err := r.db.Model(&models.Category{}).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Update updates a category
func (r *CategoryRepository) Update(category *models.Category) error {
	err := r.db.Save(category).Error
	if err == nil {
		categoryID := category.ID.String()
		r.invalidateCategoryCaches(context.Background(), &categoryID)
	}
	return err
}

// Delete hard-deletes a category. Callers must check PartCount first; the
// guard is re-checked here so a racing part assignment cannot slip through.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Part{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryHasParts
		}
		result := tx.Where("id = ?", id).Delete(&models.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err == nil {
		idStr := id.String()
		r.invalidateCategoryCaches(context.Background(), &idStr)
	}
	return err
}

// Reorder reassigns display_order = index+1 for the given ordered id list.
// Applied in a single transaction: a failed update rolls back every change so
// callers can re-fetch the true server state.
func (r *CategoryRepository) Reorder(ids []uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			result := tx.Model(&models.Category{}).
				Where("id = ?", id).
				Update("display_order", i+1)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
			}
		}
		return nil
	})
	if err == nil {
		r.invalidateCategoryCaches(context.Background(), nil)
	}
	return err
}

// Merge moves every part from the source category to the target category and
// deactivates the source, in one transaction. Returns the number of parts
// moved.
func (r *CategoryRepository) Merge(sourceID, targetID uuid.UUID) (int64, error) {
	var moved int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target models.Category
		if err := tx.Where("id = ?", targetID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		result := tx.Model(&models.Part{}).
			Where("category_id = ?", sourceID).
			Update("category_id", targetID)
		if result.Error != nil {
			return result.Error
		}
		moved = result.RowsAffected

		deactivate := tx.Model(&models.Category{}).
			Where("id = ?", sourceID).
			Update("is_active", false)
		if deactivate.Error != nil {
			return deactivate.Error
		}
		if deactivate.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err == nil {
		r.invalidateCategoryCaches(context.Background(), nil)
	}
	return moved, err
}

// ReassignParts moves the given parts to the target category. Returns the
// number of parts updated.
func (r *CategoryRepository) ReassignParts(partIDs []uuid.UUID, targetID uuid.UUID) (int64, error) {
	var updated int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", targetID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrCategoryNotFound
		}

		result := tx.Model(&models.Part{}).
			Where("id IN ?", partIDs).
			Update("category_id", targetID)
		if result.Error != nil {
			return result.Error
		}
		updated = result.RowsAffected
		return nil
	})
	if err == nil {
		r.invalidateCategoryCaches(context.Background(), nil)
	}
	return updated, err
}
