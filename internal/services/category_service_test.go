package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

func newCategoryFixture(t *testing.T) (*gorm.DB, *CategoryService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db, nil), nil, newTestLogger())
	return db, svc
}

func mustCreateCategory(t *testing.T, svc *CategoryService, name string) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(models.CreateCategoryRequest{Name: name}, "tester")
	require.NoError(t, err)
	return category
}

func addPart(t *testing.T, db *gorm.DB, categoryID uuid.UUID, partNumber string, stock, threshold int, price string) *models.Part {
	t.Helper()
	part := &models.Part{
		PartNumber:        partNumber,
		Name:              "Part " + partNumber,
		CategoryID:        &categoryID,
		UnitPrice:         money(price),
		StockLevel:        stock,
		LowStockThreshold: threshold,
		IsActive:          true,
	}
	require.NoError(t, db.Create(part).Error)
	return part
}

func TestCreateCategoryAssignsNextDisplayOrder(t *testing.T) {
	_, svc := newCategoryFixture(t)

	first := mustCreateCategory(t, svc, "Brakes")
	second := mustCreateCategory(t, svc, "Suspension")

	assert.Equal(t, 1, first.DisplayOrder)
	assert.Equal(t, 2, second.DisplayOrder)
	assert.True(t, first.IsActive)
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	_, svc := newCategoryFixture(t)

	mustCreateCategory(t, svc, "Brakes")
	_, err := svc.CreateCategory(models.CreateCategoryRequest{Name: "Brakes"}, "tester")
	assert.ErrorIs(t, err, repository.ErrDuplicateName)
}

func TestCreateCategoryRejectsBlankName(t *testing.T) {
	_, svc := newCategoryFixture(t)

	_, err := svc.CreateCategory(models.CreateCategoryRequest{Name: "   "}, "tester")
	assert.Error(t, err)
}

func TestReorderCategories(t *testing.T) {
	_, svc := newCategoryFixture(t)

	a := mustCreateCategory(t, svc, "Brakes")
	b := mustCreateCategory(t, svc, "Suspension")
	c := mustCreateCategory(t, svc, "Electrical")

	require.NoError(t, svc.ReorderCategories(models.ReorderCategoriesRequest{
		CategoryIDs: []uuid.UUID{c.ID, a.ID, b.ID},
	}))

	categories, _, err := svc.ListCategories(true, 10, 0)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Electrical", categories[0].Name)
	assert.Equal(t, "Brakes", categories[1].Name)
	assert.Equal(t, "Suspension", categories[2].Name)
	assert.Equal(t, []int{1, 2, 3}, []int{categories[0].DisplayOrder, categories[1].DisplayOrder, categories[2].DisplayOrder})
}

func TestReorderRollsBackOnUnknownID(t *testing.T) {
	_, svc := newCategoryFixture(t)

	a := mustCreateCategory(t, svc, "Brakes")
	b := mustCreateCategory(t, svc, "Suspension")

	err := svc.ReorderCategories(models.ReorderCategoriesRequest{
		CategoryIDs: []uuid.UUID{b.ID, a.ID, uuid.New()},
	})
	require.Error(t, err)

	// nothing moved; callers re-fetch the authoritative order
	categories, _, err := svc.ListCategories(true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "Brakes", categories[0].Name)
	assert.Equal(t, "Suspension", categories[1].Name)
}

func TestReorderRejectsDuplicateIDs(t *testing.T) {
	_, svc := newCategoryFixture(t)
	a := mustCreateCategory(t, svc, "Brakes")

	err := svc.ReorderCategories(models.ReorderCategoriesRequest{
		CategoryIDs: []uuid.UUID{a.ID, a.ID},
	})
	assert.Error(t, err)
}

func TestDeleteCategoryGuardedByParts(t *testing.T) {
	db, svc := newCategoryFixture(t)

	category := mustCreateCategory(t, svc, "Brakes")
	addPart(t, db, category.ID, "BRK-1", 10, 5, "25")

	err := svc.DeleteCategory(category.ID)
	assert.ErrorIs(t, err, repository.ErrCategoryHasParts)

	// after moving the parts away the delete succeeds
	other := mustCreateCategory(t, svc, "Suspension")
	_, err = svc.ReassignParts(models.ReassignPartsRequest{
		PartIDs:          []uuid.UUID{mustPartIDs(t, db, category.ID)[0]},
		TargetCategoryID: other.ID,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(category.ID))

	_, err = svc.GetCategory(category.ID)
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func mustPartIDs(t *testing.T, db *gorm.DB, categoryID uuid.UUID) []uuid.UUID {
	t.Helper()
	var parts []models.Part
	require.NoError(t, db.Where("category_id = ?", categoryID).Find(&parts).Error)
	ids := make([]uuid.UUID, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
	}
	return ids
}

func TestMergeCategories(t *testing.T) {
	db, svc := newCategoryFixture(t)

	source := mustCreateCategory(t, svc, "Brakes")
	target := mustCreateCategory(t, svc, "Braking Systems")
	addPart(t, db, source.ID, "BRK-1", 10, 5, "25")
	addPart(t, db, source.ID, "BRK-2", 2, 5, "80")

	result, err := svc.MergeCategories(source.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(2), result.PartsMoved)

	var moved int64
	require.NoError(t, db.Model(&models.Part{}).Where("category_id = ?", target.ID).Count(&moved).Error)
	assert.Equal(t, int64(2), moved)

	merged, err := svc.GetCategory(source.ID)
	require.NoError(t, err)
	assert.False(t, merged.IsActive, "source must be deactivated after merge")
}

func TestMergeCategoryIntoItself(t *testing.T) {
	_, svc := newCategoryFixture(t)
	category := mustCreateCategory(t, svc, "Brakes")

	_, err := svc.MergeCategories(category.ID, category.ID)
	assert.Error(t, err)
}

func TestMergeRequiresExistingTarget(t *testing.T) {
	db, svc := newCategoryFixture(t)
	source := mustCreateCategory(t, svc, "Brakes")
	addPart(t, db, source.ID, "BRK-1", 10, 5, "25")

	_, err := svc.MergeCategories(source.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)

	// parts stayed put
	var count int64
	require.NoError(t, db.Model(&models.Part{}).Where("category_id = ?", source.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListCategoryRollups(t *testing.T) {
	db, svc := newCategoryFixture(t)

	brakes := mustCreateCategory(t, svc, "Brakes")
	empty := mustCreateCategory(t, svc, "Suspension")
	addPart(t, db, brakes.ID, "BRK-1", 10, 5, "25")  // 250 inventory value
	addPart(t, db, brakes.ID, "BRK-2", 2, 5, "80")   // 160, low stock

	rollups, err := svc.ListCategoryRollups(true)
	require.NoError(t, err)
	require.Len(t, rollups, 2)

	byName := map[string]models.CategoryRollup{}
	for _, r := range rollups {
		byName[r.Name] = r
	}

	assert.Equal(t, 2, byName["Brakes"].PartCount)
	assert.True(t, byName["Brakes"].TotalInventoryValue.Equal(money("410")), "inventory value: %s", byName["Brakes"].TotalInventoryValue)
	assert.InDelta(t, 6.0, byName["Brakes"].AverageStockLevel, 0.001)
	assert.Equal(t, 1, byName["Brakes"].LowStockCount)

	assert.Zero(t, byName["Suspension"].PartCount)
	assert.True(t, byName["Suspension"].TotalInventoryValue.IsZero())
	_ = empty
}
