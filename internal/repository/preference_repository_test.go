package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"goparts-service/internal/models"
)

func newPreferenceTestRepo(t *testing.T) *PreferenceRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserPreference{}))
	return NewPreferenceRepository(db)
}

func TestPreferenceSaveAndGet(t *testing.T) {
	repo := newPreferenceTestRepo(t)

	require.NoError(t, repo.Save(&models.UserPreference{
		UserID: "buyer-1",
		Key:    "quotes.listFilters",
		Value:  models.JSON{"status": "sent"},
	}))

	pref, err := repo.Get("buyer-1", "quotes.listFilters")
	require.NoError(t, err)
	assert.Equal(t, "sent", pref.Value["status"])
}

func TestPreferenceSaveUpserts(t *testing.T) {
	repo := newPreferenceTestRepo(t)

	require.NoError(t, repo.Save(&models.UserPreference{
		UserID: "buyer-1",
		Key:    "quotes.listFilters",
		Value:  models.JSON{"status": "sent"},
	}))
	require.NoError(t, repo.Save(&models.UserPreference{
		UserID: "buyer-1",
		Key:    "quotes.listFilters",
		Value:  models.JSON{"status": "accepted"},
	}))

	pref, err := repo.Get("buyer-1", "quotes.listFilters")
	require.NoError(t, err)
	assert.Equal(t, "accepted", pref.Value["status"])
}

func TestPreferenceGetMissing(t *testing.T) {
	repo := newPreferenceTestRepo(t)

	_, err := repo.Get("buyer-1", "unknown")
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
}

func TestPreferencesAreScopedPerUser(t *testing.T) {
	repo := newPreferenceTestRepo(t)

	require.NoError(t, repo.Save(&models.UserPreference{
		UserID: "buyer-1",
		Key:    "quotes.listFilters",
		Value:  models.JSON{"status": "sent"},
	}))

	_, err := repo.Get("buyer-2", "quotes.listFilters")
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
}
