package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"goparts-service/internal/models"
)

var ErrPreferenceNotFound = errors.New("preference not found")

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the saved preference for a user and key
func (r *PreferenceRepository) Get(userID, key string) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := r.db.Where("user_id = ? AND key = ?", userID, key).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, err
	}
	return &pref, nil
}

// Save upserts the preference value for a user and key
func (r *PreferenceRepository) Save(pref *models.UserPreference) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref).Error
}
