package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSON type for PostgreSQL JSONB
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// UserPreference stores per-user UI state such as remembered list filters.
// The core services never read it; callers load it at the edge and pass the
// resulting filters into list queries explicitly.
type UserPreference struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    string    `json:"userId" gorm:"not null;uniqueIndex:idx_user_preferences_user_key"`
	Key       string    `json:"key" gorm:"not null;uniqueIndex:idx_user_preferences_user_key"`
	Value     JSON      `json:"value" gorm:"type:jsonb"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate hook to assign an ID
func (p *UserPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// SavePreferenceRequest represents a request to save a user preference
type SavePreferenceRequest struct {
	Value JSON `json:"value" binding:"required"`
}

// TableName returns the table name for the UserPreference model
func (UserPreference) TableName() string {
	return "user_preferences"
}
