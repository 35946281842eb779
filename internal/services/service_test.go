package services

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"goparts-service/internal/models"
)

// newTestDB opens a fresh in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Part{},
		&models.PartPriceHistory{},
		&models.Customer{},
		&models.Supplier{},
		&models.Quote{},
		&models.QuoteLineItem{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.FreightPricing{},
		&models.AgentFeePricing{},
		&models.ExchangeRate{},
		&models.UserPreference{},
	))
	return db
}

// newTestLogger returns a silent logger for service construction
func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
