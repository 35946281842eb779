package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/clients"
	"goparts-service/internal/events"
	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

// baseCurrency is the settlement currency all rates are quoted against
const baseCurrency = "AUD"

// targetCurrencies are the currencies refreshed on every run
var targetCurrencies = []string{"JPY", "USD"}

// RatesService refreshes AUD exchange rates from a primary provider with a
// fallback provider, persisting every successful lookup
type RatesService struct {
	repo            *repository.ExchangeRateRepository
	primary         clients.RatesClient
	fallback        clients.RatesClient
	eventsPublisher *events.Publisher
	logger          *logrus.Entry
}

// NewRatesService creates a new rates service
func NewRatesService(repo *repository.ExchangeRateRepository, primary, fallback clients.RatesClient, eventsPublisher *events.Publisher, logger *logrus.Logger) *RatesService {
	return &RatesService{
		repo:            repo,
		primary:         primary,
		fallback:        fallback,
		eventsPublisher: eventsPublisher,
		logger:          logger.WithField("component", "rates-service"),
	}
}

// RefreshRates fetches and stores the AUD rate for every target currency.
// Each currency tries the primary provider first and the fallback on any
// failure; a currency failing on both providers is logged and skipped. The
// envelope reports success when at least one currency was stored.
func (s *RatesService) RefreshRates() *models.RefreshRatesResponse {
	response := &models.RefreshRatesResponse{
		Timestamp: time.Now().UTC(),
	}

	for _, currency := range targetCurrencies {
		rate, source, err := s.fetchWithFallback(currency)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"targetCurrency": currency,
			}).WithError(err).Error("Failed to fetch rate from all providers, skipping")
			continue
		}

		record := &models.ExchangeRate{
			BaseCurrency:   baseCurrency,
			TargetCurrency: currency,
			Rate:           rate,
			Source:         source,
			FetchedAt:      time.Now().UTC(),
		}
		if err := s.repo.Create(record); err != nil {
			s.logger.WithFields(logrus.Fields{
				"targetCurrency": currency,
				"source":         source,
			}).WithError(err).Error("Failed to persist rate, skipping")
			continue
		}

		s.logger.WithFields(logrus.Fields{
			"targetCurrency": currency,
			"rate":           rate,
			"source":         source,
		}).Info("Exchange rate refreshed")

		response.Rates = append(response.Rates, models.RefreshedRate{
			TargetCurrency: currency,
			Rate:           rate,
			Source:         source,
		})
	}

	if len(response.Rates) == 0 {
		response.Success = false
		response.Error = "failed to fetch rates for all target currencies"
		return response
	}

	response.Success = true
	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishRatesRefreshed(response.Rates)
	}
	return response
}

// ListRates returns recently stored rates, newest first
func (s *RatesService) ListRates(limit int) ([]models.ExchangeRate, error) {
	return s.repo.List(limit)
}

// fetchWithFallback tries the primary provider, then the fallback
func (s *RatesService) fetchWithFallback(currency string) (decimal.Decimal, string, error) {
	rate, err := s.primary.FetchRate(baseCurrency, currency)
	if err == nil {
		return rate, s.primary.Source(), nil
	}

	s.logger.WithFields(logrus.Fields{
		"targetCurrency": currency,
		"provider":       s.primary.Source(),
	}).WithError(err).Warn("Primary rate provider failed, trying fallback")

	rate, fallbackErr := s.fallback.FetchRate(baseCurrency, currency)
	if fallbackErr != nil {
		return decimal.Zero, "", fmt.Errorf("primary: %v; fallback: %w", err, fallbackErr)
	}
	return rate, s.fallback.Source(), nil
}
