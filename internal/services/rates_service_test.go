package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goparts-service/internal/clients"
	"goparts-service/internal/repository"
)

func frankfurterStub(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "AUD", r.URL.Query().Get("base"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"AUD","rates":{"JPY":97.53,"USD":0.6512}}`))
	}))
}

func openERAPIStub(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		assert.Equal(t, "/v6/latest/AUD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"success","rates":{"JPY":97.60,"USD":0.6520}}`))
	}))
}

func TestRefreshRatesPrimaryProvider(t *testing.T) {
	primary := frankfurterStub(t, http.StatusOK)
	defer primary.Close()
	fallback := openERAPIStub(t, http.StatusOK)
	defer fallback.Close()

	db := newTestDB(t)
	repo := repository.NewExchangeRateRepository(db)
	svc := NewRatesService(repo,
		clients.NewFrankfurterClient(primary.URL),
		clients.NewOpenERAPIClient(fallback.URL),
		nil, newTestLogger())

	resp := svc.RefreshRates()
	require.True(t, resp.Success)
	require.Len(t, resp.Rates, 2)
	for _, rate := range resp.Rates {
		assert.Equal(t, "frankfurter", rate.Source)
	}

	stored, err := repo.List(10)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	for _, rate := range stored {
		assert.Equal(t, "AUD", rate.BaseCurrency)
		assert.False(t, rate.Rate.IsZero())
	}
}

func TestRefreshRatesFallsBack(t *testing.T) {
	primary := frankfurterStub(t, http.StatusInternalServerError)
	defer primary.Close()
	fallback := openERAPIStub(t, http.StatusOK)
	defer fallback.Close()

	db := newTestDB(t)
	svc := NewRatesService(repository.NewExchangeRateRepository(db),
		clients.NewFrankfurterClient(primary.URL),
		clients.NewOpenERAPIClient(fallback.URL),
		nil, newTestLogger())

	resp := svc.RefreshRates()
	require.True(t, resp.Success)
	require.Len(t, resp.Rates, 2)
	for _, rate := range resp.Rates {
		assert.Equal(t, "open-er-api", rate.Source)
	}
}

func TestRefreshRatesAllProvidersDown(t *testing.T) {
	primary := frankfurterStub(t, http.StatusInternalServerError)
	defer primary.Close()
	fallback := openERAPIStub(t, http.StatusBadGateway)
	defer fallback.Close()

	db := newTestDB(t)
	repo := repository.NewExchangeRateRepository(db)
	svc := NewRatesService(repo,
		clients.NewFrankfurterClient(primary.URL),
		clients.NewOpenERAPIClient(fallback.URL),
		nil, newTestLogger())

	resp := svc.RefreshRates()
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, resp.Rates)

	stored, err := repo.List(10)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestOpenERAPIRejectsNonSuccessResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"error","rates":{}}`))
	}))
	defer server.Close()

	client := clients.NewOpenERAPIClient(server.URL)
	_, err := client.FetchRate("AUD", "JPY")
	assert.Error(t, err)
}
