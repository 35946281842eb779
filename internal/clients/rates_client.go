package clients

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// RatesClient defines the interface for a currency rate provider
type RatesClient interface {
	// FetchRate returns the rate converting one unit of base currency into
	// the target currency.
	FetchRate(baseCurrency, targetCurrency string) (decimal.Decimal, error)
	// Source is the label persisted alongside rates fetched from this
	// provider.
	Source() string
}

// frankfurterClient fetches rates from a Frankfurter-compatible API
// (GET /latest?base=AUD&symbols=JPY)
type frankfurterClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFrankfurterClient creates the primary rate provider client
func NewFrankfurterClient(baseURL string) RatesClient {
	return &frankfurterClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *frankfurterClient) Source() string {
	return "frankfurter"
}

func (c *frankfurterClient) FetchRate(baseCurrency, targetCurrency string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/latest?base=%s&symbols=%s", c.baseURL, baseCurrency, targetCurrency)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch rate from frankfurter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("frankfurter returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode frankfurter response: %w", err)
	}

	rate, ok := payload.Rates[targetCurrency]
	if !ok {
		return decimal.Zero, fmt.Errorf("frankfurter response missing rate for %s", targetCurrency)
	}
	return rate, nil
}

// openERAPIClient fetches rates from an open.er-api.com-compatible API
// (GET /v6/latest/AUD)
type openERAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenERAPIClient creates the fallback rate provider client
func NewOpenERAPIClient(baseURL string) RatesClient {
	return &openERAPIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *openERAPIClient) Source() string {
	return "open-er-api"
}

func (c *openERAPIClient) FetchRate(baseCurrency, targetCurrency string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v6/latest/%s", c.baseURL, baseCurrency)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch rate from open-er-api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("open-er-api returned status %d", resp.StatusCode)
	}

	var payload struct {
		Result string                     `json:"result"`
		Rates  map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode open-er-api response: %w", err)
	}
	if payload.Result != "success" {
		return decimal.Zero, fmt.Errorf("open-er-api returned result %q", payload.Result)
	}

	rate, ok := payload.Rates[targetCurrency]
	if !ok {
		return decimal.Zero, fmt.Errorf("open-er-api response missing rate for %s", targetCurrency)
	}
	return rate, nil
}
