package services

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

// tierLoading is the fixed secondary 10% loading applied on top of every
// tier markup. It predates this service and is kept for parity with the
// historical quoting figures; its business intent is unconfirmed, so do not
// fold it into the markup percentages.
var tierLoading = decimal.NewFromFloat(1.1)

// Tier markup percentages
var tierMarkups = map[models.PricingTier]decimal.Decimal{
	models.TierInternal:  decimal.NewFromInt(0),
	models.TierWholesale: decimal.NewFromInt(15),
	models.TierTrade:     decimal.NewFromInt(25),
	models.TierRetail:    decimal.NewFromInt(40),
}

// PricingService derives tier prices for parts and margin figures for
// freight and agent-fee reference records
type PricingService struct {
	partRepo *repository.PartRepository
}

// NewPricingService creates a new pricing service
func NewPricingService(partRepo *repository.PartRepository) *PricingService {
	return &PricingService{partRepo: partRepo}
}

// TierPrice derives the sell price for one tier from the base price:
// base * (1 + markup/100) * 1.1
func TierPrice(basePrice decimal.Decimal, markupPercent decimal.Decimal) decimal.Decimal {
	markup := decimal.NewFromInt(1).Add(markupPercent.Div(decimal.NewFromInt(100)))
	return basePrice.Mul(markup).Mul(tierLoading).Round(2)
}

// TierPricesForPart derives all four tier prices from the part's latest
// historical unit price
func (s *PricingService) TierPricesForPart(partID uuid.UUID) (*models.TierPrices, error) {
	basePrice, err := s.partRepo.LatestPrice(partID)
	if err != nil {
		return nil, err
	}

	return &models.TierPrices{
		PartID:    partID,
		BasePrice: basePrice,
		Internal:  TierPrice(basePrice, tierMarkups[models.TierInternal]),
		Wholesale: TierPrice(basePrice, tierMarkups[models.TierWholesale]),
		Trade:     TierPrice(basePrice, tierMarkups[models.TierTrade]),
		Retail:    TierPrice(basePrice, tierMarkups[models.TierRetail]),
	}, nil
}

// Margin derives profit and margin percent from cost and sell prices.
// Margin is profit as a percentage of the sell price; zero sell price yields
// a zero margin rather than a division error.
func Margin(costPrice, sellPrice decimal.Decimal) models.PricingMargin {
	profit := sellPrice.Sub(costPrice)
	margin := decimal.Zero
	if !sellPrice.IsZero() {
		margin = profit.Div(sellPrice).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return models.PricingMargin{
		Profit:        profit.Round(2),
		MarginPercent: margin,
	}
}
