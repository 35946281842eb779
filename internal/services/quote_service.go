package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/events"
	"goparts-service/internal/models"
	"goparts-service/internal/repository"
)

// defaultQuoteValidity is applied when a create request omits the expiry date
const defaultQuoteValidity = 30 * 24 * time.Hour

// QuoteService defines the business logic interface for quotes
type QuoteService interface {
	CreateQuote(ctx context.Context, req models.CreateQuoteRequest, createdBy string) (*models.Quote, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	ListQuotes(ctx context.Context, filters models.QuoteListFilters) ([]models.Quote, int64, error)
	UpdateQuote(ctx context.Context, id uuid.UUID, req models.UpdateQuoteRequest) (*models.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) (*models.Quote, error)
	ConvertQuoteToOrder(ctx context.Context, id uuid.UUID, convertedBy string) (*models.ConvertQuoteResponse, error)
}

type quoteService struct {
	repo            repository.QuoteRepositoryInterface
	eventsPublisher *events.Publisher
	logger          *logrus.Entry
}

// NewQuoteService creates a new quote service
func NewQuoteService(repo repository.QuoteRepositoryInterface, eventsPublisher *events.Publisher, logger *logrus.Logger) QuoteService {
	return &quoteService{
		repo:            repo,
		eventsPublisher: eventsPublisher,
		logger:          logger.WithField("component", "quote-service"),
	}
}

// buildLineItems validates request items and converts them into models,
// keeping totalPrice consistent with unitPrice * quantity
func buildLineItems(reqItems []models.QuoteLineItemRequest) ([]models.QuoteLineItem, error) {
	items := make([]models.QuoteLineItem, 0, len(reqItems))
	for i, reqItem := range reqItems {
		item := models.QuoteLineItem{
			ID:                    uuid.New(),
			PartID:                reqItem.PartID,
			IsCustomPart:          reqItem.IsCustomPart,
			CustomPartName:        reqItem.CustomPartName,
			CustomPartDescription: reqItem.CustomPartDescription,
			Quantity:              reqItem.Quantity,
			UnitPrice:             reqItem.UnitPrice,
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		item.TotalPrice = item.UnitPrice.Mul(decimalFromInt(item.Quantity)).Round(2)
		items = append(items, item)
	}
	return items, nil
}

// validateFees rejects negative fee and freight inputs before calculation
func validateFees(quote *models.Quote) error {
	if quote.SeaShippingCost.IsNegative() || quote.AirShippingCost.IsNegative() {
		return fmt.Errorf("shipping costs must not be negative")
	}
	if quote.AgentFees.IsNegative() {
		return fmt.Errorf("agent fees must not be negative")
	}
	if quote.LocalShippingFees.IsNegative() {
		return fmt.Errorf("local shipping fees must not be negative")
	}
	if quote.SelectedShipping != models.ShippingMethodSea && quote.SelectedShipping != models.ShippingMethodAir {
		return fmt.Errorf("selected shipping must be %q or %q", models.ShippingMethodSea, models.ShippingMethodAir)
	}
	return nil
}

// CreateQuote validates the request, derives all totals and persists the
// quote in draft status
func (s *quoteService) CreateQuote(ctx context.Context, req models.CreateQuoteRequest, createdBy string) (*models.Quote, error) {
	items, err := buildLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	quoteDate := now
	if req.QuoteDate != nil {
		quoteDate = *req.QuoteDate
	}
	expiryDate := quoteDate.Add(defaultQuoteValidity)
	if req.ExpiryDate != nil {
		expiryDate = *req.ExpiryDate
	}

	selected := req.SelectedShipping
	if selected == "" {
		selected = models.ShippingMethodSea
	}

	quote := &models.Quote{
		ID:                uuid.New(),
		CustomerID:        req.CustomerID,
		Status:            models.QuoteStatusDraft,
		Items:             items,
		SeaShippingCost:   req.SeaShippingCost,
		AirShippingCost:   req.AirShippingCost,
		SelectedShipping:  selected,
		AgentFees:         req.AgentFees,
		LocalShippingFees: req.LocalShippingFees,
		QuoteDate:         quoteDate,
		ExpiryDate:        expiryDate,
		Notes:             req.Notes,
		CreatedBy:         createdBy,
	}
	if err := validateFees(quote); err != nil {
		return nil, err
	}

	RecalculateQuote(quote)

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"quoteNumber": quote.QuoteNumber,
		"customerId":  quote.CustomerID,
		"grandTotal":  quote.GrandTotalAmount,
	}).Info("Quote created")

	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishQuoteCreated(quote)
	}

	return quote, nil
}

// GetQuote retrieves a quote by ID
func (s *quoteService) GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	return s.repo.GetByID(ctx, id)
}

// ListQuotes retrieves quotes matching the given filters
func (s *quoteService) ListQuotes(ctx context.Context, filters models.QuoteListFilters) ([]models.Quote, int64, error) {
	return s.repo.List(ctx, filters)
}

// UpdateQuote applies a partial update and recomputes every derived total.
// The new items and totals are persisted in one transaction so the money
// invariants can never drift.
func (s *quoteService) UpdateQuote(ctx context.Context, id uuid.UUID, req models.UpdateQuoteRequest) (*models.Quote, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if models.IsTerminalQuoteStatus(quote.Status) {
		return nil, fmt.Errorf("quote %s has been converted to an order and can no longer be edited", quote.QuoteNumber)
	}

	itemsChanged := false
	if req.Items != nil {
		items, err := buildLineItems(req.Items)
		if err != nil {
			return nil, err
		}
		quote.Items = items
		itemsChanged = true
	}
	if req.SeaShippingCost != nil {
		quote.SeaShippingCost = *req.SeaShippingCost
	}
	if req.AirShippingCost != nil {
		quote.AirShippingCost = *req.AirShippingCost
	}
	if req.SelectedShipping != nil {
		quote.SelectedShipping = *req.SelectedShipping
	}
	if req.AgentFees != nil {
		quote.AgentFees = *req.AgentFees
	}
	if req.LocalShippingFees != nil {
		quote.LocalShippingFees = *req.LocalShippingFees
	}
	if req.QuoteDate != nil {
		quote.QuoteDate = *req.QuoteDate
	}
	if req.ExpiryDate != nil {
		quote.ExpiryDate = *req.ExpiryDate
	}
	if req.Notes != nil {
		quote.Notes = req.Notes
	}
	if err := validateFees(quote); err != nil {
		return nil, err
	}

	RecalculateQuote(quote)

	err = s.repo.WithTransaction(ctx, func(txRepo repository.QuoteRepositoryInterface) error {
		if itemsChanged {
			if err := txRepo.ReplaceItems(ctx, quote.ID, quote.Items); err != nil {
				return err
			}
		}
		return txRepo.Update(ctx, quote)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	return quote, nil
}

// UpdateQuoteStatus sets a new status on a quote. Any status may follow any
// other, except that converted_to_order is terminal and only reachable via
// ConvertQuoteToOrder.
func (s *quoteService) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status models.QuoteStatus) (*models.Quote, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := models.ValidateQuoteStatusTransition(quote.Status, status); err != nil {
		return nil, err
	}

	previous := quote.Status
	quote.Status = status
	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"quoteNumber":    quote.QuoteNumber,
		"previousStatus": previous,
		"newStatus":      status,
	}).Info("Quote status updated")

	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishQuoteStatusChanged(quote, previous)
	}

	return quote, nil
}

// ConvertQuoteToOrder converts a quote into a purchase order. All four steps
// run in a single transaction: resolve or create a supplier, create the order
// with a snapshot of the quote's totals, copy the catalog line items, and mark
// the quote converted. Custom line items are intentionally not carried over;
// the response reports how many were dropped.
func (s *quoteService) ConvertQuoteToOrder(ctx context.Context, id uuid.UUID, convertedBy string) (*models.ConvertQuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.Status == models.QuoteStatusConvertedToOrder {
		return nil, fmt.Errorf("quote %s has already been converted", quote.QuoteNumber)
	}

	var order *models.Order
	dropped := 0

	err = s.repo.WithTransaction(ctx, func(txRepo repository.QuoteRepositoryInterface) error {
		supplier, err := txRepo.FindActiveSupplier(ctx)
		if err != nil {
			if err != repository.ErrSupplierNotFound {
				return err
			}
			supplier = &models.Supplier{
				ID:            uuid.New(),
				Name:          "Pending Supplier Assignment",
				IsActive:      true,
				IsPlaceholder: true,
			}
			if err := txRepo.CreateSupplier(ctx, supplier); err != nil {
				return fmt.Errorf("failed to create placeholder supplier: %w", err)
			}
			s.logger.WithField("supplierId", supplier.ID).Warn("No active supplier found, created placeholder")
		}

		shipping := SelectedShippingCost(quote.SeaShippingCost, quote.AirShippingCost, quote.SelectedShipping)
		order = &models.Order{
			ID:                uuid.New(),
			QuoteID:           &quote.ID,
			SupplierID:        supplier.ID,
			CustomerID:        quote.CustomerID,
			Status:            models.OrderStatusPending,
			Subtotal:          quote.SubtotalAmount,
			GSTAmount:         quote.GSTAmount,
			ShippingCost:      shipping,
			ShippingMethod:    quote.SelectedShipping,
			AgentFees:         quote.AgentFees,
			LocalShippingFees: quote.LocalShippingFees,
			TotalAmount:       quote.GrandTotalAmount,
			Notes:             fmt.Sprintf("Created from quote %s", quote.QuoteNumber),
			CreatedBy:         convertedBy,
		}

		for _, item := range quote.Items {
			if item.IsCustomPart || item.PartID == nil {
				dropped++
				continue
			}
			orderItem := models.OrderLineItem{
				ID:         uuid.New(),
				OrderID:    order.ID,
				PartID:     *item.PartID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.TotalPrice,
			}
			if item.Part != nil {
				orderItem.PartName = item.Part.Name
				orderItem.PartNumber = item.Part.PartNumber
			}
			order.Items = append(order.Items, orderItem)
		}

		if err := txRepo.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		quote.Status = models.QuoteStatusConvertedToOrder
		quote.ConvertedToOrderID = &order.ID
		quote.ConvertedToOrderNumber = &order.OrderNumber
		if err := txRepo.Update(ctx, quote); err != nil {
			return fmt.Errorf("failed to mark quote as converted: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"quoteNumber":        quote.QuoteNumber,
		"orderNumber":        order.OrderNumber,
		"totalAmount":        order.TotalAmount,
		"droppedCustomItems": dropped,
	}).Info("Quote converted to order")

	if s.eventsPublisher != nil {
		s.eventsPublisher.PublishQuoteConverted(quote, order)
	}

	return &models.ConvertQuoteResponse{
		Success:            true,
		Order:              order,
		Quote:              quote,
		DroppedCustomItems: dropped,
	}, nil
}
