package events

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"goparts-service/internal/models"
)

// Event subjects published by this service
const (
	SubjectQuoteCreated       = "quote.created"
	SubjectQuoteStatusChanged = "quote.status_changed"
	SubjectQuoteConverted     = "quote.converted"
	SubjectCategoryMerged     = "category.merged"
	SubjectRatesRefreshed     = "rates.refreshed"
)

// Publisher publishes domain events to NATS for downstream consumers.
// Publishing is best-effort: failures are logged, never propagated to the
// request path.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// Event is the common envelope for all published events
type Event struct {
	EventType string      `json:"eventType"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewPublisher connects to NATS using NATS_URL (default nats://localhost:4222)
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("goparts-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "goparts-events"),
	}, nil
}

// Close drains and closes the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		if err := p.conn.Drain(); err != nil {
			p.conn.Close()
		}
	}
}

// PublishQuoteCreated publishes a quote.created event
func (p *Publisher) PublishQuoteCreated(quote *models.Quote) {
	p.publish(SubjectQuoteCreated, map[string]interface{}{
		"quoteId":     quote.ID.String(),
		"quoteNumber": quote.QuoteNumber,
		"customerId":  quote.CustomerID.String(),
		"grandTotal":  quote.GrandTotalAmount,
		"status":      quote.Status,
	})
}

// PublishQuoteStatusChanged publishes a quote.status_changed event
func (p *Publisher) PublishQuoteStatusChanged(quote *models.Quote, previous models.QuoteStatus) {
	p.publish(SubjectQuoteStatusChanged, map[string]interface{}{
		"quoteId":        quote.ID.String(),
		"quoteNumber":    quote.QuoteNumber,
		"previousStatus": previous,
		"newStatus":      quote.Status,
	})
}

// PublishQuoteConverted publishes a quote.converted event
func (p *Publisher) PublishQuoteConverted(quote *models.Quote, order *models.Order) {
	p.publish(SubjectQuoteConverted, map[string]interface{}{
		"quoteId":     quote.ID.String(),
		"quoteNumber": quote.QuoteNumber,
		"orderId":     order.ID.String(),
		"orderNumber": order.OrderNumber,
		"totalAmount": order.TotalAmount,
	})
}

// PublishCategoryMerged publishes a category.merged event
func (p *Publisher) PublishCategoryMerged(sourceID, targetID string, partsMoved int64) {
	p.publish(SubjectCategoryMerged, map[string]interface{}{
		"sourceId":   sourceID,
		"targetId":   targetID,
		"partsMoved": partsMoved,
	})
}

// PublishRatesRefreshed publishes a rates.refreshed event
func (p *Publisher) PublishRatesRefreshed(rates []models.RefreshedRate) {
	p.publish(SubjectRatesRefreshed, map[string]interface{}{
		"rates": rates,
	})
}

// publish marshals and sends the event asynchronously
func (p *Publisher) publish(subject string, payload interface{}) {
	event := Event{
		EventType: subject,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithField("subject", subject).WithError(err).Error("Failed to marshal event")
			return
		}
		if err := p.conn.Publish(subject, data); err != nil {
			p.logger.WithField("subject", subject).WithError(err).Error("Failed to publish event")
			return
		}
		p.logger.WithField("subject", subject).Debug("Event published")
	}()
}
