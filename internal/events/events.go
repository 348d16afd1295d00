// Package events publishes domain notifications after state changes commit.
package events

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the services.
const (
	TypeProductCreated = "product.created"
	TypeProductUpdated = "product.updated"
	TypeProductDeleted = "product.deleted"
	TypeStockUpdated   = "stock.updated"
	TypeOrderCreated   = "order.created"
	TypeOrderUpdated   = "order.updated"
)

// Event is the envelope written to the broker.
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// New builds an event keyed by product id so that all changes to one product
// land on the same partition in order.
func New(eventType string, productID int64, payload interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Key:        strconv.FormatInt(productID, 10),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// StockChange is the payload of stock.updated.
type StockChange struct {
	ProductID int64 `json:"productId"`
	Previous  int   `json:"previous"`
	Current   int   `json:"current"`
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	// Publish sends a single event.
	Publish(ctx context.Context, event Event) error

	// Close releases resources held by the publisher.
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close() error { return nil }
