package service

import (
	"context"

	"ecommerce-ms/internal/events"
	"ecommerce-ms/internal/model"

	"github.com/rs/zerolog"
)

// Pagination bounds shared by the list operations. A zero limit means "all rows".
const maxPageSize = 1000

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves products ordered by id.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Count returns the number of products in the catalogue.
	Count(ctx context.Context) (int, error)

	// Create validates and stores a new product.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update validates and overwrites an existing product.
	Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product; orders referencing it are kept.
	Delete(ctx context.Context, id int64) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder places an order, deducting stock in the same transaction.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResult, error)

	// UpdateOrder changes product and quantity of an order, reconciling stock.
	UpdateOrder(ctx context.Context, id int64, req *model.OrderRequest) (*model.OrderResult, error)

	// GetAll retrieves orders with product names, newest first.
	GetAll(ctx context.Context, limit, offset int) ([]model.OrderDetail, error)

	// GetByID retrieves an order with its product name.
	GetByID(ctx context.Context, id int64) (*model.OrderDetail, error)
}

func normalisePage(limit, offset int) (int, int) {
	if limit < 0 {
		limit = 0
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// publish emits an event after the state change has been committed.
// Delivery failures are logged and never reported to the caller.
func publish(ctx context.Context, publisher events.Publisher, logger zerolog.Logger, event events.Event) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", event.Type).
			Str("key", event.Key).
			Msg("failed to publish event")
	}
}
