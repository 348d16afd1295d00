package repository

import (
	"context"
	"time"

	"ecommerce-ms/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
// Lookups return (nil, nil) when the product does not exist.
type ProductRepository interface {
	// GetAll retrieves products ordered by id. A limit of zero returns every row.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDForUpdate retrieves a product and locks its row until tx ends.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)

	// Create inserts a product and fills in its generated ID and timestamps.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites name, price, stock and updated_at.
	// Returns false when no product has the given ID.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// UpdateStock sets the stock of a locked product within the provided transaction.
	UpdateStock(ctx context.Context, tx pgx.Tx, id int64, stock int, updatedAt time.Time) error

	// Delete removes a product. Returns false when no product has the given ID.
	Delete(ctx context.Context, id int64) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and sets its ID.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// UpdateOrder overwrites product reference, quantity, total and updated_at.
	UpdateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByIDForUpdate retrieves an order and locks its row until tx ends.
	// Returns (nil, nil) when the order does not exist.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error)

	// GetDetailByID retrieves an order joined with its product name.
	// Returns (nil, nil) when the order does not exist.
	GetDetailByID(ctx context.Context, id int64) (*model.OrderDetail, error)

	// GetAllDetails retrieves orders joined with product names, newest first.
	// A limit of zero returns every row.
	GetAllDetails(ctx context.Context, limit, offset int) ([]model.OrderDetail, error)
}
