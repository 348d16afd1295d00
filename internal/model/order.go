package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a stored order row. ProductID is nil once the referenced
// product has been removed.
type Order struct {
	ID         int64           `json:"orderId" db:"order_id"`
	ProductID  *int64          `json:"productId" db:"product_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice" db:"total_price"`
	OrderDate  time.Time       `json:"orderDate" db:"order_date"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderDetail is the order projection joined with its product.
// ProductName is nil when the product no longer resolves.
type OrderDetail struct {
	ID          int64           `json:"orderId"`
	ProductID   *int64          `json:"productId"`
	ProductName *string         `json:"productName"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	OrderDate   time.Time       `json:"orderDate"`
}

// MaxOrderTotal is the exclusive upper bound of total_price NUMERIC(12,2).
var MaxOrderTotal = decimal.New(1, 10)

// OrderRequest represents the request payload for creating or updating an order.
type OrderRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderResult is returned after an order is created or updated.
type OrderResult struct {
	ID             int64           `json:"orderId"`
	ProductID      int64           `json:"productId"`
	ProductName    string          `json:"productName"`
	Quantity       int             `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	OrderDate      time.Time       `json:"orderDate"`
	RemainingStock int             `json:"remainingStock"`
}
