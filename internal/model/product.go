package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalogue.
type Product struct {
	ID        int64           `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// Storage bounds of the products table: price NUMERIC(12,3), stock INTEGER.
const (
	PriceScale = 3
	MaxStock   = math.MaxInt32
)

// MaxPrice is the exclusive upper bound of a storable price.
var MaxPrice = decimal.New(1, 9)

// ProductRequest represents the payload for creating or updating a product.
type ProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}
