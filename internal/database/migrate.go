package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// migrations are applied in order and must stay idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		product_id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL CHECK (btrim(name) <> ''),
		price NUMERIC(12, 3) NOT NULL CHECK (price > 0),
		stock INTEGER NOT NULL CHECK (stock >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id BIGSERIAL PRIMARY KEY,
		product_id BIGINT REFERENCES products(product_id) ON DELETE SET NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		total_price NUMERIC(12, 2) NOT NULL,
		order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date DESC)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			logger.Error().Err(err).Int("migration", i).Msg("failed to apply migration")
			return fmt.Errorf("failed to apply migration %d: %w", i, err)
		}
	}

	logger.Info().Int("count", len(migrations)).Msg("database schema is up to date")
	return nil
}
