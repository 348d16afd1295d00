package catalog

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-ms/internal/model"

	"github.com/rs/zerolog"
)

// ProductStore is the part of the product service the seeder writes through.
type ProductStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
}

// Seeder fills an empty product table from a catalogue file.
type Seeder struct {
	store  ProductStore
	loader Loader
	path   string
	logger zerolog.Logger
}

// NewSeeder creates a seeder reading path through loader.
func NewSeeder(store ProductStore, loader Loader, path string, logger zerolog.Logger) *Seeder {
	return &Seeder{
		store:  store,
		loader: loader,
		path:   path,
		logger: logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads the catalogue when no products exist and returns how many were
// created. Lines that fail product validation are skipped.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalogue: %w", err)
	}

	if count > 0 {
		s.logger.Info().Int("existing_products", count).Msg("catalogue already populated, skipping seed")
		return 0, nil
	}

	items, err := s.loader.Load(ctx, s.path)
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalogue: %w", err)
	}

	created := 0
	for i := range items {
		if _, err := s.store.Create(ctx, &items[i]); err != nil {
			var domainErr *model.DomainError
			if errors.As(err, &domainErr) {
				s.logger.Warn().
					Int("item", i+1).
					Str("name", items[i].Name).
					Str("reason", domainErr.Message).
					Msg("skipping invalid catalogue item")
				continue
			}
			return created, fmt.Errorf("failed to seed catalogue: %w", err)
		}
		created++
	}

	s.logger.Info().
		Int("created", created).
		Int("skipped", len(items)-created).
		Msg("catalogue seeded")

	return created, nil
}
