package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecommerce-ms/internal/events"
	"ecommerce-ms/internal/model"
	"ecommerce-ms/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	publisher   events.Publisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, publisher events.Publisher, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		publisher:   publisher,
		logger:      logger.With().Str("service", "product").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetAll retrieves products ordered by id.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	limit, offset = normalisePage(limit, offset)

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, model.ProductNotFound(id)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ProductNotFound(id)
	}

	return product, nil
}

// Count returns the number of products in the catalogue.
func (s *productService) Count(ctx context.Context) (int, error) {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Create validates and stores a new product.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := s.validateProductRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	product := &model.Product{
		Name:      strings.TrimSpace(req.Name),
		Price:     req.Price.Round(model.PriceScale),
		Stock:     req.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Int("stock", product.Stock).
		Msg("product created successfully")

	publish(ctx, s.publisher, s.logger, events.New(events.TypeProductCreated, product.ID, product))

	return product, nil
}

// Update validates and overwrites an existing product. Orders already placed
// keep the total they were sold at.
func (s *productService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	if err := s.validateProductRequest(req); err != nil {
		return nil, err
	}

	if id <= 0 {
		return nil, model.ProductNotFound(id)
	}

	product := &model.Product{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Price:     req.Price.Round(model.PriceScale),
		Stock:     req.Stock,
		UpdatedAt: s.now(),
	}

	found, err := s.productRepo.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if !found {
		s.logger.Debug().Int64("product_id", id).Msg("product not found for update")
		return nil, model.ProductNotFound(id)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated successfully")

	publish(ctx, s.publisher, s.logger, events.New(events.TypeProductUpdated, id, product))

	return product, nil
}

// Delete removes a product; orders referencing it are kept with no product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ProductNotFound(id)
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if !deleted {
		return model.ProductNotFound(id)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	publish(ctx, s.publisher, s.logger, events.New(events.TypeProductDeleted, id, map[string]int64{"productId": id}))

	return nil
}

// validateProductRequest validates the product request.
func (s *productService) validateProductRequest(req *model.ProductRequest) error {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return model.ErrNameRequired
	}

	// Prices below the column's precision round to zero when stored.
	if !req.Price.Round(model.PriceScale).IsPositive() {
		s.logger.Warn().Str("price", req.Price.String()).Msg("invalid price")
		return model.ErrInvalidPrice
	}

	if req.Price.Round(model.PriceScale).Cmp(model.MaxPrice) >= 0 {
		s.logger.Warn().Str("price", req.Price.String()).Msg("price out of range")
		return model.ErrPriceTooLarge
	}

	if req.Stock < 0 {
		s.logger.Warn().Int("stock", req.Stock).Msg("invalid stock")
		return model.ErrNegativeStock
	}

	if req.Stock > model.MaxStock {
		s.logger.Warn().Int("stock", req.Stock).Msg("stock out of range")
		return model.ErrStockTooLarge
	}

	return nil
}
