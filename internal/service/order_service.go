package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ecommerce-ms/internal/events"
	"ecommerce-ms/internal/model"
	"ecommerce-ms/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// totalPriceScale matches the scale of the total_price column.
const totalPriceScale = 2

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	publisher   events.Publisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		logger:      logger.With().Str("service", "order").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder validates the request, locks the product row, checks and
// deducts stock, and inserts the order. Stock change and order insert
// commit together or not at all.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (result *model.OrderResult, err error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	product, err := s.productRepo.GetByIDForUpdate(ctx, tx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if product == nil {
		s.logger.Warn().Int64("product_id", req.ProductID).Msg("order references unknown product")
		err = model.ErrInvalidProductReference
		return nil, err
	}

	if product.Stock < req.Quantity {
		s.logger.Warn().
			Int64("product_id", product.ID).
			Int("stock", product.Stock).
			Int("quantity", req.Quantity).
			Msg("insufficient stock")
		err = model.ErrInsufficientStock
		return nil, err
	}

	total := lineTotal(product.Price, req.Quantity)
	if total.Cmp(model.MaxOrderTotal) >= 0 {
		s.logger.Warn().
			Int64("product_id", product.ID).
			Str("total", total.String()).
			Msg("order total out of range")
		err = model.ErrOrderTotalTooLarge
		return nil, err
	}

	now := s.now()
	remaining := product.Stock - req.Quantity

	if err = s.productRepo.UpdateStock(ctx, tx, product.ID, remaining, now); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order := &model.Order{
		ProductID:  &product.ID,
		Quantity:   req.Quantity,
		TotalPrice: total,
		OrderDate:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("product_id", product.ID).
		Int("quantity", order.Quantity).
		Int("remaining_stock", remaining).
		Msg("order created successfully")

	result = &model.OrderResult{
		ID:             order.ID,
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       order.Quantity,
		TotalPrice:     order.TotalPrice,
		OrderDate:      order.OrderDate,
		RemainingStock: remaining,
	}

	publish(ctx, s.publisher, s.logger, events.New(events.TypeOrderCreated, product.ID, result))
	publish(ctx, s.publisher, s.logger, events.New(events.TypeStockUpdated, product.ID, events.StockChange{
		ProductID: product.ID,
		Previous:  product.Stock,
		Current:   remaining,
	}))

	return result, nil
}

// UpdateOrder re-points an order at a product and quantity. The previous
// quantity is returned to the previous product and the new quantity is
// deducted from the new product in one transaction. The total is recomputed
// from the current product price.
func (s *orderService) UpdateOrder(ctx context.Context, id int64, req *model.OrderRequest) (result *model.OrderResult, err error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	if id <= 0 {
		return nil, model.OrderNotFound(id)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if order == nil {
		err = model.OrderNotFound(id)
		return nil, err
	}

	// Lock every affected product in ascending id order so concurrent
	// updates touching the same pair cannot deadlock.
	productIDs := []int64{req.ProductID}
	if order.ProductID != nil && *order.ProductID != req.ProductID {
		productIDs = append(productIDs, *order.ProductID)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	locked := make(map[int64]*model.Product, len(productIDs))
	stock := make(map[int64]int, len(productIDs))
	for _, pid := range productIDs {
		p, lookupErr := s.productRepo.GetByIDForUpdate(ctx, tx, pid)
		if lookupErr != nil {
			err = lookupErr
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
		if p != nil {
			locked[pid] = p
			stock[pid] = p.Stock
		}
	}

	product := locked[req.ProductID]
	if product == nil {
		s.logger.Warn().Int64("product_id", req.ProductID).Msg("order references unknown product")
		err = model.ErrInvalidProductReference
		return nil, err
	}

	// The previous product may have been deleted; its units are then gone.
	if order.ProductID != nil {
		if _, ok := locked[*order.ProductID]; ok {
			if stock[*order.ProductID] > model.MaxStock-order.Quantity {
				s.logger.Warn().
					Int64("order_id", id).
					Int64("product_id", *order.ProductID).
					Int("stock", stock[*order.ProductID]).
					Int("quantity", order.Quantity).
					Msg("restored stock out of range")
				err = model.ErrStockLimitExceeded
				return nil, err
			}
			stock[*order.ProductID] += order.Quantity
		}
	}

	if stock[product.ID] < req.Quantity {
		s.logger.Warn().
			Int64("order_id", id).
			Int64("product_id", product.ID).
			Int("available", stock[product.ID]).
			Int("quantity", req.Quantity).
			Msg("insufficient stock")
		err = model.ErrInsufficientStock
		return nil, err
	}
	stock[product.ID] -= req.Quantity

	total := lineTotal(product.Price, req.Quantity)
	if total.Cmp(model.MaxOrderTotal) >= 0 {
		s.logger.Warn().
			Int64("order_id", id).
			Int64("product_id", product.ID).
			Str("total", total.String()).
			Msg("order total out of range")
		err = model.ErrOrderTotalTooLarge
		return nil, err
	}

	now := s.now()
	var changes []events.StockChange
	for _, pid := range productIDs {
		p, ok := locked[pid]
		if !ok || stock[pid] == p.Stock {
			continue
		}
		if err = s.productRepo.UpdateStock(ctx, tx, pid, stock[pid], now); err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
		changes = append(changes, events.StockChange{ProductID: pid, Previous: p.Stock, Current: stock[pid]})
	}

	order.ProductID = &product.ID
	order.Quantity = req.Quantity
	order.TotalPrice = total
	order.UpdatedAt = now

	if err = s.orderRepo.UpdateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", id).
		Int64("product_id", product.ID).
		Int("quantity", order.Quantity).
		Int("stock_changes", len(changes)).
		Msg("order updated successfully")

	result = &model.OrderResult{
		ID:             order.ID,
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       order.Quantity,
		TotalPrice:     order.TotalPrice,
		OrderDate:      order.OrderDate,
		RemainingStock: stock[product.ID],
	}

	publish(ctx, s.publisher, s.logger, events.New(events.TypeOrderUpdated, product.ID, result))
	for _, change := range changes {
		publish(ctx, s.publisher, s.logger, events.New(events.TypeStockUpdated, change.ProductID, change))
	}

	return result, nil
}

// GetAll retrieves orders with product names, newest first.
func (s *orderService) GetAll(ctx context.Context, limit, offset int) ([]model.OrderDetail, error) {
	limit, offset = normalisePage(limit, offset)

	orders, err := s.orderRepo.GetAllDetails(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get orders")
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	return orders, nil
}

// GetByID retrieves an order with its product name.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.OrderDetail, error) {
	if id <= 0 {
		return nil, model.OrderNotFound(id)
	}

	order, err := s.orderRepo.GetDetailByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Int64("order_id", id).Msg("order not found")
		return nil, model.OrderNotFound(id)
	}

	return order, nil
}

// validateOrderRequest validates the order request without touching storage.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil || req.ProductID <= 0 {
		return model.ErrProductIDRequired
	}

	if req.Quantity <= 0 {
		s.logger.Warn().
			Int64("product_id", req.ProductID).
			Int("quantity", req.Quantity).
			Msg("invalid quantity")
		return model.ErrInvalidQuantity
	}

	return nil
}

// lineTotal is the frozen sale total for quantity units at price.
func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(totalPriceScale)
}
