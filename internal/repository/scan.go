package repository

import (
	"ecommerce-ms/internal/model"

	"github.com/jackc/pgx/v5"
)

const productColumns = `product_id, name, price, stock, created_at, updated_at`

const orderColumns = `order_id, product_id, quantity, total_price, order_date, created_at, updated_at`

// orderDetailSelect projects orders with their product name. The LEFT JOIN keeps
// orders whose product reference is gone.
const orderDetailSelect = `
	SELECT o.order_id, o.product_id, p.name, o.quantity, o.total_price, o.order_date
	FROM orders o
	LEFT JOIN products p ON p.product_id = o.product_id
`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func scanOrderDetail(row pgx.Row) (model.OrderDetail, error) {
	var d model.OrderDetail
	err := row.Scan(&d.ID, &d.ProductID, &d.ProductName, &d.Quantity, &d.TotalPrice, &d.OrderDate)
	return d, err
}

// limitArg maps a zero limit to NULL, which Postgres treats as LIMIT ALL.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
