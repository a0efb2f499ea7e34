package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/store_api/internal/database"
	"github.com/GTDGit/store_api/internal/models"
	"github.com/GTDGit/store_api/internal/utils"
)

// OrderRepository handles data access for orders and their line items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and all of its lines in a single transaction, so
// readers never observe an order without its items.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	const insertOrder = `
        INSERT INTO orders (first_name, last_name, email, phone, address, city,
                            postal_code, country, status, total_amount)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`
	const insertItem = `
        INSERT INTO order_items (order_id, product_name, product_price, quantity, total_price)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.QueryRowxContext(ctx, insertOrder,
			o.FirstName, o.LastName, o.Email, o.Phone, o.Address, o.City,
			o.PostalCode, o.Country, o.Status, o.TotalAmount,
		).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return err
		}

		for i := range o.Items {
			item := &o.Items[i]
			item.OrderID = o.ID
			if err := tx.QueryRowxContext(ctx, insertItem,
				o.ID, item.ProductName, item.ProductPrice, item.Quantity, item.TotalPrice,
			).Scan(&item.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID returns an order with its lines in insertion order.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	const q = `
        SELECT id, first_name, last_name, email, phone, address, city, postal_code,
               country, status, total_amount, created_at, updated_at
        FROM orders WHERE id = $1`
	const itemsQuery = `
        SELECT id, order_id, product_name, product_price, quantity, total_price
        FROM order_items WHERE order_id = $1 ORDER BY id`

	var o models.Order
	if err := r.db.GetContext(ctx, &o, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}

	o.Items = []models.OrderLine{}
	if err := r.db.SelectContext(ctx, &o.Items, itemsQuery, id); err != nil {
		return nil, err
	}
	return &o, nil
}

// Count returns the number of stored orders.
func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM orders`)
	return n, err
}
