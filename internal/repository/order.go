package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/storefront/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders
		(id, user_id, items_amount, decorations_amount, total_amount, description, personalization_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	createOrderItemSQL = `INSERT INTO order_items
		(order_id, position, product_id, name, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	createOrderDecorationSQL = `INSERT INTO order_decorations (order_id, position, decoration_id, name)
		VALUES ($1, $2, (SELECT id FROM decorations WHERE name = $3), $3)`

	listOrdersByUserSQL = `SELECT id, user_id, items_amount, decorations_amount, total_amount,
			description, personalization_text, created_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC, id`

	listOrderItemsSQL = `SELECT order_id, product_id, name, quantity, unit_price
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY order_id, position`

	listOrderDecorationsSQL = `SELECT order_id, name
		FROM order_decorations WHERE order_id = ANY($1)
		ORDER BY order_id, position`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order, its lines and its decorations in one
// transaction and sets o.CreatedAt from the database clock.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, createOrderSQL,
			o.ID, o.UserID, o.ItemsAmount, o.DecorationsAmount, o.Total, o.Description, o.PersonalizationText,
		).Scan(&o.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting order: %w", err)
		}

		batch := &pgx.Batch{}
		for i, item := range o.Items {
			batch.Queue(createOrderItemSQL,
				o.ID, i, item.ProductID, item.Name, item.Quantity, item.UnitPrice, item.Subtotal(),
			)
		}
		for i, name := range o.Decorations {
			batch.Queue(createOrderDecorationSQL, o.ID, i, name)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting order lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// ListByUser returns the orders of userID newest first. Lines and
// decorations are loaded concurrently once the orders are known.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders of user %d: %w", userID, err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (order.Order, error) {
		var o order.Order
		err := row.Scan(&o.ID, &o.UserID, &o.ItemsAmount, &o.DecorationsAmount, &o.Total,
			&o.Description, &o.PersonalizationText, &o.CreatedAt)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing orders of user %d: %w", userID, err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	var (
		items       map[string][]order.Item
		decorations map[string][]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = r.loadItems(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		decorations, err = r.loadDecorations(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		orders[i].Decorations = decorations[orders[i].ID]
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, ids []string) (map[string][]order.Item, error) {
	rows, err := r.pool.Query(ctx, listOrderItemsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}

	out := make(map[string][]order.Item, len(ids))
	var (
		orderID string
		item    order.Item
	)
	_, err = pgx.ForEachRow(rows, []any{&orderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice}, func() error {
		out[orderID] = append(out[orderID], item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning order items: %w", err)
	}
	return out, nil
}

func (r *OrderRepository) loadDecorations(ctx context.Context, ids []string) (map[string][]string, error) {
	rows, err := r.pool.Query(ctx, listOrderDecorationsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("listing order decorations: %w", err)
	}

	out := make(map[string][]string, len(ids))
	var orderID, name string
	_, err = pgx.ForEachRow(rows, []any{&orderID, &name}, func() error {
		out[orderID] = append(out[orderID], name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning order decorations: %w", err)
	}
	return out, nil
}
