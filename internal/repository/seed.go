package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront/internal/domain/pricing"
	"github.com/xenking/storefront/internal/domain/product"
)

const (
	upsertCategorySQL = `INSERT INTO categories (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`

	upsertProductSQL = `INSERT INTO products (id, category_id, name, price, description)
		VALUES ($1, NULLIF($2::bigint, 0), $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			category_id = EXCLUDED.category_id,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			description = EXCLUDED.description`

	upsertDecorationSQL = `INSERT INTO decorations (name, cost) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET cost = EXCLUDED.cost`

	resetSequencesSQL = `SELECT
		setval(pg_get_serial_sequence('categories', 'id'), COALESCE((SELECT MAX(id) FROM categories), 0) + 1, false),
		setval(pg_get_serial_sequence('products', 'id'), COALESCE((SELECT MAX(id) FROM products), 0) + 1, false)`
)

// SeedRepository writes the reference data used to bootstrap a database.
// Every write is an upsert, so seeding can be repeated.
type SeedRepository struct {
	pool *pgxpool.Pool
}

func NewSeedRepository(pool *pgxpool.Pool) *SeedRepository {
	return &SeedRepository{pool: pool}
}

// Catalog upserts categories and products with their explicit IDs in one
// transaction, then moves the ID sequences past the highest seeded ID.
func (r *SeedRepository) Catalog(ctx context.Context, categories []product.Category, products []product.Product) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, c := range categories {
			batch.Queue(upsertCategorySQL, c.ID, c.Name)
		}
		for _, p := range products {
			batch.Queue(upsertProductSQL, p.ID, p.CategoryID, p.Name, p.Price, p.Description)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upserting catalog: %w", err)
		}

		if _, err := tx.Exec(ctx, resetSequencesSQL); err != nil {
			return fmt.Errorf("resetting sequences: %w", err)
		}
		return nil
	})
}

// Addons upserts one row per decoration kind, keyed by name.
func (r *SeedRepository) Addons(ctx context.Context, kinds []pricing.Kind) error {
	batch := &pgx.Batch{}
	for _, k := range kinds {
		batch.Queue(upsertDecorationSQL, k.String(), k.Surcharge())
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting add-ons: %w", err)
	}
	return nil
}
