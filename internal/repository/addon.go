package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront/internal/domain/pricing"
)

const listAddonsSQL = `SELECT id, name, cost FROM decorations ORDER BY id`

var _ pricing.AddonRepository = (*AddonRepository)(nil)

// AddonRepository implements pricing.AddonRepository backed by PostgreSQL.
type AddonRepository struct {
	pool *pgxpool.Pool
}

func NewAddonRepository(pool *pgxpool.Pool) *AddonRepository {
	return &AddonRepository{pool: pool}
}

// List returns the persisted add-ons ordered by ID.
func (r *AddonRepository) List(ctx context.Context) ([]pricing.Addon, error) {
	rows, err := r.pool.Query(ctx, listAddonsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing add-ons: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (pricing.Addon, error) {
		var a pricing.Addon
		err := row.Scan(&a.ID, &a.Name, &a.Cost)
		return a, err
	})
}
