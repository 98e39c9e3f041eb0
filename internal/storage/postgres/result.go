package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/grocer-pricing/internal/domain/pricing"
	"github.com/xenking/grocer-pricing/internal/pipeline"
)

var _ pipeline.Sink = (*ResultRepository)(nil)

const insertResult = `
INSERT INTO priced_orders (id, product_name, total_before, discount, total_after)
VALUES ($1, $2, $3, $4, $5)`

// ResultRepository implements pipeline.Sink backed by PostgreSQL.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository returns a ResultRepository that uses the given pool.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Insert appends one priced result. The pipeline only ever appends, so
// there is no upsert path; a duplicate ID is an error.
func (r *ResultRepository) Insert(ctx context.Context, res pricing.Result) error {
	_, err := r.pool.Exec(ctx, insertResult,
		res.ID, res.Product, res.TotalBefore, res.DiscountPercent, res.TotalAfter)
	if err != nil {
		return fmt.Errorf("inserting priced order %q: %w", res.ID, err)
	}
	return nil
}
