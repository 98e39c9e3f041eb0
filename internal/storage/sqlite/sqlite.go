// Package sqlite provides a local single-file sink for priced results,
// useful for runs without a PostgreSQL instance. Uses modernc.org/sqlite
// for a pure Go driver (no CGO required).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/xenking/grocer-pricing/internal/domain/pricing"
	"github.com/xenking/grocer-pricing/internal/pipeline"
)

var _ pipeline.Sink = (*ResultRepository)(nil)

// Decimals are stored as fixed two-decimal strings: SQLite has no NUMERIC
// type and binary floats would reintroduce the rounding drift the pipeline
// exists to avoid.
const schema = `
CREATE TABLE IF NOT EXISTS priced_orders (
	id           TEXT PRIMARY KEY,
	product_name TEXT NOT NULL,
	total_before TEXT NOT NULL,
	discount     TEXT NOT NULL,
	total_after  TEXT NOT NULL
)`

// ResultRepository implements pipeline.Sink backed by a local SQLite file.
type ResultRepository struct {
	db *sql.DB
}

// Open opens the SQLite database at path, creating it and the schema when
// needed.
func Open(path string) (*ResultRepository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &ResultRepository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *ResultRepository) Close() error {
	return r.db.Close()
}

// Insert appends one priced result.
func (r *ResultRepository) Insert(ctx context.Context, res pricing.Result) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO priced_orders (id, product_name, total_before, discount, total_after)
		 VALUES (?, ?, ?, ?, ?)`,
		res.ID, res.Product,
		res.TotalBefore.StringFixed(2), res.DiscountPercent.StringFixed(2), res.TotalAfter.StringFixed(2))
	if err != nil {
		return fmt.Errorf("inserting priced order %q: %w", res.ID, err)
	}
	return nil
}
