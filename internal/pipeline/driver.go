package pipeline

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/grocer-pricing/internal/domain/discount"
	"github.com/xenking/grocer-pricing/internal/domain/order"
	"github.com/xenking/grocer-pricing/internal/domain/pricing"
)

// Source yields every data row of one batch, header excluded.
type Source interface {
	Rows(ctx context.Context) ([]string, error)
}

// Sink persists priced results. Insert-only; there is no update path.
type Sink interface {
	Insert(ctx context.Context, r pricing.Result) error
}

// Driver runs one pricing batch end to end: read, parse, price, persist.
// The batch is a single unit: the first failure anywhere aborts the run,
// and rows inserted before a later failure stay committed.
type Driver struct {
	rules  []discount.Rule
	source Source
	sink   Sink
	lg     *zap.Logger
}

// NewDriver creates a Driver over the given rule set, row source, and
// result sink.
func NewDriver(rules []discount.Rule, source Source, sink Sink, lg *zap.Logger) *Driver {
	return &Driver{
		rules:  rules,
		source: source,
		sink:   sink,
		lg:     lg,
	}
}

// Run executes the batch. Errors are logged with their cause and returned;
// nothing is retried or rolled back.
func (d *Driver) Run(ctx context.Context) error {
	rows, err := d.source.Rows(ctx)
	if err != nil {
		return d.fail(errors.Wrap(err, "read orders"))
	}

	d.lg.Info("batch started", zap.Int("rows", len(rows)))

	// Parse everything up front so a malformed row anywhere aborts the
	// batch before the first insert.
	orders := make([]order.Order, len(rows))
	for i, row := range rows {
		o, err := order.ParseRecord(row)
		if err != nil {
			return d.fail(errors.Wrapf(err, "parse row %d", i+1))
		}
		orders[i] = o
	}

	for i, o := range orders {
		result := pricing.Price(o, discount.Effective(d.rules, o))
		if err := d.sink.Insert(ctx, result); err != nil {
			return d.fail(errors.Wrapf(err, "insert result for row %d", i+1))
		}
	}

	return nil
}

func (d *Driver) fail(err error) error {
	d.lg.Error("batch failed", zap.Error(err))
	return err
}
