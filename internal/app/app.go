package app

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/grocer-pricing/internal/domain/discount"
	"github.com/xenking/grocer-pricing/internal/domain/pricing"
	"github.com/xenking/grocer-pricing/internal/export"
	"github.com/xenking/grocer-pricing/internal/pipeline"
	"github.com/xenking/grocer-pricing/internal/source"
	"github.com/xenking/grocer-pricing/internal/storage/postgres"
	"github.com/xenking/grocer-pricing/internal/storage/sqlite"
)

// Run creates all dependencies and executes one pricing batch. It is the
// single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("input", cfg.InputFile))

	sink, cleanup, err := openSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sinks := pipeline.MultiSink{sink}

	if cfg.ResultsJSON != "" {
		f, err := os.Create(cfg.ResultsJSON)
		if err != nil {
			return errors.Wrap(err, "create results file")
		}
		defer func() { _ = f.Close() }()
		sinks = append(sinks, export.NewJSONLines(f))
	}

	meter := m.MeterProvider().Meter("grocer-pricing")
	priced, err := meter.Int64Counter("orders_priced")
	if err != nil {
		return errors.Wrap(err, "create orders_priced counter")
	}
	sinks = append(sinks, countingSink{counter: priced})

	driver := pipeline.NewDriver(
		discount.Rules(),
		source.NewFileSource(cfg.InputFile),
		sinks,
		lg,
	)
	return driver.Run(ctx)
}

// openSink selects the persistence backend: PostgreSQL when a database URL
// is configured, SQLite otherwise. The returned cleanup releases the
// backend on every exit path.
func openSink(ctx context.Context, cfg *Config) (pipeline.Sink, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "create db pool")
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, errors.Wrap(err, "run migrations")
		}
		return postgres.NewResultRepository(pool), pool.Close, nil
	}

	repo, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open sqlite")
	}
	return repo, func() { _ = repo.Close() }, nil
}

// countingSink increments the orders_priced counter per result. It comes
// after the real sinks in the MultiSink so the count reflects persisted
// rows only.
type countingSink struct {
	counter metric.Int64Counter
}

func (s countingSink) Insert(ctx context.Context, _ pricing.Result) error {
	s.counter.Add(ctx, 1)
	return nil
}
