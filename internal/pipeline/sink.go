package pipeline

import (
	"context"

	"github.com/xenking/grocer-pricing/internal/domain/pricing"
)

var _ Sink = (MultiSink)(nil)

// MultiSink fans one insert out to several sinks in order, stopping at the
// first failure. Sinks before the failing one keep their row.
type MultiSink []Sink

// Insert delivers the result to every sink.
func (m MultiSink) Insert(ctx context.Context, r pricing.Result) error {
	for _, s := range m {
		if err := s.Insert(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
