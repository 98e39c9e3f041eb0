package pipeline

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenking/grocer-pricing/internal/domain/discount"
	"github.com/xenking/grocer-pricing/internal/domain/order"
	"github.com/xenking/grocer-pricing/internal/domain/pricing"
)

type fakeSource struct {
	rows []string
	err  error
}

func (s *fakeSource) Rows(_ context.Context) ([]string, error) {
	return s.rows, s.err
}

type fakeSink struct {
	inserted []pricing.Result
	failAt   int // 1-based insert index to fail on, 0 never fails
}

func (s *fakeSink) Insert(_ context.Context, r pricing.Result) error {
	if s.failAt > 0 && len(s.inserted)+1 == s.failAt {
		return errors.New("sink rejected write")
	}
	s.inserted = append(s.inserted, r)
	return nil
}

func TestDriver_Run(t *testing.T) {
	rows := []string{
		"2025-03-23T10:00:00,bread,2025-06-01,3,2.00,Store,Cash",
		"2025-01-01T00:00:00,cheese,2025-01-10,1,10.00,Store,Cash",
		"2025-06-01,milk,2025-12-01,12,1.50,Store,Cash",
	}

	sink := &fakeSink{}
	d := NewDriver(discount.Rules(), &fakeSource{rows: rows}, sink, zap.NewNop())

	require.NoError(t, d.Run(context.Background()))
	require.Len(t, sink.inserted, 3)

	// Special-date order: effective discount 0.5.
	assertDecimal(t, "6.00", sink.inserted[0].TotalBefore)
	assertDecimal(t, "50.00", sink.inserted[0].DiscountPercent)
	assertDecimal(t, "3.00", sink.inserted[0].TotalAfter)

	// Near-expiry cheese: mean of 1.0 and 0.21.
	assertDecimal(t, "10.00", sink.inserted[1].TotalBefore)
	assertDecimal(t, "60.50", sink.inserted[1].DiscountPercent)
	assertDecimal(t, "3.95", sink.inserted[1].TotalAfter)

	// Quantity tier only: 0.07.
	assertDecimal(t, "18.00", sink.inserted[2].TotalBefore)
	assertDecimal(t, "7.00", sink.inserted[2].DiscountPercent)
	assertDecimal(t, "16.74", sink.inserted[2].TotalAfter)
}

func TestDriver_Run_MalformedRowAbortsBeforeAnyInsert(t *testing.T) {
	rows := []string{
		"2025-06-01,bread,2025-12-01,3,2.00,Store,Cash",
		"2025-06-01,milk,2025-12-01,1,1.50,Store", // six fields
		"2025-06-01,wine,2025-12-01,1,9.00,Store,Cash",
	}

	sink := &fakeSink{}
	d := NewDriver(discount.Rules(), &fakeSource{rows: rows}, sink, zap.NewNop())

	err := d.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, order.ErrMalformedRecord))
	assert.Empty(t, sink.inserted, "no insert may happen when any row is malformed")
}

func TestDriver_Run_InsertFailureKeepsEarlierRows(t *testing.T) {
	rows := []string{
		"2025-06-01,bread,2025-12-01,3,2.00,Store,Cash",
		"2025-06-01,milk,2025-12-01,1,1.50,Store,Cash",
		"2025-06-01,wine,2025-12-01,1,9.00,Store,Cash",
	}

	sink := &fakeSink{failAt: 2}
	d := NewDriver(discount.Rules(), &fakeSource{rows: rows}, sink, zap.NewNop())

	err := d.Run(context.Background())
	require.Error(t, err)
	assert.Len(t, sink.inserted, 1, "rows inserted before the failure stay committed")
}

func TestDriver_Run_SourceFailure(t *testing.T) {
	sink := &fakeSink{}
	d := NewDriver(discount.Rules(), &fakeSource{err: errors.New("no such file")}, sink, zap.NewNop())

	err := d.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, sink.inserted)
}

func TestDriver_Run_EmptyBatch(t *testing.T) {
	sink := &fakeSink{}
	d := NewDriver(discount.Rules(), &fakeSource{}, sink, zap.NewNop())

	require.NoError(t, d.Run(context.Background()))
	assert.Empty(t, sink.inserted)
}

func TestMultiSink_StopsAtFirstFailure(t *testing.T) {
	good := &fakeSink{}
	bad := &fakeSink{failAt: 1}
	tail := &fakeSink{}

	m := MultiSink{good, bad, tail}
	err := m.Insert(context.Background(), pricing.Result{ID: "r1"})

	require.Error(t, err)
	assert.Len(t, good.inserted, 1)
	assert.Empty(t, tail.inserted)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	w := decimal.RequireFromString(want)
	assert.True(t, w.Equal(got), "expected %s, got %s", w, got)
}
