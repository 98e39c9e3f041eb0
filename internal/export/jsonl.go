// Package export provides secondary output formats for priced results.
package export

import (
	"context"
	"io"

	"github.com/go-faster/jx"

	"github.com/xenking/grocer-pricing/internal/domain/pricing"
	"github.com/xenking/grocer-pricing/internal/pipeline"
)

var _ pipeline.Sink = (*JSONLines)(nil)

// JSONLines writes each priced result as one JSON object per line. It is a
// tee alongside the primary sink, not a system of record.
type JSONLines struct {
	w io.Writer
}

// NewJSONLines returns a JSONLines sink writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{w: w}
}

// Insert encodes one result and writes it followed by a newline. Decimal
// fields are emitted as JSON numbers with exactly two decimal places.
func (j *JSONLines) Insert(_ context.Context, r pricing.Result) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(r.ID) })
		e.Field("product_name", func(e *jx.Encoder) { e.Str(r.Product) })
		e.Field("total_before", func(e *jx.Encoder) { e.RawStr(r.TotalBefore.StringFixed(2)) })
		e.Field("discount", func(e *jx.Encoder) { e.RawStr(r.DiscountPercent.StringFixed(2)) })
		e.Field("total_after", func(e *jx.Encoder) { e.RawStr(r.TotalAfter.StringFixed(2)) })
	})

	_, err := j.w.Write(append(e.Bytes(), '\n'))
	return err
}
