package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/grocer-pricing/internal/domain/order"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Result is one priced order, ready for persistence. Monetary fields carry
// exactly two decimal places, rounded half-up; DiscountPercent is on the
// 0-100 scale.
type Result struct {
	ID              string
	Product         string
	TotalBefore     decimal.Decimal
	DiscountPercent decimal.Decimal
	TotalAfter      decimal.Decimal
}

// Price derives the priced result for an order under the given effective
// discount fraction. The discount applies to the already-rounded before
// total. Nothing caps the discount, so TotalAfter can go negative when
// stacked discounts exceed 100%.
func Price(o order.Order, effective decimal.Decimal) Result {
	totalBefore := o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity))).Round(2)
	totalAfter := totalBefore.Mul(one.Sub(effective)).Round(2)
	percent := effective.Mul(hundred).Round(2)

	return Result{
		ID:              uuid.New().String(),
		Product:         o.Product,
		TotalBefore:     totalBefore,
		DiscountPercent: percent,
		TotalAfter:      totalAfter,
	}
}
