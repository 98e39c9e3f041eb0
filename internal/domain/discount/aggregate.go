package discount

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/xenking/grocer-pricing/internal/domain/order"
)

// maxStacked caps how many qualifying discounts count toward the effective
// discount of one order.
const maxStacked = 2

// Evaluate runs every rule's predicate against the order and returns the
// discount values of the qualifying rules, in rule-set order.
func Evaluate(rules []Rule, o order.Order) []decimal.Decimal {
	var values []decimal.Decimal
	for _, r := range rules {
		if r.Applies(o) {
			values = append(values, r.Amount(o))
		}
	}
	return values
}

// Effective combines the qualifying discounts into one effective discount
// fraction: the arithmetic mean of the two largest values, ties broken by
// rule-set order. Zero qualifying rules yield zero. No cap is applied at
// either end, so the result may exceed 1.
func Effective(rules []Rule, o order.Order) decimal.Decimal {
	values := Evaluate(rules, o)
	if len(values) == 0 {
		return decimal.Zero
	}

	sort.SliceStable(values, func(i, j int) bool {
		return values[i].GreaterThan(values[j])
	})
	if len(values) > maxStacked {
		values = values[:maxStacked]
	}

	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}

	return sum.Div(decimal.NewFromInt(int64(len(values))))
}
