package order

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for transaction record parsing. Both are fatal to the
// batch that contains the offending row.
var (
	// ErrMalformedRecord is returned when a row does not split into the
	// expected number of fields or a numeric field fails to parse.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidDate is returned when a date field is not an ISO 8601
	// calendar date (YYYY-MM-DD).
	ErrInvalidDate = errors.New("invalid date")
)

const (
	fieldCount = 7
	dateLayout = "2006-01-02"
)

// Order is the parsed form of one transaction row. Orders are constructed
// only by ParseRecord and never mutated afterwards.
type Order struct {
	Placed    time.Time
	Product   string
	Expiry    time.Time
	Quantity  int
	UnitPrice decimal.Decimal
	Channel   string
	Payment   string
}

// ParseRecord parses one comma-delimited transaction line into an Order.
// The line must carry exactly seven fields in the order: timestamp,
// product name, expiry date, quantity, unit price, channel, payment method.
// The timestamp may carry a time component after a literal 'T'; only the
// date portion is kept, since every date-based rule works on calendar days.
// Fields are not trimmed and values are not range-checked: a negative price
// or quantity passes through as-is.
func ParseRecord(line string) (Order, error) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return Order{}, errors.Wrapf(ErrMalformedRecord,
			"want %d fields, got %d in line %q", fieldCount, len(fields), line)
	}

	placed, err := parseDate(fields[0])
	if err != nil {
		return Order{}, errors.Wrapf(err, "order date in line %q", line)
	}

	expiry, err := parseDate(fields[2])
	if err != nil {
		return Order{}, errors.Wrapf(err, "expiry date in line %q", line)
	}

	quantity, err := strconv.Atoi(fields[3])
	if err != nil {
		return Order{}, errors.Wrapf(ErrMalformedRecord,
			"quantity %q in line %q", fields[3], line)
	}

	unitPrice, err := decimal.NewFromString(fields[4])
	if err != nil {
		return Order{}, errors.Wrapf(ErrMalformedRecord,
			"unit price %q in line %q", fields[4], line)
	}

	return Order{
		Placed:    placed,
		Product:   fields[1],
		Expiry:    expiry,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Channel:   fields[5],
		Payment:   fields[6],
	}, nil
}

// parseDate parses an ISO 8601 calendar date, discarding any time component
// after a literal 'T'.
func parseDate(s string) (time.Time, error) {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q", s)
	}

	return t, nil
}
