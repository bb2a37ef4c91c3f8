package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Ticker is a validated snapshot of the last trade on a product.
type Ticker struct {
	TradeID int64
	Price   decimal.Decimal
	Size    decimal.Decimal
	Time    time.Time
}

// String implements fmt.Stringer.
func (t Ticker) String() string {
	return fmt.Sprintf("Ticker{TradeID: %d, Price: %s, Size: %s, Time: %s}",
		t.TradeID, t.Price, t.Size, t.Time.Format(time.RFC3339))
}

// RawTicker is the wire shape of a /products/{id}/ticker response.
type RawTicker struct {
	TradeID int64      `json:"trade_id"`
	Price   RawDecimal `json:"price"`
	Size    RawDecimal `json:"size"`
	Time    string     `json:"time" validate:"required"`
}

// Resolve validates the record and converts it into a Ticker. The time
// field must be an RFC 3339 timestamp; it is normalized to UTC.
func (r RawTicker) Resolve() (Ticker, error) {
	price, err := r.Price.Decimal("price")
	if err != nil {
		return Ticker{}, err
	}
	size, err := r.Size.Decimal("size")
	if err != nil {
		return Ticker{}, err
	}
	ts, err := parseTimestamp(r.Time)
	if err != nil {
		return Ticker{}, err
	}
	return Ticker{
		TradeID: r.TradeID,
		Price:   price,
		Size:    size,
		Time:    ts,
	}, nil
}

// parseTimestamp parses an RFC 3339 time string into a UTC instant. The
// error carries the original string verbatim.
func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &BadTimestampError{Value: value, Err: err}
	}
	return t.UTC(), nil
}
