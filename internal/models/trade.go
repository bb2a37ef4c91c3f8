package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the taker side of an executed trade.
type TradeSide int

const (
	Buy TradeSide = iota
	Sell
)

// String implements fmt.Stringer, returning the wire spelling.
func (s TradeSide) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("TradeSide(%d)", int(s))
	}
}

// ParseTradeSide converts the wire spelling into a TradeSide. The match is
// exact; anything but "buy" or "sell" is an UnknownSideError.
func ParseTradeSide(value string) (TradeSide, error) {
	switch value {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, &UnknownSideError{Value: value}
	}
}

// Trade is one validated executed trade.
type Trade struct {
	Time    time.Time
	TradeID int64
	Price   decimal.Decimal
	Size    decimal.Decimal
	Side    TradeSide
}

// String implements fmt.Stringer.
func (t Trade) String() string {
	return fmt.Sprintf("Trade{TradeID: %d, Side: %s, Price: %s, Size: %s, Time: %s}",
		t.TradeID, t.Side, t.Price, t.Size, t.Time.Format(time.RFC3339))
}

// RawTrade is the wire shape of one /products/{id}/trades record.
type RawTrade struct {
	Time    string     `json:"time" validate:"required"`
	TradeID int64      `json:"trade_id"`
	Price   RawDecimal `json:"price"`
	Size    RawDecimal `json:"size"`
	Side    string     `json:"side" validate:"required"`
}

// Resolve validates the record and converts it into a Trade.
func (r RawTrade) Resolve() (Trade, error) {
	ts, err := parseTimestamp(r.Time)
	if err != nil {
		return Trade{}, err
	}
	price, err := r.Price.Decimal("price")
	if err != nil {
		return Trade{}, err
	}
	size, err := r.Size.Decimal("size")
	if err != nil {
		return Trade{}, err
	}
	side, err := ParseTradeSide(r.Side)
	if err != nil {
		return Trade{}, err
	}
	return Trade{
		Time:    ts,
		TradeID: r.TradeID,
		Price:   price,
		Size:    size,
		Side:    side,
	}, nil
}

// ResolveTrades resolves a trades listing in sequence order, failing on
// the first invalid record.
func ResolveTrades(raw []RawTrade) ([]Trade, error) {
	trades := make([]Trade, 0, len(raw))
	for _, r := range raw {
		trade, err := r.Resolve()
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}
