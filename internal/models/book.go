package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookLevel selects the order book verbosity tier.
type BookLevel int

const (
	// BookLevelBest returns only the best bid and ask, aggregated.
	BookLevelBest BookLevel = 1
	// BookLevelTop50 returns the top 50 aggregated price levels.
	BookLevelTop50 BookLevel = 2
	// BookLevelFull returns the full non-aggregated book with individual
	// order ids instead of per-level counts.
	BookLevelFull BookLevel = 3
)

// Valid reports whether l is one of the three exchange-defined tiers.
func (l BookLevel) Valid() bool {
	return l >= BookLevelBest && l <= BookLevelFull
}

// Aggregated reports whether entries at this level carry order counts
// rather than individual order ids.
func (l BookLevel) Aggregated() bool {
	return l == BookLevelBest || l == BookLevelTop50
}

// OrderDetail is the variant part of an order book entry. Exactly one of
// the two implementations is present on every Order: OrderCount for
// aggregated levels 1 and 2, OrderIdentity for the full level-3 book. The
// wire format expresses this as a type-shifting third array element; here
// the illegal both-set and both-absent states are unrepresentable.
type OrderDetail interface {
	isOrderDetail()
}

// OrderCount is the number of orders aggregated at a price level.
type OrderCount struct {
	Count int64
}

func (OrderCount) isOrderDetail() {}

// OrderIdentity is the id of a single resting order in the level-3 book.
type OrderIdentity struct {
	ID uuid.UUID
}

func (OrderIdentity) isOrderDetail() {}

// Order is one validated order book entry.
type Order struct {
	Price  decimal.Decimal
	Size   decimal.Decimal
	Detail OrderDetail
}

// NumOrders returns the aggregated order count, if this entry came from a
// level 1 or 2 book.
func (o Order) NumOrders() (int64, bool) {
	if c, ok := o.Detail.(OrderCount); ok {
		return c.Count, true
	}
	return 0, false
}

// OrderID returns the resting order id, if this entry came from a level-3
// book.
func (o Order) OrderID() (uuid.UUID, bool) {
	if id, ok := o.Detail.(OrderIdentity); ok {
		return id.ID, true
	}
	return uuid.UUID{}, false
}

// OrderBook is a validated snapshot of a product's order book. Bids and
// asks keep the exchange's priority order, best price first; position in
// the slice carries meaning.
type OrderBook struct {
	Sequence int64
	Bids     []Order
	Asks     []Order
}

// RawBookEntry is one wire entry: a [price, size, count_or_id] array whose
// elements stay undecoded until the requested level tells us how to read
// the third one.
type RawBookEntry []json.RawMessage

// RawBook is the wire shape of a /products/{id}/book response.
type RawBook struct {
	Sequence int64          `json:"sequence"`
	Bids     []RawBookEntry `json:"bids"`
	Asks     []RawBookEntry `json:"asks"`
}

// Resolve validates every bid and ask in sequence order and converts the
// snapshot into an OrderBook. Resolution is fail-fast: the first invalid
// entry aborts the whole book and its error is surfaced; no partial book
// is ever returned.
func (r RawBook) Resolve(level BookLevel) (OrderBook, error) {
	bids, err := resolveSide(r.Bids, level)
	if err != nil {
		return OrderBook{}, fmt.Errorf("bids: %w", err)
	}
	asks, err := resolveSide(r.Asks, level)
	if err != nil {
		return OrderBook{}, fmt.Errorf("asks: %w", err)
	}
	return OrderBook{
		Sequence: r.Sequence,
		Bids:     bids,
		Asks:     asks,
	}, nil
}

func resolveSide(entries []RawBookEntry, level BookLevel) ([]Order, error) {
	orders := make([]Order, 0, len(entries))
	for i, e := range entries {
		order, err := e.Resolve(level)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Resolve converts a single wire entry into an Order. Levels 1 and 2
// require an integer order count in the third position; level 3 requires
// an order id in standard UUID form, and a string that does not parse as
// one yields a BadUUIDError rather than a generic decode failure.
func (e RawBookEntry) Resolve(level BookLevel) (Order, error) {
	if len(e) != 3 {
		return Order{}, &BadBookEntryError{Length: len(e)}
	}

	var rawPrice RawDecimal
	if err := json.Unmarshal(e[0], &rawPrice); err != nil {
		return Order{}, &BadDecimalError{Field: "price", Value: string(e[0]), Err: err}
	}
	price, err := rawPrice.Decimal("price")
	if err != nil {
		return Order{}, err
	}

	var rawSize RawDecimal
	if err := json.Unmarshal(e[1], &rawSize); err != nil {
		return Order{}, &BadDecimalError{Field: "size", Value: string(e[1]), Err: err}
	}
	size, err := rawSize.Decimal("size")
	if err != nil {
		return Order{}, err
	}

	detail, err := resolveDetail(e[2], level)
	if err != nil {
		return Order{}, err
	}

	return Order{Price: price, Size: size, Detail: detail}, nil
}

func resolveDetail(raw json.RawMessage, level BookLevel) (OrderDetail, error) {
	if level.Aggregated() {
		var count int64
		if err := json.Unmarshal(raw, &count); err != nil {
			return nil, &BadOrderCountError{Value: string(raw)}
		}
		return OrderCount{Count: count}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &BadUUIDError{Value: string(raw), Err: err}
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, &BadUUIDError{Value: s, Err: err}
	}
	return OrderIdentity{ID: id}, nil
}
