package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a validated trading product. Both legs of the pair are fully
// resolved Currency records; the pair identity is the ordered (Base.ID,
// Quote.ID) tuple.
type Product struct {
	Base           Currency
	Quote          Currency
	BaseMinSize    decimal.Decimal
	BaseMaxSize    decimal.Decimal
	QuoteIncrement decimal.Decimal
}

// ID returns the pair identity in the exchange's "BASE-QUOTE" form.
func (p Product) ID() string {
	return p.Base.ID + "-" + p.Quote.ID
}

// String implements fmt.Stringer.
func (p Product) String() string {
	return fmt.Sprintf("Product{ID: %s, BaseMinSize: %s, BaseMaxSize: %s, QuoteIncrement: %s}",
		p.ID(), p.BaseMinSize, p.BaseMaxSize, p.QuoteIncrement)
}

// RawProduct is the wire shape of a /products record. The id field is the
// denormalized "BASE-QUOTE" pair code; base_currency and quote_currency
// repeat the two tokens but are not trusted, the id is authoritative.
type RawProduct struct {
	ID             string     `json:"id" validate:"required"`
	BaseCurrency   string     `json:"base_currency"`
	QuoteCurrency  string     `json:"quote_currency"`
	BaseMinSize    RawDecimal `json:"base_min_size"`
	BaseMaxSize    RawDecimal `json:"base_max_size"`
	QuoteIncrement RawDecimal `json:"quote_increment"`
}

// Resolve validates the record against the reference set and converts it
// into a Product.
//
// The id must split on "-" into exactly two non-empty tokens, otherwise a
// MalformedProductIDError is returned before any currency lookup happens.
// Each token must then resolve in refs; a miss yields an
// UnknownCurrencyError naming the first missing token, base before quote.
func (r RawProduct) Resolve(refs *ReferenceSet) (Product, error) {
	tokens := strings.Split(r.ID, "-")
	if len(tokens) != 2 || tokens[0] == "" || tokens[1] == "" {
		return Product{}, &MalformedProductIDError{ID: r.ID}
	}

	base, ok := refs.Lookup(tokens[0])
	if !ok {
		return Product{}, &UnknownCurrencyError{Token: tokens[0]}
	}
	quote, ok := refs.Lookup(tokens[1])
	if !ok {
		return Product{}, &UnknownCurrencyError{Token: tokens[1]}
	}

	baseMinSize, err := r.BaseMinSize.Decimal("base_min_size")
	if err != nil {
		return Product{}, err
	}
	baseMaxSize, err := r.BaseMaxSize.Decimal("base_max_size")
	if err != nil {
		return Product{}, err
	}
	quoteIncrement, err := r.QuoteIncrement.Decimal("quote_increment")
	if err != nil {
		return Product{}, err
	}

	return Product{
		Base:           base,
		Quote:          quote,
		BaseMinSize:    baseMinSize,
		BaseMaxSize:    baseMaxSize,
		QuoteIncrement: quoteIncrement,
	}, nil
}

// ResolveProducts resolves a full products listing against the reference
// set, failing on the first invalid record.
func ResolveProducts(raw []RawProduct, refs *ReferenceSet) ([]Product, error) {
	products := make([]Product, 0, len(raw))
	for _, r := range raw {
		product, err := r.Resolve(refs)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", r.ID, err)
		}
		products = append(products, product)
	}
	return products, nil
}
