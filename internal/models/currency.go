// Package models defines the wire shapes and validated domain records for
// the exchange's public market-data API.
//
// Every resource decodes in two phases. A Raw* struct mirrors the JSON
// payload exactly, down to currency-pair codes and timestamps still being
// strings; its Resolve method then validates and converts it into the
// strongly-typed domain record, cross-checking product currency tokens
// against a previously built ReferenceSet. Resolution never performs
// network I/O, so a caller can refresh its reference data and re-resolve a
// payload without re-fetching it.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is a validated currency listing. Identity is the short code in
// ID; values are immutable once constructed.
type Currency struct {
	ID      string
	Name    string
	MinSize decimal.Decimal
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return fmt.Sprintf("Currency{ID: %s, Name: %s, MinSize: %s}", c.ID, c.Name, c.MinSize)
}

// RawCurrency is the wire shape of a /currencies record.
type RawCurrency struct {
	ID      string     `json:"id" validate:"required"`
	Name    string     `json:"name" validate:"required"`
	MinSize RawDecimal `json:"min_size"`
}

// Resolve validates the record and converts it into a Currency. The only
// semantic failure mode is a non-numeric min_size.
func (r RawCurrency) Resolve() (Currency, error) {
	minSize, err := r.MinSize.Decimal("min_size")
	if err != nil {
		return Currency{}, err
	}
	return Currency{
		ID:      r.ID,
		Name:    r.Name,
		MinSize: minSize,
	}, nil
}

// ResolveCurrencies resolves a full currencies listing, failing on the
// first invalid record.
func ResolveCurrencies(raw []RawCurrency) ([]Currency, error) {
	currencies := make([]Currency, 0, len(raw))
	for _, r := range raw {
		currency, err := r.Resolve()
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, currency)
	}
	return currencies, nil
}
