package models

import (
	"github.com/shopspring/decimal"
)

// DayStat is a validated 24-hour rolling stats snapshot. It has no
// identity; each fetch replaces the last.
type DayStat struct {
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Volume decimal.Decimal
}

// RawDayStat is the wire shape of a /products/{id}/stats response.
type RawDayStat struct {
	Open   RawDecimal `json:"open"`
	High   RawDecimal `json:"high"`
	Low    RawDecimal `json:"low"`
	Volume RawDecimal `json:"volume"`
}

// Resolve validates the record and converts it into a DayStat.
func (r RawDayStat) Resolve() (DayStat, error) {
	open, err := r.Open.Decimal("open")
	if err != nil {
		return DayStat{}, err
	}
	high, err := r.High.Decimal("high")
	if err != nil {
		return DayStat{}, err
	}
	low, err := r.Low.Decimal("low")
	if err != nil {
		return DayStat{}, err
	}
	volume, err := r.Volume.Decimal("volume")
	if err != nil {
		return DayStat{}, err
	}
	return DayStat{
		Open:   open,
		High:   high,
		Low:    low,
		Volume: volume,
	}, nil
}
