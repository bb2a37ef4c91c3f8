package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoricRate is one validated OHLCV candle.
type HistoricRate struct {
	Time   time.Time
	Low    decimal.Decimal
	High   decimal.Decimal
	Open   decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// RawRate is the wire shape of one /products/{id}/candles record.
type RawRate struct {
	Time   string     `json:"time" validate:"required"`
	Low    RawDecimal `json:"low"`
	High   RawDecimal `json:"high"`
	Open   RawDecimal `json:"open"`
	Close  RawDecimal `json:"close"`
	Volume RawDecimal `json:"volume"`
}

// Resolve validates the record and converts it into a HistoricRate.
func (r RawRate) Resolve() (HistoricRate, error) {
	ts, err := parseTimestamp(r.Time)
	if err != nil {
		return HistoricRate{}, err
	}
	low, err := r.Low.Decimal("low")
	if err != nil {
		return HistoricRate{}, err
	}
	high, err := r.High.Decimal("high")
	if err != nil {
		return HistoricRate{}, err
	}
	open, err := r.Open.Decimal("open")
	if err != nil {
		return HistoricRate{}, err
	}
	close, err := r.Close.Decimal("close")
	if err != nil {
		return HistoricRate{}, err
	}
	volume, err := r.Volume.Decimal("volume")
	if err != nil {
		return HistoricRate{}, err
	}
	return HistoricRate{
		Time:   ts,
		Low:    low,
		High:   high,
		Open:   open,
		Close:  close,
		Volume: volume,
	}, nil
}

// ResolveRates resolves a candles listing in sequence order, failing on
// the first invalid record.
func ResolveRates(raw []RawRate) ([]HistoricRate, error) {
	rates := make([]HistoricRate, 0, len(raw))
	for _, r := range raw {
		rate, err := r.Resolve()
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}
