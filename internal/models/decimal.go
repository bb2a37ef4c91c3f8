package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RawDecimal holds a decimal-bearing JSON value exactly as it appeared on
// the wire. Current API versions send sizes and prices as strings
// ("0.00000001"); older versions sent bare numbers. Both forms decode into
// a RawDecimal without loss, and re-encoding reproduces the original
// representation byte for byte.
type RawDecimal struct {
	text   string
	quoted bool
}

// NewRawDecimal returns a RawDecimal that encodes as a JSON string. It is
// mostly useful for constructing wire fixtures in tests.
func NewRawDecimal(s string) RawDecimal {
	return RawDecimal{text: s, quoted: true}
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (d *RawDecimal) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty decimal value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		d.text = s
		d.quoted = true
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decimal field must be a string or number: %w", err)
	}
	d.text = n.String()
	d.quoted = false
	return nil
}

// MarshalJSON reproduces the wire representation the value arrived in.
func (d RawDecimal) MarshalJSON() ([]byte, error) {
	if d.quoted {
		return json.Marshal(d.text)
	}
	return []byte(d.text), nil
}

// String returns the literal text of the value.
func (d RawDecimal) String() string { return d.text }

// Decimal parses the value as a fixed-point decimal. field names the wire
// field for the BadDecimalError returned on failure.
func (d RawDecimal) Decimal(field string) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(d.text)
	if err != nil {
		return decimal.Zero, &BadDecimalError{Field: field, Value: d.text, Err: err}
	}
	return dec, nil
}
