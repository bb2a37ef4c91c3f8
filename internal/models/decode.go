package models

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// validate checks the struct tags on wire shapes after JSON
// deserialization, before any semantic resolution runs.
var validate = validator.New()

// decode is the shared two-step raw decode: unmarshal into the wire shape,
// then check its struct tags. Both failure modes are wire-level problems
// and surface as a DecodeError for the named resource.
func decode(resource string, data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Resource: resource, Err: err}
	}
	return nil
}

func checkWire(resource string, v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return &DecodeError{Resource: resource, Err: err}
	}
	return nil
}

// DecodeCurrencies deserializes a /currencies response body.
func DecodeCurrencies(data []byte) ([]RawCurrency, error) {
	var raw []RawCurrency
	if err := decode("currencies", data, &raw); err != nil {
		return nil, err
	}
	for i := range raw {
		if err := checkWire("currencies", &raw[i]); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// DecodeProducts deserializes a /products response body.
func DecodeProducts(data []byte) ([]RawProduct, error) {
	var raw []RawProduct
	if err := decode("products", data, &raw); err != nil {
		return nil, err
	}
	for i := range raw {
		if err := checkWire("products", &raw[i]); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// DecodeProduct deserializes a single /products/{id} response body.
func DecodeProduct(data []byte) (RawProduct, error) {
	var raw RawProduct
	if err := decode("product", data, &raw); err != nil {
		return RawProduct{}, err
	}
	if err := checkWire("product", &raw); err != nil {
		return RawProduct{}, err
	}
	return raw, nil
}

// DecodeOrderBook deserializes a /products/{id}/book response body.
func DecodeOrderBook(data []byte) (RawBook, error) {
	var raw RawBook
	if err := decode("order book", data, &raw); err != nil {
		return RawBook{}, err
	}
	return raw, nil
}

// DecodeTicker deserializes a /products/{id}/ticker response body.
func DecodeTicker(data []byte) (RawTicker, error) {
	var raw RawTicker
	if err := decode("ticker", data, &raw); err != nil {
		return RawTicker{}, err
	}
	if err := checkWire("ticker", &raw); err != nil {
		return RawTicker{}, err
	}
	return raw, nil
}

// DecodeTrades deserializes a /products/{id}/trades response body.
func DecodeTrades(data []byte) ([]RawTrade, error) {
	var raw []RawTrade
	if err := decode("trades", data, &raw); err != nil {
		return nil, err
	}
	for i := range raw {
		if err := checkWire("trades", &raw[i]); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// DecodeRates deserializes a /products/{id}/candles response body.
func DecodeRates(data []byte) ([]RawRate, error) {
	var raw []RawRate
	if err := decode("candles", data, &raw); err != nil {
		return nil, err
	}
	for i := range raw {
		if err := checkWire("candles", &raw[i]); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// DecodeDayStat deserializes a /products/{id}/stats response body.
func DecodeDayStat(data []byte) (RawDayStat, error) {
	var raw RawDayStat
	if err := decode("stats", data, &raw); err != nil {
		return RawDayStat{}, err
	}
	return raw, nil
}
