package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCurrencies(t *testing.T) {
	t.Run("decodes a well-formed listing", func(t *testing.T) {
		payload := `[
			{"id": "BTC", "name": "Bitcoin", "min_size": "0.00000001"},
			{"id": "USD", "name": "United States Dollar", "min_size": "0.01000000"}
		]`

		raw, err := DecodeCurrencies([]byte(payload))

		require.NoError(t, err)
		require.Len(t, raw, 2)
		assert.Equal(t, "BTC", raw[0].ID)
		assert.Equal(t, "Bitcoin", raw[0].Name)
		assert.Equal(t, "0.00000001", raw[0].MinSize.String())
	})

	t.Run("round-trips all three fields exactly", func(t *testing.T) {
		payload := `{"id":"BTC","name":"Bitcoin","min_size":"0.00000001"}`

		var raw RawCurrency
		require.NoError(t, json.Unmarshal([]byte(payload), &raw))

		encoded, err := json.Marshal(raw)
		require.NoError(t, err)
		assert.JSONEq(t, payload, string(encoded))
	})

	t.Run("round-trips a numeric min_size without requoting", func(t *testing.T) {
		payload := `{"id":"USD","name":"United States Dollar","min_size":0.01}`

		var raw RawCurrency
		require.NoError(t, json.Unmarshal([]byte(payload), &raw))

		encoded, err := json.Marshal(raw)
		require.NoError(t, err)
		assert.JSONEq(t, payload, string(encoded))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := DecodeCurrencies([]byte(`[{"id": "BTC"`))

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "currencies", decodeErr.Resource)
	})

	t.Run("rejects a record missing required fields", func(t *testing.T) {
		_, err := DecodeCurrencies([]byte(`[{"min_size": "0.01"}]`))

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})
}

func TestRawCurrencyResolve(t *testing.T) {
	t.Run("resolves to a typed currency", func(t *testing.T) {
		raw := RawCurrency{ID: "BTC", Name: "Bitcoin", MinSize: NewRawDecimal("0.00000001")}

		currency, err := raw.Resolve()

		require.NoError(t, err)
		assert.Equal(t, "BTC", currency.ID)
		assert.Equal(t, "Bitcoin", currency.Name)
		assert.True(t, currency.MinSize.Equal(decimal.RequireFromString("0.00000001")))
	})

	t.Run("parses decimals exactly", func(t *testing.T) {
		raw := RawCurrency{ID: "USD", Name: "Dollar", MinSize: NewRawDecimal("2.00")}

		currency, err := raw.Resolve()

		require.NoError(t, err)
		assert.True(t, currency.MinSize.Equal(decimal.NewFromInt(2)))
	})

	t.Run("rejects a non-numeric min_size", func(t *testing.T) {
		raw := RawCurrency{ID: "BTC", Name: "Bitcoin", MinSize: NewRawDecimal("tiny")}

		_, err := raw.Resolve()

		var badDecimal *BadDecimalError
		require.ErrorAs(t, err, &badDecimal)
		assert.Equal(t, "min_size", badDecimal.Field)
		assert.Equal(t, "tiny", badDecimal.Value)
	})
}
