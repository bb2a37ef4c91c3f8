package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawDecimalUnmarshalJSON(t *testing.T) {
	t.Run("accepts a quoted value", func(t *testing.T) {
		var d RawDecimal
		require.NoError(t, json.Unmarshal([]byte(`"0.00000001"`), &d))
		assert.Equal(t, "0.00000001", d.String())
	})

	t.Run("accepts a bare number", func(t *testing.T) {
		var d RawDecimal
		require.NoError(t, json.Unmarshal([]byte(`0.01`), &d))
		assert.Equal(t, "0.01", d.String())
	})

	t.Run("rejects other JSON types", func(t *testing.T) {
		var d RawDecimal
		assert.Error(t, json.Unmarshal([]byte(`true`), &d))
		assert.Error(t, json.Unmarshal([]byte(`["0.01"]`), &d))
	})
}

func TestRawDecimalMarshalJSON(t *testing.T) {
	t.Run("a quoted value stays quoted", func(t *testing.T) {
		var d RawDecimal
		require.NoError(t, json.Unmarshal([]byte(`"0.00000001"`), &d))

		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"0.00000001"`, string(out))
	})

	t.Run("a bare number stays bare, trailing zeros intact", func(t *testing.T) {
		var d RawDecimal
		require.NoError(t, json.Unmarshal([]byte(`0.0100`), &d))

		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `0.0100`, string(out))
	})
}

func TestRawDecimalDecimal(t *testing.T) {
	t.Run("parses exactly", func(t *testing.T) {
		d, err := NewRawDecimal("0.00000001").Decimal("min_size")

		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.New(1, -8)))
	})

	t.Run("failure names the field and keeps the text", func(t *testing.T) {
		_, err := NewRawDecimal("1.2.3").Decimal("price")

		var badDecimal *BadDecimalError
		require.ErrorAs(t, err, &badDecimal)
		assert.Equal(t, "price", badDecimal.Field)
		assert.Equal(t, "1.2.3", badDecimal.Value)
	})
}
