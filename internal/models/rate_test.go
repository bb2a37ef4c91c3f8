package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRates(t *testing.T) {
	t.Run("resolves a candle listing in order", func(t *testing.T) {
		raw := []RawRate{
			{
				Time:   "2020-03-20T00:00:00Z",
				Low:    NewRawDecimal("6200.00"),
				High:   NewRawDecimal("6300.00"),
				Open:   NewRawDecimal("6250.00"),
				Close:  NewRawDecimal("6268.48"),
				Volume: NewRawDecimal("1234.5678"),
			},
			{
				Time:   "2020-03-20T01:00:00Z",
				Low:    NewRawDecimal("6260.00"),
				High:   NewRawDecimal("6290.00"),
				Open:   NewRawDecimal("6268.48"),
				Close:  NewRawDecimal("6275.00"),
				Volume: NewRawDecimal("987.654"),
			},
		}

		rates, err := ResolveRates(raw)

		require.NoError(t, err)
		require.Len(t, rates, 2)
		assert.Equal(t, time.Date(2020, 3, 20, 0, 0, 0, 0, time.UTC), rates[0].Time)
		assert.True(t, rates[0].Low.Equal(decimal.RequireFromString("6200.00")))
		assert.True(t, rates[0].Close.Equal(decimal.RequireFromString("6268.48")))
		assert.Equal(t, time.Date(2020, 3, 20, 1, 0, 0, 0, time.UTC), rates[1].Time)
	})

	t.Run("fails on the first bad field", func(t *testing.T) {
		raw := []RawRate{
			{
				Time:   "2020-03-20T00:00:00Z",
				Low:    NewRawDecimal("6200.00"),
				High:   NewRawDecimal("peak"),
				Open:   NewRawDecimal("6250.00"),
				Close:  NewRawDecimal("6268.48"),
				Volume: NewRawDecimal("1234.5678"),
			},
		}

		_, err := ResolveRates(raw)

		var badDecimal *BadDecimalError
		require.ErrorAs(t, err, &badDecimal)
		assert.Equal(t, "high", badDecimal.Field)
	})
}

func TestDecodeRates(t *testing.T) {
	t.Run("decodes numeric candle fields", func(t *testing.T) {
		payload := `[
			{"time": "2020-03-20T00:00:00Z", "low": 6200.0, "high": 6300.0, "open": 6250.0, "close": 6268.48, "volume": 1234.5678}
		]`

		raw, err := DecodeRates([]byte(payload))

		require.NoError(t, err)
		require.Len(t, raw, 1)

		rate, err := raw[0].Resolve()
		require.NoError(t, err)
		assert.True(t, rate.Close.Equal(decimal.RequireFromString("6268.48")))
	})

	t.Run("rejects a candle without a time", func(t *testing.T) {
		_, err := DecodeRates([]byte(`[{"low": "1.0"}]`))

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "candles", decodeErr.Resource)
	})
}

func TestRawDayStatResolve(t *testing.T) {
	t.Run("resolves a stats snapshot", func(t *testing.T) {
		raw, err := DecodeDayStat([]byte(`{
			"open": "6250.00",
			"high": "6300.00",
			"low": "6200.00",
			"volume": "12345.678"
		}`))
		require.NoError(t, err)

		stat, err := raw.Resolve()

		require.NoError(t, err)
		assert.True(t, stat.Open.Equal(decimal.RequireFromString("6250.00")))
		assert.True(t, stat.High.Equal(decimal.RequireFromString("6300.00")))
		assert.True(t, stat.Low.Equal(decimal.RequireFromString("6200.00")))
		assert.True(t, stat.Volume.Equal(decimal.RequireFromString("12345.678")))
	})

	t.Run("a non-numeric volume names the field", func(t *testing.T) {
		raw := RawDayStat{
			Open:   NewRawDecimal("1.0"),
			High:   NewRawDecimal("1.0"),
			Low:    NewRawDecimal("1.0"),
			Volume: NewRawDecimal("lots"),
		}

		_, err := raw.Resolve()

		var badDecimal *BadDecimalError
		require.ErrorAs(t, err, &badDecimal)
		assert.Equal(t, "volume", badDecimal.Field)
	})
}
