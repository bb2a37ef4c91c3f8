package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookLevel(t *testing.T) {
	t.Run("only the three exchange tiers are valid", func(t *testing.T) {
		assert.True(t, BookLevelBest.Valid())
		assert.True(t, BookLevelTop50.Valid())
		assert.True(t, BookLevelFull.Valid())
		assert.False(t, BookLevel(0).Valid())
		assert.False(t, BookLevel(4).Valid())
	})

	t.Run("levels 1 and 2 are aggregated, level 3 is not", func(t *testing.T) {
		assert.True(t, BookLevelBest.Aggregated())
		assert.True(t, BookLevelTop50.Aggregated())
		assert.False(t, BookLevelFull.Aggregated())
	})
}

func TestRawBookResolveAggregated(t *testing.T) {
	payload := `{
		"sequence": 12345,
		"bids": [["100.5", "2.0", 3]],
		"asks": [["101.0", "1.5", 2]]
	}`

	raw, err := DecodeOrderBook([]byte(payload))
	require.NoError(t, err)

	book, err := raw.Resolve(BookLevelTop50)
	require.NoError(t, err)

	assert.Equal(t, int64(12345), book.Sequence)
	require.Len(t, book.Bids, 1)
	require.Len(t, book.Asks, 1)

	bid := book.Bids[0]
	assert.True(t, bid.Price.Equal(decimal.RequireFromString("100.5")))
	assert.True(t, bid.Size.Equal(decimal.RequireFromString("2.0")))
	count, ok := bid.NumOrders()
	require.True(t, ok)
	assert.Equal(t, int64(3), count)
	_, ok = bid.OrderID()
	assert.False(t, ok)

	ask := book.Asks[0]
	count, ok = ask.NumOrders()
	require.True(t, ok)
	assert.Equal(t, int64(2), count)
}

func TestRawBookResolveFull(t *testing.T) {
	t.Run("third element is an order id", func(t *testing.T) {
		payload := `{
			"sequence": 99,
			"bids": [["100.5", "2.0", "550e8400-e29b-41d4-a716-446655440000"]],
			"asks": []
		}`

		raw, err := DecodeOrderBook([]byte(payload))
		require.NoError(t, err)

		book, err := raw.Resolve(BookLevelFull)
		require.NoError(t, err)

		require.Len(t, book.Bids, 1)
		id, ok := book.Bids[0].OrderID()
		require.True(t, ok)
		assert.Equal(t, uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"), id)
		_, ok = book.Bids[0].NumOrders()
		assert.False(t, ok)
	})

	t.Run("a string that is not a uuid is a BadUUIDError", func(t *testing.T) {
		raw := RawBook{
			Bids: []RawBookEntry{rawEntry(`"100.5"`, `"2.0"`, `"not-a-uuid"`)},
		}

		_, err := raw.Resolve(BookLevelFull)

		var badUUID *BadUUIDError
		require.ErrorAs(t, err, &badUUID)
		assert.Equal(t, "not-a-uuid", badUUID.Value)
	})

	t.Run("a numeric third element is a BadUUIDError at level 3", func(t *testing.T) {
		raw := RawBook{
			Bids: []RawBookEntry{rawEntry(`"100.5"`, `"2.0"`, `3`)},
		}

		_, err := raw.Resolve(BookLevelFull)

		var badUUID *BadUUIDError
		require.ErrorAs(t, err, &badUUID)
	})
}

func rawEntry(parts ...string) RawBookEntry {
	e := make(RawBookEntry, 0, len(parts))
	for _, p := range parts {
		e = append(e, []byte(p))
	}
	return e
}

func TestRawBookResolveErrors(t *testing.T) {
	t.Run("a non-integer count is a BadOrderCountError", func(t *testing.T) {
		raw := RawBook{
			Asks: []RawBookEntry{rawEntry(`"100.5"`, `"2.0"`, `"three"`)},
		}

		_, err := raw.Resolve(BookLevelBest)

		var badCount *BadOrderCountError
		require.ErrorAs(t, err, &badCount)
		assert.Equal(t, `"three"`, badCount.Value)
	})

	t.Run("an entry with the wrong arity is a BadBookEntryError", func(t *testing.T) {
		raw := RawBook{
			Bids: []RawBookEntry{rawEntry(`"100.5"`, `"2.0"`)},
		}

		_, err := raw.Resolve(BookLevelTop50)

		var badEntry *BadBookEntryError
		require.ErrorAs(t, err, &badEntry)
		assert.Equal(t, 2, badEntry.Length)
	})

	t.Run("a non-numeric price names the field", func(t *testing.T) {
		raw := RawBook{
			Bids: []RawBookEntry{rawEntry(`"expensive"`, `"2.0"`, `1`)},
		}

		_, err := raw.Resolve(BookLevelBest)

		var badDecimal *BadDecimalError
		require.ErrorAs(t, err, &badDecimal)
		assert.Equal(t, "price", badDecimal.Field)
	})

	t.Run("resolution is fail-fast and names the position", func(t *testing.T) {
		raw := RawBook{
			Bids: []RawBookEntry{
				rawEntry(`"100.5"`, `"2.0"`, `3`),
				rawEntry(`"100.4"`, `"oops"`, `1`),
			},
		}

		_, err := raw.Resolve(BookLevelTop50)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bids: entry 1:")
	})

	t.Run("a bad ask does not surface a partial book", func(t *testing.T) {
		raw := RawBook{
			Bids: []RawBookEntry{rawEntry(`"100.5"`, `"2.0"`, `3`)},
			Asks: []RawBookEntry{rawEntry(`"101.0"`, `"1.5"`)},
		}

		book, err := raw.Resolve(BookLevelTop50)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "asks: entry 0:")
		assert.Empty(t, book.Bids)
	})
}

func TestRawBookResolveOrdering(t *testing.T) {
	payload := `{
		"sequence": 7,
		"bids": [["100.5", "1.0", 1], ["100.4", "1.0", 1], ["100.3", "1.0", 1]],
		"asks": [["100.6", "1.0", 1], ["100.7", "1.0", 1]]
	}`

	raw, err := DecodeOrderBook([]byte(payload))
	require.NoError(t, err)

	book, err := raw.Resolve(BookLevelTop50)
	require.NoError(t, err)

	require.Len(t, book.Bids, 3)
	assert.True(t, book.Bids[0].Price.Equal(decimal.RequireFromString("100.5")))
	assert.True(t, book.Bids[1].Price.Equal(decimal.RequireFromString("100.4")))
	assert.True(t, book.Bids[2].Price.Equal(decimal.RequireFromString("100.3")))

	require.Len(t, book.Asks, 2)
	assert.True(t, book.Asks[0].Price.Equal(decimal.RequireFromString("100.6")))
	assert.True(t, book.Asks[1].Price.Equal(decimal.RequireFromString("100.7")))
}
