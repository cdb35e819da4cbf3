package orderbook

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testTrade(bidID, askID uint64, price, qty int64) Trade {
	return Trade{
		ID:         uuid.New(),
		Instrument: instrument,
		BidOrderID: bidID,
		AskOrderID: askID,
		Price:      price,
		Qty:        qty,
		Timestamp:  time.Now(),
	}
}

func TestTradeBook_Enter(t *testing.T) {
	tb := NewTradeBook(instrument)

	first := testTrade(2, 1, 100, 5)
	second := testTrade(4, 3, 101, 7)
	tb.Enter(first)
	tb.Enter(second)

	require.Equal(t, 2, tb.Len())

	trades := tb.Trades()
	require.Len(t, trades, 2)
	require.Equal(t, first.ID, trades[0].ID, "history keeps execution order")
	require.Equal(t, second.ID, trades[1].ID)

	got, ok := tb.Get(second.ID)
	require.True(t, ok)
	require.Equal(t, second, got)

	_, ok = tb.Get(uuid.New())
	require.False(t, ok)
}

func TestTradeBook_TradesReturnsACopy(t *testing.T) {
	tb := NewTradeBook(instrument)
	tb.Enter(testTrade(2, 1, 100, 5))

	trades := tb.Trades()
	trades[0].Qty = 9999

	fresh := tb.Trades()
	require.Equal(t, int64(5), fresh[0].Qty)
}
