package orderbook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderPool_GrowsInBatches(t *testing.T) {
	pool := NewOrderPool(4)
	require.Equal(t, 0, pool.Free())

	o := pool.Allocate(1, SideBuy, TypeLimit, 100, 5)
	require.Equal(t, 3, pool.Free())
	require.Equal(t, uint64(1), o.ID)

	for id := uint64(2); id <= 4; id++ {
		pool.Allocate(id, SideBuy, TypeLimit, 100, 5)
	}
	require.Equal(t, 0, pool.Free())

	// exhausting the batch triggers another one
	pool.Allocate(5, SideSell, TypeLimit, 101, 5)
	require.Equal(t, 3, pool.Free())
}

func TestOrderPool_DefaultBatch(t *testing.T) {
	pool := NewOrderPool(0)
	pool.Allocate(1, SideBuy, TypeLimit, 100, 5)
	require.Equal(t, DefaultPoolBatch-1, pool.Free())
}

func TestOrderPool_ReinitializesRecycledSlots(t *testing.T) {
	pool := NewOrderPool(1)

	first := pool.Allocate(1, SideSell, TypeLimit, 200, 10)
	first.Fill(4)
	pool.Recycle(first)

	second := pool.Allocate(2, SideBuy, TypeLimit, 100, 5)
	require.Same(t, first, second, "a batch of one must reuse the slot")
	require.Equal(t, uint64(2), second.ID)
	require.Equal(t, SideBuy, second.Side)
	require.Equal(t, int64(100), second.Price)
	require.Equal(t, int64(5), second.Qty)
	require.Equal(t, int64(0), second.FilledQty, "stale fills must not leak into a new order")
	require.False(t, second.Timestamp.IsZero())
}

// The pool is a performance layer only: matching against a pooled book and a
// directly allocated one must produce the same fills.
func TestOrderPool_SubstitutableByDirectAllocation(t *testing.T) {
	type fill struct {
		bidID, askID uint64
		price, qty   int64
	}

	run := func(alloc Allocator) []fill {
		ob := NewOrderBookWithAllocator(instrument, nil, alloc)
		ob.SetLogger(discardLogger())

		var fills []fill
		collect := func(trades []Trade) {
			for _, trade := range trades {
				fills = append(fills, fill{trade.BidOrderID, trade.AskOrderID, trade.Price, trade.Qty})
			}
		}

		trades, err := ob.SubmitLimit(SideSell, 100, 10)
		require.NoError(t, err)
		collect(trades)
		trades, err = ob.SubmitLimit(SideSell, 101, 10)
		require.NoError(t, err)
		collect(trades)
		trades, err = ob.SubmitLimit(SideBuy, 101, 15)
		require.NoError(t, err)
		collect(trades)
		trades, err = ob.SubmitLimit(SideBuy, 90, 5)
		require.NoError(t, err)
		collect(trades)
		require.NoError(t, ob.Cancel(4))
		trades, err = ob.SubmitMarket(SideBuy, 20)
		require.NoError(t, err)
		collect(trades)
		return fills
	}

	pooled := run(NewOrderPool(2))
	direct := run(NewDirectAllocator())
	require.Equal(t, direct, pooled)
}
