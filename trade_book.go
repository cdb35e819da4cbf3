package orderbook

import (
	"sync"

	"github.com/google/uuid"
)

// TradeBook retains every trade executed for an instrument. It is safe for
// concurrent readers alongside the single engine writer.
type TradeBook struct {
	Instrument string

	trades     []Trade
	indexByID  map[uuid.UUID]int
	tradeMutex sync.RWMutex
}

func NewTradeBook(instrument string) *TradeBook {
	return &TradeBook{
		Instrument: instrument,
		trades:     make([]Trade, 0, 1024),
		indexByID:  make(map[uuid.UUID]int),
	}
}

func (t *TradeBook) Enter(trade Trade) {
	t.tradeMutex.Lock()
	defer t.tradeMutex.Unlock()

	t.indexByID[trade.ID] = len(t.trades)
	t.trades = append(t.trades, trade)
}

// Get returns a recorded trade by id.
func (t *TradeBook) Get(id uuid.UUID) (Trade, bool) {
	t.tradeMutex.RLock()
	defer t.tradeMutex.RUnlock()

	i, ok := t.indexByID[id]
	if !ok {
		return Trade{}, false
	}
	return t.trades[i], true
}

// Trades returns a copy of the full trade history in execution order.
func (t *TradeBook) Trades() []Trade {
	t.tradeMutex.RLock()
	defer t.tradeMutex.RUnlock()

	tradesCopy := make([]Trade, len(t.trades))
	copy(tradesCopy, t.trades)
	return tradesCopy
}

func (t *TradeBook) Len() int {
	t.tradeMutex.RLock()
	defer t.tradeMutex.RUnlock()
	return len(t.trades)
}
