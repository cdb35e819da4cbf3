package orderbook

import (
	"time"

	"github.com/google/uuid"
)

// Trade represents two opposed matched orders. Both legs of a match always
// execute at the same price and quantity, so one record carries the pair:
// the bid order id and the ask order id. The price is the resting order's
// price whenever the crossing orders disagree.
type Trade struct {
	ID         uuid.UUID
	Instrument string
	BidOrderID uint64
	AskOrderID uint64
	Price      int64
	Qty        int64
	Timestamp  time.Time
}
