package orderbook

import (
	"fmt"
	"time"
)

// OrderSide marks an order as a bid or an ask.
type OrderSide int

const (
	SideBuy OrderSide = iota
	SideSell
)

func (s OrderSide) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// Opposite returns the side an order of this side matches against.
func (s OrderSide) Opposite() OrderSide {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType determines how an order executes: limit orders rest in the book,
// market orders only consume resting liquidity and are never stored.
type OrderType int

const (
	TypeLimit OrderType = iota
	TypeMarket
)

func (t OrderType) String() string {
	if t == TypeLimit {
		return "limit"
	}
	return "market"
}

// Order is a single trading intent. Prices and quantities are fixed-width
// integers (price in ticks), so all matching arithmetic is exact.
//
// An order is owned by the price level it rests in; it is mutated only by
// fills and destroyed by full execution or cancellation.
type Order struct {
	ID        uint64
	Side      OrderSide
	Type      OrderType
	Price     int64 // in ticks, zero for market orders
	Qty       int64 // initial quantity
	FilledQty int64
	Timestamp time.Time
}

// UnfilledQty returns the quantity still open for matching.
func (o *Order) UnfilledQty() int64 {
	return o.Qty - o.FilledQty
}

// IsFilled returns true once no open quantity remains.
func (o *Order) IsFilled() bool {
	return o.FilledQty == o.Qty
}

func (o *Order) IsBid() bool {
	return o.Side == SideBuy
}

// Fill executes exec units against the order. Filling more than the open
// quantity is a matching defect, not a caller error, and panics.
func (o *Order) Fill(exec int64) {
	if exec > o.UnfilledQty() {
		panic(fmt.Sprintf("overfill: order %d has %d unfilled, tried to fill %d", o.ID, o.UnfilledQty(), exec))
	}
	o.FilledQty += exec
}
