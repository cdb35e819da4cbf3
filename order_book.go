package orderbook

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MinQty = 1
)

var (
	ErrInvalidQty        = errors.New("invalid quantity provided")
	ErrInvalidLimitPrice = errors.New("price has to be positive for limit orders")
	ErrUnknownOrder      = errors.New("unknown order id")
)

// OrderBook contains all active orders for an instrument, handles matching
// and reports the resulting trades.
//
// Mutating operations (SubmitLimit, SubmitMarket, Cancel) follow a
// single-writer model: at most one of them may be in flight at a time. The
// id counter is the only state safe to touch concurrently.
type OrderBook struct {
	Instrument string

	tradeBook *TradeBook
	orders    *orderContainer
	alloc     Allocator
	logger    *logrus.Logger

	orderCallbacks []OrderCallbackFunc
	tradeCallbacks []TradeCallbackFunc

	nextOrderID atomic.Uint64
}

// NewOrderBook creates an order book backed by a pooled allocator. tradeBook
// may be nil if no trade history should be retained.
func NewOrderBook(instrument string, tradeBook *TradeBook) *OrderBook {
	return NewOrderBookWithAllocator(instrument, tradeBook, NewOrderPool(DefaultPoolBatch))
}

// NewOrderBookWithAllocator creates an order book with explicit order
// storage. Pooled and direct allocation behave identically.
func NewOrderBookWithAllocator(instrument string, tradeBook *TradeBook, alloc Allocator) *OrderBook {
	return &OrderBook{
		Instrument: instrument,
		tradeBook:  tradeBook,
		orders:     NewOrderContainer(makeComparator(true), makeComparator(false)),
		alloc:      alloc,
		logger:     logrus.StandardLogger(),
	}
}

// SetLogger replaces the book's logger. Call before submitting orders.
func (o *OrderBook) SetLogger(logger *logrus.Logger) {
	o.logger = logger
}

// OnTrade registers a callback invoked for every executed trade.
func (o *OrderBook) OnTrade(cb TradeCallbackFunc) {
	o.tradeCallbacks = append(o.tradeCallbacks, cb)
}

// OnOrderRemoved registers a callback invoked whenever a resting order
// leaves the book, fully filled or canceled.
func (o *OrderBook) OnOrderRemoved(cb OrderCallbackFunc) {
	o.orderCallbacks = append(o.orderCallbacks, cb)
}

func (o *OrderBook) nextID() uint64 {
	return o.nextOrderID.Add(1)
}

// SubmitLimit places a limit order. If the order is immediately marketable
// it crosses against the opposing side first; any unmatched remainder rests
// at the back of its price level. Returns the trades generated by this call
// in the order the fills occurred.
func (o *OrderBook) SubmitLimit(side OrderSide, price, qty int64) ([]Trade, error) {
	if qty < MinQty {
		return nil, ErrInvalidQty
	}
	if price <= 0 {
		return nil, ErrInvalidLimitPrice
	}
	o.assertUncrossed()

	order := o.alloc.Allocate(o.nextID(), side, TypeLimit, price, qty)
	o.orders.Add(order)
	return o.matchOrders(), nil
}

// SubmitMarket places a market order. It walks the opposing side from the
// best price outward until the quantity is exhausted or the opposing side
// empties; an unfilled remainder is discarded, never rested. A zero quantity
// is a defined no-op. The order gets a synthetic id that only labels its
// side of the generated trades.
func (o *OrderBook) SubmitMarket(side OrderSide, qty int64) ([]Trade, error) {
	if qty == 0 {
		return []Trade{}, nil
	}
	if qty < 0 {
		return nil, ErrInvalidQty
	}
	o.assertUncrossed()

	marketID := o.nextID()
	opposite := side.Opposite()

	var trades []Trade
	for qty > 0 {
		lvl := o.orders.BestLevel(opposite)
		if lvl == nil {
			break // liquidity exhausted, drop the remainder
		}
		for qty > 0 && !lvl.empty() {
			resting := lvl.front()
			exec := min(qty, resting.UnfilledQty())
			resting.Fill(exec)
			lvl.reduce(exec)
			qty -= exec

			bidID, askID := marketID, resting.ID
			if side == SideSell {
				bidID, askID = resting.ID, marketID
			}
			trades = append(trades, o.recordTrade(bidID, askID, lvl.price, exec))

			if resting.IsFilled() {
				o.removeFilled(opposite, lvl)
			}
		}
	}
	return trades, nil
}

// Cancel removes a resting order by id, from any position in its level's
// queue. Ids that already filled or were canceled are unknown.
func (o *OrderBook) Cancel(id uint64) error {
	o.assertUncrossed()

	order := o.orders.Remove(id)
	if order == nil {
		return ErrUnknownOrder
	}
	o.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"side":     order.Side.String(),
		"price":    order.Price,
		"unfilled": order.UnfilledQty(),
	}).Debug("order canceled")

	o.notifyOrderRemoved(*order)
	o.alloc.Recycle(order)
	return nil
}

// matchOrders crosses the book while the best bid price reaches the best ask
// price, always filling the front orders of both best levels. Of the two
// crossing orders the one with the smaller id was resting first; its price
// is the execution price.
func (o *OrderBook) matchOrders() []Trade {
	var trades []Trade
	for {
		bidLevel := o.orders.BestLevel(SideBuy)
		askLevel := o.orders.BestLevel(SideSell)
		if bidLevel == nil || askLevel == nil || bidLevel.price < askLevel.price {
			break
		}
		bid := bidLevel.front()
		ask := askLevel.front()

		exec := min(bid.UnfilledQty(), ask.UnfilledQty())
		price := bid.Price
		if ask.ID < bid.ID {
			price = ask.Price
		}

		bid.Fill(exec)
		ask.Fill(exec)
		bidLevel.reduce(exec)
		askLevel.reduce(exec)

		trades = append(trades, o.recordTrade(bid.ID, ask.ID, price, exec))

		if bid.IsFilled() {
			o.removeFilled(SideBuy, bidLevel)
		}
		if ask.IsFilled() {
			o.removeFilled(SideSell, askLevel)
		}
	}
	return trades
}

// removeFilled pops a level's fully filled front order and recycles its
// storage. The notification copy is taken before the slot is recycled.
func (o *OrderBook) removeFilled(side OrderSide, lvl *priceLevel) {
	removed := o.orders.PopFront(side, lvl)
	o.notifyOrderRemoved(*removed)
	o.alloc.Recycle(removed)
}

func (o *OrderBook) recordTrade(bidID, askID uint64, price, qty int64) Trade {
	trade := Trade{
		ID:         uuid.New(),
		Instrument: o.Instrument,
		BidOrderID: bidID,
		AskOrderID: askID,
		Price:      price,
		Qty:        qty,
		Timestamp:  time.Now(),
	}
	if o.tradeBook != nil {
		o.tradeBook.Enter(trade)
	}
	o.logger.WithFields(logrus.Fields{
		"bid_order_id": bidID,
		"ask_order_id": askID,
		"price":        price,
		"qty":          qty,
	}).Debug("trade executed")
	for _, cb := range o.tradeCallbacks {
		cb(trade)
	}
	return trade
}

func (o *OrderBook) notifyOrderRemoved(order Order) {
	for _, cb := range o.orderCallbacks {
		cb(order)
	}
}

// assertUncrossed aborts if a crossed book survived a previous operation.
// Continuing would silently misreport trades, so this is fatal.
func (o *OrderBook) assertUncrossed() {
	bid := o.orders.BestLevel(SideBuy)
	ask := o.orders.BestLevel(SideSell)
	if bid != nil && ask != nil && bid.price >= ask.price {
		o.logger.WithFields(logrus.Fields{
			"best_bid": bid.price,
			"best_ask": ask.price,
		}).Error("book crossed outside of matching")
		panic(fmt.Sprintf("order book crossed: best bid %d >= best ask %d", bid.price, ask.price))
	}
}

// BestBid returns the highest resting bid price.
func (o *OrderBook) BestBid() (int64, bool) {
	lvl := o.orders.BestLevel(SideBuy)
	if lvl == nil {
		return 0, false
	}
	return lvl.price, true
}

// BestAsk returns the lowest resting ask price.
func (o *OrderBook) BestAsk() (int64, bool) {
	lvl := o.orders.BestLevel(SideSell)
	if lvl == nil {
		return 0, false
	}
	return lvl.price, true
}

// DepthAt returns the unfilled quantity resting on a side at an exact price.
func (o *OrderBook) DepthAt(side OrderSide, price int64) int64 {
	lvl := o.orders.LevelAt(side, price)
	if lvl == nil {
		return 0
	}
	return lvl.volume
}

// Remaining returns a resting order's unfilled quantity.
func (o *OrderBook) Remaining(id uint64) (int64, bool) {
	order, ok := o.orders.Get(id)
	if !ok {
		return 0, false
	}
	return order.UnfilledQty(), true
}

// GetBids returns all bids ordered the same way they are matched.
func (o *OrderBook) GetBids() []Order {
	return o.orders.Orders(SideBuy)
}

// GetAsks returns all asks ordered the same way they are matched.
func (o *OrderBook) GetAsks() []Order {
	return o.orders.Orders(SideSell)
}
