package orderbook

import (
	"container/list"

	"github.com/igrmk/treemap/v2"
)

// orderHandle locates a resting order without scanning the ledger: the side
// and price find the level, the element is the stable node inside that
// level's queue. Handles stay valid across unrelated queue mutations.
type orderHandle struct {
	side  OrderSide
	price int64
	level *priceLevel
	elem  *list.Element
}

// LessFunc compares two prices and returns true if a sorts before b.
type LessFunc func(a, b int64) bool

// makeComparator builds the price ordering for one side of the book: bids
// iterate highest price first, asks lowest price first, so the first key of
// either tree is always that side's best price.
func makeComparator(priceDescending bool) LessFunc {
	if priceDescending {
		return func(a, b int64) bool { return a > b }
	}
	return func(a, b int64) bool { return a < b }
}

// orderContainer holds both sides of the price ledger plus the id index over
// every resting order. The trees and the handle index are always mutated
// together within a single engine operation.
type orderContainer struct {
	Bids, Asks *treemap.TreeMap[int64, *priceLevel]
	handles    map[uint64]orderHandle
}

func NewOrderContainer(bidLess, askLess LessFunc) *orderContainer {
	return &orderContainer{
		Bids:    treemap.NewWithKeyCompare[int64, *priceLevel](bidLess),
		Asks:    treemap.NewWithKeyCompare[int64, *priceLevel](askLess),
		handles: make(map[uint64]orderHandle),
	}
}

func (c *orderContainer) tree(side OrderSide) *treemap.TreeMap[int64, *priceLevel] {
	if side == SideBuy {
		return c.Bids
	}
	return c.Asks
}

// Add rests an order at the back of its price level, creating the level if
// absent, and indexes it by id.
func (c *orderContainer) Add(o *Order) {
	tree := c.tree(o.Side)
	lvl, ok := tree.Get(o.Price)
	if !ok {
		lvl = newPriceLevel(o.Price)
		tree.Set(o.Price, lvl)
	}
	elem := lvl.enqueue(o)
	c.handles[o.ID] = orderHandle{
		side:  o.Side,
		price: o.Price,
		level: lvl,
		elem:  elem,
	}
}

// Remove takes an order out of the book by id, from any position in its
// level's queue. Returns nil if the id is not resting.
func (c *orderContainer) Remove(id uint64) *Order {
	h, ok := c.handles[id]
	if !ok {
		return nil
	}
	o := h.elem.Value.(*Order)
	h.level.remove(h.elem)
	delete(c.handles, id)
	if h.level.empty() {
		c.tree(h.side).Del(h.price)
	}
	return o
}

// PopFront removes the front order of a level along with its index entry,
// dropping the level once it empties.
func (c *orderContainer) PopFront(side OrderSide, lvl *priceLevel) *Order {
	front := lvl.orders.Front()
	o := front.Value.(*Order)
	lvl.remove(front)
	delete(c.handles, o.ID)
	if lvl.empty() {
		c.tree(side).Del(lvl.price)
	}
	return o
}

// Get returns a resting order by id.
func (c *orderContainer) Get(id uint64) (*Order, bool) {
	h, ok := c.handles[id]
	if !ok {
		return nil, false
	}
	return h.elem.Value.(*Order), true
}

// BestLevel returns a side's best price level, nil when the side is empty.
func (c *orderContainer) BestLevel(side OrderSide) *priceLevel {
	iter := c.tree(side).Iterator()
	if !iter.Valid() {
		return nil
	}
	return iter.Value()
}

// LevelAt returns the level resting at an exact price, nil when absent.
func (c *orderContainer) LevelAt(side OrderSide, price int64) *priceLevel {
	lvl, ok := c.tree(side).Get(price)
	if !ok {
		return nil
	}
	return lvl
}

// Len reports the number of orders resting on one side.
func (c *orderContainer) Len(side OrderSide) int {
	n := 0
	for iter := c.tree(side).Iterator(); iter.Valid(); iter.Next() {
		n += iter.Value().len()
	}
	return n
}

// Orders snapshots one side in matching order: best price first, FIFO within
// each level.
func (c *orderContainer) Orders(side OrderSide) []Order {
	orders := make([]Order, 0)
	for iter := c.tree(side).Iterator(); iter.Valid(); iter.Next() {
		for elem := iter.Value().orders.Front(); elem != nil; elem = elem.Next() {
			orders = append(orders, *elem.Value.(*Order))
		}
	}
	return orders
}
