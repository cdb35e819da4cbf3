package orderbook

import "time"

// DefaultPoolBatch is how many order slots an OrderPool preallocates at once.
const DefaultPoolBatch = 100

// Allocator hands out and takes back Order storage. The matching engine is
// agnostic to where the storage comes from: a pooled allocator and a direct
// one are interchangeable without any observable difference in behavior.
type Allocator interface {
	Allocate(id uint64, side OrderSide, typ OrderType, price, qty int64) *Order
	Recycle(order *Order)
}

// OrderPool reuses order storage so the submission hot path does not
// allocate. Slots are grown in batches and fully rewritten on every
// allocation; a recycled slot never leaks its previous tenant's fields.
type OrderPool struct {
	free  []*Order
	batch int
}

// NewOrderPool creates a pool growing by the given batch size.
// Non-positive batch sizes fall back to DefaultPoolBatch.
func NewOrderPool(batch int) *OrderPool {
	if batch <= 0 {
		batch = DefaultPoolBatch
	}
	return &OrderPool{batch: batch}
}

func (p *OrderPool) Allocate(id uint64, side OrderSide, typ OrderType, price, qty int64) *Order {
	if len(p.free) == 0 {
		p.grow()
	}
	o := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	*o = Order{
		ID:        id,
		Side:      side,
		Type:      typ,
		Price:     price,
		Qty:       qty,
		Timestamp: time.Now(),
	}
	return o
}

func (p *OrderPool) Recycle(order *Order) {
	*order = Order{}
	p.free = append(p.free, order)
}

// Free reports how many slots are currently available without growing.
func (p *OrderPool) Free() int {
	return len(p.free)
}

func (p *OrderPool) grow() {
	block := make([]Order, p.batch)
	for i := range block {
		p.free = append(p.free, &block[i])
	}
}

type directAllocator struct{}

// NewDirectAllocator returns an Allocator backed by plain allocation,
// behaviorally identical to a pool.
func NewDirectAllocator() Allocator {
	return directAllocator{}
}

func (directAllocator) Allocate(id uint64, side OrderSide, typ OrderType, price, qty int64) *Order {
	return &Order{
		ID:        id,
		Side:      side,
		Type:      typ,
		Price:     price,
		Qty:       qty,
		Timestamp: time.Now(),
	}
}

func (directAllocator) Recycle(order *Order) {}
