package orderbook

import "container/list"

// priceLevel is the FIFO queue of resting orders at a single price, all on
// the same side. The front of the queue is the oldest order. volume tracks
// the unfilled quantity resting at this price.
type priceLevel struct {
	price  int64
	orders *list.List // of *Order
	volume int64
}

func newPriceLevel(price int64) *priceLevel {
	return &priceLevel{
		price:  price,
		orders: list.New(),
	}
}

// enqueue appends an order to the back of the queue and returns its element,
// the stable handle used for O(1) removal from any position.
func (p *priceLevel) enqueue(o *Order) *list.Element {
	p.volume += o.UnfilledQty()
	return p.orders.PushBack(o)
}

// remove unlinks an element from any position in the queue without
// disturbing the relative order of the remaining entries.
func (p *priceLevel) remove(elem *list.Element) {
	o := elem.Value.(*Order)
	p.volume -= o.UnfilledQty()
	p.orders.Remove(elem)
}

// reduce records a fill against this level's resting volume.
func (p *priceLevel) reduce(qty int64) {
	p.volume -= qty
}

func (p *priceLevel) front() *Order {
	elem := p.orders.Front()
	if elem == nil {
		return nil
	}
	return elem.Value.(*Order)
}

func (p *priceLevel) empty() bool {
	return p.orders.Len() == 0
}

func (p *priceLevel) len() int {
	return p.orders.Len()
}
