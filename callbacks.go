package orderbook

// OrderCallbackFunc observes orders leaving the book, fully filled or
// canceled. The callback receives a copy; the book's storage may be reused
// immediately after.
type OrderCallbackFunc func(order Order)

// TradeCallbackFunc observes every executed trade as it happens.
type TradeCallbackFunc func(trade Trade)
