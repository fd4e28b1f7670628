// Package decimalprice adapts the generic clearing core to decimal.Decimal
// prices, the concrete price domain used throughout this repository's
// storage and CLI layers.
package decimalprice

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/lightsgoout/callauction/clearing"
)

// Order is a clearing order keyed by a decimal price.
type Order = clearing.Order[decimal.Decimal]

// Less is the strict ordering the core requires for decimal prices.
func Less(a, b decimal.Decimal) bool {
	return a.Cmp(b) < 0
}

// NewOrder constructs a decimal-priced order.
func NewOrder(price decimal.Decimal, volume uint64) Order {
	return Order{Price: price, Volume: volume}
}

// SeqOf turns an in-memory slice into the pull sequence the core
// expects, for callers that already hold their book in a slice (e.g.
// bookstore.FetchBook).
func SeqOf(orders []Order) iter.Seq[Order] {
	return func(yield func(Order) bool) {
		for _, o := range orders {
			if !yield(o) {
				return
			}
		}
	}
}

// Clear and ClearRange are thin re-exports of the generic core,
// instantiated for decimal.Decimal, so callers in this repository never
// have to spell out the type parameter or the comparator.
func Clear(asks, bids iter.Seq[Order]) (clearing.Result[decimal.Decimal], bool) {
	return clearing.Clear(asks, bids, Less)
}

func ClearRange(asks, bids iter.Seq[Order]) (clearing.RangeResult[decimal.Decimal], bool) {
	return clearing.ClearRange(asks, bids, Less)
}
