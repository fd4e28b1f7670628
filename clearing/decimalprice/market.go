package decimalprice

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/lightsgoout/callauction/clearing"
)

// MarketPrice is the sentinel decimal used to model a market order: a
// market ask carries price 0, a market bid carries MarketPrice (a very
// large finite decimal standing in for +Infinity, since decimal.Decimal
// has no IEEE infinity).
//
// This models the historical behaviour the specification's Open
// Question describes and explicitly asks to be kept out of the generic
// core: it lives here, as a caller-side wrapper, not inside clearing.
var MarketPrice = decimal.New(1, 30)

// IsMarketAsk reports whether p is the market-ask sentinel price.
func IsMarketAsk(p decimal.Decimal) bool {
	return p.IsZero()
}

// IsMarketBid reports whether p is the market-bid sentinel price.
func IsMarketBid(p decimal.Decimal) bool {
	return p.Equal(MarketPrice)
}

// ClearMarketAware wraps ClearRange with the older, removed-in-later-
// revisions behaviour: if the clearing range's endpoints are exactly
// the market-ask and market-bid sentinels, there is no real price
// discovery happening (both sides deferred to the market), and the
// auction is downgraded to no-match.
func ClearMarketAware(asks, bids iter.Seq[Order]) (clearing.RangeResult[decimal.Decimal], bool) {
	res, ok := ClearRange(asks, bids)
	if !ok {
		return res, false
	}
	if IsMarketAsk(res.Low) && IsMarketBid(res.High) {
		var zero clearing.RangeResult[decimal.Decimal]
		return zero, false
	}
	return res, true
}
