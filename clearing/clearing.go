// Package clearing implements the clearing core of a volume-maximising
// uniform-price call auction for one trading pair.
//
// Asks and bids are handed in as two presorted pull sequences of
// (price, volume) pairs — asks non-descending by price, bids
// non-ascending by price — and the core walks both once, in lockstep,
// to find the single execution price that maximises matched volume.
// Every matched order settles at that one price; everything else is
// left untouched. The core holds no state between calls and performs
// no I/O.
package clearing

import "iter"

// Less is a strict weak order on the price domain P. It must agree with
// the sort order the caller used to produce the asks/bids sequences.
type Less[P any] func(a, b P) bool

// Order is a single resting limit order: a price and a non-negative
// volume.
type Order[P any] struct {
	Price  P
	Volume uint64
}

// Result is the outcome of Clear: a single clearing price and the
// volume that trades at it.
type Result[P any] struct {
	Price  P
	Volume uint64
}

// RangeResult is the outcome of ClearRange: the full closed interval of
// prices at which the maximum volume is achievable, plus that volume.
type RangeResult[P any] struct {
	Low, High P
	Volume    uint64
}

// walkState is the terminal state of the two-pointer walk, from which
// both Clear and ClearRange derive their result.
type walkState[P any] struct {
	askPrice  P
	askVolume uint64
	bidVolume uint64

	// bidPriceLast is the price of the most recently admitted bid,
	// updated unconditionally whenever a bid clears the frontier check
	// and is admitted. It backs Clear's single-price result.
	bidPriceLast P
	lastSet      bool

	// bidPriceConfirmed is the outermost bid price that was actually
	// re-covered by ask volume, per the range tie-break rule in the
	// package's walk. It backs ClearRange's high endpoint.
	bidPriceConfirmed P
	confirmedSet      bool

	matched bool
}

// walk runs the two-pointer clearing pass described in the package
// comment. It pulls each element of asks and bids at most once, in a
// deterministic order, and never mutates them.
//
// Invariant maintained at every outer-loop head: askVolume >= bidVolume.
// Bids are admitted first (which may push bidVolume above askVolume),
// then asks are admitted until the invariant is restored.
func walk[P any](asks, bids iter.Seq[Order[P]], less Less[P]) walkState[P] {
	var st walkState[P]

	nextAsk, stopAsks := iter.Pull(asks)
	defer stopAsks()
	nextBid, stopBids := iter.Pull(bids)
	defer stopBids()

	firstAsk, ok := nextAsk()
	if !ok {
		return st
	}
	st.askPrice = firstAsk.Price
	st.askVolume = firstAsk.Volume

	for {
		bid, ok := nextBid()
		if !ok {
			break
		}
		if less(bid.Price, st.askPrice) {
			// Incoming bid is strictly below the current ask frontier:
			// it is not admitted, and nothing more can ever clear.
			break
		}

		// wasStrict records whether the invariant was strict (ask
		// volume strictly ahead of bid volume) before this bid is
		// folded in. It decides how bidPriceConfirmed gets updated.
		wasStrict := st.askVolume > st.bidVolume

		st.bidVolume += bid.Volume
		st.bidPriceLast = bid.Price
		st.lastSet = true

		if wasStrict {
			// This bid cleared volume independently of any further
			// ask admission, so it is an outermost feasible price
			// right away.
			st.bidPriceConfirmed = bid.Price
			st.confirmedSet = true
		}

		// confirmedThisBid guards the tight-invariant case below: a
		// bid admitted while the invariant was exactly tight only
		// becomes part of the feasible range once the inner loop
		// actually re-covers it with a positive-volume ask. Once that
		// happens for this bid, later asks pulled for it must not
		// overwrite bidPriceConfirmed again.
		confirmedThisBid := false
		exhausted := false

		for st.askVolume < st.bidVolume {
			ask, ok := nextAsk()
			if !ok {
				exhausted = true
				break
			}
			if less(bid.Price, ask.Price) {
				// The new ask is priced above the admitting bid: it
				// cannot be admitted, and nothing further can clear.
				exhausted = true
				break
			}

			st.askPrice = ask.Price
			st.askVolume += ask.Volume

			if !wasStrict && !confirmedThisBid && ask.Volume > 0 {
				st.bidPriceConfirmed = bid.Price
				st.confirmedSet = true
				confirmedThisBid = true
			}
		}
		if exhausted {
			break
		}
	}

	st.matched = min(st.askVolume, st.bidVolume) > 0
	return st
}

// Clear walks asks and bids once and returns the single price at which
// the maximum total volume clears. It returns (zero, false) when no
// positive volume can clear.
//
// The clearing price lies within the range ClearRange reports: the most
// recently admitted bid's price when bids overshot asks at termination,
// otherwise the terminal ask price.
func Clear[P any](asks, bids iter.Seq[Order[P]], less Less[P]) (Result[P], bool) {
	st := walk(asks, bids, less)
	if !st.matched {
		var zero Result[P]
		return zero, false
	}

	volume := min(st.askVolume, st.bidVolume)
	if st.bidVolume > st.askVolume {
		return Result[P]{Price: st.bidPriceLast, Volume: volume}, true
	}
	return Result[P]{Price: st.askPrice, Volume: volume}, true
}

// ClearRange walks asks and bids once and returns the full closed price
// interval in which the maximum volume is still achievable. It returns
// (zero, false) when no positive volume can clear, which also covers
// the case where no bid was ever confirmed into the range (empty bids,
// first bid below the lowest ask, or no bid re-covered before bids were
// exhausted).
func ClearRange[P any](asks, bids iter.Seq[Order[P]], less Less[P]) (RangeResult[P], bool) {
	st := walk(asks, bids, less)
	if !st.matched || !st.confirmedSet {
		var zero RangeResult[P]
		return zero, false
	}

	volume := min(st.askVolume, st.bidVolume)
	return RangeResult[P]{Low: st.askPrice, High: st.bidPriceConfirmed, Volume: volume}, true
}
