package main

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lightsgoout/callauction/clearing/decimalprice"
)

// generateFixtureBook produces a random ask and bid book of exactly n
// orders each, already sorted the way the core's ordering contract
// requires (asks ascending, bids descending), mirroring the teacher's
// GenerateRandomOrder fixture generator.
func generateFixtureBook(rng *rand.Rand, n int) (asks, bids []decimalprice.Order) {
	asks = make([]decimalprice.Order, n)
	for i := 0; i < n; i++ {
		price := decimal.New(int64(rng.Intn(10000)), -2)
		volume := uint64(rng.Intn(1000))
		asks[i] = decimalprice.NewOrder(price, volume)
	}
	sortAsc(asks)

	bids = make([]decimalprice.Order, n)
	for i := 0; i < n; i++ {
		price := decimal.New(int64(rng.Intn(10000)), -2)
		volume := uint64(rng.Intn(1000))
		bids[i] = decimalprice.NewOrder(price, volume)
	}
	sortDesc(bids)

	return asks, bids
}

// newRunID names one replay round for the CLI's log output, mirroring
// the teacher's traderChoices-style synthetic identifiers but scoped to
// a run instead of an order.
func newRunID() string {
	return uuid.NewString()
}

func sortAsc(os []decimalprice.Order) {
	for i := 1; i < len(os); i++ {
		for j := i; j > 0 && os[j].Price.LessThan(os[j-1].Price); j-- {
			os[j], os[j-1] = os[j-1], os[j]
		}
	}
}

func sortDesc(os []decimalprice.Order) {
	for i := 1; i < len(os); i++ {
		for j := i; j > 0 && os[j].Price.GreaterThan(os[j-1].Price); j-- {
			os[j], os[j-1] = os[j-1], os[j]
		}
	}
}
