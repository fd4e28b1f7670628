package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFixtureBookIsSortedForTheCore(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	asks, bids := generateFixtureBook(rng, 50)

	require.Len(t, asks, 50)
	require.Len(t, bids, 50)

	for i := 1; i < len(asks); i++ {
		assert.False(t, asks[i].Price.LessThan(asks[i-1].Price), "asks must be non-descending")
	}
	for i := 1; i < len(bids); i++ {
		assert.False(t, bids[i].Price.GreaterThan(bids[i-1].Price), "bids must be non-ascending")
	}
}

func TestNewRunIDIsUniquePerCall(t *testing.T) {
	a, b := newRunID(), newRunID()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}
