package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fundterm/fundterm/internal/models"
)

func TestMergedSymbolsUnion(t *testing.T) {
	snaps := []models.VenueSnapshot{
		{"BTC": {}, "ETH": {}},
		{"ETH": {}, "SOL": {}},
		{"BTC": {}, "DOGE": {}},
	}

	got := mergedSymbols(snaps)
	assert.Equal(t, []string{"BTC", "ETH", "SOL", "DOGE"}, got)
}

func TestMergedSymbolsDeterministicWithinVenue(t *testing.T) {
	// Symbols first seen in the same venue come out sorted, so repeated runs
	// over the same snapshots produce the same sequence.
	snaps := []models.VenueSnapshot{
		{"ZEC": {}, "AAVE": {}, "LINK": {}},
	}

	first := mergedSymbols(snaps)
	assert.Equal(t, []string{"AAVE", "LINK", "ZEC"}, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, mergedSymbols(snaps))
	}
}

func TestMergedSymbolsEmpty(t *testing.T) {
	assert.Empty(t, mergedSymbols(nil))
	assert.Empty(t, mergedSymbols([]models.VenueSnapshot{{}, {}}))
}
