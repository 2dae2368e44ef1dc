package engine

import (
	"sort"

	"github.com/fundterm/fundterm/internal/models"
)

// mergedSymbols returns the union of symbols across all snapshots. Order is
// first appearance, scanning venues in registry order with each venue's
// symbols sorted, so identical inputs always merge to the identical sequence.
func mergedSymbols(snaps []models.VenueSnapshot) []string {
	seen := make(map[string]struct{})
	var symbols []string

	keys := make([]string, 0, 64)
	for _, snap := range snaps {
		keys = keys[:0]
		for sym := range snap {
			keys = append(keys, sym)
		}
		sort.Strings(keys)

		for _, sym := range keys {
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			symbols = append(symbols, sym)
		}
	}
	return symbols
}
