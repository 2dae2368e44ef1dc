package engine

import (
	"sort"
	"strings"

	"github.com/fundterm/fundterm/internal/models"
)

// Mode selects which arbitrage strategy the ranking serves.
type Mode string

const (
	// ModeFunding ranks by the cross-venue APR spread (funding-funding trade).
	ModeFunding Mode = "funding"
	// ModeBasis ranks by the blended daily return of shorting the richest
	// funding venue against spot.
	ModeBasis Mode = "basis"
)

// Rank filters and orders rows for presentation without mutating the input.
// symbolFilter is a case-insensitive substring match applied before sorting.
// Ties keep merge order.
func Rank(rows []models.SymbolRow, mode Mode, symbolFilter string) []models.SymbolRow {
	needle := strings.ToUpper(strings.TrimSpace(symbolFilter))

	out := make([]models.SymbolRow, 0, len(rows))
	for _, row := range rows {
		if needle != "" && !strings.Contains(strings.ToUpper(row.Symbol), needle) {
			continue
		}
		// Shorting a negative-funding venue pays nothing for the basis trade.
		if mode == ModeBasis && (row.BestFunding == nil || row.BestFunding.AprPct <= 0) {
			continue
		}
		out = append(out, row)
	}

	switch mode {
	case ModeBasis:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DailyReturnPct > out[j].DailyReturnPct
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AprGap > out[j].AprGap
		})
	}
	return out
}
