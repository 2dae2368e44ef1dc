package engine

import (
	"math"

	"github.com/fundterm/fundterm/internal/models"
)

// Engine turns one cycle's venue snapshots into comparable per-symbol rows.
// It is pure: no I/O, no clock, no state across calls.
type Engine struct {
	venueIDs     []string
	spotPriority []int // indexes into venueIDs, highest priority first
}

// venueAPR pairs a venue index with its annualized rate for one symbol.
type venueAPR struct {
	idx int
	apr float64
}

// New builds an engine for a fixed venue order. spotPriority names the venues
// to try, in order, when picking the reference spot price; names not in
// venueIDs are ignored.
func New(venueIDs, spotPriority []string) *Engine {
	e := &Engine{venueIDs: venueIDs}
	for _, name := range spotPriority {
		for i, id := range venueIDs {
			if id == name {
				e.spotPriority = append(e.spotPriority, i)
				break
			}
		}
	}
	return e
}

// Compute builds one SymbolRow per symbol present in any snapshot, in merge
// order. snaps must be in the engine's venue order; the caller guarantees all
// snapshots come from the same cycle.
func (e *Engine) Compute(snaps []models.VenueSnapshot) []models.SymbolRow {
	symbols := mergedSymbols(snaps)

	rows := make([]models.SymbolRow, 0, len(symbols))
	for _, sym := range symbols {
		rows = append(rows, e.computeRow(sym, snaps))
	}
	return rows
}

func (e *Engine) computeRow(symbol string, snaps []models.VenueSnapshot) models.SymbolRow {
	row := models.SymbolRow{
		Symbol: symbol,
		Venues: make([]*models.VenueQuote, len(e.venueIDs)),
	}

	// A venue with no record, a malformed interval or a non-finite rate
	// contributes nothing. Absent is never zero: a zero stand-in would make
	// that venue look like the cheapest long leg.
	var aprs []venueAPR
	for i := range e.venueIDs {
		if i >= len(snaps) {
			break
		}
		rec, ok := snaps[i][symbol]
		if !ok {
			continue
		}
		apr, ok := annualize(rec.Rate, rec.IntervalHours)
		if !ok {
			continue
		}

		row.Venues[i] = &models.VenueQuote{
			Venue:            e.venueIDs[i],
			RatePct:          rec.Rate * 100,
			AprPct:           apr,
			NextSettlementAt: rec.NextSettlementAt,
			PerpPrice:        rec.PerpPrice,
			SpotPrice:        rec.SpotPrice,
		}
		aprs = append(aprs, venueAPR{idx: i, apr: apr})
	}

	if len(aprs) == 0 {
		return row
	}

	// Strict comparisons keep the first venue in registry order on ties.
	minV, maxV := aprs[0], aprs[0]
	for _, v := range aprs[1:] {
		if v.apr < minV.apr {
			minV = v
		}
		if v.apr > maxV.apr {
			maxV = v
		}
	}

	if len(aprs) >= 2 {
		row.AprGap = maxV.apr - minV.apr
		row.BestPair = &models.BestPair{
			Long:  e.venueIDs[minV.idx],
			Short: e.venueIDs[maxV.idx],
		}
	}

	best := row.Venues[maxV.idx]
	row.BestFunding = &models.BestFunding{
		Venue:     best.Venue,
		AprPct:    best.AprPct,
		PerpPrice: best.PerpPrice,
	}

	row.ReferenceSpot = e.referenceSpot(row.Venues)
	if row.ReferenceSpot > 0 && best.PerpPrice != nil {
		row.BasisPct = (*best.PerpPrice/row.ReferenceSpot - 1) * 100
	}

	// Basis assumed to converge over a 30-day horizon, funding APR carried
	// back to a daily rate.
	row.DailyReturnPct = row.BasisPct/30 + best.AprPct/365

	return row
}

// annualize scales one interval's funding rate to a yearly percentage. The
// second return is false for malformed inputs, which must be excluded rather
// than fed into comparisons as NaN.
func annualize(rate, intervalHours float64) (float64, bool) {
	if intervalHours <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	apr := rate * (24 / intervalHours) * 365 * 100
	if math.IsNaN(apr) || math.IsInf(apr, 0) {
		return 0, false
	}
	return apr, true
}

// referenceSpot picks the first venue in priority order reporting a positive
// spot price for this row, 0 when none does.
func (e *Engine) referenceSpot(quotes []*models.VenueQuote) float64 {
	for _, idx := range e.spotPriority {
		q := quotes[idx]
		if q != nil && q.SpotPrice != nil && *q.SpotPrice > 0 {
			return *q.SpotPrice
		}
	}
	return 0
}
