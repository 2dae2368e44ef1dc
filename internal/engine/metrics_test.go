package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundterm/fundterm/internal/models"
)

func f64(v float64) *float64 { return &v }

func newTestEngine() *Engine {
	return New(
		[]string{"binance", "bybit", "hyperliquid"},
		[]string{"binance", "bybit", "hyperliquid"},
	)
}

func TestAnnualize(t *testing.T) {
	tests := []struct {
		name          string
		rate          float64
		intervalHours float64
		want          float64
		ok            bool
	}{
		{"8h venue", 0.0001, 8, 10.95, true},
		{"1h venue", 0.00005, 1, 43.8, true},
		{"4h venue", 0.0001, 4, 21.9, true},
		{"negative rate", -0.00002, 1, -17.52, true},
		{"zero rate", 0, 8, 0, true},
		{"zero interval", 0.0001, 0, 0, false},
		{"negative interval", 0.0001, -8, 0, false},
		{"NaN rate", math.NaN(), 8, 0, false},
		{"infinite rate", math.Inf(1), 8, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := annualize(tt.rate, tt.intervalHours)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestComputeTwoVenueExample(t *testing.T) {
	// Venue A: 0.0001 per 8h, venue C: -0.00002 per 1h.
	eng := newTestEngine()
	snaps := []models.VenueSnapshot{
		{"BTC": {Rate: 0.0001, IntervalHours: 8}},
		{},
		{"BTC": {Rate: -0.00002, IntervalHours: 1}},
	}

	rows := eng.Compute(snaps)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "BTC", row.Symbol)

	require.NotNil(t, row.Venues[0])
	assert.InDelta(t, 10.95, row.Venues[0].AprPct, 1e-9)
	assert.InDelta(t, 0.01, row.Venues[0].RatePct, 1e-12)
	assert.Nil(t, row.Venues[1])
	require.NotNil(t, row.Venues[2])
	assert.InDelta(t, -17.52, row.Venues[2].AprPct, 1e-9)

	assert.InDelta(t, 28.47, row.AprGap, 1e-9)
	require.NotNil(t, row.BestPair)
	assert.Equal(t, "hyperliquid", row.BestPair.Long)
	assert.Equal(t, "binance", row.BestPair.Short)

	require.NotNil(t, row.BestFunding)
	assert.Equal(t, "binance", row.BestFunding.Venue)
	assert.InDelta(t, 10.95, row.BestFunding.AprPct, 1e-9)
}

func TestComputeSingleVenueSymbol(t *testing.T) {
	eng := newTestEngine()
	snaps := []models.VenueSnapshot{
		{},
		{"DOGE": {Rate: 0.0003, IntervalHours: 8, PerpPrice: f64(0.25)}},
		{},
	}

	rows := eng.Compute(snaps)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Zero(t, row.AprGap)
	assert.Nil(t, row.BestPair)

	require.NotNil(t, row.BestFunding)
	assert.Equal(t, "bybit", row.BestFunding.Venue)
	assert.InDelta(t, 32.85, row.BestFunding.AprPct, 1e-9)
}

func TestComputeAbsentIsNotZero(t *testing.T) {
	// A venue missing the symbol must not act as a free long leg; the gap is
	// between the two venues that actually report.
	eng := newTestEngine()
	snaps := []models.VenueSnapshot{
		{"ETH": {Rate: 0.0002, IntervalHours: 8}},
		{},
		{"ETH": {Rate: 0.0001, IntervalHours: 8}},
	}

	rows := eng.Compute(snaps)
	require.Len(t, rows, 1)

	row := rows[0]
	require.NotNil(t, row.BestPair)
	assert.Equal(t, "hyperliquid", row.BestPair.Long)
	assert.Equal(t, "binance", row.BestPair.Short)
	assert.InDelta(t, 10.95, row.AprGap, 1e-9)
}

func TestComputeGapNonNegative(t *testing.T) {
	eng := newTestEngine()
	snaps := []models.VenueSnapshot{
		{"A": {Rate: -0.001, IntervalHours: 8}, "B": {Rate: 0.0001, IntervalHours: 1}},
		{"A": {Rate: -0.0005, IntervalHours: 8}},
		{"B": {Rate: -0.0002, IntervalHours: 1}, "C": {Rate: 0.0004, IntervalHours: 1}},
	}

	for _, row := range eng.Compute(snaps) {
		assert.GreaterOrEqual(t, row.AprGap, 0.0, "symbol %s", row.Symbol)
	}
}

func TestComputeTieBreakFirstVenueWins(t *testing.T) {
	eng := newTestEngine()
	snaps := []models.VenueSnapshot{
		{"BTC": {Rate: 0.0001, IntervalHours: 8}},
		{"BTC": {Rate: 0.0001, IntervalHours: 8}},
		{"BTC": {Rate: 0.0001, IntervalHours: 8}},
	}

	rows := eng.Compute(snaps)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Zero(t, row.AprGap)
	require.NotNil(t, row.BestPair)
	assert.Equal(t, "binance", row.BestPair.Long)
	assert.Equal(t, "binance", row.BestPair.Short)
	assert.Equal(t, "binance", row.BestFunding.Venue)
}

func TestComputeMalformedRecordsExcluded(t *testing.T) {
	eng := newTestEngine()
	snaps := []models.VenueSnapshot{
		{"BTC": {Rate: math.NaN(), IntervalHours: 8}},
		{"BTC": {Rate: 0.0001, IntervalHours: 0}},
		{"BTC": {Rate: 0.0001, IntervalHours: 1}},
	}

	rows := eng.Compute(snaps)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Nil(t, row.Venues[0])
	assert.Nil(t, row.Venues[1])
	require.NotNil(t, row.Venues[2])

	assert.Zero(t, row.AprGap)
	assert.Nil(t, row.BestPair)
	require.NotNil(t, row.BestFunding)
	assert.Equal(t, "hyperliquid", row.BestFunding.Venue)
}

func TestComputeReferenceSpotPriority(t *testing.T) {
	eng := newTestEngine()
	snaps := []models.VenueSnapshot{
		{"BTC": {Rate: 0.0001, IntervalHours: 8}}, // binance has no spot
		{"BTC": {Rate: 0.0001, IntervalHours: 8, SpotPrice: f64(50000)}},
		{"BTC": {Rate: 0.0001, IntervalHours: 1, SpotPrice: f64(50100)}},
	}

	rows := eng.Compute(snaps)
	require.Len(t, rows, 1)
	assert.Equal(t, 50000.0, rows[0].ReferenceSpot)
}

func TestComputeBasisSign(t *testing.T) {
	eng := newTestEngine()

	mk := func(perp float64, spot *float64) []models.VenueSnapshot {
		return []models.VenueSnapshot{
			{"BTC": {Rate: 0.0001, IntervalHours: 8, PerpPrice: f64(perp), SpotPrice: spot}},
			{},
			{},
		}
	}

	rows := eng.Compute(mk(50500, f64(50000)))
	require.Len(t, rows, 1)
	assert.InDelta(t, 1.0, rows[0].BasisPct, 1e-9)

	rows = eng.Compute(mk(49500, f64(50000)))
	assert.InDelta(t, -1.0, rows[0].BasisPct, 1e-9)

	// No spot anywhere: basis defaults to zero, never a sentinel.
	rows = eng.Compute(mk(50500, nil))
	assert.Zero(t, rows[0].ReferenceSpot)
	assert.Zero(t, rows[0].BasisPct)
}

func TestComputeDailyReturnBlend(t *testing.T) {
	eng := newTestEngine()
	snaps := []models.VenueSnapshot{
		{"BTC": {Rate: 0.0001, IntervalHours: 8, PerpPrice: f64(50500), SpotPrice: f64(50000)}},
		{},
		{},
	}

	rows := eng.Compute(snaps)
	require.Len(t, rows, 1)

	row := rows[0]
	want := row.BasisPct/30 + row.BestFunding.AprPct/365
	assert.InDelta(t, want, row.DailyReturnPct, 1e-12)
	assert.InDelta(t, 1.0/30+10.95/365, row.DailyReturnPct, 1e-9)
}

func TestComputeEmptySymbolSetAndPurity(t *testing.T) {
	eng := newTestEngine()

	assert.Empty(t, eng.Compute([]models.VenueSnapshot{{}, {}, {}}))

	snaps := []models.VenueSnapshot{
		{"BTC": {Rate: 0.0001, IntervalHours: 8}, "ETH": {Rate: -0.0002, IntervalHours: 8}},
		{"SOL": {Rate: 0.0004, IntervalHours: 4}},
		{"BTC": {Rate: 0.00001, IntervalHours: 1}},
	}

	first := eng.Compute(snaps)
	second := eng.Compute(snaps)
	require.Equal(t, first, second)
}
