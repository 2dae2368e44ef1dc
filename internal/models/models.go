package models

// FundingRecord is one venue's view of one perpetual market at one point in
// time, already normalized by the venue adapter: canonical symbol key,
// fractional rate per settlement interval, interval length in hours.
type FundingRecord struct {
	Rate             float64  `json:"rate"`
	IntervalHours    float64  `json:"interval_hours"`
	NextSettlementAt *int64   `json:"next_settlement_at"` // epoch ms, nil if the venue doesn't expose it
	PerpPrice        *float64 `json:"perp_price"`
	SpotPrice        *float64 `json:"spot_price"`
}

// VenueSnapshot maps canonical symbol (uppercase, quote suffix stripped) to
// that venue's FundingRecord for one fetch cycle. Never mutated after the
// adapter returns it.
type VenueSnapshot map[string]FundingRecord

// VenueQuote is one venue's column in a SymbolRow. A nil entry in
// SymbolRow.Venues means the venue didn't report the symbol this cycle.
type VenueQuote struct {
	Venue            string   `json:"venue"`
	RatePct          float64  `json:"rate_pct"`
	AprPct           float64  `json:"apr_pct"`
	NextSettlementAt *int64   `json:"next_settlement_at"`
	PerpPrice        *float64 `json:"perp_price"`
	SpotPrice        *float64 `json:"spot_price"`
}

// BestPair names the venues for the funding-funding trade: long the cheapest
// funding, short the richest.
type BestPair struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

// BestFunding is the venue with the highest annualized rate, the short-leg
// candidate for the spot-futures strategy.
type BestFunding struct {
	Venue     string   `json:"venue"`
	AprPct    float64  `json:"apr_pct"`
	PerpPrice *float64 `json:"perp_price"`
}

// SymbolRow is the per-symbol output of one compute cycle.
type SymbolRow struct {
	Symbol         string        `json:"symbol"`
	Venues         []*VenueQuote `json:"venues"`
	AprGap         float64       `json:"apr_gap"`
	BestPair       *BestPair     `json:"best_pair"`
	BestFunding    *BestFunding  `json:"best_funding"`
	ReferenceSpot  float64       `json:"reference_spot"`
	BasisPct       float64       `json:"basis_pct"`
	DailyReturnPct float64       `json:"daily_return_pct"`
}
