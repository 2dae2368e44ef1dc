package venue

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fundterm/fundterm/internal/models"
)

// BybitAdapter reads linear (USDT perpetual) tickers for funding data and
// spot tickers for reference prices, both from the v5 market API.
type BybitAdapter struct {
	httpClient *http.Client
	baseURL    string
}

type bybitTicker struct {
	Symbol              string `json:"symbol"`
	LastPrice           string `json:"lastPrice"`
	FundingRate         string `json:"fundingRate"`
	FundingIntervalHour string `json:"fundingIntervalHour"`
	NextFundingTime     string `json:"nextFundingTime"` // Unix ms string
}

func NewBybitAdapter(timeout time.Duration) *BybitAdapter {
	return &BybitAdapter{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.bybit.com",
	}
}

func (b *BybitAdapter) Name() string {
	return "bybit"
}

func (b *BybitAdapter) FetchSnapshot(ctx context.Context) (models.VenueSnapshot, error) {
	linear, err := b.fetchTickers(ctx, "linear")
	if err != nil {
		return nil, fmt.Errorf("bybit linear tickers: %w", err)
	}

	spot, err := b.fetchTickers(ctx, "spot")
	if err != nil {
		return nil, fmt.Errorf("bybit spot tickers: %w", err)
	}
	spotPrices := make(map[string]float64, len(spot))
	for _, t := range spot {
		if !strings.HasSuffix(t.Symbol, "USDT") {
			continue
		}
		if p, err := strconv.ParseFloat(t.LastPrice, 64); err == nil && p > 0 {
			spotPrices[canonical(t.Symbol, "USDT")] = p
		}
	}

	snap := make(models.VenueSnapshot, len(linear))
	for _, t := range linear {
		if !strings.HasSuffix(t.Symbol, "USDT") {
			continue
		}
		rate, err := strconv.ParseFloat(t.FundingRate, 64)
		if err != nil {
			// Pre-launch and delisted contracts ship an empty funding rate.
			continue
		}

		interval, _ := strconv.ParseFloat(t.FundingIntervalHour, 64)
		if interval <= 0 {
			interval = 8
		}

		sym := canonical(t.Symbol, "USDT")
		rec := models.FundingRecord{
			Rate:          rate,
			IntervalHours: interval,
		}
		if ms, err := strconv.ParseInt(t.NextFundingTime, 10, 64); err == nil {
			rec.NextSettlementAt = msPtr(ms)
		}
		if last, err := strconv.ParseFloat(t.LastPrice, 64); err == nil {
			rec.PerpPrice = pricePtr(last)
		}
		if sp, ok := spotPrices[sym]; ok {
			rec.SpotPrice = pricePtr(sp)
		}
		snap[sym] = rec
	}
	return snap, nil
}

func (b *BybitAdapter) fetchTickers(ctx context.Context, category string) ([]bybitTicker, error) {
	url := fmt.Sprintf("%s/v5/market/tickers?category=%s", b.baseURL, category)

	var raw struct {
		RetCode int    `json:"retCode"`
		RetMsg  string `json:"retMsg"`
		Result  struct {
			List []bybitTicker `json:"list"`
		} `json:"result"`
	}
	if err := getJSON(ctx, b.httpClient, url, &raw); err != nil {
		return nil, err
	}

	if raw.RetCode != 0 {
		return nil, fmt.Errorf("bybit API error %d: %s", raw.RetCode, raw.RetMsg)
	}
	return raw.Result.List, nil
}
