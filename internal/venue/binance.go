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

// BinanceAdapter reads USDT-margined perpetual funding data from the futures
// API and spot reference prices from the spot API.
type BinanceAdapter struct {
	httpClient *http.Client
	futuresURL string
	spotURL    string
}

func NewBinanceAdapter(timeout time.Duration) *BinanceAdapter {
	return &BinanceAdapter{
		httpClient: &http.Client{Timeout: timeout},
		futuresURL: "https://fapi.binance.com",
		spotURL:    "https://api.binance.com",
	}
}

func (b *BinanceAdapter) Name() string {
	return "binance"
}

// FetchSnapshot combines premiumIndex (rate, next settlement, mark price),
// fundingInfo (per-symbol settlement interval, 8h when unlisted) and the spot
// ticker feed into one canonical snapshot.
func (b *BinanceAdapter) FetchSnapshot(ctx context.Context) (models.VenueSnapshot, error) {
	var premium []struct {
		Symbol          string `json:"symbol"`
		LastFundingRate string `json:"lastFundingRate"`
		MarkPrice       string `json:"markPrice"`
		NextFundingTime int64  `json:"nextFundingTime"` // Unix ms timestamp
	}
	if err := getJSON(ctx, b.httpClient, b.futuresURL+"/fapi/v1/premiumIndex", &premium); err != nil {
		return nil, fmt.Errorf("binance premium index: %w", err)
	}

	// Only symbols with a non-default interval appear here.
	var info []struct {
		Symbol               string  `json:"symbol"`
		FundingIntervalHours float64 `json:"fundingIntervalHours"`
	}
	if err := getJSON(ctx, b.httpClient, b.futuresURL+"/fapi/v1/fundingInfo", &info); err != nil {
		return nil, fmt.Errorf("binance funding info: %w", err)
	}
	intervals := make(map[string]float64, len(info))
	for _, i := range info {
		intervals[i.Symbol] = i.FundingIntervalHours
	}

	var spot []struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := getJSON(ctx, b.httpClient, b.spotURL+"/api/v3/ticker/price", &spot); err != nil {
		return nil, fmt.Errorf("binance spot tickers: %w", err)
	}
	spotPrices := make(map[string]float64, len(spot))
	for _, t := range spot {
		if !strings.HasSuffix(t.Symbol, "USDT") {
			continue
		}
		if p, err := strconv.ParseFloat(t.Price, 64); err == nil && p > 0 {
			spotPrices[canonical(t.Symbol, "USDT")] = p
		}
	}

	snap := make(models.VenueSnapshot, len(premium))
	for _, p := range premium {
		if !strings.HasSuffix(p.Symbol, "USDT") {
			continue
		}
		rate, err := strconv.ParseFloat(p.LastFundingRate, 64)
		if err != nil {
			continue
		}

		interval := intervals[p.Symbol]
		if interval <= 0 {
			interval = 8
		}

		sym := canonical(p.Symbol, "USDT")
		rec := models.FundingRecord{
			Rate:             rate,
			IntervalHours:    interval,
			NextSettlementAt: msPtr(p.NextFundingTime),
		}
		if mark, err := strconv.ParseFloat(p.MarkPrice, 64); err == nil {
			rec.PerpPrice = pricePtr(mark)
		}
		if sp, ok := spotPrices[sym]; ok {
			rec.SpotPrice = pricePtr(sp)
		}
		snap[sym] = rec
	}
	return snap, nil
}
