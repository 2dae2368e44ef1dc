package venue

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fundterm/fundterm/internal/models"
)

// LighterAdapter joins the order book listing (symbols, market types) with
// market stats (funding, last trade price) keyed by market id. Perp markets
// quote in USDC and settle funding hourly; there is no spot feed.
type LighterAdapter struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

func NewLighterAdapter(timeout time.Duration) *LighterAdapter {
	return &LighterAdapter{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://mainnet.zklighter.elliot.ai",
		now:        time.Now,
	}
}

func (l *LighterAdapter) Name() string {
	return "lighter"
}

func (l *LighterAdapter) FetchSnapshot(ctx context.Context) (models.VenueSnapshot, error) {
	var books struct {
		OrderBooks []struct {
			Symbol     string `json:"symbol"`
			MarketID   int    `json:"market_id"`
			MarketType string `json:"market_type"`
		} `json:"order_books"`
	}
	if err := getJSON(ctx, l.httpClient, l.baseURL+"/api/v1/orderBooks", &books); err != nil {
		return nil, fmt.Errorf("lighter order books: %w", err)
	}

	var stats struct {
		MarketStats map[string]struct {
			CurrentFundingRate apiFloat `json:"current_funding_rate"`
			LastTradePrice     apiFloat `json:"last_trade_price"`
		} `json:"market_stats"`
	}
	if err := getJSON(ctx, l.httpClient, l.baseURL+"/api/v1/marketStats", &stats); err != nil {
		return nil, fmt.Errorf("lighter market stats: %w", err)
	}

	next := topOfNextHour(l.now())

	snap := make(models.VenueSnapshot, len(books.OrderBooks))
	for _, m := range books.OrderBooks {
		if m.MarketType != "perp" {
			continue
		}
		stat, ok := stats.MarketStats[strconv.Itoa(m.MarketID)]
		if !ok {
			continue
		}

		sym := canonical(m.Symbol, "USDC")
		snap[sym] = models.FundingRecord{
			Rate:             float64(stat.CurrentFundingRate),
			IntervalHours:    1,
			NextSettlementAt: msPtr(next),
			PerpPrice:        pricePtr(float64(stat.LastTradePrice)),
		}
	}
	return snap, nil
}
