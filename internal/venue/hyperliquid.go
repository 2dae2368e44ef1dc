package venue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fundterm/fundterm/internal/models"
)

// HyperliquidAdapter reads the metaAndAssetCtxs info payload. Funding settles
// hourly and the API doesn't report the next settlement time, so the adapter
// fills in the top of the next hour. Contexts without a funding field are
// spot markets and feed the spot map for the matching ticker.
type HyperliquidAdapter struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

func NewHyperliquidAdapter(timeout time.Duration) *HyperliquidAdapter {
	return &HyperliquidAdapter{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://api.hyperliquid.xyz",
		now:        time.Now,
	}
}

func (h *HyperliquidAdapter) Name() string {
	return "hyperliquid"
}

func (h *HyperliquidAdapter) FetchSnapshot(ctx context.Context) (models.VenueSnapshot, error) {
	// Response is a two-element array: [{universe: [...]}, [assetCtx, ...]],
	// with ctxs indexed in universe order.
	var raw []json.RawMessage
	payload := map[string]string{"type": "metaAndAssetCtxs"}
	if err := postJSON(ctx, h.httpClient, h.baseURL+"/info", payload, &raw); err != nil {
		return nil, fmt.Errorf("hyperliquid info: %w", err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("hyperliquid info: expected 2 elements, got %d", len(raw))
	}

	var meta struct {
		Universe []struct {
			Name string `json:"name"`
		} `json:"universe"`
	}
	if err := json.Unmarshal(raw[0], &meta); err != nil {
		return nil, fmt.Errorf("hyperliquid meta: failed to parse: %w", err)
	}

	var ctxs []struct {
		Funding *string  `json:"funding"`
		MidPx   apiFloat `json:"midPx"`
	}
	if err := json.Unmarshal(raw[1], &ctxs); err != nil {
		return nil, fmt.Errorf("hyperliquid asset ctxs: failed to parse: %w", err)
	}
	if len(ctxs) < len(meta.Universe) {
		return nil, fmt.Errorf("hyperliquid info: %d assets but %d ctxs", len(meta.Universe), len(ctxs))
	}

	next := topOfNextHour(h.now())

	snap := make(models.VenueSnapshot, len(meta.Universe))
	spotPrices := make(map[string]float64)
	for i, asset := range meta.Universe {
		sym := canonical(asset.Name, "")
		c := ctxs[i]
		if c.Funding == nil {
			spotPrices[sym] = float64(c.MidPx)
			continue
		}

		rate, err := strconv.ParseFloat(*c.Funding, 64)
		if err != nil {
			continue
		}
		snap[sym] = models.FundingRecord{
			Rate:             rate,
			IntervalHours:    1,
			NextSettlementAt: msPtr(next),
			PerpPrice:        pricePtr(float64(c.MidPx)),
		}
	}

	for sym, rec := range snap {
		if sp, ok := spotPrices[sym]; ok {
			rec.SpotPrice = pricePtr(sp)
			snap[sym] = rec
		}
	}
	return snap, nil
}
