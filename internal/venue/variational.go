package venue

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fundterm/fundterm/internal/models"
)

// VariationalAdapter reads the supported-assets metadata feed. Only assets
// flagged has_perp carry funding; the rate field is named interest_rate on
// newer listings and funding_rate on older ones. Funding settles hourly.
type VariationalAdapter struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

type variationalAsset struct {
	HasPerp      bool      `json:"has_perp"`
	InterestRate *apiFloat `json:"interest_rate"`
	FundingRate  *apiFloat `json:"funding_rate"`
	Price        apiFloat  `json:"price"`
}

func NewVariationalAdapter(timeout time.Duration) *VariationalAdapter {
	return &VariationalAdapter{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://omni.variational.io",
		now:        time.Now,
	}
}

func (v *VariationalAdapter) Name() string {
	return "variational"
}

func (v *VariationalAdapter) FetchSnapshot(ctx context.Context) (models.VenueSnapshot, error) {
	var assets map[string][]variationalAsset
	if err := getJSON(ctx, v.httpClient, v.baseURL+"/api/metadata/supported_assets", &assets); err != nil {
		return nil, fmt.Errorf("variational supported assets: %w", err)
	}

	next := topOfNextHour(v.now())

	snap := make(models.VenueSnapshot, len(assets))
	for sym, listings := range assets {
		if len(listings) == 0 {
			continue
		}
		asset := listings[0]
		if !asset.HasPerp {
			continue
		}

		rate := 0.0
		switch {
		case asset.InterestRate != nil:
			rate = float64(*asset.InterestRate)
		case asset.FundingRate != nil:
			rate = float64(*asset.FundingRate)
		}

		snap[canonical(sym, "")] = models.FundingRecord{
			Rate:             rate,
			IntervalHours:    1,
			NextSettlementAt: msPtr(next),
			PerpPrice:        pricePtr(float64(asset.Price)),
		}
	}
	return snap, nil
}
