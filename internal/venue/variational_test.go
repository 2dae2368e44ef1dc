package venue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const variationalFixture = `{
	"btc": [{"has_perp": true, "interest_rate": "0.00001", "funding_rate": "0.00009", "price": "50420.0"}],
	"eth": [{"has_perp": true, "funding_rate": -0.000015, "price": 3003.5}],
	"usdc": [{"has_perp": false, "price": "1.0"}],
	"empty": []
}`

func TestVariationalFetchSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/metadata/supported_assets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(variationalFixture))
	}))
	defer server.Close()

	adapter := &VariationalAdapter{
		httpClient: &http.Client{Timeout: time.Second},
		baseURL:    server.URL,
		now:        time.Now,
	}

	snap, err := adapter.FetchSnapshot(context.Background())
	require.NoError(t, err)

	// Assets without a perp listing are dropped.
	require.Len(t, snap, 2)

	btc := snap["BTC"]
	assert.Equal(t, 0.00001, btc.Rate, "interest_rate wins over funding_rate when both are present")
	assert.Equal(t, 1.0, btc.IntervalHours)
	require.NotNil(t, btc.PerpPrice)
	assert.InDelta(t, 50420.0, *btc.PerpPrice, 1e-9)

	eth := snap["ETH"]
	assert.Equal(t, -0.000015, eth.Rate, "funding_rate is the fallback on older listings")
	require.NotNil(t, eth.PerpPrice)
	assert.InDelta(t, 3003.5, *eth.PerpPrice, 1e-9)
}
