package venue

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// canonical uppercases a venue symbol and strips the quote-currency suffix,
// so the same underlying matches across venues (BTCUSDT, BTC-USDC -> BTC).
func canonical(symbol, quote string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.TrimSuffix(s, strings.ToUpper(quote))
	return strings.TrimSuffix(s, "-")
}

// pricePtr returns a pointer for a usable price, nil for zero, negative or
// non-finite values. Absent must stay distinguishable from a real price.
func pricePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}

// msPtr wraps a positive epoch-millisecond timestamp, nil otherwise.
func msPtr(v int64) *int64 {
	if v <= 0 {
		return nil
	}
	return &v
}

// topOfNextHour is the settlement time hourly-funding venues imply but don't
// report: the next full hour, epoch milliseconds.
func topOfNextHour(now time.Time) int64 {
	return now.UTC().Truncate(time.Hour).Add(time.Hour).UnixMilli()
}

// apiFloat decodes numeric fields that venues serve inconsistently as raw
// JSON numbers or quoted strings. Empty and null decode to zero.
type apiFloat float64

func (f *apiFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = apiFloat(v)
	return nil
}
