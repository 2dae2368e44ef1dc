package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fundterm/fundterm/internal/models"
	"github.com/fundterm/fundterm/internal/venue"
)

// Collector fans one fetch cycle out to every configured venue. Venue order
// is fixed at construction and defines the snapshot order downstream.
type Collector struct {
	venues  []venue.Venue
	timeout time.Duration
}

// Holds the outcome of one venue's fetch.
type fetchResult struct {
	idx  int
	snap models.VenueSnapshot
	err  error
}

func New(venues []venue.Venue, timeout time.Duration) *Collector {
	return &Collector{venues: venues, timeout: timeout}
}

// Names returns the venue ids in registry order.
func (c *Collector) Names() []string {
	names := make([]string, len(c.venues))
	for i, v := range c.venues {
		names[i] = v.Name()
	}
	return names
}

// Collect fetches all venues concurrently, each under its own timeout, and
// waits for every fetch to settle. It always returns one snapshot per venue
// in registry order; a venue that failed or timed out contributes an empty
// snapshot. The error is non-nil only when every venue failed.
func (c *Collector) Collect(ctx context.Context) ([]models.VenueSnapshot, error) {
	results := make(chan fetchResult, len(c.venues))

	var wg sync.WaitGroup
	for i, v := range c.venues {
		wg.Add(1)

		go func(idx int, v venue.Venue) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			snap, err := v.FetchSnapshot(fetchCtx)
			results <- fetchResult{idx: idx, snap: snap, err: err}
		}(i, v)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	snaps := make([]models.VenueSnapshot, len(c.venues))
	var errs []error

	for res := range results {
		if res.err != nil {
			log.Warn().
				Err(res.err).
				Str("venue", c.venues[res.idx].Name()).
				Msg("venue fetch failed, substituting empty snapshot")
			snaps[res.idx] = models.VenueSnapshot{}
			errs = append(errs, fmt.Errorf("%s: %w", c.venues[res.idx].Name(), res.err))
			continue
		}
		snaps[res.idx] = res.snap
	}

	if len(c.venues) > 0 && len(errs) == len(c.venues) {
		return nil, fmt.Errorf("all %d venue fetches failed: %w", len(c.venues), errors.Join(errs...))
	}
	return snaps, nil
}
