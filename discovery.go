package carenest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carenest/carenest-go/internal/api"
	"github.com/carenest/carenest-go/internal/types"
)

// matchScoreBase and friends define the presentation-only ranking heuristic.
// The score never reorders or filters results; sorting stays a server
// concern via the sort key.
const (
	matchScoreBase            = 90
	matchScoreExperienceBonus = 5
	matchScoreRatingBonus     = 5
	matchScoreExperienceYears = 5
	matchScoreRatingThreshold = 4.8
)

// Discovery is a debounced caregiver search. Every filter mutation
// reschedules a dispatch after the quiet period; each dispatch carries a
// monotonically increasing generation number, and a completion is applied
// only when its generation is still the latest, so a slow stale response can
// never overwrite a newer result set.
type Discovery struct {
	c *Client

	mu         sync.Mutex
	filters    types.DiscoveryFilters
	timer      *time.Timer
	generation uint64
	results    []Caregiver
	err        error
	inflight   int

	// OnUpdate, when set before the first mutation, is invoked after every
	// applied result-set change. Called without the internal lock held.
	OnUpdate func()
}

// Discovery returns a new search component bound to this client.
func (c *Client) Discovery() *Discovery {
	return &Discovery{c: c}
}

// SetFilters applies a partial filter mutation and schedules a dispatch
// after the debounce interval. A mutation arriving before a pending dispatch
// fires cancels and replaces it, so at most one dispatch reflects the latest
// snapshot.
func (d *Discovery) SetFilters(mutate func(*DiscoveryFilters)) {
	d.mu.Lock()
	mutate(&d.filters)
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.c.debounce, d.dispatch)
	d.mu.Unlock()
}

// SearchNow bypasses the debounce and dispatches the current filter snapshot
// immediately, cancelling any pending timer. It still participates in
// generation ordering.
func (d *Discovery) SearchNow() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.dispatch()
}

// Stop cancels any pending dispatch. In-flight requests are not aborted;
// their completions are discarded by the generation check.
func (d *Discovery) Stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++ // orphan anything still in flight
	d.mu.Unlock()
}

// Results returns the latest applied result set along with the error from
// the most recent completed search, if it failed. A failed search always
// leaves the result set empty; the error is retryable by mutating a filter
// or calling SearchNow.
func (d *Discovery) Results() ([]Caregiver, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Caregiver, len(d.results))
	copy(out, d.results)
	return out, d.err
}

// Searching reports whether at least one dispatch is in flight.
func (d *Discovery) Searching() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inflight > 0
}

// dispatch snapshots the filters, tags the request with a fresh generation,
// and issues the search on its own goroutine. The lock is released before
// the network call.
func (d *Discovery) dispatch() {
	d.mu.Lock()
	d.generation++
	gen := d.generation
	snapshot := d.filters
	d.inflight++
	d.mu.Unlock()

	searchesDispatchedTotal.Inc()
	requestID := uuid.NewString()
	log.Debug().Str("request_id", requestID).Uint64("generation", gen).Msg("dispatching caregiver search")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.c.http.Timeout)
		defer cancel()
		results, err := api.SearchCaregivers(ctx, d.c.http, d.c.baseURL, snapshot)
		d.complete(gen, results, err)
	}()
}

// complete applies a search completion iff its generation is still current.
func (d *Discovery) complete(gen uint64, results []types.Caregiver, err error) {
	d.mu.Lock()
	d.inflight--
	if gen != d.generation {
		d.mu.Unlock()
		searchesSupersededTotal.Inc()
		log.Debug().Uint64("generation", gen).Msg("discarding superseded search response")
		return
	}
	if err != nil {
		d.results = nil
		d.err = err
	} else {
		for i := range results {
			results[i].MatchScore = scoreCandidate(&results[i])
		}
		d.results = results
		d.err = nil
	}
	notify := d.OnUpdate
	d.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("caregiver search failed")
	}
	if notify != nil {
		notify()
	}
}

// scoreCandidate computes the match score heuristic: base 90, +5 for more
// than five years of experience, +5 for an average rating above 4.8,
// clamped to [0,100].
func scoreCandidate(cg *types.Caregiver) int {
	score := matchScoreBase
	if cg.ExperienceYears > matchScoreExperienceYears {
		score += matchScoreExperienceBonus
	}
	if cg.AverageRating > matchScoreRatingThreshold {
		score += matchScoreRatingBonus
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// TruncateWords shortens text to at most n words for narrow presentation,
// appending an ellipsis when anything was cut. Pure transform; the source
// string is never modified.
func TruncateWords(s string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + "..."
}
