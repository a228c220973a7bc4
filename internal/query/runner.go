// Package query answers route queries against a loaded network, one at a
// time or as a concurrent batch.
package query

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"transit-pathfinder/internal/itinerary"
	"transit-pathfinder/internal/metrics"
	"transit-pathfinder/internal/network"
	"transit-pathfinder/internal/pathfinder"
)

type Query struct {
	Start  string
	Target string
}

// Answer holds exactly one of Itinerary, Outcome or Err.
type Answer struct {
	Query
	Itinerary *itinerary.Itinerary
	Outcome   *itinerary.Outcome
	Err       error
}

// Encode writes the itinerary or outcome. An answer carrying an error
// writes nothing and returns it.
func (a Answer) Encode(w io.Writer, f itinerary.Format) error {
	switch {
	case a.Err != nil:
		return a.Err
	case a.Itinerary != nil:
		return a.Itinerary.Encode(w, f)
	case a.Outcome != nil:
		return a.Outcome.Encode(w, f)
	default:
		return fmt.Errorf("empty answer for %q -> %q", a.Start, a.Target)
	}
}

// Publisher receives every itinerary that was found.
type Publisher interface {
	PublishItinerary(it *itinerary.Itinerary) error
}

type Runner struct {
	net     *network.Network
	workers int
	pub     Publisher
	metrics *metrics.Collector
}

// NewRunner creates a runner over net. pub and m may be nil.
func NewRunner(net *network.Network, workers int, pub Publisher, m *metrics.Collector) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{net: net, workers: workers, pub: pub, metrics: m}
}

// Query answers a single query. Unknown stations and missing paths are
// answered with an Outcome; only unexpected failures set Err.
func (r *Runner) Query(ctx context.Context, q Query) Answer {
	answer := Answer{Query: q}

	started := time.Now()
	res, err := pathfinder.Find(ctx, r.net, q.Start, q.Target)
	elapsed := time.Since(started)

	if err != nil {
		if o, ok := itinerary.OutcomeFor(q.Start, q.Target, err); ok {
			log.Debug().Str("start", q.Start).Str("target", q.Target).Str("status", o.Status).Msg("query answered without itinerary")
			r.metrics.ObserveQuery(o.Status, elapsed, 0, 0)
			answer.Outcome = o
			return answer
		}
		r.metrics.ObserveQuery(metrics.OutcomeError, elapsed, 0, 0)
		answer.Err = fmt.Errorf("find %q -> %q: %w", q.Start, q.Target, err)
		return answer
	}

	it, err := itinerary.FromResult(res)
	if err != nil {
		r.metrics.ObserveQuery(metrics.OutcomeError, elapsed, 0, 0)
		answer.Err = err
		return answer
	}
	r.metrics.ObserveQuery(metrics.OutcomeFound, elapsed, res.Settled, it.Transfers())

	log.Debug().
		Str("start", q.Start).
		Str("target", q.Target).
		Int("cost", res.Cost).
		Int("settled", res.Settled).
		Int("transfers", it.Transfers()).
		Dur("elapsed", elapsed).
		Msg("itinerary found")

	if r.pub != nil {
		if err := r.pub.PublishItinerary(it); err != nil {
			log.Error().Err(err).Str("start", q.Start).Str("target", q.Target).Msg("failed to publish itinerary")
		}
	}

	answer.Itinerary = it
	return answer
}

// Run answers all queries with at most r.workers searches in flight.
// Answers are returned in query order.
func (r *Runner) Run(ctx context.Context, queries []Query) []Answer {
	answers := make([]Answer, len(queries))

	p := pool.New().WithMaxGoroutines(r.workers)
	for i, q := range queries {
		i, q := i, q
		p.Go(func() {
			answers[i] = r.Query(ctx, q)
		})
	}
	p.Wait()

	return answers
}
