package finance

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/logging"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// EnrichAll computes metrics for every record on a bounded worker pool and
// stores each result on its record, replacing any previous metric set
// wholesale. Each record is a pure, independent computation, so the only
// shared state is the slice itself and no two workers touch the same
// element.
//
// parallelism <= 0 selects the number of CPUs. Enrichment stops early only
// on context cancellation; a record that cannot be analyzed still gets its
// error-shaped metrics.
func (e *Engine) EnrichAll(ctx context.Context, records []*property.Record, parallelism int) {
	if len(records) == 0 {
		return
	}
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	log := logging.FromContext(ctx)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rec.Metrics = e.CalculateMetrics(rec, DefaultParams())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn().
			Err(err).
			Str("component", "finance").
			Msg("enrichment interrupted")
		return
	}

	log.Debug().
		Str("component", "finance").
		Int("records", len(records)).
		Int("parallelism", parallelism).
		Dur("elapsed", time.Since(start)).
		Msg("batch enrichment complete")
}
