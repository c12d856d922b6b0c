// Package aggregator orchestrates parallel fetches across every registered
// property source, merges the results, and offers filter and sort
// operations over the merged set.
//
// The partial-failure contract is load-bearing: a source that times out,
// errors, or panics contributes zero records and is logged; the merged
// result is the union of whatever subset of sources succeeded.
package aggregator

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/cache"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/logging"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/source"
)

// Query is one aggregated search request.
type Query struct {
	// Location is the search area passed to every source.
	Location string

	// PropertyTypes keeps only records whose type contains one of these,
	// case-insensitively. Empty means no type constraint.
	PropertyTypes []string

	MinPrice int
	MaxPrice int

	// MaxResultsPerSource caps each source's contribution.
	MaxResultsPerSource int
}

// Aggregator fans one query out to every adapter through the cache tiers.
type Aggregator struct {
	adapters []source.Adapter

	searchStore cache.Store
	detailStore cache.Store
	searchTTL   int
	detailTTL   int
}

// New creates an aggregator. searchStore guards source searches with the
// shorter TTL; detailStore guards per-record detail fetches with the
// longer one.
func New(searchStore, detailStore cache.Store, searchTTL, detailTTL int, adapters ...source.Adapter) *Aggregator {
	return &Aggregator{
		adapters:    adapters,
		searchStore: searchStore,
		detailStore: detailStore,
		searchTTL:   searchTTL,
		detailTTL:   detailTTL,
	}
}

// FetchProperties runs the query against every adapter concurrently, one
// worker per adapter, and joins all results before returning. The merge is
// concatenation across sources; records for the same physical property
// listed by multiple sources are kept distinct under their (source, id)
// identities.
func (a *Aggregator) FetchProperties(ctx context.Context, q Query) []*property.Record {
	runID := ulid.Make().String()
	log := logging.FromContext(ctx).With().
		Str("component", "aggregator").
		Str("run_id", runID).
		Logger()
	ctx = logging.WithContext(ctx, log)

	start := time.Now()

	var (
		mu     sync.Mutex
		merged []*property.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(a.adapters))

	for _, adapter := range a.adapters {
		adapter := adapter
		g.Go(func() error {
			records := a.fetchFromSource(gctx, adapter, q)
			mu.Lock()
			merged = append(merged, records...)
			mu.Unlock()
			// Source failures were already degraded to zero records, so a
			// worker never errors and never cancels its siblings.
			return nil
		})
	}
	_ = g.Wait()

	if len(q.PropertyTypes) > 0 {
		merged = filterByTypeSubstring(merged, q.PropertyTypes)
	}

	log.Info().
		Int("sources", len(a.adapters)).
		Int("records", len(merged)).
		Dur("elapsed", time.Since(start)).
		Msg("aggregation complete")

	return merged
}

// fetchFromSource runs one adapter's search and per-record detail
// enrichment, both behind their cache tiers. Every failure degrades to
// fewer records, never to an error.
func (a *Aggregator) fetchFromSource(ctx context.Context, adapter source.Adapter, q Query) []*property.Record {
	log := logging.FromContext(ctx)
	name := adapter.Name()

	searchKey, err := cache.GenerateKey(cache.KeyParams{
		Operation:  "search",
		Source:     name,
		Location:   q.Location,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		MaxResults: q.MaxResultsPerSource,
	})
	if err != nil {
		log.Error().Err(err).Str("source", name).Msg("failed to build search cache key")
		return nil
	}

	records, err := cache.Fetch(ctx, a.searchStore, searchKey, a.searchTTL,
		func(ctx context.Context) ([]*property.Record, error) {
			return adapter.Search(ctx, source.Query{
				Location:   q.Location,
				MinPrice:   q.MinPrice,
				MaxPrice:   q.MaxPrice,
				MaxResults: q.MaxResultsPerSource,
			})
		})
	if err != nil {
		log.Error().Err(err).Str("source", name).Msg("source fetch failed, contributing zero records")
		return nil
	}

	// Detail enrichment is sequential within one source; records are
	// independent, so the order is irrelevant.
	for i, rec := range records {
		enriched := a.fetchDetails(ctx, adapter, rec)
		if enriched != nil {
			records[i] = enriched
		}
	}

	log.Info().Str("source", name).Int("records", len(records)).Msg("source fetch complete")
	return records
}

// fetchDetails runs one detail fetch behind the detail cache tier. A
// failed fetch leaves the record as it was.
func (a *Aggregator) fetchDetails(ctx context.Context, adapter source.Adapter, rec *property.Record) *property.Record {
	log := logging.FromContext(ctx)

	detailKey, err := cache.GenerateKey(cache.KeyParams{
		Operation: "details",
		Source:    adapter.Name(),
		Extra:     map[string]string{"id": rec.ID},
	})
	if err != nil {
		log.Error().Err(err).Str("source", adapter.Name()).Msg("failed to build detail cache key")
		return rec
	}

	enriched, err := cache.Fetch(ctx, a.detailStore, detailKey, a.detailTTL,
		func(ctx context.Context) (*property.Record, error) {
			return adapter.FetchDetails(ctx, rec)
		})
	if err != nil {
		log.Warn().
			Err(err).
			Str("source", adapter.Name()).
			Str("record", rec.Key()).
			Msg("detail fetch failed, keeping search record")
		return rec
	}
	return enriched
}

// filterByTypeSubstring retains records whose property type contains at
// least one requested type, case-insensitively.
func filterByTypeSubstring(records []*property.Record, types []string) []*property.Record {
	lowered := make([]string, len(types))
	for i, t := range types {
		lowered[i] = strings.ToLower(t)
	}

	var out []*property.Record
	for _, rec := range records {
		if rec.PropertyType == "" {
			continue
		}
		recType := strings.ToLower(rec.PropertyType)
		for _, t := range lowered {
			if strings.Contains(recType, t) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// String renders the query for logs.
func (q Query) String() string {
	return "location=" + q.Location +
		" types=" + strings.Join(q.PropertyTypes, ",") +
		" price=" + strconv.Itoa(q.MinPrice) + ".." + strconv.Itoa(q.MaxPrice)
}
