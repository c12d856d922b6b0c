package source

import (
	"context"
	"strings"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// Static serves a fixed record set. It backs offline demo mode and tests,
// honoring the same query semantics as a live feed: price range, optional
// type substring, and the per-source result cap.
type Static struct {
	name    string
	records []*property.Record

	// Details maps record ID to the detail-enriched version of a record.
	Details map[string]*property.Record
}

// NewStatic creates a static source. Records are normalized on the way in.
func NewStatic(name string, records ...property.Record) *Static {
	out := make([]*property.Record, 0, len(records))
	for _, rec := range records {
		rec.Source = name
		out = append(out, property.New(rec))
	}
	return &Static{name: name, records: out}
}

// Name returns the source name.
func (s *Static) Name() string { return s.name }

// Search filters the fixed set by the query.
func (s *Static) Search(_ context.Context, q Query) ([]*property.Record, error) {
	var out []*property.Record
	for _, rec := range s.records {
		if q.MinPrice > 0 && rec.Price < float64(q.MinPrice) {
			continue
		}
		if q.MaxPrice > 0 && rec.Price > float64(q.MaxPrice) {
			continue
		}
		if q.PropertyType != "" &&
			!strings.Contains(strings.ToLower(rec.PropertyType), strings.ToLower(q.PropertyType)) {
			continue
		}
		out = append(out, rec)
		if q.MaxResults > 0 && len(out) >= q.MaxResults {
			break
		}
	}
	return out, nil
}

// FetchDetails returns the configured detail version of rec, or rec itself
// when none exists.
func (s *Static) FetchDetails(_ context.Context, rec *property.Record) (*property.Record, error) {
	if detail, ok := s.Details[rec.ID]; ok {
		return detail, nil
	}
	return rec, nil
}
