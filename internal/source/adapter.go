// Package source defines the property source boundary: adapters that turn
// search parameters into normalized property records.
//
// Adapters fail by returning errors, never by panicking past the boundary;
// the aggregator degrades a failed adapter to zero records. Scraping and
// markup concerns live entirely behind this interface.
package source

import (
	"context"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// Query carries the search parameters every adapter receives. Zero values
// mean "no constraint" for the optional fields.
type Query struct {
	// Location is the search area: city, state, neighborhood, or ZIP.
	Location string

	// PropertyType narrows the search when the source supports it.
	PropertyType string

	MinPrice int
	MaxPrice int

	// MaxResults caps how many records the adapter returns.
	MaxResults int
}

// Adapter produces normalized records for one data source.
//
// Search returns up to q.MaxResults records for the query. FetchDetails
// enriches a single record with source detail data and returns the
// enriched copy; on failure it returns the input record unmodified along
// with the error.
type Adapter interface {
	Name() string
	Search(ctx context.Context, q Query) ([]*property.Record, error)
	FetchDetails(ctx context.Context, rec *property.Record) (*property.Record, error)
}
