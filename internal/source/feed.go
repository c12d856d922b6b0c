package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/logging"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// Kind selects the rent-estimation heuristic a feed falls back to.
type Kind string

// Feed kinds.
const (
	KindResidential Kind = "residential"
	KindCommercial  Kind = "commercial"
)

// defaultFeedTimeout bounds each feed request when no timeout is configured.
const defaultFeedTimeout = 10 * time.Second

// FeedAdapter consumes a JSON listing feed over HTTP. One instance serves
// one source; instances are safe for concurrent use.
type FeedAdapter struct {
	name    string
	kind    Kind
	baseURL string
	client  *http.Client
}

// NewFeedAdapter creates an adapter for a JSON listing feed. A
// non-positive timeout selects the default.
func NewFeedAdapter(name string, kind Kind, baseURL string, timeout time.Duration) *FeedAdapter {
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}
	return &FeedAdapter{
		name:    name,
		kind:    kind,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the source name stamped on every record.
func (f *FeedAdapter) Name() string {
	return f.name
}

// Search fetches the feed's listing endpoint and maps each listing to a
// normalized record. Never panics past the boundary.
func (f *FeedAdapter) Search(ctx context.Context, q Query) (records []*property.Record, err error) {
	defer recoverToError(&err, "search")

	endpoint, err := f.searchURL(q)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Listings []feedListing `json:"listings"`
	}
	if err := f.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	limit := q.MaxResults
	if limit <= 0 || limit > len(payload.Listings) {
		limit = len(payload.Listings)
	}

	records = make([]*property.Record, 0, limit)
	for _, listing := range payload.Listings[:limit] {
		rec := f.mapListing(listing)
		if rec == nil {
			continue
		}
		records = append(records, rec)
	}

	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("component", "source").
		Str("source", f.name).
		Int("records", len(records)).
		Msg("feed search complete")

	return records, nil
}

// FetchDetails enriches rec from the feed's detail endpoint. On any
// failure the input record comes back unmodified with the error.
func (f *FeedAdapter) FetchDetails(ctx context.Context, rec *property.Record) (out *property.Record, err error) {
	out = rec
	defer recoverToError(&err, "details")

	if rec.ID == "" {
		return rec, fmt.Errorf("%s: record has no id", f.name)
	}

	endpoint := fmt.Sprintf("%s/listings/%s", f.baseURL, url.PathEscape(rec.ID))

	var listing feedListing
	if err := f.getJSON(ctx, endpoint, &listing); err != nil {
		return rec, err
	}

	enriched := *rec
	mergeDetails(&enriched, listing)
	f.fillRent(&enriched)

	return property.New(enriched), nil
}

// searchURL builds the listing endpoint with the query encoded.
func (f *FeedAdapter) searchURL(q Query) (string, error) {
	base, err := url.Parse(f.baseURL + "/listings")
	if err != nil {
		return "", fmt.Errorf("%s: invalid base url: %w", f.name, err)
	}

	values := url.Values{}
	values.Set("location", q.Location)
	if q.PropertyType != "" {
		values.Set("property_type", q.PropertyType)
	}
	if q.MinPrice > 0 {
		values.Set("min_price", strconv.Itoa(q.MinPrice))
	}
	if q.MaxPrice > 0 {
		values.Set("max_price", strconv.Itoa(q.MaxPrice))
	}
	if q.MaxResults > 0 {
		values.Set("limit", strconv.Itoa(q.MaxResults))
	}

	base.RawQuery = values.Encode()
	return base.String(), nil
}

// getJSON performs one GET with the adapter timeout and decodes the body.
func (f *FeedAdapter) getJSON(ctx context.Context, endpoint string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", f.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", f.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", f.name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", f.name, err)
	}
	return nil
}

// mapListing converts one feed listing into a normalized record. Listings
// without a usable price still become records; the finance engine reports
// them as error-shaped instead of the adapter dropping them.
func (f *FeedAdapter) mapListing(listing feedListing) *property.Record {
	if listing.ID == "" {
		return nil
	}

	rec := property.Record{
		ID:           listing.ID,
		Source:       f.name,
		PropertyURL:  listing.URL,
		PropertyType: listing.PropertyType,
		Address:      listing.Address,
		City:         listing.City,
		State:        listing.State,
		ZipCode:      listing.ZipCode,
		Price:        priceOf(listing.Price),
		Latitude:     listing.Latitude,
		Longitude:    listing.Longitude,
		Bedrooms:     SafeFloat(listing.Bedrooms),
		Bathrooms:    SafeFloat(listing.Bathrooms),
		SquareFeet:   SafeFloat(listing.SquareFeet),
		LotSize:      SafeFloat(listing.LotSize),
		YearBuilt:    listing.YearBuilt,
		MonthlyRent:  SafeFloat(listing.MonthlyRent),
		AnnualRent:   SafeFloat(listing.AnnualRent),
		Description:  listing.Description,
		Features:     listing.Features,
		ImageURLs:    listing.ImageURLs,
		RawData:      listing.Extra,
	}

	f.fillRent(&rec)
	return property.New(rec)
}

// fillRent applies the kind-specific rent estimate when the feed carried
// no rent data.
func (f *FeedAdapter) fillRent(rec *property.Record) {
	if rec.MonthlyRent != nil || rec.AnnualRent != nil {
		return
	}

	switch f.kind {
	case KindResidential:
		rec.MonthlyRent = EstimateResidentialRent(rec)
	case KindCommercial:
		rec.AnnualRent = EstimateCommercialRent(rec)
	}
}

// mergeDetails copies detail-endpoint fields into rec, filling gaps rather
// than overwriting data the search listing already carried.
func mergeDetails(rec *property.Record, listing feedListing) {
	if rec.Description == "" {
		rec.Description = listing.Description
	}
	if len(rec.Features) == 0 {
		rec.Features = listing.Features
	}
	if len(rec.ImageURLs) == 0 {
		rec.ImageURLs = listing.ImageURLs
	}
	if rec.YearBuilt == nil {
		rec.YearBuilt = listing.YearBuilt
	}
	if rec.LotSize == nil {
		rec.LotSize = SafeFloat(listing.LotSize)
	}
	if rec.SquareFeet == nil {
		rec.SquareFeet = SafeFloat(listing.SquareFeet)
	}
	if rec.MonthlyRent == nil && rec.AnnualRent == nil {
		rec.MonthlyRent = SafeFloat(listing.MonthlyRent)
		rec.AnnualRent = SafeFloat(listing.AnnualRent)
	}
	if rec.Price <= 0 {
		rec.Price = priceOf(listing.Price)
	}
}

// priceOf accepts both numeric and display-text prices ("$2.5M").
func priceOf(v any) float64 {
	if text, ok := v.(string); ok {
		return ParsePrice(text)
	}
	if f := SafeFloat(v); f != nil {
		return *f
	}
	return 0
}

// recoverToError converts an adapter panic into a returned error so no
// failure crosses the source boundary as a panic.
func recoverToError(err *error, operation string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("adapter panic during %s: %v", operation, r)
	}
}

// feedListing mirrors one listing object in the feed payload. Numeric
// fields arrive as numbers or display strings depending on the feed, so
// they decode as any and go through SafeFloat.
type feedListing struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	PropertyType string `json:"property_type"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`

	Price any `json:"price"`

	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Bedrooms   any      `json:"bedrooms"`
	Bathrooms  any      `json:"bathrooms"`
	SquareFeet any      `json:"square_feet"`
	LotSize    any      `json:"lot_size"`
	YearBuilt  *int     `json:"year_built"`

	MonthlyRent any `json:"monthly_rent"`
	AnnualRent  any `json:"annual_rent"`

	Description string   `json:"description"`
	Features    []string `json:"features"`
	ImageURLs   []string `json:"image_urls"`

	Extra map[string]any `json:"extra"`
}
