// Package property defines the normalized record shape shared by every
// source adapter, plus the financial metric types the analysis engine
// produces for it.
package property

import (
	"fmt"
	"time"
)

// Record is the unified property listing shape. Identity is the
// (Source, ID) pair; IDs are unique only within a source.
//
// A record is built by an adapter with whatever data the source exposed,
// normalized exactly once through Normalize, optionally enriched in place
// by the finance engine, and treated as immutable by the pipeline after
// that.
type Record struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	PropertyURL  string `json:"property_url,omitempty"`
	PropertyType string `json:"property_type"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`

	// Price is required and must be positive for any financial computation.
	Price float64 `json:"price"`

	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Bedrooms   *float64 `json:"bedrooms,omitempty"` // fractional for partial commercial units
	Bathrooms  *float64 `json:"bathrooms,omitempty"`
	SquareFeet *float64 `json:"square_feet,omitempty"`
	LotSize    *float64 `json:"lot_size,omitempty"`
	YearBuilt  *int     `json:"year_built,omitempty"`

	MonthlyRent *float64 `json:"monthly_rent,omitempty"`
	AnnualRent  *float64 `json:"annual_rent,omitempty"`

	RentalYield              *float64 `json:"rental_yield,omitempty"`
	CapRate                  *float64 `json:"cap_rate,omitempty"`
	PriceToRentRatio         *float64 `json:"price_to_rent_ratio,omitempty"`
	EstimatedMonthlyMortgage *float64 `json:"estimated_monthly_mortgage,omitempty"`

	RiskLevel   string   `json:"risk_level,omitempty"`
	VacancyRate *float64 `json:"vacancy_rate,omitempty"`

	LocationScore    *float64 `json:"location_score,omitempty"`
	PopulationGrowth *float64 `json:"population_growth,omitempty"`
	JobGrowth        *float64 `json:"job_growth,omitempty"`

	Description string     `json:"description,omitempty"`
	Features    []string   `json:"features,omitempty"`
	ImageURLs   []string   `json:"image_urls,omitempty"`
	DateListed  *time.Time `json:"date_listed,omitempty"`

	// RawData carries source-specific payload fields verbatim.
	RawData map[string]any `json:"raw_data,omitempty"`

	// Metrics is populated by the finance engine and replaced wholesale.
	Metrics *Metrics `json:"financial_metrics,omitempty"`
}

// Key returns the composite identity of the record.
func (r *Record) Key() string {
	return fmt.Sprintf("%s/%s", r.Source, r.ID)
}

// Normalize enforces the rent consistency invariant at construction time:
// when exactly one of monthly/annual rent is present the other is derived,
// and when both price and annual rent are present the yield and
// price-to-rent ratio are (re)derived from them. Idempotent.
func (r *Record) Normalize() {
	if r.MonthlyRent != nil && r.AnnualRent == nil {
		annual := *r.MonthlyRent * 12
		r.AnnualRent = &annual
	}
	if r.AnnualRent != nil && r.MonthlyRent == nil {
		monthly := *r.AnnualRent / 12
		r.MonthlyRent = &monthly
	}

	if r.AnnualRent != nil && r.Price > 0 {
		yield := *r.AnnualRent / r.Price * 100
		r.RentalYield = &yield
	}
	if r.AnnualRent != nil && *r.AnnualRent > 0 && r.Price > 0 {
		ratio := r.Price / *r.AnnualRent
		r.PriceToRentRatio = &ratio
	}
}

// New normalizes rec and returns it, ready for the pipeline. Adapters build
// a Record literal and pass it through here exactly once.
func New(rec Record) *Record {
	rec.Normalize()
	return &rec
}

// Float returns a pointer to v, for filling optional fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for filling optional fields.
func Int(v int) *int { return &v }
