package aggregator

import (
	"math"
	"sort"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// sortKeyFunc extracts a comparable value from a record, substituting the
// key's documented default when the field is missing.
type sortKeyFunc func(*property.Record) float64

// sortKeys is the key-extraction table. Missing-value defaults place
// incomplete records last for the common direction of each key.
var sortKeys = map[string]sortKeyFunc{ //nolint:gochecknoglobals // fixed key table
	"price":        keyPrice,
	"price_asc":    keyPrice,
	"rental_yield": optionalKey(func(r *property.Record) *float64 { return r.RentalYield }, math.Inf(-1)),
	"cap_rate":     optionalKey(func(r *property.Record) *float64 { return r.CapRate }, math.Inf(-1)),
	"price_to_rent": optionalKey(
		func(r *property.Record) *float64 { return r.PriceToRentRatio }, math.Inf(1)),
	"square_feet": optionalKey(func(r *property.Record) *float64 { return r.SquareFeet }, 0),
	"bedrooms":    optionalKey(func(r *property.Record) *float64 { return r.Bedrooms }, 0),
	"bathrooms":   optionalKey(func(r *property.Record) *float64 { return r.Bathrooms }, 0),
	"year_built":  keyYearBuilt,
	"cash_flow":   metricsKey(func(m *property.Metrics) float64 { return m.MonthlyCashFlow }, 0),
	"cash_on_cash": metricsKey(
		func(m *property.Metrics) float64 { return m.CashOnCashReturn }, 0),
	"risk_score": keyRiskScore,
}

// SortProperties returns a new slice sorted by sortKey. The sort is stable.
//
// Two keys override the reverse flag: price_asc always sorts ascending,
// and risk_score inverts the flag because a lower score is better. An
// unrecognized key falls back to price with the given flag.
func SortProperties(records []*property.Record, sortKey string, reverse bool) []*property.Record {
	out := make([]*property.Record, len(records))
	copy(out, records)
	if len(out) == 0 {
		return out
	}

	keyFn, ok := sortKeys[sortKey]
	if !ok {
		keyFn = sortKeys["price"]
	}

	switch sortKey {
	case "price_asc":
		reverse = false
	case "risk_score":
		reverse = !reverse
	}

	sort.SliceStable(out, func(i, j int) bool {
		if reverse {
			return keyFn(out[i]) > keyFn(out[j])
		}
		return keyFn(out[i]) < keyFn(out[j])
	})

	return out
}

func keyPrice(r *property.Record) float64 {
	if r.Price == 0 {
		return math.Inf(1)
	}
	return r.Price
}

func keyYearBuilt(r *property.Record) float64 {
	if r.YearBuilt == nil {
		return 0
	}
	return float64(*r.YearBuilt)
}

// keyRiskScore reads the computed risk score; records without usable
// metrics rank as maximally risky.
func keyRiskScore(r *property.Record) float64 {
	if r.Metrics == nil || r.Metrics.Err != "" {
		return math.Inf(1)
	}
	return float64(r.Metrics.RiskScore)
}

func optionalKey(get func(*property.Record) *float64, missing float64) sortKeyFunc {
	return func(r *property.Record) float64 {
		if v := get(r); v != nil {
			return *v
		}
		return missing
	}
}

func metricsKey(get func(*property.Metrics) float64, missing float64) sortKeyFunc {
	return func(r *property.Record) float64 {
		if r.Metrics == nil {
			return missing
		}
		return get(r.Metrics)
	}
}
