package aggregator

import (
	"strings"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// FilterSpec enumerates every supported filter dimension. Filters are
// independently toggleable and AND-combined; a nil pointer or empty slice
// means "no constraint" for that dimension.
//
// A record missing the field a filter needs is excluded by that filter,
// and a numeric field that is exactly zero counts as missing. This
// zero-equals-absent behavior is deliberate and matched by the tests.
type FilterSpec struct {
	// Sources is an exact-match allow-list of source names.
	Sources []string

	// PropertyTypes matches case-insensitive substrings of the type.
	PropertyTypes []string

	MinPrice *float64
	MaxPrice *float64

	MinBedrooms *float64
	MaxBedrooms *float64

	MinRentalYield *float64
	MaxRentalYield *float64

	// Cap rate bounds consult the record's direct field and, failing
	// that, the computed financial metrics.
	MinCapRate *float64
	MaxCapRate *float64

	MinSquareFeet *float64
	MaxSquareFeet *float64

	MinYearBuilt *int
	MaxYearBuilt *int

	// MinCashFlow reads monthly cash flow from computed metrics only.
	MinCashFlow *float64

	// RiskLevels is a case-insensitive allow-list checked against both
	// the direct field and computed metrics.
	RiskLevels []string

	// Locations matches city or state case-insensitively, or ZIP exactly.
	Locations []string
}

// FilterProperties applies every set filter in spec, AND-combined, and
// returns the surviving records. The input slice is unchanged.
func FilterProperties(records []*property.Record, spec FilterSpec) []*property.Record {
	out := make([]*property.Record, 0, len(records))
	for _, rec := range records {
		if spec.matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (spec FilterSpec) matches(rec *property.Record) bool {
	if len(spec.Sources) > 0 && !containsString(spec.Sources, rec.Source) {
		return false
	}

	if len(spec.PropertyTypes) > 0 {
		if rec.PropertyType == "" || !typeMatchesAny(rec.PropertyType, spec.PropertyTypes) {
			return false
		}
	}

	if spec.MinPrice != nil && !(rec.Price > 0 && rec.Price >= *spec.MinPrice) {
		return false
	}
	if spec.MaxPrice != nil && !(rec.Price > 0 && rec.Price <= *spec.MaxPrice) {
		return false
	}

	if !boundsOK(rec.Bedrooms, spec.MinBedrooms, spec.MaxBedrooms) {
		return false
	}
	if !boundsOK(rec.RentalYield, spec.MinRentalYield, spec.MaxRentalYield) {
		return false
	}
	if !boundsOK(rec.SquareFeet, spec.MinSquareFeet, spec.MaxSquareFeet) {
		return false
	}

	if !capRateOK(rec, spec.MinCapRate, spec.MaxCapRate) {
		return false
	}

	if spec.MinYearBuilt != nil && !(rec.YearBuilt != nil && *rec.YearBuilt != 0 && *rec.YearBuilt >= *spec.MinYearBuilt) {
		return false
	}
	if spec.MaxYearBuilt != nil && !(rec.YearBuilt != nil && *rec.YearBuilt != 0 && *rec.YearBuilt <= *spec.MaxYearBuilt) {
		return false
	}

	if spec.MinCashFlow != nil {
		if rec.Metrics == nil || rec.Metrics.MonthlyCashFlow < *spec.MinCashFlow {
			return false
		}
	}

	if len(spec.RiskLevels) > 0 && !riskLevelOK(rec, spec.RiskLevels) {
		return false
	}

	if len(spec.Locations) > 0 && !locationOK(rec, spec.Locations) {
		return false
	}

	return true
}

// boundsOK applies optional min/max bounds to an optional field, treating
// nil and zero as absent (absent never passes a set bound).
func boundsOK(value, minBound, maxBound *float64) bool {
	if minBound != nil && !(value != nil && *value != 0 && *value >= *minBound) {
		return false
	}
	if maxBound != nil && !(value != nil && *value != 0 && *value <= *maxBound) {
		return false
	}
	return true
}

// capRateOK checks cap rate bounds against the direct field, falling back
// to the computed metrics when the direct field is absent.
func capRateOK(rec *property.Record, minBound, maxBound *float64) bool {
	direct := rec.CapRate
	computed := 0.0
	hasComputed := rec.Metrics != nil
	if hasComputed {
		computed = rec.Metrics.CapRate
	}

	if minBound != nil {
		directPass := direct != nil && *direct != 0 && *direct >= *minBound
		computedPass := hasComputed && computed >= *minBound
		if !directPass && !computedPass {
			return false
		}
	}
	if maxBound != nil {
		directPass := direct != nil && *direct != 0 && *direct <= *maxBound
		computedPass := hasComputed && computed <= *maxBound
		if !directPass && !computedPass {
			return false
		}
	}
	return true
}

func riskLevelOK(rec *property.Record, levels []string) bool {
	lowered := make([]string, len(levels))
	for i, level := range levels {
		lowered[i] = strings.ToLower(level)
	}

	if rec.RiskLevel != "" && containsString(lowered, strings.ToLower(rec.RiskLevel)) {
		return true
	}
	if rec.Metrics != nil && containsString(lowered, strings.ToLower(rec.Metrics.RiskLevel)) {
		return true
	}
	return false
}

func locationOK(rec *property.Record, locations []string) bool {
	for _, loc := range locations {
		lowered := strings.ToLower(loc)
		if rec.City != "" && strings.ToLower(rec.City) == lowered {
			return true
		}
		if rec.State != "" && strings.ToLower(rec.State) == lowered {
			return true
		}
		if rec.ZipCode != "" && rec.ZipCode == loc {
			return true
		}
	}
	return false
}

func typeMatchesAny(propertyType string, types []string) bool {
	recType := strings.ToLower(propertyType)
	for _, t := range types {
		if strings.Contains(recType, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
