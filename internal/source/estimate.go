package source

import (
	"math"
	"strings"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// EstimateResidentialRent estimates a monthly rent from the asking price
// when a residential feed carries no rent data. The estimate is a
// conservative fraction of the one-percent rule: 0.7% of price above
// $500k, 0.8% below, rounded to the nearest $50. Returns nil without a
// usable price.
func EstimateResidentialRent(rec *property.Record) *float64 {
	if rec.Price <= 0 {
		return nil
	}

	rate := 0.008
	if rec.Price > 500000 {
		rate = 0.007
	}

	monthly := math.Round(rec.Price*rate/50) * 50
	return &monthly
}

// EstimateCommercialRent estimates an annual rent for a commercial record
// from typical cap rates by property type, using estimated NOI as the rent
// proxy. Requires both price and square footage; returns nil otherwise.
func EstimateCommercialRent(rec *property.Record) *float64 {
	if rec.Price <= 0 || rec.SquareFeet == nil || *rec.SquareFeet <= 0 {
		return nil
	}

	capRate := 0.07
	propertyType := strings.ToLower(rec.PropertyType)
	switch {
	case strings.Contains(propertyType, "office"):
		capRate = 0.065
	case strings.Contains(propertyType, "retail"):
		capRate = 0.06
	case strings.Contains(propertyType, "industrial"):
		capRate = 0.075
	case strings.Contains(propertyType, "multi-family"), strings.Contains(propertyType, "apartment"):
		capRate = 0.055
	}

	annual := rec.Price * capRate
	return &annual
}
