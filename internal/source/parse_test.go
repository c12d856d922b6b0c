package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"PlainNumber", "750000", 750000},
		{"DollarCommas", "$500,000", 500000},
		{"ThousandsSuffix", "$450K", 450000},
		{"ThousandsLower", "450k", 450000},
		{"MillionsSuffix", "$2.5M", 2500000},
		{"MillionsLower", "$1.2m", 1200000},
		{"Whitespace", "  $500,000  ", 500000},
		{"Empty", "", 0},
		{"NoDigits", "price on request", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePrice(tt.text), 1e-9)
		})
	}
}

func TestSafeFloat(t *testing.T) {
	t.Run("Float", func(t *testing.T) {
		got := SafeFloat(3.5)
		require.NotNil(t, got)
		assert.InDelta(t, 3.5, *got, 1e-9)
	})

	t.Run("Int", func(t *testing.T) {
		got := SafeFloat(4)
		require.NotNil(t, got)
		assert.InDelta(t, 4, *got, 1e-9)
	})

	t.Run("NumericString", func(t *testing.T) {
		got := SafeFloat("1,850")
		require.NotNil(t, got)
		assert.InDelta(t, 1850, *got, 1e-9)
	})

	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, SafeFloat(nil))
	})

	t.Run("NonNumericString", func(t *testing.T) {
		assert.Nil(t, SafeFloat("unknown"))
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		assert.Nil(t, SafeFloat([]string{"3"}))
	})
}

func TestEstimateResidentialRent(t *testing.T) {
	t.Run("BelowThresholdUsesHigherRate", func(t *testing.T) {
		rent := EstimateResidentialRent(&property.Record{Price: 300000})
		require.NotNil(t, rent)
		assert.InDelta(t, 2400, *rent, 1e-9) // 0.8% of price
	})

	t.Run("AboveThresholdUsesLowerRate", func(t *testing.T) {
		rent := EstimateResidentialRent(&property.Record{Price: 600000})
		require.NotNil(t, rent)
		assert.InDelta(t, 4200, *rent, 1e-9) // 0.7% of price
	})

	t.Run("RoundsToNearestFifty", func(t *testing.T) {
		rent := EstimateResidentialRent(&property.Record{Price: 385000})
		require.NotNil(t, rent)
		assert.InDelta(t, 3100, *rent, 1e-9) // 3080 rounds up
	})

	t.Run("NoPrice", func(t *testing.T) {
		assert.Nil(t, EstimateResidentialRent(&property.Record{}))
	})
}

func TestEstimateCommercialRent(t *testing.T) {
	base := property.Record{Price: 2000000, SquareFeet: property.Float(5000)}

	tests := []struct {
		propertyType string
		want         float64
	}{
		{"Office Building", 130000},   // 6.5%
		{"Retail Strip", 120000},      // 6.0%
		{"Industrial Park", 150000},   // 7.5%
		{"Multi-Family", 110000},      // 5.5%
		{"Apartment Complex", 110000}, // 5.5%
		{"Mixed Use", 140000},         // default 7.0%
	}
	for _, tt := range tests {
		t.Run(tt.propertyType, func(t *testing.T) {
			rec := base
			rec.PropertyType = tt.propertyType
			rent := EstimateCommercialRent(&rec)
			require.NotNil(t, rent)
			assert.InDelta(t, tt.want, *rent, 1e-9)
		})
	}

	t.Run("NeedsSquareFeet", func(t *testing.T) {
		assert.Nil(t, EstimateCommercialRent(&property.Record{Price: 2000000, PropertyType: "Retail"}))
	})

	t.Run("NeedsPrice", func(t *testing.T) {
		assert.Nil(t, EstimateCommercialRent(&property.Record{
			PropertyType: "Retail", SquareFeet: property.Float(5000),
		}))
	})
}
