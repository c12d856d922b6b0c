package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("MonthlyDerivesAnnual", func(t *testing.T) {
		rec := New(Record{ID: "1", Source: "s", Price: 300000, MonthlyRent: Float(2000)})

		require.NotNil(t, rec.AnnualRent)
		assert.InDelta(t, 24000, *rec.AnnualRent, 1e-9)
		require.NotNil(t, rec.RentalYield)
		assert.InDelta(t, 8.0, *rec.RentalYield, 1e-9)
		require.NotNil(t, rec.PriceToRentRatio)
		assert.InDelta(t, 12.5, *rec.PriceToRentRatio, 1e-9)
	})

	t.Run("AnnualDerivesMonthly", func(t *testing.T) {
		rec := New(Record{ID: "1", Source: "s", Price: 300000, AnnualRent: Float(24000)})

		require.NotNil(t, rec.MonthlyRent)
		assert.InDelta(t, 2000, *rec.MonthlyRent, 1e-9)
	})

	t.Run("Idempotent", func(t *testing.T) {
		rec := New(Record{ID: "1", Source: "s", Price: 300000, MonthlyRent: Float(2000)})
		annual := *rec.AnnualRent
		yield := *rec.RentalYield

		rec.Normalize()
		rec.Normalize()

		assert.InDelta(t, annual, *rec.AnnualRent, 1e-12)
		assert.InDelta(t, yield, *rec.RentalYield, 1e-12)
	})

	t.Run("NoRent", func(t *testing.T) {
		rec := New(Record{ID: "1", Source: "s", Price: 300000})
		assert.Nil(t, rec.MonthlyRent)
		assert.Nil(t, rec.AnnualRent)
		assert.Nil(t, rec.RentalYield)
	})

	t.Run("NoPriceNoDerivedRatios", func(t *testing.T) {
		rec := New(Record{ID: "1", Source: "s", MonthlyRent: Float(2000)})
		require.NotNil(t, rec.AnnualRent)
		assert.Nil(t, rec.RentalYield)
		assert.Nil(t, rec.PriceToRentRatio)
	})
}

func TestRecordKey(t *testing.T) {
	rec := Record{ID: "42", Source: "HomeScout"}
	assert.Equal(t, "HomeScout/42", rec.Key())
}

func TestMetricsIsError(t *testing.T) {
	assert.False(t, (&Metrics{}).IsError())
	assert.True(t, (&Metrics{Err: "bad"}).IsError())
	assert.False(t, (&Metrics{Err: "limited", Partial: true}).IsError(), "partial results stay usable")
}
