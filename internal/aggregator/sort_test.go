package aggregator

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

func sortFixtures() []*property.Record {
	return []*property.Record{
		{Source: "s", ID: "a", Price: 540000, Bedrooms: property.Float(4), RentalYield: property.Float(5.2)},
		{Source: "s", ID: "b", Price: 210000, Bedrooms: property.Float(1), RentalYield: property.Float(9.1)},
		{Source: "s", ID: "c", Price: 385000, RentalYield: property.Float(7.6)},
		{Source: "s", ID: "d", Price: 0}, // unknown price and yield
	}
}

func ids(records []*property.Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.ID
	}
	return out
}

func TestSortProperties(t *testing.T) {
	t.Run("PriceAscending", func(t *testing.T) {
		out := SortProperties(sortFixtures(), "price", false)
		assert.Equal(t, []string{"b", "c", "a", "d"}, ids(out), "unknown price sorts last ascending")
	})

	t.Run("PriceDescending", func(t *testing.T) {
		out := SortProperties(sortFixtures(), "price", true)
		assert.Equal(t, []string{"d", "a", "c", "b"}, ids(out))
	})

	t.Run("PriceAscIgnoresReverse", func(t *testing.T) {
		forward := SortProperties(sortFixtures(), "price_asc", false)
		reversed := SortProperties(sortFixtures(), "price_asc", true)
		assert.Equal(t, ids(forward), ids(reversed))
		assert.True(t, sort.SliceIsSorted(forward[:3], func(i, j int) bool {
			return forward[i].Price < forward[j].Price
		}))
	})

	t.Run("RentalYieldMissingSortsLastDescending", func(t *testing.T) {
		out := SortProperties(sortFixtures(), "rental_yield", true)
		assert.Equal(t, []string{"b", "c", "a", "d"}, ids(out))
	})

	t.Run("RiskScoreInvertsReverse", func(t *testing.T) {
		records := sortFixtures()
		records[0].Metrics = &property.Metrics{RiskScore: 2}
		records[1].Metrics = &property.Metrics{RiskScore: 7}
		records[2].Metrics = &property.Metrics{RiskScore: 5}
		// records[3] has no metrics and must rank as maximally risky.

		// reverse=false surfaces the riskiest records first.
		out := SortProperties(records, "risk_score", false)
		assert.Equal(t, []string{"d", "b", "c", "a"}, ids(out))

		// reverse=true yields non-decreasing risk score.
		out = SortProperties(records, "risk_score", true)
		assert.Equal(t, []string{"a", "c", "b", "d"}, ids(out))
	})

	t.Run("RiskScoreErrorMetricsRankMaximal", func(t *testing.T) {
		records := []*property.Record{
			{Source: "s", ID: "ok", Metrics: &property.Metrics{RiskScore: 3}},
			{Source: "s", ID: "err", Metrics: &property.Metrics{Err: "Property price is required and must be greater than zero"}},
		}
		out := SortProperties(records, "risk_score", true)
		assert.Equal(t, []string{"ok", "err"}, ids(out))
	})

	t.Run("CashFlowFromMetrics", func(t *testing.T) {
		records := sortFixtures()
		records[0].Metrics = &property.Metrics{MonthlyCashFlow: -160}
		records[1].Metrics = &property.Metrics{MonthlyCashFlow: 240}

		out := SortProperties(records, "cash_flow", true)
		require.Equal(t, "b", out[0].ID)
		// Records without metrics default to zero, between the two extremes.
		assert.Equal(t, "a", out[3].ID)
	})

	t.Run("UnknownKeyFallsBackToPrice", func(t *testing.T) {
		out := SortProperties(sortFixtures(), "no_such_key", false)
		assert.Equal(t, ids(SortProperties(sortFixtures(), "price", false)), ids(out))
	})

	t.Run("StableOnTies", func(t *testing.T) {
		records := []*property.Record{
			{Source: "s", ID: "x", Price: 100},
			{Source: "s", ID: "y", Price: 100},
			{Source: "s", ID: "z", Price: 100},
		}
		out := SortProperties(records, "price", false)
		assert.Equal(t, []string{"x", "y", "z"}, ids(out))
	})

	t.Run("InputUnchanged", func(t *testing.T) {
		records := sortFixtures()
		_ = SortProperties(records, "price", false)
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(records))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, SortProperties(nil, "price", false))
	})
}
