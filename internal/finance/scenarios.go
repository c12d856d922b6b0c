package finance

import (
	"fmt"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// downPaymentScenarios are the down payment percentages compared by
// CalculateMultipleScenarios.
var downPaymentScenarios = []float64{0.20, 0.25, 0.30} //nolint:gochecknoglobals // fixed scenario table

// CalculateMultipleScenarios recomputes the full metric set at 20%, 25%,
// and 30% down, all other params at defaults. The result always has
// exactly one labeled entry per percentage.
func (e *Engine) CalculateMultipleScenarios(rec *property.Record) property.ScenarioResult {
	scenarios := make(property.ScenarioResult, len(downPaymentScenarios))

	for _, pct := range downPaymentScenarios {
		params := DefaultParams()
		params.DownPaymentPct = pct

		label := fmt.Sprintf("%d%%_down_payment", int(pct*100))
		scenarios[label] = e.CalculateMetrics(rec, params)
	}

	return scenarios
}
