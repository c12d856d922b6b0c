package finance

import (
	"fmt"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// stressRateIncrease is the interest rate delta applied by the rate and
// combined stress scenarios.
const stressRateIncrease = 0.02

// PerformStressTest evaluates rec under three adverse scenarios. The
// vacancy and maintenance stresses are additive adjustments on top of
// independently recomputed base metrics rather than parameter changes
// inside the calculation, so each scenario degrades the base cash flow by
// a known delta.
func (e *Engine) PerformStressTest(rec *property.Record) *property.StressTestResult {
	base := e.CalculateMetrics(rec, DefaultParams())
	if base.Err != "" {
		return &property.StressTestResult{Err: base.Err}
	}

	monthlyRent := base.MonthlyRent

	// Doubled vacancy: one extra vacancy increment off the base cash flow.
	vacancyCashFlow := base.MonthlyCashFlow - monthlyRent*DefaultVacancyRate
	increasedVacancy := &property.StressScenario{
		Scenario:        fmt.Sprintf("Vacancy rate increased to %.0f%%", DefaultVacancyRate*2*100),
		MonthlyCashFlow: vacancyCashFlow,
		AnnualCashFlow:  vacancyCashFlow * 12,
		StillProfitable: vacancyCashFlow > 0,
	}

	higherRateParams := DefaultParams()
	higherRateParams.InterestRate = DefaultInterestRate + stressRateIncrease
	higherRate := e.CalculateMetrics(rec, higherRateParams)
	rateIncrease := &property.StressScenario{
		Scenario:               fmt.Sprintf("Interest rate increased to %.1f%%", higherRateParams.InterestRate*100),
		MonthlyMortgagePayment: higherRate.MonthlyMortgagePayment,
		MonthlyCashFlow:        higherRate.MonthlyCashFlow,
		AnnualCashFlow:         higherRate.AnnualCashFlow,
		StillProfitable:        higherRate.MonthlyCashFlow > 0,
	}

	// Worst case: the higher rate plus the vacancy increment plus half a
	// maintenance increment.
	vacancyImpact := monthlyRent * DefaultVacancyRate
	maintenanceImpact := monthlyRent * DefaultMaintenanceRate * 0.5
	combinedCashFlow := higherRate.MonthlyCashFlow - vacancyImpact - maintenanceImpact
	combined := &property.StressScenario{
		Scenario:        "Combined stress: Higher vacancy, interest rate, and maintenance",
		MonthlyCashFlow: combinedCashFlow,
		AnnualCashFlow:  combinedCashFlow * 12,
		StillProfitable: combinedCashFlow > 0,
	}

	return &property.StressTestResult{
		IncreasedVacancy:     increasedVacancy,
		InterestRateIncrease: rateIncrease,
		CombinedStress:       combined,
		Summary: &property.StressSummary{
			PassedAllTests: increasedVacancy.StillProfitable &&
				rateIncrease.StillProfitable &&
				combined.StillProfitable,
			WorstCaseMonthlyCashFlow: combined.MonthlyCashFlow,
		},
	}
}
