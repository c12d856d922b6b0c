// Package finance computes investment metrics for property records:
// mortgage amortization, yield/cap-rate/DSCR analysis, multi-scenario
// down-payment comparison, and stress testing.
//
// Every entry point is a total function: bad input produces an
// error-shaped or partial result, never a panic or a nil. Given identical
// input, results are bit-identical.
package finance

import (
	"math"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// Underwriting assumptions. Tax and insurance accrue on price, the
// remaining operating expenses accrue on rent.
const (
	DefaultPropertyTaxRate   = 0.011 // 1.1% of property value per year
	DefaultInsuranceRate     = 0.005 // 0.5% of property value per year
	DefaultVacancyRate       = 0.05  // 5% of rental income
	DefaultMaintenanceRate   = 0.05  // 5% of rental income
	DefaultManagementFeeRate = 0.10  // 10% of rental income

	DefaultDownPaymentPct = 0.20
	DefaultInterestRate   = 0.055
	DefaultTermYears      = 30
)

// Error messages carried inside metric results. These are payload values,
// not Go errors: the pipeline contract is a degraded result, not a failure.
const (
	errMsgPriceRequired = "Property price is required and must be greater than zero"
	errMsgRentMissing   = "Rental information is missing, limited metrics available"
)

// Params are the financing inputs for one metrics calculation.
type Params struct {
	DownPaymentPct float64
	InterestRate   float64
	TermYears      int
}

// DefaultParams returns the standard financing assumptions: 20% down,
// 5.5% annual rate, 30 year term.
func DefaultParams() Params {
	return Params{
		DownPaymentPct: DefaultDownPaymentPct,
		InterestRate:   DefaultInterestRate,
		TermYears:      DefaultTermYears,
	}
}

// Engine performs financial analysis over single property records. It holds
// no mutable state; one Engine may be shared by any number of goroutines.
type Engine struct{}

// NewEngine returns a ready Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CalculateMetrics computes the full metric set for rec under the given
// financing params.
//
// Contracts, in order:
//   - no positive price: an error result, nothing else computed
//   - no rent data: a partial result carrying only down payment, loan
//     amount, and the mortgage payment, with the partial marker set
//   - otherwise: the full metric set, risk score, and risk level
func (e *Engine) CalculateMetrics(rec *property.Record, params Params) *property.Metrics {
	price := rec.Price
	if price <= 0 {
		return &property.Metrics{Err: errMsgPriceRequired}
	}

	monthlyRent := deref(rec.MonthlyRent)
	annualRent := deref(rec.AnnualRent)
	if annualRent <= 0 && monthlyRent > 0 {
		annualRent = monthlyRent * 12
	}

	if annualRent <= 0 {
		downPayment := price * params.DownPaymentPct
		loanAmount := price - downPayment
		return &property.Metrics{
			Err:                    errMsgRentMissing,
			Partial:                true,
			DownPayment:            downPayment,
			LoanAmount:             loanAmount,
			MonthlyMortgagePayment: mortgagePayment(loanAmount, params.InterestRate, params.TermYears),
		}
	}

	if monthlyRent <= 0 {
		monthlyRent = annualRent / 12
	}

	downPayment := price * params.DownPaymentPct
	loanAmount := price - downPayment
	monthlyMortgage := mortgagePayment(loanAmount, params.InterestRate, params.TermYears)

	propertyTax := price * DefaultPropertyTaxRate / 12
	insurance := price * DefaultInsuranceRate / 12
	vacancyCost := monthlyRent * DefaultVacancyRate
	maintenance := monthlyRent * DefaultMaintenanceRate
	management := monthlyRent * DefaultManagementFeeRate
	totalMonthlyExpenses := propertyTax + insurance + vacancyCost + maintenance + management

	monthlyCashFlow := monthlyRent - monthlyMortgage - totalMonthlyExpenses
	annualCashFlow := monthlyCashFlow * 12

	// NOI excludes debt service.
	monthlyNOI := monthlyRent - totalMonthlyExpenses
	annualNOI := monthlyNOI * 12

	capRate := annualNOI / price * 100
	rentalYield := annualRent / price * 100
	cashOnCash := annualCashFlow / downPayment * 100
	grossRentMultiplier := price / annualRent

	annualDebtService := monthlyMortgage * 12
	dscr := math.Inf(1)
	if annualDebtService > 0 {
		dscr = annualNOI / annualDebtService
	}

	priceToRent := price / annualRent
	breakEvenRatio := (totalMonthlyExpenses + monthlyMortgage) / monthlyRent
	operatingExpenseRatio := totalMonthlyExpenses / monthlyRent
	onePercentValue := monthlyRent / price * 100
	onePercentPassed := onePercentValue >= 1

	score, factors := riskScore(capRate, cashOnCash, dscr, onePercentPassed)

	return &property.Metrics{
		PropertyPrice: price,
		MonthlyRent:   monthlyRent,
		AnnualRent:    annualRent,

		DownPayment:            downPayment,
		DownPaymentPercentage:  params.DownPaymentPct * 100,
		LoanAmount:             loanAmount,
		InterestRate:           params.InterestRate * 100,
		LoanTermYears:          params.TermYears,
		MonthlyMortgagePayment: monthlyMortgage,
		AnnualMortgagePayment:  annualDebtService,

		MonthlyPropertyTax:        propertyTax,
		AnnualPropertyTax:         propertyTax * 12,
		MonthlyInsurance:          insurance,
		AnnualInsurance:           insurance * 12,
		MonthlyVacancyCost:        vacancyCost,
		AnnualVacancyCost:         vacancyCost * 12,
		MonthlyMaintenance:        maintenance,
		AnnualMaintenance:         maintenance * 12,
		MonthlyPropertyManagement: management,
		AnnualPropertyManagement:  management * 12,
		TotalMonthlyExpenses:      totalMonthlyExpenses,
		TotalAnnualExpenses:       totalMonthlyExpenses * 12,

		MonthlyNOI:      monthlyNOI,
		AnnualNOI:       annualNOI,
		MonthlyCashFlow: monthlyCashFlow,
		AnnualCashFlow:  annualCashFlow,

		CapRate:                  capRate,
		RentalYield:              rentalYield,
		CashOnCashReturn:         cashOnCash,
		GrossRentMultiplier:      grossRentMultiplier,
		DebtServiceCoverageRatio: dscr,
		PriceToRentRatio:         priceToRent,
		BreakEvenRatio:           breakEvenRatio,
		OperatingExpenseRatio:    operatingExpenseRatio,
		OnePercentRuleValue:      onePercentValue,
		OnePercentRulePassed:     onePercentPassed,

		RiskScore:   score,
		RiskLevel:   riskLevel(score),
		RiskFactors: factors,
	}
}

// mortgagePayment is the standard level-payment amortization formula
// L*[c(1+c)^n]/[(1+c)^n - 1] with c the monthly rate and n the number of
// payments. A zero rate degrades to straight-line principal.
func mortgagePayment(loanAmount, annualRate float64, termYears int) float64 {
	monthlyRate := annualRate / 12
	numPayments := float64(termYears * 12)

	if monthlyRate == 0 {
		return loanAmount / numPayments
	}

	growth := math.Pow(1+monthlyRate, numPayments)
	return loanAmount * (monthlyRate * growth) / (growth - 1)
}

// riskScore accumulates an integer risk score from independent threshold
// checks, appending a reason per triggered check. Evaluation order is part
// of the contract: cap rate, cash-on-cash, DSCR, one-percent rule.
func riskScore(capRate, cashOnCash, dscr float64, onePercentPassed bool) (int, []string) {
	score := 0
	var factors []string

	switch {
	case capRate < 4:
		factors = append(factors, "Low cap rate")
		score += 2
	case capRate < 6:
		factors = append(factors, "Moderate cap rate")
		score++
	}

	switch {
	case cashOnCash < 4:
		factors = append(factors, "Low cash on cash return")
		score += 2
	case cashOnCash < 8:
		factors = append(factors, "Moderate cash on cash return")
		score++
	}

	switch {
	case dscr < 1:
		factors = append(factors, "DSCR below 1.0 (negative cash flow)")
		score += 3
	case dscr < 1.25:
		factors = append(factors, "Low DSCR (tight cash flow)")
		score += 2
	case dscr < 1.5:
		factors = append(factors, "Moderate DSCR")
		score++
	}

	if !onePercentPassed {
		factors = append(factors, "Does not meet 1% rule")
		score++
	}

	return score, factors
}

// riskLevel classifies an accumulated risk score.
func riskLevel(score int) string {
	switch {
	case score <= 1:
		return "Low"
	case score <= 4:
		return "Moderate"
	default:
		return "High"
	}
}

// deref reads an optional float, treating nil as zero.
func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
