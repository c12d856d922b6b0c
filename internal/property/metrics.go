package property

// Metrics is the full set of investment metrics for one record. A Metrics
// value is produced fresh per calculation and never partially mutated.
//
// Two distinguished shapes exist besides the full one: an error result
// (Err set, nothing else populated) when the record has no usable price,
// and a partial result (Partial and Err set, financing fields only) when
// rent data is missing.
type Metrics struct {
	// Property basics.
	PropertyPrice float64 `json:"property_price,omitempty"`
	MonthlyRent   float64 `json:"monthly_rent,omitempty"`
	AnnualRent    float64 `json:"annual_rent,omitempty"`

	// Financing.
	DownPayment            float64 `json:"down_payment,omitempty"`
	DownPaymentPercentage  float64 `json:"down_payment_percentage,omitempty"`
	LoanAmount             float64 `json:"loan_amount,omitempty"`
	InterestRate           float64 `json:"interest_rate,omitempty"`
	LoanTermYears          int     `json:"loan_term_years,omitempty"`
	MonthlyMortgagePayment float64 `json:"monthly_mortgage_payment,omitempty"`
	AnnualMortgagePayment  float64 `json:"annual_mortgage_payment,omitempty"`

	// Operating expenses, monthly and annual.
	MonthlyPropertyTax        float64 `json:"monthly_property_tax,omitempty"`
	AnnualPropertyTax         float64 `json:"annual_property_tax,omitempty"`
	MonthlyInsurance          float64 `json:"monthly_insurance,omitempty"`
	AnnualInsurance           float64 `json:"annual_insurance,omitempty"`
	MonthlyVacancyCost        float64 `json:"monthly_vacancy_cost,omitempty"`
	AnnualVacancyCost         float64 `json:"annual_vacancy_cost,omitempty"`
	MonthlyMaintenance        float64 `json:"monthly_maintenance,omitempty"`
	AnnualMaintenance         float64 `json:"annual_maintenance,omitempty"`
	MonthlyPropertyManagement float64 `json:"monthly_property_management,omitempty"`
	AnnualPropertyManagement  float64 `json:"annual_property_management,omitempty"`
	TotalMonthlyExpenses      float64 `json:"total_monthly_expenses,omitempty"`
	TotalAnnualExpenses       float64 `json:"total_annual_expenses,omitempty"`

	// Cash flow.
	MonthlyNOI      float64 `json:"monthly_noi,omitempty"`
	AnnualNOI       float64 `json:"annual_noi,omitempty"`
	MonthlyCashFlow float64 `json:"monthly_cash_flow,omitempty"`
	AnnualCashFlow  float64 `json:"annual_cash_flow,omitempty"`

	// Investment ratios.
	CapRate                  float64 `json:"cap_rate,omitempty"`
	RentalYield              float64 `json:"rental_yield,omitempty"`
	CashOnCashReturn         float64 `json:"cash_on_cash_return,omitempty"`
	GrossRentMultiplier      float64 `json:"gross_rent_multiplier,omitempty"`
	DebtServiceCoverageRatio float64 `json:"debt_service_coverage_ratio,omitempty"`
	PriceToRentRatio         float64 `json:"price_to_rent_ratio,omitempty"`
	BreakEvenRatio           float64 `json:"break_even_ratio,omitempty"`
	OperatingExpenseRatio    float64 `json:"operating_expense_ratio,omitempty"`
	OnePercentRuleValue      float64 `json:"one_percent_rule_value,omitempty"`
	OnePercentRulePassed     bool    `json:"one_percent_rule_passed,omitempty"`

	// Risk assessment.
	RiskScore   int      `json:"risk_score,omitempty"`
	RiskLevel   string   `json:"risk_level,omitempty"`
	RiskFactors []string `json:"risk_factors,omitempty"`

	// Error and partial markers.
	Err     string `json:"error,omitempty"`
	Partial bool   `json:"partial,omitempty"`
}

// IsError reports whether no metrics beyond the marker are usable.
func (m *Metrics) IsError() bool {
	return m != nil && m.Err != "" && !m.Partial
}

// ScenarioResult maps a human-readable scenario label to a full Metrics
// snapshot, as produced by multi-down-payment analysis.
type ScenarioResult map[string]*Metrics

// StressScenario is one degraded scenario of a stress test.
type StressScenario struct {
	Scenario               string  `json:"scenario"`
	MonthlyMortgagePayment float64 `json:"monthly_mortgage_payment,omitempty"`
	MonthlyCashFlow        float64 `json:"monthly_cash_flow"`
	AnnualCashFlow         float64 `json:"annual_cash_flow"`
	StillProfitable        bool    `json:"still_profitable"`
}

// StressSummary aggregates the stress scenarios.
type StressSummary struct {
	PassedAllTests           bool    `json:"passed_all_tests"`
	WorstCaseMonthlyCashFlow float64 `json:"worst_case_monthly_cash_flow"`
}

// StressTestResult holds the three degraded scenarios and their summary.
// Err is set instead when the record lacks the data to stress.
type StressTestResult struct {
	IncreasedVacancy     *StressScenario `json:"increased_vacancy,omitempty"`
	InterestRateIncrease *StressScenario `json:"interest_rate_increase,omitempty"`
	CombinedStress       *StressScenario `json:"combined_stress,omitempty"`
	Summary              *StressSummary  `json:"summary,omitempty"`

	Err string `json:"error,omitempty"`
}
