package cli

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

// printer formats currency and large numbers with locale-aware grouping.
var printer = message.NewPrinter(language.AmericanEnglish) //nolint:gochecknoglobals // shared formatter

func dollars(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

func dollarsCents(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

func percent(v float64) string {
	if math.IsInf(v, 0) {
		return "∞"
	}
	return printer.Sprintf("%.2f%%", v)
}

// renderRecordTable writes the merged result set as an aligned table.
func renderRecordTable(w io.Writer, records []*property.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no properties found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tID\tTYPE\tLOCATION\tPRICE\tRENT/MO\tYIELD\tCASH FLOW\tRISK")

	for _, rec := range records {
		rent, yield, cashFlow, risk := "-", "-", "-", "-"
		if rec.MonthlyRent != nil {
			rent = dollars(*rec.MonthlyRent)
		}
		if rec.RentalYield != nil {
			yield = percent(*rec.RentalYield)
		}
		if rec.Metrics != nil && rec.Metrics.Err == "" {
			cashFlow = dollarsCents(rec.Metrics.MonthlyCashFlow)
			risk = rec.Metrics.RiskLevel
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s, %s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Source, rec.ID, rec.PropertyType,
			rec.City, rec.State,
			dollars(rec.Price), rent, yield, cashFlow, risk)
	}

	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d properties\n", len(records))
}

// renderAnalysis writes one property's metrics, scenarios, and stress test
// as readable text.
func renderAnalysis(w io.Writer, result analysis) {
	m := result.Metrics

	if m.IsError() {
		fmt.Fprintf(w, "analysis unavailable: %s\n", m.Err)
		return
	}

	fmt.Fprintf(w, "Price %s", dollars(result.Property.Price))
	if result.Property.Address != "" {
		fmt.Fprintf(w, " at %s, %s, %s", result.Property.Address, result.Property.City, result.Property.State)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "down payment\t%s (%.0f%%)\n", dollars(m.DownPayment), m.DownPaymentPercentage)
	fmt.Fprintf(tw, "loan amount\t%s\n", dollars(m.LoanAmount))
	fmt.Fprintf(tw, "monthly mortgage\t%s\n", dollarsCents(m.MonthlyMortgagePayment))

	if m.Partial {
		_ = tw.Flush()
		fmt.Fprintf(w, "\n%s\n", m.Err)
		return
	}

	fmt.Fprintf(tw, "monthly expenses\t%s\n", dollarsCents(m.TotalMonthlyExpenses))
	fmt.Fprintf(tw, "monthly cash flow\t%s\n", dollarsCents(m.MonthlyCashFlow))
	fmt.Fprintf(tw, "annual NOI\t%s\n", dollarsCents(m.AnnualNOI))
	fmt.Fprintf(tw, "cap rate\t%s\n", percent(m.CapRate))
	fmt.Fprintf(tw, "rental yield\t%s\n", percent(m.RentalYield))
	fmt.Fprintf(tw, "cash on cash\t%s\n", percent(m.CashOnCashReturn))
	fmt.Fprintf(tw, "DSCR\t%.2f\n", m.DebtServiceCoverageRatio)
	fmt.Fprintf(tw, "risk\t%s (score %d)\n", m.RiskLevel, m.RiskScore)
	_ = tw.Flush()

	for _, factor := range m.RiskFactors {
		fmt.Fprintf(w, "  - %s\n", factor)
	}

	if len(result.Scenarios) > 0 {
		fmt.Fprintln(w, "\nDown payment scenarios:")
		labels := make([]string, 0, len(result.Scenarios))
		for label := range result.Scenarios {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		stw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, label := range labels {
			s := result.Scenarios[label]
			fmt.Fprintf(stw, "  %s\tcash flow %s\tcash on cash %s\n",
				label, dollarsCents(s.MonthlyCashFlow), percent(s.CashOnCashReturn))
		}
		_ = stw.Flush()
	}

	if st := result.StressTest; st != nil && st.Err == "" {
		fmt.Fprintln(w, "\nStress test:")
		for _, scenario := range []*property.StressScenario{
			st.IncreasedVacancy, st.InterestRateIncrease, st.CombinedStress,
		} {
			verdict := "FAIL"
			if scenario.StillProfitable {
				verdict = "ok"
			}
			fmt.Fprintf(w, "  [%s] %s: cash flow %s\n",
				verdict, scenario.Scenario, dollarsCents(scenario.MonthlyCashFlow))
		}
		fmt.Fprintf(w, "  worst case monthly cash flow: %s\n",
			dollarsCents(st.Summary.WorstCaseMonthlyCashFlow))
	}
}
