package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/finance"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/property"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		file  string
		price float64
		rent  float64

		downPct   float64
		rate      float64
		termYears int

		scenarios  bool
		stress     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute investment metrics for one property",
		Long: "Analyze a single property record, either loaded from a JSON file " +
			"or described inline with --price and --rent.",
		Example: `  # Quick numbers for a prospective deal
  rwadealtracker analyze --price 300000 --rent 2000 --scenarios --stress

  # Full record from a file
  rwadealtracker analyze --file deal.json --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := loadRecord(file, price, rent)
			if err != nil {
				return err
			}

			engine := finance.NewEngine()
			params := finance.Params{
				DownPaymentPct: downPct,
				InterestRate:   rate,
				TermYears:      termYears,
			}

			result := analysis{
				Property: rec,
				Metrics:  engine.CalculateMetrics(rec, params),
			}
			if scenarios {
				result.Scenarios = engine.CalculateMultipleScenarios(rec)
			}
			if stress {
				result.StressTest = engine.PerformStressTest(rec)
			}

			if jsonOutput || !isTerminal(os.Stdout) {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}
			renderAnalysis(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file holding a property record")
	cmd.Flags().Float64Var(&price, "price", 0, "purchase price")
	cmd.Flags().Float64Var(&rent, "rent", 0, "expected monthly rent")
	cmd.Flags().Float64Var(&downPct, "down", finance.DefaultDownPaymentPct, "down payment as a fraction of price")
	cmd.Flags().Float64Var(&rate, "rate", finance.DefaultInterestRate, "annual mortgage interest rate as a decimal")
	cmd.Flags().IntVar(&termYears, "term", finance.DefaultTermYears, "mortgage term in years")
	cmd.Flags().BoolVar(&scenarios, "scenarios", false, "include 20/25/30% down payment scenarios")
	cmd.Flags().BoolVar(&stress, "stress", false, "include the stress test")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")

	return cmd
}

// analysis is the analyze command's combined output document.
type analysis struct {
	Property   *property.Record           `json:"property"`
	Metrics    *property.Metrics          `json:"metrics"`
	Scenarios  property.ScenarioResult    `json:"scenarios,omitempty"`
	StressTest *property.StressTestResult `json:"stress_test,omitempty"`
}

// loadRecord builds the record under analysis from a file or inline flags.
func loadRecord(file string, price, rent float64) (*property.Record, error) {
	if file != "" {
		data, err := os.ReadFile(file) //nolint:gosec // operator-supplied path
		if err != nil {
			return nil, fmt.Errorf("failed to read record file: %w", err)
		}
		var rec property.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse record file: %w", err)
		}
		return property.New(rec), nil
	}

	if price <= 0 {
		return nil, fmt.Errorf("either --file or a positive --price is required")
	}

	rec := property.Record{
		ID:     "inline",
		Source: "manual",
		Price:  price,
	}
	if rent > 0 {
		rec.MonthlyRent = &rent
	}
	return property.New(rec), nil
}
