package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/aggregator"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/finance"
	"github.com/Fairhaven-Equity-Partners/RwaDealTracker/internal/logging"
)

//nolint:funlen // flag wiring is repetitive but flat
func newSearchCmd(a *app) *cobra.Command {
	var (
		location     string
		types        []string
		minPrice     int
		maxPrice     int
		maxPerSource int

		sortKey string
		reverse bool

		minYield    float64
		minCashFlow float64
		riskLevels  []string
		sources     []string

		enrich     bool
		demo       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search all sources and rank the merged results",
		Example: `  # Residential deals in Austin under $600k, best yield first
  rwadealtracker search --location "Austin, TX" --max-price 600000 --sort rental_yield

  # Offline demo data, enriched and filtered to positive cash flow
  rwadealtracker search --location Austin --demo --enrich --min-cash-flow 0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if location == "" {
				return fmt.Errorf("--location is required")
			}

			agg, err := a.aggregatorFor(demo)
			if err != nil {
				return err
			}

			ctx := logging.WithContext(cmd.Context(), a.logger)

			records := agg.FetchProperties(ctx, aggregator.Query{
				Location:            location,
				PropertyTypes:       types,
				MinPrice:            minPrice,
				MaxPrice:            maxPrice,
				MaxResultsPerSource: maxPerSource,
			})

			if enrich {
				finance.NewEngine().EnrichAll(ctx, records, 0)
			}

			spec := aggregator.FilterSpec{
				Sources:    sources,
				RiskLevels: riskLevels,
			}
			if minPrice > 0 {
				v := float64(minPrice)
				spec.MinPrice = &v
			}
			if maxPrice > 0 {
				v := float64(maxPrice)
				spec.MaxPrice = &v
			}
			if cmd.Flags().Changed("min-yield") {
				spec.MinRentalYield = &minYield
			}
			if cmd.Flags().Changed("min-cash-flow") {
				spec.MinCashFlow = &minCashFlow
			}
			records = aggregator.FilterProperties(records, spec)

			records = aggregator.SortProperties(records, sortKey, reverse)

			if jsonOutput || !isTerminal(os.Stdout) {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(records)
			}
			renderRecordTable(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "location to search: city, state, or ZIP (required)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "property types to keep (substring match)")
	cmd.Flags().IntVar(&minPrice, "min-price", 0, "minimum price")
	cmd.Flags().IntVar(&maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().IntVar(&maxPerSource, "max-per-source", 20, "maximum results per source")
	cmd.Flags().StringVar(&sortKey, "sort", "price", "sort key (price, price_asc, rental_yield, cap_rate, price_to_rent, square_feet, year_built, cash_flow, cash_on_cash, risk_score)")
	cmd.Flags().BoolVar(&reverse, "reverse", true, "sort descending")
	cmd.Flags().Float64Var(&minYield, "min-yield", 0, "minimum rental yield percentage")
	cmd.Flags().Float64Var(&minCashFlow, "min-cash-flow", 0, "minimum monthly cash flow (requires --enrich)")
	cmd.Flags().StringSliceVar(&riskLevels, "risk-level", nil, "risk levels to keep (low, moderate, high)")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "sources to keep")
	cmd.Flags().BoolVar(&enrich, "enrich", false, "compute investment metrics for every record")
	cmd.Flags().BoolVar(&demo, "demo", false, "use the built-in offline demo sources")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of a table")

	return cmd
}
