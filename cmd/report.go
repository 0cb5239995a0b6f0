package cmd

import (
	"fmt"

	"github.com/facastdev/facast/internal/cli"
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagRecs bool

var reportCmd = &cobra.Command{
	Use:   "report [indicator]",
	Short: "Historical totals and projections",
	Long:  "Show observed totals and heuristic projections for one indicator, or all of them.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagRecs, "recs", false, "Show saving recommendations")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, args []string) error {
	indicators := model.AllIndicators
	if len(args) == 1 {
		ind, ok := model.ParseIndicator(args[0])
		if !ok {
			return fmt.Errorf("unknown indicator %q (electricity, water, materials, services)", args[0])
		}
		indicators = []model.Indicator{ind}
	}

	s, err := loadData()
	if err != nil {
		return err
	}
	reportLoadErrors(s)

	shown := 0
	for _, ind := range indicators {
		if !s.Available(ind) {
			continue
		}
		if err := printIndicator(s, ind); err != nil {
			return err
		}
		shown++
	}

	if shown == 0 {
		fmt.Println("\n  No consumption data found.")
		fmt.Printf("  Looked in %q — run `facast setup` to point at your CSVs.\n", s.DataDir)
	}
	return nil
}

func printIndicator(s *pipeline.Session, ind model.Indicator) error {
	figures, err := s.Figures(ind)
	if err != nil {
		return err
	}

	color := cli.IndicatorColor(ind)

	fmt.Println()
	fmt.Println(cli.RenderTitle(ind.Title()))
	fmt.Println()

	switch ind {
	case model.Electricity:
		fmt.Println(cli.RenderSeriesChart(s.ElectricitySeries, color, 60))
	case model.Water:
		fmt.Println(cli.RenderSeriesChart(s.WaterSeries, color, 60))
	case model.Materials:
		fmt.Println(cli.RenderLedgerBars(s.Materials.Ledger, color, 30))
	case model.Services:
		fmt.Println(cli.RenderLedgerBars(s.Services.Ledger, color, 30))
	}

	fmt.Println(cli.RenderFigures("", figures))

	if skipped := s.Skipped[ind]; skipped > 0 {
		fmt.Printf("  (%d malformed rows skipped)\n", skipped)
	}

	if flagRecs {
		fmt.Println()
		fmt.Printf("  Recommendations for %s:\n", ind.Title())
		for _, rec := range pipeline.Recommendations(ind) {
			fmt.Printf("    - %s\n", rec)
		}
	}

	return nil
}
