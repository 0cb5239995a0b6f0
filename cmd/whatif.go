package cmd

import (
	"fmt"
	"strconv"

	"github.com/facastdev/facast/internal/cli"
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/pipeline"

	"github.com/spf13/cobra"
)

var whatifCmd = &cobra.Command{
	Use:   "whatif <indicator> <annual-total>",
	Short: "Redistribute a hypothetical annual total",
	Long: "Take a hypothetical annual figure and spread it across the indicator's " +
		"projection model, plus the generic monthly/daily split.",
	Args: cobra.ExactArgs(2),
	RunE: runWhatif,
}

func init() {
	rootCmd.AddCommand(whatifCmd)
}

func runWhatif(_ *cobra.Command, args []string) error {
	ind, ok := model.ParseIndicator(args[0])
	if !ok {
		return fmt.Errorf("unknown indicator %q (electricity, water, materials, services)", args[0])
	}

	annual, err := strconv.ParseFloat(args[1], 64)
	if err != nil || annual < 0 {
		return fmt.Errorf("annual total must be a non-negative number, got %q", args[1])
	}

	s, err := loadData()
	if err != nil {
		return err
	}
	reportLoadErrors(s)

	figures, err := s.Redistribute(ind, annual)
	if err != nil {
		return err
	}

	monthly, daily := pipeline.MonthlySplit(annual)
	figures = append(figures,
		model.Figure{Label: "Monthly average", Value: monthly, Unit: ind.Unit()},
		model.Figure{Label: "Daily average", Value: daily, Unit: ind.Unit()},
	)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  What-if %s", ind.Title(), cli.FormatFigure(annual, ind.Unit()))))
	fmt.Println()
	fmt.Println(cli.RenderFigures("", figures))

	return nil
}
