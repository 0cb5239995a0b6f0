package cmd

import (
	"errors"
	"fmt"

	"github.com/facastdev/facast/internal/cli"
	"github.com/facastdev/facast/internal/forecast"
	"github.com/facastdev/facast/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagSeason  int
	flagHorizon int
	flagAlpha   float64
	flagBeta    float64
	flagGamma   float64
)

var forecastCmd = &cobra.Command{
	Use:   "forecast [indicator]",
	Short: "Holt-Winters monthly forecast",
	Long:  "Fit a seasonal exponential smoothing model on monthly totals and project future months.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().IntVar(&flagSeason, "season", 12, "Season length in months")
	forecastCmd.Flags().IntVar(&flagHorizon, "horizon", 12, "Months to forecast")
	forecastCmd.Flags().Float64Var(&flagAlpha, "alpha", forecast.DefaultParams.Alpha, "Level smoothing factor")
	forecastCmd.Flags().Float64Var(&flagBeta, "beta", forecast.DefaultParams.Beta, "Trend smoothing factor")
	forecastCmd.Flags().Float64Var(&flagGamma, "gamma", forecast.DefaultParams.Gamma, "Seasonal smoothing factor")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, args []string) error {
	ind := model.Electricity
	if len(args) == 1 {
		parsed, ok := model.ParseIndicator(args[0])
		if !ok {
			return fmt.Errorf("unknown indicator %q (electricity, water, materials, services)", args[0])
		}
		ind = parsed
	}

	s, err := loadData()
	if err != nil {
		return err
	}
	reportLoadErrors(s)

	var points []model.TimePoint
	switch ind {
	case model.Electricity:
		points = s.ElectricitySeries
	case model.Water:
		points = s.WaterSeries
	default:
		return fmt.Errorf("%w: forecasting needs a dated series (electricity or water)", model.ErrUnsupportedIndicator)
	}

	if !s.Available(ind) {
		return fmt.Errorf("%s: %w", ind.Title(), model.ErrDataUnavailable)
	}

	monthly := forecast.MonthlyTotals(points)
	params := forecast.Params{Alpha: flagAlpha, Beta: flagBeta, Gamma: flagGamma}

	forecasts, err := forecast.FitForecast(monthly, flagSeason, flagHorizon, params)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientData) {
			return fmt.Errorf("%s: need at least %d months of data, have %d: %w",
				ind.Title(), 2*flagSeason, len(monthly), err)
		}
		return err
	}

	color := cli.IndicatorColor(ind)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s FORECAST  Next %d months", ind.Title(), flagHorizon)))
	fmt.Println()
	fmt.Println("  Observed monthly totals:")
	fmt.Println("  " + cli.RenderSparkline(monthly, color))
	fmt.Println()
	fmt.Println("  Forecast:")
	fmt.Println("  " + cli.RenderSparkline(forecasts, color))
	fmt.Println()

	rows := make([][]string, 0, len(forecasts))
	for i, v := range forecasts {
		rows = append(rows, []string{
			fmt.Sprintf("+%d", i+1),
			cli.FormatFigure(v, ind.Unit()),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Forecast"},
		Rows:    rows,
	}))

	return nil
}
