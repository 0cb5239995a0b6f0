package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/facastdev/facast/internal/cli"
	"github.com/facastdev/facast/internal/config"
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/watch"

	"github.com/spf13/cobra"
)

var flagWatchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the CSVs and reprint projections on change",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 5*time.Second, "Polling interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	refYear, refMonth := cfg.ReferenceMonth()

	w := watch.New(watch.Config{
		DataDir:        dataDir(cfg),
		ReferenceYear:  refYear,
		ReferenceMonth: refMonth,
		Interval:       flagWatchInterval,
		Rng:            jitterRng(cfg),
	}, printWatchEvent)

	fmt.Printf("  Watching %s every %s (ctrl-c to stop)\n", dataDir(cfg), flagWatchInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("\n  Stopped.")
	return nil
}

func printWatchEvent(ev watch.Event) {
	fmt.Printf("\n  [%s]\n", ev.Snapshot.At.Format("15:04:05"))

	rows := make([][]string, 0, len(model.AllIndicators))
	for _, ind := range model.AllIndicators {
		if !ev.Snapshot.Available[ind] {
			rows = append(rows, []string{ind.Title(), "no data", ""})
			continue
		}
		change := ""
		if d, ok := ev.Delta.Changed[ind]; ok && ev.Type == "update" {
			change = fmt.Sprintf("%+0.2f", d)
		}
		rows = append(rows, []string{
			ind.Title(),
			cli.FormatFigure(ev.Snapshot.AnnualProjection[ind], ind.Unit()),
			change,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Indicator", "Next year", "Change"},
		Rows:    rows,
	}))
}
