package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/facastdev/facast/internal/config"
	"github.com/facastdev/facast/internal/remote"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the consumption CSVs from configured URLs",
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	fetcher := remote.NewFetcher(cfg.Remote)
	if len(fetcher.Configured()) == 0 {
		return fmt.Errorf("no remote URLs configured; add a [remote] section to %s", config.ConfigPath())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir := dataDir(cfg)
	failures := 0
	for _, res := range fetcher.FetchAll(ctx, dir) {
		if res.Err != nil {
			failures++
			fmt.Printf("  %-12s failed: %v\n", res.Indicator.Title(), res.Err)
			continue
		}
		fmt.Printf("  %-12s %s (%d bytes)\n", res.Indicator.Title(), res.Path, res.Bytes)
	}

	if failures > 0 {
		return fmt.Errorf("%d source(s) failed to download", failures)
	}
	return nil
}
