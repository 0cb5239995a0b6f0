package cmd

import (
	"fmt"

	"github.com/facastdev/facast/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory:    %s\n", dataDir(cfg))
	fmt.Printf("    Default indicator: %s\n", cfg.General.DefaultIndicator)
	fmt.Println()

	fmt.Println("  [Water]")
	fmt.Printf("    Reference month: %s\n", cfg.Water.ReferenceMonth)
	fmt.Println()

	fmt.Println("  [Electricity]")
	if cfg.Electricity.JitterSeed != nil {
		fmt.Printf("    Jitter seed: %d\n", *cfg.Electricity.JitterSeed)
	} else {
		fmt.Println("    Jitter seed: not set (per-run randomness)")
	}
	fmt.Println()

	fmt.Println("  [Remote]")
	urls := []struct{ label, url string }{
		{"Electricity", cfg.Remote.ElectricityURL},
		{"Water", cfg.Remote.WaterURL},
		{"Materials", cfg.Remote.MaterialsURL},
		{"Services", cfg.Remote.ServicesURL},
	}
	configured := 0
	for _, u := range urls {
		if u.url != "" {
			fmt.Printf("    %-12s %s\n", u.label, u.url)
			configured++
		}
	}
	if configured == 0 {
		fmt.Println("    No download URLs configured")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `facast setup` to reconfigure.")
	return nil
}
