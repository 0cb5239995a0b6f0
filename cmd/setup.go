package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/facastdev/facast/internal/config"
	"github.com/facastdev/facast/internal/source"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	dir := dataDir(cfg)
	refMonth := cfg.Water.ReferenceMonth
	indicator := cfg.General.DefaultIndicator
	theme := cfg.Appearance.Theme
	seed := ""
	if cfg.Electricity.JitterSeed != nil {
		seed = strconv.FormatInt(*cfg.Electricity.JitterSeed, 10)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data directory").
				Description("Where the consumption CSVs live.").
				Value(&dir),

			huh.NewInput().
				Title("Water reference month (YYYY-MM)").
				Description("The recorded month that stands in for the rest of the year.").
				Value(&refMonth).
				Validate(func(s string) error {
					_, _, err := config.ParseReferenceMonth(strings.TrimSpace(s))
					return err
				}),

			huh.NewSelect[string]().
				Title("Default indicator").
				Options(
					huh.NewOption("Electricity", "electricity"),
					huh.NewOption("Water", "water"),
					huh.NewOption("Materials", "materials"),
					huh.NewOption("Services", "services"),
				).
				Value(&indicator),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Catppuccin Mocha", "catppuccin-mocha"),
					huh.NewOption("Tokyo Night", "tokyo-night"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&theme),

			huh.NewInput().
				Title("Jitter seed (optional)").
				Description("Fix the electricity adjustment jitter for reproducible runs. Leave empty for per-run randomness.").
				Value(&seed).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					_, err := strconv.ParseInt(s, 10, 64)
					return err
				}),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.DataDir = strings.TrimSpace(dir)
	cfg.General.DefaultIndicator = indicator
	cfg.Water.ReferenceMonth = strings.TrimSpace(refMonth)
	cfg.Appearance.Theme = theme
	if s := strings.TrimSpace(seed); s != "" {
		v, _ := strconv.ParseInt(s, 10, 64)
		cfg.Electricity.JitterSeed = &v
	} else {
		cfg.Electricity.JitterSeed = nil
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())

	files := source.Discover(cfg.General.DataDir)
	if len(files) > 0 {
		fmt.Printf("  Found %d source file(s) in %s:\n", len(files), cfg.General.DataDir)
		for _, f := range files {
			fmt.Printf("    %-12s %s\n", f.Indicator.Title(), f.Path)
		}
	} else {
		fmt.Printf("  No CSVs found in %s yet — drop them in or configure remote URLs.\n", cfg.General.DataDir)
	}
	fmt.Println("  Run `facast setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
