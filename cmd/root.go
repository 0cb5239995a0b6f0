package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/facastdev/facast/internal/config"
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/pipeline"
	"github.com/facastdev/facast/internal/store"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagNoCache bool
	flagQuiet   bool
	flagSeed    int64

	flagElectricityCSV string
	flagWaterCSV       string
	flagMaterialsCSV   string
	flagServicesCSV    string
)

var rootCmd = &cobra.Command{
	Use:   "facast",
	Short: "Facility Consumption Analytics CLI",
	Long:  "Analyze facility consumption: electricity, water, materials, and services.",
	RunE:  runReport,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the consumption CSVs")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed for the electricity adjustment jitter (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagElectricityCSV, "electricity-csv", "", "Explicit electricity CSV path")
	rootCmd.PersistentFlags().StringVar(&flagWaterCSV, "water-csv", "", "Explicit water CSV path")
	rootCmd.PersistentFlags().StringVar(&flagMaterialsCSV, "materials-csv", "", "Explicit materials CSV path")
	rootCmd.PersistentFlags().StringVar(&flagServicesCSV, "services-csv", "", "Explicit services CSV path")
}

// sourceOverrides collects the explicit per-file flags.
func sourceOverrides() map[model.Indicator]string {
	overrides := make(map[model.Indicator]string)
	for ind, path := range map[model.Indicator]string{
		model.Electricity: flagElectricityCSV,
		model.Water:       flagWaterCSV,
		model.Materials:   flagMaterialsCSV,
		model.Services:    flagServicesCSV,
	} {
		if path != "" {
			overrides[ind] = path
		}
	}
	return overrides
}

// dataDir resolves the source directory: flag wins, then config, then ./data.
func dataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return "data"
}

// jitterRng builds the rand source for electricity adjustments. A nil return
// means time-seeded randomness, matching how the tool has always behaved.
func jitterRng(cfg config.Config) *rand.Rand {
	if flagSeed != 0 {
		return rand.New(rand.NewSource(flagSeed))
	}
	if cfg.Electricity.JitterSeed != nil {
		return rand.New(rand.NewSource(*cfg.Electricity.JitterSeed))
	}
	return nil
}

// loadData is the shared load path used by all commands. Uses the SQLite
// row cache when available for fast subsequent runs.
func loadData() (*pipeline.Session, error) {
	cfg, _ := config.Load()
	refYear, refMonth := cfg.ReferenceMonth()

	var bar *progressbar.ProgressBar
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("  Loading sources"),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(current)
	}

	opts := pipeline.Options{
		DataDir:        dataDir(cfg),
		ReferenceYear:  refYear,
		ReferenceMonth: refMonth,
		Rng:            jitterRng(cfg),
		Progress:       progressFn,
		Overrides:      sourceOverrides(),
	}

	// Try cached load unless --no-cache
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			// Cache open failed — fall back to uncached
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer func() { _ = cache.Close() }()

			s, stats := pipeline.LoadWithCache(opts, cache)
			if !flagQuiet && stats.CacheHits+stats.Reparsed > 0 {
				fmt.Fprintf(os.Stderr, "\r  %d cached + %d reparsed sources    \n",
					stats.CacheHits, stats.Reparsed)
			}
			return s, nil
		}
	}

	s := pipeline.Load(opts)
	return s, nil
}

// reportLoadErrors prints per-indicator load failures to stderr.
func reportLoadErrors(s *pipeline.Session) {
	if flagQuiet {
		return
	}
	for _, ind := range model.AllIndicators {
		if err, ok := s.Errors[ind]; ok {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", ind.Title(), err)
		}
	}
}
