package cmd

import (
	"fmt"

	"github.com/facastdev/facast/internal/config"
	"github.com/facastdev/facast/internal/pipeline"
	"github.com/facastdev/facast/internal/tui"
	"github.com/facastdev/facast/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Launch the interactive dashboard",
	RunE:  runDash,
}

func init() {
	rootCmd.AddCommand(dashCmd)
}

func runDash(_ *cobra.Command, _ []string) error {
	// Load config for theme
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	refYear, refMonth := cfg.ReferenceMonth()
	app := tui.NewApp(pipeline.Options{
		DataDir:        dataDir(cfg),
		ReferenceYear:  refYear,
		ReferenceMonth: refMonth,
		Rng:            jitterRng(cfg),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	return nil
}
