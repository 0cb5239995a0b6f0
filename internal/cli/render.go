package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/facastdev/facast/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// IndicatorColor maps an indicator to its chart color, mirroring the
// original tool's palette (blue line, green line, orange bars, purple bars).
func IndicatorColor(ind model.Indicator) lipgloss.Color {
	switch ind {
	case model.Electricity:
		return ColorBlue
	case model.Water:
		return ColorGreen
	case model.Materials:
		return ColorOrange
	case model.Services:
		return ColorPurple
	}
	return ColorAccent
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderFigures renders a labeled figure set as a two-column table.
func RenderFigures(title string, figures []model.Figure) string {
	rows := make([][]string, 0, len(figures))
	for _, f := range figures {
		rows = append(rows, []string{f.Label, FormatFigure(f.Value, f.Unit)})
	}
	return RenderTable(Table{
		Title:   title,
		Headers: []string{"Figure", "Value"},
		Rows:    rows,
	})
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			if len(h) > widths[i] {
				widths[i] = len(h)
			}
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols && len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	writeRule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	writeRule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			padded := fmt.Sprintf(" %-*s ", widths[i], h)
			b.WriteString(headerStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		writeRule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			writeRule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	writeRule("╰", "┴", "╯")

	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series.
func RenderSparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	b.Grow(len(values) * 4)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return style.Render(b.String())
}

// RenderSeriesChart renders a date-ordered series as a sparkline with a
// first/last date caption underneath.
func RenderSeriesChart(points []model.TimePoint, color lipgloss.Color, width int) string {
	if len(points) == 0 {
		return mutedStyle.Render("  (no data)")
	}

	values := make([]float64, len(points))
	for i, pt := range points {
		values[i] = pt.Value
	}
	if width > 0 && len(values) > width {
		values = downsample(values, width)
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(RenderSparkline(values, color))
	b.WriteString("\n  ")
	caption := fmt.Sprintf("%s .. %s (%d days)",
		points[0].Date.Format("2006-01-02"),
		points[len(points)-1].Date.Format("2006-01-02"),
		len(points))
	b.WriteString(mutedStyle.Render(caption))
	return b.String()
}

// RenderLedgerBars renders a category ledger as horizontal bars, widest
// category filling barWidth cells.
func RenderLedgerBars(ledger *model.Ledger, color lipgloss.Color, barWidth int) string {
	if ledger == nil || ledger.Len() == 0 {
		return mutedStyle.Render("  (no data)")
	}

	labelW := 0
	peak := 0.0
	for _, cat := range ledger.Order {
		if len(cat) > labelW {
			labelW = len(cat)
		}
		if v := ledger.Totals[cat]; v > peak {
			peak = v
		}
	}
	if labelW > 32 {
		labelW = 32
	}
	if peak <= 0 {
		peak = 1
	}

	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for _, cat := range ledger.Order {
		v := ledger.Totals[cat]
		label := cat
		if len(label) > labelW {
			label = label[:labelW-1] + "…"
		}
		barLen := int(v / peak * float64(barWidth))
		if barLen < 0 {
			barLen = 0
		}
		b.WriteString(fmt.Sprintf("  %-*s ", labelW, label))
		b.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
		b.WriteString(mutedStyle.Render(" " + FormatFixed(v)))
		b.WriteString("\n")
	}
	return b.String()
}

// downsample picks evenly spaced samples so a long series fits the width.
func downsample(values []float64, width int) []float64 {
	if width < 2 {
		width = 2
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(width-1)]
	}
	return out
}
