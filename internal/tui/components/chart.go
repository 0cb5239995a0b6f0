package components

import (
	"fmt"
	"strings"

	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

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

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(sparkBlocks[idx])
	}

	return style.Render(buf.String())
}

// SeriesChart renders a dated series as a sparkline with a date range
// caption, downsampled to fit width.
func SeriesChart(points []model.TimePoint, color lipgloss.Color, width int) string {
	if len(points) == 0 {
		return ""
	}
	if width < 10 {
		width = 10
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	if len(values) > width {
		values = resample(values, width)
	}

	t := theme.Active
	caption := fmt.Sprintf("%s .. %s",
		points[0].Date.Format("2006-01-02"),
		points[len(points)-1].Date.Format("2006-01-02"))

	return Sparkline(values, color) + "\n" +
		lipgloss.NewStyle().Foreground(t.TextDim).Render(caption)
}

// CategoryBars renders a ledger as horizontal labeled bars, longest total
// filling barWidth cells.
func CategoryBars(ledger *model.Ledger, color lipgloss.Color, barWidth int) string {
	if ledger == nil || ledger.Len() == 0 {
		return ""
	}
	if barWidth < 5 {
		barWidth = 5
	}

	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(color)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

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
	if labelW > 24 {
		labelW = 24
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, cat := range ledger.Order {
		v := ledger.Totals[cat]
		n := int(v / peak * float64(barWidth))
		if n < 1 && v > 0 {
			n = 1
		}

		label := cat
		if len(label) > labelW {
			label = label[:labelW-1] + "…"
		}

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s ", labelW, label)))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(strings.Repeat(" ", barWidth-n+1))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.2f", v)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// resample reduces values to width buckets by bucket means.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	for i := 0; i < width; i++ {
		lo := i * n / width
		hi := (i + 1) * n / width
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
