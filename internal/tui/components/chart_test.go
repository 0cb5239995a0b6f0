package components

import (
	"strings"
	"testing"
	"time"

	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/tui/theme"
)

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 4, 8}, theme.Active.Blue)
	if !strings.Contains(got, "▁") || !strings.Contains(got, "█") {
		t.Errorf("Sparkline = %q, want lowest and highest blocks", got)
	}
	if Sparkline(nil, theme.Active.Blue) != "" {
		t.Error("empty input should render nothing")
	}
	if got := Sparkline([]float64{0, 0}, theme.Active.Blue); !strings.Contains(got, "▁") {
		t.Errorf("all-zero input = %q, want floor blocks", got)
	}
}

func TestSeriesChart_Caption(t *testing.T) {
	points := []model.TimePoint{
		{Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Value: 10},
		{Date: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), Value: 20},
	}
	got := SeriesChart(points, theme.Active.Blue, 40)
	if !strings.Contains(got, "2024-01-01 .. 2024-03-15") {
		t.Errorf("missing date range caption: %q", got)
	}
	if SeriesChart(nil, theme.Active.Blue, 40) != "" {
		t.Error("empty series should render nothing")
	}
}

func TestCategoryBars(t *testing.T) {
	l := model.NewLedger()
	l.Add("Paper", 10)
	l.Add("A very long material category name", 5)

	got := CategoryBars(l, theme.Active.Orange, 10)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Paper") || !strings.Contains(lines[0], "10.00") {
		t.Errorf("first bar = %q", lines[0])
	}
	if !strings.Contains(lines[1], "…") {
		t.Errorf("long label not truncated: %q", lines[1])
	}
	if CategoryBars(nil, theme.Active.Orange, 10) != "" {
		t.Error("nil ledger should render nothing")
	}
}

func TestResample(t *testing.T) {
	got := resample([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Errorf("resample = %v, want [2 6]", got)
	}
}
