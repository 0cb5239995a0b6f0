package config

import (
	"testing"
	"time"
)

func TestParseReferenceMonth(t *testing.T) {
	tests := []struct {
		in    string
		year  int
		month time.Month
	}{
		{"2024-02", 2024, time.February},
		{"2023-12", 2023, time.December},
		{"2025-01", 2025, time.January},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			year, month, err := ParseReferenceMonth(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if year != tt.year || month != tt.month {
				t.Errorf("got %d %v, want %d %v", year, month, tt.year, tt.month)
			}
		})
	}
}

func TestParseReferenceMonth_Invalid(t *testing.T) {
	for _, in := range []string{"", "2024", "02-2024", "2024-13", "february"} {
		t.Run(in, func(t *testing.T) {
			if _, _, err := ParseReferenceMonth(in); err == nil {
				t.Errorf("ParseReferenceMonth(%q) = nil error", in)
			}
		})
	}
}

func TestReferenceMonth_Fallback(t *testing.T) {
	cfg := Config{Water: WaterConfig{ReferenceMonth: "not-a-month"}}
	year, month := cfg.ReferenceMonth()
	if year != 2024 || month != time.February {
		t.Errorf("fallback = %d %v, want 2024 February", year, month)
	}
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists() = true before any save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	seed := int64(42)
	cfg := DefaultConfig()
	cfg.General.DataDir = "/srv/consumption"
	cfg.General.DefaultIndicator = "water"
	cfg.Water.ReferenceMonth = "2025-03"
	cfg.Electricity.JitterSeed = &seed
	cfg.Remote.ElectricityURL = "https://example.test/electricity.csv"
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after save")
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.General != cfg.General || got.Water != cfg.Water ||
		got.Remote != cfg.Remote || got.Appearance != cfg.Appearance {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", got, cfg)
	}
	if got.Electricity.JitterSeed == nil || *got.Electricity.JitterSeed != seed {
		t.Errorf("JitterSeed = %v, want %d", got.Electricity.JitterSeed, seed)
	}
}
