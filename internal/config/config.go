// Package config loads and saves facast preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all facast configuration.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Water       WaterConfig       `toml:"water"`
	Electricity ElectricityConfig `toml:"electricity"`
	Remote      RemoteConfig      `toml:"remote"`
	Appearance  AppearanceConfig  `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir          string `toml:"data_dir,omitempty"`
	DefaultIndicator string `toml:"default_indicator"`
}

// WaterConfig holds the water projection settings.
type WaterConfig struct {
	// ReferenceMonth is the YYYY-MM month whose recordings stand in for the
	// rest of the year. The tool has always used February 2024.
	ReferenceMonth string `toml:"reference_month"`
}

// ElectricityConfig holds the electricity projection settings.
type ElectricityConfig struct {
	// JitterSeed, when set, seeds the adjustment jitter so repeated runs
	// produce identical adjusted totals. Unset keeps the original
	// per-invocation randomness.
	JitterSeed *int64 `toml:"jitter_seed,omitempty"`
}

// RemoteConfig holds optional per-indicator CSV download URLs.
type RemoteConfig struct {
	ElectricityURL string `toml:"electricity_url,omitempty"`
	WaterURL       string `toml:"water_url,omitempty"`
	MaterialsURL   string `toml:"materials_url,omitempty"`
	ServicesURL    string `toml:"services_url,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultIndicator: "electricity",
		},
		Water: WaterConfig{
			ReferenceMonth: "2024-02",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "facast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "facast")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ParseReferenceMonth parses a YYYY-MM month key.
func ParseReferenceMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("reference month %q: want YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}

// ReferenceMonth resolves the configured reference month, falling back to
// the default on a malformed value.
func (c Config) ReferenceMonth() (int, time.Month) {
	year, month, err := ParseReferenceMonth(c.Water.ReferenceMonth)
	if err != nil {
		return 2024, time.February
	}
	return year, month
}
