package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"trainingload/internal/analysis"
)

// Config represents the application configuration
type Config struct {
	Data    DataConfig    `json:"data"`
	Trend   TrendConfig   `json:"trend"`
	Pace    PaceConfig    `json:"pace"`
	Log     LogConfig     `json:"log"`
	Display DisplayConfig `json:"display"`
}

// DataConfig points at the activity files
type DataConfig struct {
	ActivitiesDir string `json:"activities_dir"`
}

// TrendConfig holds the fitness/fatigue time constants in days
type TrendConfig struct {
	CTLDays int `json:"ctl_days"`
	ATLDays int `json:"atl_days"`
	CacheMB int `json:"cache_mb"` // memo size for recomputed trends
}

// PaceConfig holds the pace scan settings
type PaceConfig struct {
	WindowDays    int     `json:"window_days"`
	MinDistanceM  float64 `json:"min_distance_m"`
	WindowHistory bool    `json:"window_history"`
}

// LogConfig holds logging preferences
type LogConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"`
	JSON  bool   `json:"json"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	PaceUnit string `json:"pace_unit"`
}

// Ranges offered by the dashboard sliders. The model itself accepts any
// value of at least one day.
const (
	MinCTLDays = 7
	MaxCTLDays = 100
	MinATLDays = 1
	MaxATLDays = 30
)

// Environment overrides
const (
	EnvActivitiesDir = "TRAININGLOAD_ACTIVITIES_DIR"
	EnvCTLDays       = "TRAININGLOAD_CTL_DAYS"
	EnvATLDays       = "TRAININGLOAD_ATL_DAYS"
	EnvLogLevel      = "TRAININGLOAD_LOG_LEVEL"
)

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			ActivitiesDir: filepath.Join("activities", "activities"),
		},
		Trend: TrendConfig{
			CTLDays: 42,
			ATLDays: 7,
			CacheMB: 32,
		},
		Pace: PaceConfig{
			WindowDays:   90,
			MinDistanceM: 5000,
		},
		Log: LogConfig{
			Level: "info",
		},
		Display: DisplayConfig{
			PaceUnit: "min/km",
		},
	}
}

// Load reads the configuration from ~/.trainingload/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path and applies environment
// overrides. The file is decoded over DefaultConfig, so only keys it
// omits take default values; an explicit zero is kept and left for
// Validate to reject.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnv()

	return &cfg, nil
}

// ApplyEnv overrides values from TRAININGLOAD_* environment variables.
// Unparseable numbers are ignored and leave the current value in place.
func (c *Config) ApplyEnv() {
	c.Data.ActivitiesDir = getEnv(EnvActivitiesDir, c.Data.ActivitiesDir)
	c.Trend.CTLDays = getIntEnv(EnvCTLDays, c.Trend.CTLDays)
	c.Trend.ATLDays = getIntEnv(EnvATLDays, c.Trend.ATLDays)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
}

// SaveFile writes the configuration to path
func SaveFile(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Log.Path = filepath.Join(filepath.Dir(path), "trainingload.log")

	return SaveFile(path, &example)
}

// Validate checks the config for values the model cannot use
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.ActivitiesDir) == "" {
		return errors.New("data.activities_dir is required")
	}

	if err := analysis.ValidateTimeConstants(c.Trend.CTLDays, c.Trend.ATLDays); err != nil {
		return fmt.Errorf("trend: %w", err)
	}

	if c.Trend.CacheMB < 1 {
		return fmt.Errorf("trend.cache_mb must be positive, got %d", c.Trend.CacheMB)
	}

	if c.Pace.WindowDays < 1 {
		return fmt.Errorf("pace.window_days must be positive, got %d", c.Pace.WindowDays)
	}
	if c.Pace.MinDistanceM < 0 {
		return fmt.Errorf("pace.min_distance_m must not be negative, got %v", c.Pace.MinDistanceM)
	}

	// Validate display units
	if c.Display.PaceUnit != "" && c.Display.PaceUnit != "min/km" && c.Display.PaceUnit != "min/mi" {
		return fmt.Errorf("display.pace_unit must be \"min/km\" or \"min/mi\", got %q", c.Display.PaceUnit)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trainingload"), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// PaceOptions converts the pace settings into scan options
func (p PaceConfig) PaceOptions() analysis.PaceOptions {
	return analysis.PaceOptions{
		WindowDays:    p.WindowDays,
		MinDistance:   p.MinDistanceM,
		WindowHistory: p.WindowHistory,
	}
}
