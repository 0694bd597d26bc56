package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the full Taskdeck configuration
type Config struct {
	Sources SourcesConfig `json:"sources"`
	Sync    SyncConfig    `json:"sync"`
	Board   BoardConfig   `json:"board"`
	Report  ReportConfig  `json:"report"`
}

// SourcesConfig contains the task source settings
type SourcesConfig struct {
	// FixtureDir holds local record fixtures, one <source>.json per source
	FixtureDir string `json:"fixtureDir"`
	// Enabled lists the sources to poll; empty means all fixture files found
	Enabled []string `json:"enabled"`
}

// SyncConfig contains sync scheduling settings
type SyncConfig struct {
	PollsPerMinute  int `json:"pollsPerMinute"`
	IntervalSeconds int `json:"intervalSeconds"`
}

// BoardConfig contains board display settings
type BoardConfig struct {
	RefreshSeconds  int    `json:"refreshSeconds"`
	DefaultSort     string `json:"defaultSort"`
	ShowDismissed   bool   `json:"showDismissed"`
	CompactCards    bool   `json:"compactCards"`
	UrgencyBadgeMin int    `json:"urgencyBadgeMin"`
}

// ReportConfig contains export settings
type ReportConfig struct {
	OutputDir string   `json:"outputDir"`
	Formats   []string `json:"formats"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Sources: SourcesConfig{
			FixtureDir: filepath.Join(homeDir, ".taskdeck", "fixtures"),
			Enabled:    []string{},
		},
		Sync: SyncConfig{
			PollsPerMinute:  12,
			IntervalSeconds: 300, // 5 minutes
		},
		Board: BoardConfig{
			RefreshSeconds:  30,
			DefaultSort:     "urgency",
			ShowDismissed:   false,
			CompactCards:    false,
			UrgencyBadgeMin: 40,
		},
		Report: ReportConfig{
			OutputDir: filepath.Join(homeDir, ".taskdeck", "reports"),
			Formats:   []string{"csv", "xlsx"},
		},
	}
}

// LoadConfig loads configuration from the project path with priority:
// 1. .taskdeck.json in project root
// 2. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	taskdeckPath := filepath.Join(projectPath, ".taskdeck.json")
	if data, err := os.ReadFile(taskdeckPath); err == nil {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse .taskdeck.json: %w", err)
		}
		return MergeWithDefaults(&cfg), nil
	}

	return DefaultConfig(), nil
}

// SaveConfig saves configuration to the specified path
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Sources.FixtureDir == "" {
		cfg.Sources.FixtureDir = defaults.Sources.FixtureDir
	}
	if cfg.Sources.Enabled == nil {
		cfg.Sources.Enabled = defaults.Sources.Enabled
	}

	if cfg.Sync.PollsPerMinute == 0 {
		cfg.Sync.PollsPerMinute = defaults.Sync.PollsPerMinute
	}
	if cfg.Sync.IntervalSeconds == 0 {
		cfg.Sync.IntervalSeconds = defaults.Sync.IntervalSeconds
	}

	if cfg.Board.RefreshSeconds == 0 {
		cfg.Board.RefreshSeconds = defaults.Board.RefreshSeconds
	}
	if cfg.Board.DefaultSort == "" {
		cfg.Board.DefaultSort = defaults.Board.DefaultSort
	}
	if cfg.Board.UrgencyBadgeMin == 0 {
		cfg.Board.UrgencyBadgeMin = defaults.Board.UrgencyBadgeMin
	}

	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = defaults.Report.OutputDir
	}
	if cfg.Report.Formats == nil {
		cfg.Report.Formats = defaults.Report.Formats
	}

	return cfg
}

// Load is a convenience function that loads config from the current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
