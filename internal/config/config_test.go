package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test source defaults
	assert.NotEmpty(t, cfg.Sources.FixtureDir)
	assert.NotNil(t, cfg.Sources.Enabled)

	// Test sync defaults
	assert.Equal(t, 12, cfg.Sync.PollsPerMinute)
	assert.Equal(t, 300, cfg.Sync.IntervalSeconds)

	// Test board defaults
	assert.Equal(t, 30, cfg.Board.RefreshSeconds)
	assert.Equal(t, "urgency", cfg.Board.DefaultSort)
	assert.False(t, cfg.Board.ShowDismissed)
	assert.Equal(t, 40, cfg.Board.UrgencyBadgeMin)

	// Test report defaults
	assert.NotEmpty(t, cfg.Report.OutputDir)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.Report.Formats)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Sync.PollsPerMinute, cfg.Sync.PollsPerMinute)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	dir := t.TempDir()
	data := `{"board": {"refreshSeconds": 10}, "report": {"formats": ["csv"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".taskdeck.json"), []byte(data), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	// Explicit values win
	assert.Equal(t, 10, cfg.Board.RefreshSeconds)
	assert.Equal(t, []string{"csv"}, cfg.Report.Formats)

	// Missing values fall back to defaults
	assert.Equal(t, 12, cfg.Sync.PollsPerMinute)
	assert.Equal(t, "urgency", cfg.Board.DefaultSort)
	assert.NotEmpty(t, cfg.Sources.FixtureDir)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".taskdeck.json"), []byte("{not json"), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".taskdeck.json")

	cfg := DefaultConfig()
	cfg.Board.RefreshSeconds = 5
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Board.RefreshSeconds)
	assert.Equal(t, cfg.Report.Formats, loaded.Report.Formats)
}
