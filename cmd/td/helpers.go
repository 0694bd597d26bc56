package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/avelinek/taskdeck/internal/config"
	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/sources/local"
	"github.com/avelinek/taskdeck/internal/sync"
)

// parseCommaList splits a comma-separated string and trims whitespace
func parseCommaList(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// buildService loads the config and wires the sync service with one
// fixture client per source
func buildService() (*sync.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if fixtureDir != "" {
		cfg.Sources.FixtureDir = fixtureDir
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	sources := parseCommaList(sourceList)
	if len(sources) == 0 {
		sources = cfg.Sources.Enabled
	}
	if len(sources) == 0 {
		for _, s := range []domain.Source{
			domain.SourceJira,
			domain.SourcePlanner,
			domain.SourceTodo,
			domain.SourceMonday,
			domain.SourceEmail,
			domain.SourceCalendar,
			domain.SourceMilestone,
		} {
			if _, statErr := os.Stat(filepath.Join(cfg.Sources.FixtureDir, string(s)+".json")); statErr == nil {
				sources = append(sources, string(s))
			}
		}
	}

	var clients []sync.SourceClient
	for _, name := range sources {
		clients = append(clients, local.NewClient(domain.Source(name), cfg.Sources.FixtureDir, logger))
	}

	return sync.NewService(clients, cfg.Sync.PollsPerMinute, nil, logger), cfg, nil
}
