// Package main provides the entry point for the Taskdeck TUI.
//
// Taskdeck is a TUI triage board that aggregates tasks from heterogeneous
// sources onto a five-column kanban view with SLA-driven attention
// scoring. This implementation uses The Elm Architecture (TEA) for state
// management.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelinek/taskdeck/internal/app"
	"github.com/avelinek/taskdeck/internal/config"
	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/sources/local"
	"github.com/avelinek/taskdeck/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	svc := sync.NewService(buildClients(cfg, logger), cfg.Sync.PollsPerMinute, nil, logger)

	model := app.New(cfg, svc, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildClients wires one fixture client per enabled source. With no
// explicit list, every source that has a fixture file is enabled.
func buildClients(cfg *config.Config, logger *slog.Logger) []sync.SourceClient {
	sources := cfg.Sources.Enabled
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
			if _, err := os.Stat(filepath.Join(cfg.Sources.FixtureDir, string(s)+".json")); err == nil {
				sources = append(sources, string(s))
			}
		}
	}

	var clients []sync.SourceClient
	for _, name := range sources {
		client := local.NewClient(domain.Source(name), cfg.Sources.FixtureDir, logger)
		clients = append(clients, client)
	}
	return clients
}
