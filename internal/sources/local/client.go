// Package local implements a SourceClient over captured vendor payloads on
// disk. It exists for offline use and demos: point a source at a directory
// of raw-record JSON and the rest of the pipeline behaves exactly as it
// would against the live integration.
package local

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/avelinek/taskdeck/internal/domain"
)

// Client reads raw records for one source from a fixture directory:
// <dir>/<source>.json holds the record array, an optional
// <dir>/<source>.transitions.json maps source IDs to transition
// candidates.
type Client struct {
	source domain.Source
	dir    string
	logger *slog.Logger
}

// NewClient creates a fixture-backed client for the given source
func NewClient(source domain.Source, dir string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{source: source, dir: dir, logger: logger}
}

// Source identifies the origin system this client serves
func (c *Client) Source() domain.Source {
	return c.source
}

// FetchRawRecords reads the record file fresh on every call, so edited
// fixtures show up on the next sync
func (c *Client) FetchRawRecords(ctx context.Context) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := c.recordsPath()
	c.logger.Debug("reading raw records", "source", c.source, "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.SourceError{Source: c.source, Op: "fetch", Err: err}
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &domain.SourceError{Source: c.source, Op: "fetch", Message: "failed to parse JSON", Err: err}
	}

	c.logger.Debug("fetched raw records", "source", c.source, "count", len(records))
	return records, nil
}

// FetchTransitions looks the task up in the transitions fixture. Missing
// file or missing entry both mean "no transitions available", not an error.
func (c *Client) FetchTransitions(ctx context.Context, sourceID string) ([]domain.TransitionCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.transitionsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.SourceError{Source: c.source, Op: "transitions", TaskID: sourceID, Err: err}
	}

	var byID map[string][]domain.TransitionCandidate
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, &domain.SourceError{Source: c.source, Op: "transitions", Message: "failed to parse JSON", Err: err}
	}

	return byID[sourceID], nil
}

// ApplyTransition records the action in the log; fixtures have no live
// workflow to advance
func (c *Client) ApplyTransition(ctx context.Context, sourceID, transitionID string, fieldUpdates map[string]any, comment string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.logger.Info("transition applied against fixture source",
		"source", c.source,
		"id", sourceID,
		"transition", transitionID,
		"comment", comment,
	)
	return nil
}

// HealthCheck probes for the record file
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := os.Stat(c.recordsPath()); err != nil {
		return &domain.SourceError{Source: c.source, Op: "health", Err: err}
	}
	return nil
}

func (c *Client) recordsPath() string {
	return filepath.Join(c.dir, string(c.source)+".json")
}

func (c *Client) transitionsPath() string {
	return filepath.Join(c.dir, string(c.source)+".transitions.json")
}
