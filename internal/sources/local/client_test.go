package local

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestClient_FetchRawRecords(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "jira.json", `[
		{"key": "SUP-1", "fields": {"summary": "First"}},
		{"key": "SUP-2", "fields": {"summary": "Second"}}
	]`)

	client := NewClient(domain.SourceJira, dir, slog.Default())
	records, err := client.FetchRawRecords(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SUP-1", records[0]["key"])
}

func TestClient_FetchRawRecordsMissingFile(t *testing.T) {
	client := NewClient(domain.SourceJira, t.TempDir(), slog.Default())

	_, err := client.FetchRawRecords(context.Background())

	var srcErr *domain.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "fetch", srcErr.Op)
}

func TestClient_FetchRawRecordsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "jira.json", `not json`)

	client := NewClient(domain.SourceJira, dir, slog.Default())
	_, err := client.FetchRawRecords(context.Background())

	var srcErr *domain.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "failed to parse JSON", srcErr.Message)
}

func TestClient_FetchTransitions(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "jira.transitions.json", `{
		"SUP-1": [
			{"id": "21", "name": "Start work", "to_status_name": "In Progress"}
		]
	}`)

	client := NewClient(domain.SourceJira, dir, slog.Default())

	candidates, err := client.FetchTransitions(context.Background(), "SUP-1")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "In Progress", candidates[0].ToStatusName)

	// Unknown task and missing file both mean no transitions
	candidates, err = client.FetchTransitions(context.Background(), "SUP-404")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestClient_HealthCheck(t *testing.T) {
	dir := t.TempDir()
	client := NewClient(domain.SourcePlanner, dir, slog.Default())

	require.Error(t, client.HealthCheck(context.Background()))

	writeFixture(t, dir, "planner.json", `[]`)
	assert.NoError(t, client.HealthCheck(context.Background()))
}
