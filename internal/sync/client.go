package sync

import (
	"context"

	"github.com/avelinek/taskdeck/internal/domain"
)

// SourceClient is the collaborator contract an upstream integration
// implements. The engine only ever sees raw records and transition
// candidates; credentials, wire formats and retry policy live behind this
// interface.
type SourceClient interface {
	// Source identifies the origin system this client serves
	Source() domain.Source

	// FetchRawRecords returns the current full set of raw records.
	// A failure must not disturb previously synced tasks.
	FetchRawRecords(ctx context.Context) ([]map[string]any, error)

	// FetchTransitions lists the workflow actions currently available on
	// a task. May be empty.
	FetchTransitions(ctx context.Context, sourceID string) ([]domain.TransitionCandidate, error)

	// ApplyTransition invokes a workflow action upstream, optionally with
	// field updates and a comment. The only mutating call the engine
	// issues outward.
	ApplyTransition(ctx context.Context, sourceID, transitionID string, fieldUpdates map[string]any, comment string) error

	// HealthCheck probes whether the upstream is reachable
	HealthCheck(ctx context.Context) error
}
