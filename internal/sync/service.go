// Package sync maintains the normalized task set for every configured
// source. A sync is a batch replace: the fetched records fully supersede
// the source's previous tasks, and a failed fetch leaves the prior set
// untouched.
package sync

import (
	"context"
	"log/slog"
	"sort"
	stdsync "sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/normalize"
)

// Service aggregates tasks across sources. Safe for concurrent use; reads
// return copies.
type Service struct {
	mu       stdsync.RWMutex
	tasks    map[domain.Source][]domain.Task
	clients  map[domain.Source]SourceClient
	limiters map[domain.Source]*rate.Limiter
	clock    func() time.Time
	logger   *slog.Logger
}

// NewService creates a sync service over the given source clients. Each
// source gets its own rate limiter so polling one upstream cannot starve
// or hammer another.
func NewService(clients []SourceClient, pollsPerMinute int, clock func() time.Time, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	if pollsPerMinute <= 0 {
		pollsPerMinute = 12
	}

	s := &Service{
		tasks:    make(map[domain.Source][]domain.Task),
		clients:  make(map[domain.Source]SourceClient),
		limiters: make(map[domain.Source]*rate.Limiter),
		clock:    clock,
		logger:   logger,
	}
	for _, client := range clients {
		src := client.Source()
		s.clients[src] = client
		s.limiters[src] = rate.NewLimiter(rate.Every(time.Minute/time.Duration(pollsPerMinute)), 1)
	}
	return s
}

// Sources lists the configured sources in stable order
func (s *Service) Sources() []domain.Source {
	sources := make([]domain.Source, 0, len(s.clients))
	for src := range s.clients {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

// Sync re-fetches one source and replaces its task set wholesale. Upstream
// edits can change any field, so tasks are recomputed from scratch rather
// than patched; only user-controlled state (pin, dismissal) carries over
// from the previous set. On error the previous set stays in place.
func (s *Service) Sync(ctx context.Context, source domain.Source) error {
	client, ok := s.clients[source]
	if !ok {
		return &domain.SourceError{Source: source, Op: "sync", Err: domain.ErrNotFound}
	}

	if limiter := s.limiters[source]; limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return &domain.SourceError{Source: source, Op: "sync", Err: err}
		}
	}

	s.logger.Debug("syncing source", "source", source)

	records, err := client.FetchRawRecords(ctx)
	if err != nil {
		s.logger.Error("fetch failed, keeping previous task set", "source", source, "error", err)
		return &domain.SourceError{Source: source, Op: "fetch", Err: err}
	}

	fresh := make([]domain.Task, 0, len(records))
	for _, record := range records {
		fresh = append(fresh, normalize.Normalize(source, record))
	}

	s.mu.Lock()
	s.carryUserState(source, fresh)
	s.tasks[source] = fresh
	s.mu.Unlock()

	s.logger.Info("source synced", "source", source, "count", len(fresh))
	return nil
}

// SyncAll syncs every configured source. One failing source never blocks
// the others; the first error is returned after all sources were tried.
func (s *Service) SyncAll(ctx context.Context) error {
	var firstErr error
	for _, source := range s.Sources() {
		if err := s.Sync(ctx, source); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// carryUserState copies pin and dismissal state from the stored tasks onto
// the freshly normalized ones. Dismissal is user-initiated and must
// survive re-sync. Caller holds the lock.
func (s *Service) carryUserState(source domain.Source, fresh []domain.Task) {
	previous := make(map[string]domain.Task, len(s.tasks[source]))
	for _, task := range s.tasks[source] {
		previous[task.ID] = task
	}
	for i, task := range fresh {
		prior, ok := previous[task.ID]
		if !ok {
			continue
		}
		fresh[i].IsPinned = prior.IsPinned
		if prior.Status == domain.StatusDismissed {
			fresh[i].Status = domain.StatusDismissed
		}
	}
}

// Tasks returns a snapshot of all synced tasks across sources
func (s *Service) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []domain.Task
	for _, source := range s.Sources() {
		all = append(all, s.tasks[source]...)
	}
	return all
}

// Task looks up a single task by canonical ID
func (s *Service) Task(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tasks := range s.tasks {
		for _, task := range tasks {
			if task.ID == id {
				return task, true
			}
		}
	}
	return domain.Task{}, false
}

// TogglePin flips the user pin on a task
func (s *Service) TogglePin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for source, tasks := range s.tasks {
		for i, task := range tasks {
			if task.ID == id {
				s.tasks[source][i].IsPinned = !task.IsPinned
				return true
			}
		}
	}
	return false
}

// Dismiss soft-deletes a task. Only explicit user action does this; the
// sync process never dismisses anything.
func (s *Service) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for source, tasks := range s.tasks {
		for i, task := range tasks {
			if task.ID == id {
				s.tasks[source][i].Status = domain.StatusDismissed
				return true
			}
		}
	}
	return false
}

// Transitions fetches the workflow actions currently available on a task
func (s *Service) Transitions(ctx context.Context, task domain.Task) ([]domain.TransitionCandidate, error) {
	client, ok := s.clients[task.Source]
	if !ok {
		return nil, &domain.SourceError{Source: task.Source, Op: "transitions", TaskID: task.ID, Err: domain.ErrNotFound}
	}

	candidates, err := client.FetchTransitions(ctx, task.SourceID)
	if err != nil {
		return nil, &domain.SourceError{Source: task.Source, Op: "transitions", TaskID: task.ID, Err: err}
	}
	return candidates, nil
}

// ApplyTransition invokes a workflow action on the task's upstream. No
// internal retry; retry policy belongs to the integration layer.
func (s *Service) ApplyTransition(ctx context.Context, task domain.Task, transitionID, comment string) error {
	client, ok := s.clients[task.Source]
	if !ok {
		return &domain.SourceError{Source: task.Source, Op: "apply", TaskID: task.ID, Err: domain.ErrNotFound}
	}

	if err := client.ApplyTransition(ctx, task.SourceID, transitionID, nil, comment); err != nil {
		return &domain.SourceError{Source: task.Source, Op: "apply", TaskID: task.ID, Err: err}
	}

	s.logger.Info("transition applied", "task", task.ID, "transition", transitionID)
	return nil
}

// Now reports the injected clock's current instant
func (s *Service) Now() time.Time {
	return s.clock()
}
