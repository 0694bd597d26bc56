// Package reconcile holds the optimistic column override shown after a
// user commits a workflow transition. Upstream search indexes lag writes,
// so the board keeps the task in its target column while a delayed refresh
// catches the source up, then drops the override shortly after.
package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avelinek/taskdeck/internal/domain"
)

// Default two-phase delays: ask the upstream to refresh after
// RefreshDelay, clear the override ClearDelay after the refresh lands.
const (
	RefreshDelay = 5 * time.Second
	ClearDelay   = 3 * time.Second
)

// State tracks where a task's override is in its lifecycle
type State int

const (
	StateSynced State = iota // no override held
	StatePendingRefresh
	StatePendingClear
)

// String returns the display string
func (s State) String() string {
	switch s {
	case StatePendingRefresh:
		return "pending-refresh"
	case StatePendingClear:
		return "pending-clear"
	default:
		return "synced"
	}
}

// Engine is the slice of the sync service the controller needs
type Engine interface {
	ApplyTransition(ctx context.Context, task domain.Task, transitionID, comment string) error
	Sync(ctx context.Context, source domain.Source) error
}

// Controller manages one timer-driven override per task
type Controller struct {
	engine       Engine
	mu           sync.Mutex
	overrides    map[string]*override
	wg           sync.WaitGroup
	refreshDelay time.Duration
	clearDelay   time.Duration
	logger       *slog.Logger
}

// override tracks the lifecycle state for a single task
type override struct {
	column domain.ColumnKey
	state  State
	cancel context.CancelFunc
}

// NewController creates a controller with the default delays
func NewController(engine Engine, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		engine:       engine,
		overrides:    make(map[string]*override),
		refreshDelay: RefreshDelay,
		clearDelay:   ClearDelay,
		logger:       logger,
	}
}

// SetDelays overrides the timer durations (shortened in tests)
func (c *Controller) SetDelays(refresh, clear time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshDelay = refresh
	c.clearDelay = clear
}

// CommitTransition applies the transition upstream and starts the timed
// override lifecycle. The override is visible immediately; an apply
// failure reverts it before returning.
func (c *Controller) CommitTransition(ctx context.Context, task domain.Task, target domain.ColumnKey, transitionID, comment string) error {
	c.mu.Lock()
	// Replace any in-flight lifecycle for this task
	if existing, ok := c.overrides[task.ID]; ok {
		existing.cancel()
	}

	lifecycleCtx, cancel := context.WithCancel(ctx)
	ov := &override{column: target, state: StatePendingRefresh, cancel: cancel}
	c.overrides[task.ID] = ov
	// Snapshot the delays under the lock; the lifecycle goroutine must not
	// read them concurrently with SetDelays.
	refreshDelay, clearDelay := c.refreshDelay, c.clearDelay
	c.mu.Unlock()

	c.logger.Debug("optimistic override set", "task", task.ID, "column", target)

	if err := c.engine.ApplyTransition(ctx, task, transitionID, comment); err != nil {
		cancel()
		c.drop(task.ID, ov)
		c.logger.Error("transition apply failed, override reverted", "task", task.ID, "error", err)
		return err
	}

	c.wg.Add(1)
	go c.lifecycle(lifecycleCtx, task, ov, refreshDelay, clearDelay)
	return nil
}

// Override reports the optimistic column currently held for a task
func (c *Controller) Override(taskID string) (domain.ColumnKey, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ov, ok := c.overrides[taskID]; ok {
		return ov.column, true
	}
	return "", false
}

// State reports the override lifecycle state for a task
func (c *Controller) State(taskID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ov, ok := c.overrides[taskID]; ok {
		return ov.state
	}
	return StateSynced
}

// Cancel stops the lifecycle for one task, keeping the board usable after
// the task disappears. The override is dropped with it.
func (c *Controller) Cancel(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ov, ok := c.overrides[taskID]; ok {
		ov.cancel()
		delete(c.overrides, taskID)
	}
}

// StopAll cancels every pending timer and waits for the lifecycle
// goroutines to finish. Called on teardown so no timer writes into
// removed state.
func (c *Controller) StopAll() {
	c.mu.Lock()
	for id, ov := range c.overrides {
		ov.cancel()
		delete(c.overrides, id)
	}
	c.mu.Unlock()

	c.wg.Wait()
}

// lifecycle runs the two-phase delay for a single committed transition.
// Delays are captured at commit time so a later SetDelays cannot race the
// running timers.
func (c *Controller) lifecycle(ctx context.Context, task domain.Task, ov *override, refreshDelay, clearDelay time.Duration) {
	defer c.wg.Done()

	refresh := time.NewTimer(refreshDelay)
	defer refresh.Stop()

	select {
	case <-ctx.Done():
		return
	case <-refresh.C:
	}

	// Poll the upstream once. No retry: a failed refresh leaves the
	// override in place until the next manual refresh.
	if err := c.engine.Sync(ctx, task.Source); err != nil {
		c.logger.Error("post-transition refresh failed, override kept", "task", task.ID, "error", err)
		return
	}

	c.mu.Lock()
	if c.overrides[task.ID] == ov {
		ov.state = StatePendingClear
	}
	c.mu.Unlock()

	clearTimer := time.NewTimer(clearDelay)
	defer clearTimer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-clearTimer.C:
	}

	c.drop(task.ID, ov)
	c.logger.Debug("optimistic override cleared", "task", task.ID)
}

// drop removes the override only if it still belongs to this lifecycle
func (c *Controller) drop(taskID string, ov *override) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.overrides[taskID] == ov {
		delete(c.overrides, taskID)
	}
}
