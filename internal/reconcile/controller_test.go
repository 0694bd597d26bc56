package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine implements Engine for testing
type fakeEngine struct {
	mu       sync.Mutex
	applyErr error
	syncErr  error
	applied  int
	synced   int
}

func (f *fakeEngine) ApplyTransition(ctx context.Context, task domain.Task, transitionID, comment string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied++
	return nil
}

func (f *fakeEngine) Sync(ctx context.Context, source domain.Source) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.syncErr != nil {
		return f.syncErr
	}
	f.synced++
	return nil
}

func (f *fakeEngine) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied, f.synced
}

var testTask = domain.Task{ID: "jira:SUP-1", Source: domain.SourceJira, SourceID: "SUP-1"}

func newTestController(engine *fakeEngine) *Controller {
	c := NewController(engine, slog.Default())
	c.SetDelays(20*time.Millisecond, 20*time.Millisecond)
	return c
}

func TestController_FullLifecycle(t *testing.T) {
	engine := &fakeEngine{}
	c := newTestController(engine)
	defer c.StopAll()

	err := c.CommitTransition(context.Background(), testTask, domain.ColumnWIP, "21", "")
	require.NoError(t, err)

	// Override visible immediately
	col, ok := c.Override(testTask.ID)
	require.True(t, ok)
	assert.Equal(t, domain.ColumnWIP, col)
	assert.Equal(t, StatePendingRefresh, c.State(testTask.ID))

	// After the refresh delay the upstream gets polled once
	require.Eventually(t, func() bool {
		_, synced := engine.counts()
		return synced == 1
	}, time.Second, 5*time.Millisecond)

	// After the clear delay the override is gone; the board falls back to
	// freshly-synced data whatever it says
	require.Eventually(t, func() bool {
		_, ok := c.Override(testTask.ID)
		return !ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateSynced, c.State(testTask.ID))
}

func TestController_ApplyFailureRevertsOverride(t *testing.T) {
	engine := &fakeEngine{applyErr: errors.New("409 conflict")}
	c := newTestController(engine)
	defer c.StopAll()

	err := c.CommitTransition(context.Background(), testTask, domain.ColumnWIP, "21", "")

	require.Error(t, err)
	_, ok := c.Override(testTask.ID)
	assert.False(t, ok)
	assert.Equal(t, StateSynced, c.State(testTask.ID))
}

func TestController_RefreshFailureKeepsOverride(t *testing.T) {
	engine := &fakeEngine{syncErr: errors.New("upstream 503")}
	c := newTestController(engine)
	defer c.StopAll()

	require.NoError(t, c.CommitTransition(context.Background(), testTask, domain.ColumnWIP, "21", ""))

	// Give the refresh timer time to fire and fail
	time.Sleep(100 * time.Millisecond)

	col, ok := c.Override(testTask.ID)
	require.True(t, ok)
	assert.Equal(t, domain.ColumnWIP, col)
	assert.Equal(t, StatePendingRefresh, c.State(testTask.ID))
}

func TestController_StopAllCancelsPendingTimers(t *testing.T) {
	engine := &fakeEngine{}
	c := NewController(engine, slog.Default())
	c.SetDelays(time.Hour, time.Hour)

	require.NoError(t, c.CommitTransition(context.Background(), testTask, domain.ColumnWIP, "21", ""))

	done := make(chan struct{})
	go func() {
		c.StopAll()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("StopAll did not cancel pending timers")
	}

	_, ok := c.Override(testTask.ID)
	assert.False(t, ok)
	_, synced := engine.counts()
	assert.Zero(t, synced)
}

func TestController_RecommitReplacesOverride(t *testing.T) {
	engine := &fakeEngine{}
	c := NewController(engine, slog.Default())
	c.SetDelays(time.Hour, time.Hour)
	defer c.StopAll()

	ctx := context.Background()
	require.NoError(t, c.CommitTransition(ctx, testTask, domain.ColumnWIP, "21", ""))
	require.NoError(t, c.CommitTransition(ctx, testTask, domain.ColumnWaitingAgent, "31", ""))

	col, ok := c.Override(testTask.ID)
	require.True(t, ok)
	assert.Equal(t, domain.ColumnWaitingAgent, col)
}

func TestController_SetDelaysAfterCommitDoesNotAffectInFlight(t *testing.T) {
	engine := &fakeEngine{}
	c := newTestController(engine)
	defer c.StopAll()

	require.NoError(t, c.CommitTransition(context.Background(), testTask, domain.ColumnWIP, "21", ""))

	// Changing the delays mid-flight must not reach into the running
	// lifecycle; the committed override still clears on the short schedule.
	c.SetDelays(time.Hour, time.Hour)

	require.Eventually(t, func() bool {
		_, ok := c.Override(testTask.ID)
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, synced := engine.counts()
	assert.Equal(t, 1, synced)
}

func TestController_Cancel(t *testing.T) {
	engine := &fakeEngine{}
	c := NewController(engine, slog.Default())
	c.SetDelays(time.Hour, time.Hour)
	defer c.StopAll()

	require.NoError(t, c.CommitTransition(context.Background(), testTask, domain.ColumnWIP, "21", ""))
	c.Cancel(testTask.ID)

	_, ok := c.Override(testTask.ID)
	assert.False(t, ok)
}
