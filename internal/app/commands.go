package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelinek/taskdeck/internal/domain"
)

type syncDoneMsg struct {
	err error
}

type tickMsg time.Time

type transitionsMsg struct {
	task       domain.Task
	target     domain.ColumnKey
	candidates []domain.TransitionCandidate
	err        error
}

type commitDoneMsg struct {
	taskID string
	err    error
}

// syncCmd refreshes every source; individual failures surface as one toast
func (m Model) syncCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return syncDoneMsg{err: m.svc.SyncAll(ctx)}
	}
}

// tickEvery schedules the next periodic refresh
func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchTransitionsCmd loads the live transition list for a task about to
// move to target
func (m Model) fetchTransitionsCmd(task domain.Task, target domain.ColumnKey) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		candidates, err := m.svc.Transitions(ctx, task)
		return transitionsMsg{task: task, target: target, candidates: candidates, err: err}
	}
}

// commitCmd applies a chosen transition through the reconcile controller.
// The controller owns the override lifecycle, so its context must outlive
// this command.
func (m Model) commitCmd(task domain.Task, target domain.ColumnKey, transitionID string) tea.Cmd {
	return func() tea.Msg {
		err := m.controller.CommitTransition(context.Background(), task, target, transitionID, "")
		return commitDoneMsg{taskID: task.ID, err: err}
	}
}
