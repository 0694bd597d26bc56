package domain

import (
	"testing"
)

func TestNewFilter(t *testing.T) {
	f := NewFilter()
	if f.IsActive() {
		t.Error("NewFilter() should create inactive filter")
	}
}

func TestFilter_IsActive(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*Filter)
		active bool
	}{
		{
			name:   "empty filter is inactive",
			setup:  func(f *Filter) {},
			active: false,
		},
		{
			name: "source filter is active",
			setup: func(f *Filter) {
				f.ToggleSource(SourceJira)
			},
			active: true,
		},
		{
			name: "status filter is active",
			setup: func(f *Filter) {
				f.ToggleStatus(StatusOpen)
			},
			active: true,
		},
		{
			name: "reason filter is active",
			setup: func(f *Filter) {
				f.ToggleReason(ReasonSLABreached)
			},
			active: true,
		},
		{
			name: "pinned only is active",
			setup: func(f *Filter) {
				f.PinnedOnly = true
			},
			active: true,
		},
		{
			name: "search query is active",
			setup: func(f *Filter) {
				f.SearchQuery = "test"
			},
			active: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter()
			tt.setup(f)
			if f.IsActive() != tt.active {
				t.Errorf("IsActive() = %v, want %v", f.IsActive(), tt.active)
			}
		})
	}
}

func TestFilter_Toggle(t *testing.T) {
	f := NewFilter()

	f.ToggleSource(SourceJira)
	if !f.Source[SourceJira] {
		t.Error("ToggleSource should enable the source")
	}
	f.ToggleSource(SourceJira)
	if f.Source[SourceJira] {
		t.Error("ToggleSource twice should disable the source")
	}
}

func TestFilter_Matches(t *testing.T) {
	jiraTask := Task{ID: "jira:SUP-1", Source: SourceJira, Status: StatusOpen, Title: "Gateway timeouts"}
	plannerTask := Task{ID: "planner:p-1", Source: SourcePlanner, Status: StatusWaiting, Title: "License renewal", IsPinned: true}

	breached := AttentionResult{
		TaskID:  "jira:SUP-1",
		Reasons: map[AttentionReason]bool{ReasonSLABreached: true},
	}

	t.Run("source filter", func(t *testing.T) {
		f := NewFilter()
		f.ToggleSource(SourceJira)
		if !f.Matches(jiraTask, AttentionResult{}) {
			t.Error("jira task should match jira filter")
		}
		if f.Matches(plannerTask, AttentionResult{}) {
			t.Error("planner task should not match jira filter")
		}
	})

	t.Run("reason filter", func(t *testing.T) {
		f := NewFilter()
		f.ToggleReason(ReasonSLABreached)
		if !f.Matches(jiraTask, breached) {
			t.Error("breached task should match breach filter")
		}
		if f.Matches(plannerTask, AttentionResult{}) {
			t.Error("calm task should not match breach filter")
		}
	})

	t.Run("pinned only", func(t *testing.T) {
		f := NewFilter()
		f.PinnedOnly = true
		if f.Matches(jiraTask, AttentionResult{}) {
			t.Error("unpinned task should not match pinned-only filter")
		}
		if !f.Matches(plannerTask, AttentionResult{}) {
			t.Error("pinned task should match pinned-only filter")
		}
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		f := NewFilter()
		f.SearchQuery = "gateway"
		if !f.Matches(jiraTask, AttentionResult{}) {
			t.Error("search should match title case-insensitively")
		}
	})

	t.Run("search matches ID", func(t *testing.T) {
		f := NewFilter()
		f.SearchQuery = "sup-1"
		if !f.Matches(jiraTask, AttentionResult{}) {
			t.Error("search should match task ID")
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		f := NewFilter()
		f.ToggleSource(SourceJira)
		f.SearchQuery = "license"
		if f.Matches(jiraTask, AttentionResult{}) {
			t.Error("jira task should fail the search clause")
		}
	})
}

func TestFilter_Apply(t *testing.T) {
	tasks := []Task{
		{ID: "a", Source: SourceJira, Status: StatusOpen, Title: "One"},
		{ID: "b", Source: SourcePlanner, Status: StatusOpen, Title: "Two"},
	}

	f := NewFilter()
	if got := f.Apply(tasks, nil); len(got) != 2 {
		t.Errorf("inactive filter should pass everything, got %d", len(got))
	}

	f.ToggleSource(SourcePlanner)
	got := f.Apply(tasks, nil)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("expected only planner task, got %v", got)
	}
}

func TestFilter_Clear(t *testing.T) {
	f := NewFilter()
	f.ToggleSource(SourceJira)
	f.PinnedOnly = true
	f.SearchQuery = "x"

	f.Clear()
	if f.IsActive() {
		t.Error("Clear should deactivate the filter")
	}
}
