package domain

import "strings"

// Filter represents triage feed filtering state
type Filter struct {
	Source      map[Source]bool
	Status      map[Status]bool
	Reason      map[AttentionReason]bool
	PinnedOnly  bool
	SearchQuery string
}

// NewFilter creates a new empty filter
func NewFilter() *Filter {
	return &Filter{
		Source: make(map[Source]bool),
		Status: make(map[Status]bool),
		Reason: make(map[AttentionReason]bool),
	}
}

// IsActive returns true if any filter is active
func (f *Filter) IsActive() bool {
	return len(f.Source) > 0 ||
		len(f.Status) > 0 ||
		len(f.Reason) > 0 ||
		f.PinnedOnly ||
		f.SearchQuery != ""
}

// Apply filters a list of tasks. Attention results are keyed by task ID and
// only consulted when a reason filter is active.
func (f *Filter) Apply(tasks []Task, attention map[string]AttentionResult) []Task {
	if !f.IsActive() {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task, attention[task.ID]) {
			result = append(result, task)
		}
	}
	return result
}

// Matches returns true if the task passes all active filters
// Uses AND logic between filter types, OR logic within filter types
func (f *Filter) Matches(t Task, att AttentionResult) bool {
	if len(f.Source) > 0 {
		if !f.Source[t.Source] {
			return false
		}
	}

	if len(f.Status) > 0 {
		if !f.Status[t.Status] {
			return false
		}
	}

	if len(f.Reason) > 0 {
		hit := false
		for reason := range f.Reason {
			if att.Has(reason) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if f.PinnedOnly && !t.IsPinned {
		return false
	}

	// Search query (case-insensitive, matches title or ID)
	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		title := strings.ToLower(t.Title)
		id := strings.ToLower(t.ID)

		if !strings.Contains(title, query) && !strings.Contains(id, query) {
			return false
		}
	}

	return true
}

// Clear resets all filters
func (f *Filter) Clear() {
	f.Source = make(map[Source]bool)
	f.Status = make(map[Status]bool)
	f.Reason = make(map[AttentionReason]bool)
	f.PinnedOnly = false
	f.SearchQuery = ""
}

// ToggleSource toggles a source filter
func (f *Filter) ToggleSource(s Source) {
	if f.Source[s] {
		delete(f.Source, s)
	} else {
		f.Source[s] = true
	}
}

// ToggleStatus toggles a status filter
func (f *Filter) ToggleStatus(s Status) {
	if f.Status[s] {
		delete(f.Status, s)
	} else {
		f.Status[s] = true
	}
}

// ToggleReason toggles an attention reason filter
func (f *Filter) ToggleReason(r AttentionReason) {
	if f.Reason[r] {
		delete(f.Reason, r)
	} else {
		f.Reason[r] = true
	}
}
