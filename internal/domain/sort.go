package domain

import "sort"

// SortField represents a field to sort by
type SortField string

const (
	SortByUrgency  SortField = "urgency"
	SortByDueDate  SortField = "due"
	SortByPriority SortField = "priority"
	SortByUpdated  SortField = "updated"
)

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Sort represents sorting state
type Sort struct {
	Field SortField
	Order SortOrder
}

// Toggle toggles the sort field or direction
// If field is different, sets new field with ascending order
// If field is same, toggles between ascending and descending
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
	} else {
		s.Field = field
		s.Order = SortAsc
	}
}

// Apply sorts a list of tasks. Urgency scores are keyed by task ID and only
// consulted for the urgency field. Pinned tasks always sort first.
func (s *Sort) Apply(tasks []Task, attention map[string]AttentionResult) []Task {
	if len(tasks) == 0 {
		return tasks
	}

	// Make a copy to avoid modifying the input slice
	result := make([]Task, len(tasks))
	copy(result, tasks)

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].IsPinned != result[j].IsPinned {
			return result[i].IsPinned
		}
		return s.less(result[i], result[j], attention)
	})

	return result
}

func (s *Sort) less(a, b Task, attention map[string]AttentionResult) bool {
	switch s.Field {
	case SortByUrgency:
		ua := attention[a.ID].UrgencyScore
		ub := attention[b.ID].UrgencyScore
		if s.Order == SortAsc {
			return ua > ub // Most urgent first in ascending
		}
		return ua < ub

	case SortByDueDate:
		// Tasks without a due date sort last regardless of direction
		if a.DueDate == nil || b.DueDate == nil {
			return a.DueDate != nil && b.DueDate == nil
		}
		if s.Order == SortAsc {
			return a.DueDate.Before(*b.DueDate)
		}
		return a.DueDate.After(*b.DueDate)

	case SortByPriority:
		if s.Order == SortAsc {
			return a.Priority > b.Priority // Higher priority first in ascending
		}
		return a.Priority < b.Priority

	case SortByUpdated:
		if s.Order == SortAsc {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.UpdatedAt.Before(b.UpdatedAt)
	}

	return false
}
