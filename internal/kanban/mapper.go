// Package kanban maps vendor workflow statuses onto the fixed board
// columns and scores vendor transitions against a drag target.
package kanban

import (
	"strings"

	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/normalize"
)

// doneStatuses excludes a task from the board entirely
var doneStatuses = map[string]bool{
	"done":      true,
	"closed":    true,
	"resolved":  true,
	"cancelled": true,
}

// exactColumns maps known vendor status strings to columns
var exactColumns = map[string]domain.ColumnKey{
	"open":                 domain.ColumnOpen,
	"to do":                domain.ColumnOpen,
	"backlog":              domain.ColumnOpen,
	"new":                  domain.ColumnOpen,
	"reopened":             domain.ColumnOpen,
	"in progress":          domain.ColumnWIP,
	"in review":            domain.ColumnWIP,
	"in development":       domain.ColumnWIP,
	"waiting for support":  domain.ColumnWaitingAgent,
	"waiting on agent":     domain.ColumnWaitingAgent,
	"waiting for customer": domain.ColumnWaitingRequestor,
	"waiting on requestor": domain.ColumnWaitingRequestor,
	"waiting on customer":  domain.ColumnWaitingRequestor,
	"waiting on partner":   domain.ColumnWaitingPartner,
	"escalated":            domain.ColumnWaitingPartner,
}

// containsRule is a fuzzy containment tier: the status must contain one of
// primary and, when secondary is non-empty, one of secondary too
type containsRule struct {
	column    domain.ColumnKey
	primary   []string
	secondary []string
}

// Fuzzy rules in fixed priority order; first match wins. The progress
// check deliberately runs before the waiting checks so a status carrying
// both resolves to wip.
var containsRules = []containsRule{
	{domain.ColumnWIP, []string{"progress", "review", "development"}, nil},
	{domain.ColumnWaitingAgent, []string{"waiting", "pending"}, []string{"agent", "support"}},
	{domain.ColumnWaitingRequestor, []string{"waiting", "pending"}, []string{"customer", "requestor"}},
	{domain.ColumnWaitingPartner, []string{"waiting", "escalat"}, []string{"partner", "third"}},
}

// normalizedColumns is the fallback table keyed by the task's normalized
// status, consulted when the vendor string matched nothing
var normalizedColumns = map[domain.Status]domain.ColumnKey{
	domain.StatusOpen:       domain.ColumnOpen,
	domain.StatusInProgress: domain.ColumnWIP,
	domain.StatusWaiting:    domain.ColumnWaitingRequestor,
}

// MapToColumn assigns a task to a board column based on its original
// vendor status. ok=false means the task is done/closed and excluded from
// the board. Idempotent: the task is never modified.
func MapToColumn(task domain.Task) (domain.ColumnKey, bool) {
	status := strings.ToLower(strings.TrimSpace(normalize.VendorStatus(task)))

	if doneStatuses[status] || task.Status == domain.StatusDone || task.Status == domain.StatusDismissed {
		return "", false
	}

	if col, ok := exactColumns[status]; ok {
		return col, true
	}

	for _, rule := range containsRules {
		if rule.matches(status) {
			return rule.column, true
		}
	}

	if col, ok := normalizedColumns[task.Status]; ok {
		return col, true
	}

	return domain.ColumnOpen, true
}

func (r containsRule) matches(status string) bool {
	if !containsAny(status, r.primary) {
		return false
	}
	return r.secondary == nil || containsAny(status, r.secondary)
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

// StatusesFor lists the vendor status strings associated with a column,
// used by transition scoring to recognize exact targets
func StatusesFor(column domain.ColumnKey) []string {
	var statuses []string
	for status, col := range exactColumns {
		if col == column {
			statuses = append(statuses, status)
		}
	}
	return statuses
}
