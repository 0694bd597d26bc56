package domain

// AttentionReason is a triage flag attached to a task
type AttentionReason string

const (
	ReasonOverdueUpdate  AttentionReason = "overdue_update"
	ReasonSLABreached    AttentionReason = "sla_breached"
	ReasonSLAApproaching AttentionReason = "sla_approaching"
)

// String returns the display string
func (r AttentionReason) String() string {
	return string(r)
}

// AttentionResult is the derived triage state for a task.
// Recomputed on demand, never persisted.
type AttentionResult struct {
	TaskID       string
	Reasons      map[AttentionReason]bool
	UrgencyScore int   // 0-100, higher sorts first in triage lists
	SLARemaining *int64 // milliseconds, nil when no SLA data is present
}

// Has reports whether the given reason was set
func (a AttentionResult) Has(reason AttentionReason) bool {
	return a.Reasons[reason]
}

// NeedsAttention reports whether any reason was set
func (a AttentionResult) NeedsAttention() bool {
	return len(a.Reasons) > 0
}

// TransitionCandidate is a vendor-exposed workflow action available on a
// task at decision time. Fetched fresh per task, never cached across tasks.
type TransitionCandidate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ToStatusName string `json:"to_status_name,omitempty"`
}
