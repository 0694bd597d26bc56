package domain

import "time"

// Task is the canonical, source-independent work item
type Task struct {
	ID          string         `json:"id"`
	Source      Source         `json:"source"`
	SourceID    string         `json:"source_id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      Status         `json:"status"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Priority    int            `json:"priority"`
	SLABreachAt *time.Time     `json:"sla_breach_at,omitempty"`
	IsPinned    bool           `json:"is_pinned"`
	RawData     map[string]any `json:"raw_data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Source identifies the origin system of a task
type Source string

const (
	SourceJira      Source = "jira"
	SourcePlanner   Source = "planner"
	SourceTodo      Source = "todo"
	SourceMonday    Source = "monday"
	SourceEmail     Source = "email"
	SourceCalendar  Source = "calendar"
	SourceMilestone Source = "milestone"
)

// String returns the display string
func (s Source) String() string {
	return string(s)
}

// Status represents normalized task status. The original vendor status
// string stays inside RawData and is always re-derivable from it.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusWaiting    Status = "waiting"
	StatusDone       Status = "done"
	StatusDismissed  Status = "dismissed"
)

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status removes the task from active triage
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusDismissed
}

// ColumnKey is one of the five fixed kanban board buckets
type ColumnKey string

const (
	ColumnOpen             ColumnKey = "open"
	ColumnWIP              ColumnKey = "wip"
	ColumnWaitingAgent     ColumnKey = "waiting-agent"
	ColumnWaitingRequestor ColumnKey = "waiting-requestor"
	ColumnWaitingPartner   ColumnKey = "waiting-partner"
)

// Columns lists all board columns in display order
var Columns = []ColumnKey{
	ColumnOpen,
	ColumnWIP,
	ColumnWaitingAgent,
	ColumnWaitingRequestor,
	ColumnWaitingPartner,
}

// Label returns the human-readable column header
func (c ColumnKey) Label() string {
	switch c {
	case ColumnOpen:
		return "Open"
	case ColumnWIP:
		return "In Progress"
	case ColumnWaitingAgent:
		return "Waiting on Agent"
	case ColumnWaitingRequestor:
		return "Waiting on Requestor"
	case ColumnWaitingPartner:
		return "Waiting on Partner"
	default:
		return string(c)
	}
}

// Index returns the board position for this column, -1 if unknown
func (c ColumnKey) Index() int {
	for i, key := range Columns {
		if key == c {
			return i
		}
	}
	return -1
}

// String returns the display string
func (c ColumnKey) String() string {
	return string(c)
}
