// Package attention derives triage flags and an urgency score for a task.
// Classification is a pure function of (task, now); the clock is always
// passed in, never read from a global.
package attention

import (
	"strings"
	"time"

	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/fields"
)

// Temporal thresholds. Tests assert against these names, not the numbers.
const (
	// ApproachingWindow is how close to an SLA deadline a task gets
	// flagged as approaching
	ApproachingWindow = 30 * time.Minute

	// SilenceWindow is how long without a public agent comment before a
	// task is flagged as needing an update
	SilenceWindow = 4 * time.Hour
)

// Urgency score bands. Breached outranks approaching outranks
// overdue-update-only; within a band, less remaining time ranks higher.
const (
	breachedBase    = 70
	approachingBase = 40
	overdueScore    = 25
	bandRange       = 30
)

// statuses excluded from the overdue-update check
var overdueExemptStatuses = map[string]bool{
	"resolved":             true,
	"closed":               true,
	"waiting on requestor": true,
	"waiting on partner":   true,
}

// Classify computes the attention reasons and urgency score for a task at
// the given instant. Malformed or missing raw fields read as absent; the
// classifier never fails.
func Classify(task domain.Task, now time.Time) domain.AttentionResult {
	result := domain.AttentionResult{
		TaskID:  task.ID,
		Reasons: make(map[domain.AttentionReason]bool),
	}

	remaining, hasRemaining := fields.RemainingMillis(task.RawData)
	if hasRemaining {
		ms := remaining
		result.SLARemaining = &ms
	}

	breached := fields.Breached(task.RawData)
	if breached {
		result.Reasons[domain.ReasonSLABreached] = true
	} else if hasRemaining && remaining >= 0 && remaining <= ApproachingWindow.Milliseconds() {
		result.Reasons[domain.ReasonSLAApproaching] = true
	}

	if needsUpdate(task, now) {
		result.Reasons[domain.ReasonOverdueUpdate] = true
	}

	result.UrgencyScore = urgency(task, result, remaining, hasRemaining)
	return result
}

// needsUpdate applies the Jira-only overdue-update heuristic: the task is
// still active, not parked on someone else, and either its promised next
// update has passed or the agent has been silent too long. The two date
// checks are an inclusive OR with no precedence between them.
func needsUpdate(task domain.Task, now time.Time) bool {
	if task.Source != domain.SourceJira {
		return false
	}

	vendorStatus := strings.ToLower(strings.TrimSpace(fields.ResolveString(task.RawData, "status", "state")))
	if overdueExemptStatuses[vendorStatus] || overdueExemptStatuses[string(task.Status)] {
		return false
	}
	if task.Status.IsTerminal() {
		return false
	}

	queue := fields.ResolveString(task.RawData, "queue", "Queue")
	if strings.EqualFold(strings.TrimSpace(queue), "development") {
		return false
	}
	requestType := fields.ResolveString(task.RawData, "requestType", "Request Type")
	if strings.EqualFold(strings.TrimSpace(requestType), "onboarding") {
		return false
	}

	if next := rawInstant(task.RawData, "Agent Next Update", "agentNextUpdate"); next != nil {
		if next.Before(now) {
			return true
		}
	}
	if last := rawInstant(task.RawData, "Last Agent Public Comment", "lastAgentPublicComment"); last != nil {
		if now.Sub(*last) > SilenceWindow {
			return true
		}
	}

	return false
}

// urgency maps reasons onto the 0-100 scale. The contract is the ordering:
// breached > approaching > overdue-update-only, and within the SLA bands
// more-overdue / less-remaining ranks higher. A small floor from normalized
// priority breaks ties among unflagged tasks.
func urgency(task domain.Task, result domain.AttentionResult, remaining int64, hasRemaining bool) int {
	switch {
	case result.Has(domain.ReasonSLABreached):
		score := breachedBase
		if hasRemaining && remaining < 0 {
			score += magnitude(-remaining)
		}
		return clamp(score)

	case result.Has(domain.ReasonSLAApproaching):
		// Remaining shrinks toward zero as urgency climbs
		frac := float64(ApproachingWindow.Milliseconds()-remaining) / float64(ApproachingWindow.Milliseconds())
		return clamp(approachingBase + int(frac*float64(bandRange-1)))

	case result.Has(domain.ReasonOverdueUpdate):
		return overdueScore

	default:
		return task.Priority / 5
	}
}

// magnitude compresses an overdue duration (ms) into the 0..bandRange band:
// each doubling past one minute adds roughly three points
func magnitude(overdueMs int64) int {
	points := 0
	threshold := time.Minute.Milliseconds()
	for overdueMs > threshold && points < bandRange {
		points += 3
		threshold *= 2
	}
	return points
}

func clamp(n int) int {
	if n > 100 {
		return 100
	}
	if n < 0 {
		return 0
	}
	return n
}

// rawInstant reads a date-bearing field out of the raw record, degrading to
// nil on anything unparseable
func rawInstant(raw map[string]any, keys ...string) *time.Time {
	v, ok := fields.Resolve(raw, keys...)
	if !ok {
		return nil
	}

	var s string
	switch d := v.(type) {
	case string:
		s = d
	case map[string]any:
		if inner, ok := d["dateTime"].(string); ok {
			s = inner
		} else if inner, ok := d["date"].(string); ok {
			s = inner
		}
	}
	if s == "" {
		return nil
	}

	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000-0700",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
