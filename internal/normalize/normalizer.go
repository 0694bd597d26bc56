// Package normalize turns raw per-vendor records into canonical tasks.
// Normalization is total: any well-formed JSON object yields a task, with
// unresolvable fields degrading to zero values instead of errors, so one
// malformed record never blocks the rest of a sync batch.
package normalize

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/fields"
)

// Candidate key synonyms shared across all sources. Per-field special
// cases are deliberately avoided; the resolver's strategy order does the
// disambiguation.
var (
	idKeys          = []string{"key", "id", "taskId", "_id"}
	titleKeys       = []string{"summary", "title", "name", "subject"}
	descriptionKeys = []string{"description", "body", "notes", "content"}
	statusKeys      = []string{"status", "state", "workflowStatus"}
	dueKeys         = []string{"duedate", "dueDate", "dueDateTime", "due", "end", "targetDate"}
	priorityKeys    = []string{"priority", "importance", "urgency"}
	createdKeys     = []string{"created", "createdDateTime", "createdAt", "date_created"}
	updatedKeys     = []string{"updated", "lastModifiedDateTime", "updatedAt", "date_updated"}
)

// timeLayouts covers the timestamp formats the supported vendors emit
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize builds the canonical task for a raw vendor record. The record
// is kept verbatim in RawData; every derived field stays re-computable from
// it. Deterministic: the same (source, record) pair always yields the same
// task.
func Normalize(source domain.Source, raw map[string]any) domain.Task {
	sourceID := resolveID(raw)
	title := fields.ResolveString(raw, titleKeys...)
	vendorStatus := fields.ResolveString(raw, statusKeys...)

	task := domain.Task{
		ID:          taskID(source, sourceID, title, raw),
		Source:      source,
		SourceID:    sourceID,
		Title:       title,
		Description: fields.ResolveString(raw, descriptionKeys...),
		Status:      normalizeStatus(vendorStatus),
		DueDate:     parseDate(fields.ResolveDate(raw, dueKeys...)),
		Priority:    normalizePriority(raw),
		SLABreachAt: breachInstant(raw),
		RawData:     raw,
	}

	if created := parseTimestamp(raw, createdKeys); created != nil {
		task.CreatedAt = *created
	}
	if updated := parseTimestamp(raw, updatedKeys); updated != nil {
		task.UpdatedAt = *updated
	}

	return task
}

// VendorStatus retrieves the original workflow status string out of a
// task's raw record. Status normalization is lossy; this is the reverse
// lookup consumers use when the open vocabulary matters.
func VendorStatus(task domain.Task) string {
	return fields.ResolveString(task.RawData, statusKeys...)
}

// taskID derives the stable cross-source identifier. Without a native ID it
// falls back to a source-qualified hash of title plus the canonical JSON
// encoding of the payload, which is stable across repeated normalization.
func taskID(source domain.Source, sourceID, title string, raw map[string]any) string {
	if sourceID != "" {
		return string(source) + ":" + sourceID
	}

	h := sha1.New()
	h.Write([]byte(title))
	if payload, err := json.Marshal(raw); err == nil {
		h.Write(payload)
	}
	return string(source) + ":" + hex.EncodeToString(h.Sum(nil))[:12]
}

func resolveID(raw map[string]any) string {
	v, ok := fields.Resolve(raw, idKeys...)
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return ""
	}
}

// normalizeStatus folds an open vendor status vocabulary onto the small
// canonical set. The original string stays retrievable via VendorStatus.
func normalizeStatus(vendor string) domain.Status {
	s := strings.ToLower(strings.TrimSpace(vendor))
	switch {
	case s == "":
		return domain.StatusOpen
	case s == "done" || s == "closed" || s == "resolved" || s == "cancelled" || s == "completed":
		return domain.StatusDone
	case s == "dismissed":
		return domain.StatusDismissed
	case strings.Contains(s, "progress") || strings.Contains(s, "review") || strings.Contains(s, "development"):
		return domain.StatusInProgress
	case strings.Contains(s, "waiting") || strings.Contains(s, "pending") || strings.Contains(s, "escalat"):
		return domain.StatusWaiting
	default:
		return domain.StatusOpen
	}
}

// vendor priority names, folded onto the 0-100 scale (higher = more urgent)
var priorityNames = map[string]int{
	"highest":   90,
	"urgent":    90,
	"critical":  90,
	"blocker":   90,
	"high":      70,
	"important": 70,
	"medium":    50,
	"normal":    50,
	"low":       30,
	"lowest":    10,
	"trivial":   10,
}

func normalizePriority(raw map[string]any) int {
	v, ok := fields.Resolve(raw, priorityKeys...)
	if !ok {
		return 50
	}

	switch p := v.(type) {
	case float64:
		return clampScore(int(p))
	case string:
		if n, err := strconv.Atoi(p); err == nil {
			return clampScore(n)
		}
		if score, ok := priorityNames[strings.ToLower(strings.TrimSpace(p))]; ok {
			return score
		}
	case map[string]any:
		if score, ok := priorityNames[strings.ToLower(fields.Stringify(p))]; ok {
			return score
		}
	}
	return 50
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// breachInstant pulls the hard SLA deadline out of the located SLA object,
// if the vendor exposes one
func breachInstant(raw map[string]any) *time.Time {
	sla, ok := fields.FindSLAObject(raw)
	if !ok {
		return nil
	}
	cycle, ok := sla["ongoingCycle"].(map[string]any)
	if !ok {
		return nil
	}
	breach, ok := cycle["breachTime"].(map[string]any)
	if !ok {
		return nil
	}

	if epoch, ok := breach["epochMillis"].(float64); ok {
		t := time.UnixMilli(int64(epoch)).UTC()
		return &t
	}
	if iso, ok := breach["iso8601"].(string); ok {
		return parseTime(iso)
	}
	return nil
}

func parseTimestamp(raw map[string]any, keys []string) *time.Time {
	s := fields.ResolveString(raw, keys...)
	if s == "" {
		// Graph-style {dateTime} objects stringify to empty; retry as date
		s = fields.ResolveDate(raw, keys...)
	}
	return parseTime(s)
}

func parseDate(s string) *time.Time {
	return parseTime(s)
}

// parseTime tries the known vendor layouts; failures yield nil, never an
// error
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
