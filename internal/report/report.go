// Package report exports the triage feed to CSV and Excel for sharing
// outside the board.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/avelinek/taskdeck/internal/attention"
	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/kanban"
	"github.com/avelinek/taskdeck/internal/normalize"
)

// Row is one task flattened for export: the canonical fields plus the
// derived triage state at generation time
type Row struct {
	Task         domain.Task
	Column       domain.ColumnKey
	OnBoard      bool
	VendorStatus string
	Attention    domain.AttentionResult
}

// Build derives a report row per task at the given instant, sorted most
// urgent first
func Build(tasks []domain.Task, now time.Time) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, task := range tasks {
		column, onBoard := kanban.MapToColumn(task)
		rows = append(rows, Row{
			Task:         task,
			Column:       column,
			OnBoard:      onBoard,
			VendorStatus: normalize.VendorStatus(task),
			Attention:    attention.Classify(task, now),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Attention.UrgencyScore > rows[j].Attention.UrgencyScore
	})
	return rows
}

// reasonList renders the attention reasons in stable order
func reasonList(att domain.AttentionResult) string {
	var reasons []string
	for _, r := range []domain.AttentionReason{
		domain.ReasonSLABreached,
		domain.ReasonSLAApproaching,
		domain.ReasonOverdueUpdate,
	} {
		if att.Has(r) {
			reasons = append(reasons, string(r))
		}
	}
	return strings.Join(reasons, ", ")
}

// slaRemaining renders remaining SLA time as a signed duration, empty when
// no SLA data exists
func slaRemaining(att domain.AttentionResult) string {
	if att.SLARemaining == nil {
		return ""
	}
	return (time.Duration(*att.SLARemaining) * time.Millisecond).String()
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func columnLabel(row Row) string {
	if !row.OnBoard {
		return "Done"
	}
	return row.Column.Label()
}
