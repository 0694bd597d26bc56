package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avelinek/taskdeck/internal/domain"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

// Export writes the triage feed as a CSV, one row per task, most urgent
// first. Returns the written path.
func (e *CSVExporter) Export(rows []Row, now time.Time) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", &domain.ReportError{Format: "csv", Err: err}
	}

	filename := filepath.Join(e.OutputDir, fmt.Sprintf("triage_%s.csv", now.Format("2006-01-02_15-04-05")))
	file, err := os.Create(filename)
	if err != nil {
		return "", &domain.ReportError{Format: "csv", Path: filename, Err: err}
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"#",
		"ID",
		"Source",
		"Title",
		"Column",
		"Vendor Status",
		"Urgency",
		"Attention Reasons",
		"SLA Remaining",
		"Due Date",
		"Pinned",
	}
	if err := writer.Write(header); err != nil {
		return "", &domain.ReportError{Format: "csv", Path: filename, Err: err}
	}

	for i, row := range rows {
		pinned := ""
		if row.Task.IsPinned {
			pinned = "yes"
		}

		record := []string{
			fmt.Sprintf("%d", i+1),
			row.Task.ID,
			string(row.Task.Source),
			row.Task.Title,
			columnLabel(row),
			row.VendorStatus,
			fmt.Sprintf("%d", row.Attention.UrgencyScore),
			reasonList(row.Attention),
			slaRemaining(row.Attention),
			formatDatePtr(row.Task.DueDate),
			pinned,
		}
		if err := writer.Write(record); err != nil {
			return "", &domain.ReportError{Format: "csv", Path: filename, Err: err}
		}
	}

	return filename, nil
}
