package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/avelinek/taskdeck/internal/domain"
)

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

// Export writes a workbook with a Dashboard sheet summarizing the board
// and one sheet per column listing its tasks. Returns the written path.
func (e *ExcelExporter) Export(rows []Row, now time.Time) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", &domain.ReportError{Format: "xlsx", Err: err}
	}

	filename := filepath.Join(e.OutputDir, fmt.Sprintf("triage_%s.xlsx", now.Format("2006-01-02_15-04-05")))

	f := excelize.NewFile()
	defer f.Close()

	if err := e.createDashboardSheet(f, rows, now); err != nil {
		return "", &domain.ReportError{Format: "xlsx", Path: filename, Err: err}
	}

	for _, column := range domain.Columns {
		if err := e.createColumnSheet(f, column, rows); err != nil {
			return "", &domain.ReportError{Format: "xlsx", Path: filename, Err: err}
		}
	}

	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(filename); err != nil {
		return "", &domain.ReportError{Format: "xlsx", Path: filename, Err: err}
	}

	return filename, nil
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, rows []Row, now time.Time) error {
	sheet := "Dashboard"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Triage Dashboard")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated %s", now.Format("2006-01-02 15:04")))

	// Column counts.
	f.SetCellValue(sheet, "A4", "Column")
	f.SetCellValue(sheet, "B4", "Tasks")
	f.SetCellValue(sheet, "C4", "Needs Attention")
	f.SetCellStyle(sheet, "A4", "C4", headerStyle)

	byColumn := make(map[domain.ColumnKey][]Row)
	for _, row := range rows {
		if !row.OnBoard {
			continue
		}
		byColumn[row.Column] = append(byColumn[row.Column], row)
	}

	r := 5
	for _, column := range domain.Columns {
		attention := 0
		for _, row := range byColumn[column] {
			if row.Attention.NeedsAttention() {
				attention++
			}
		}
		f.SetCellValue(sheet, cellName(1, r), column.Label())
		f.SetCellValue(sheet, cellName(2, r), len(byColumn[column]))
		f.SetCellValue(sheet, cellName(3, r), attention)
		r++
	}

	// Source counts.
	r += 1
	f.SetCellValue(sheet, cellName(1, r), "Source")
	f.SetCellValue(sheet, cellName(2, r), "Tasks")
	f.SetCellStyle(sheet, cellName(1, r), cellName(2, r), headerStyle)
	r++

	bySource := make(map[domain.Source]int)
	var sources []domain.Source
	for _, row := range rows {
		if _, seen := bySource[row.Task.Source]; !seen {
			sources = append(sources, row.Task.Source)
		}
		bySource[row.Task.Source]++
	}
	titler := cases.Title(language.English)
	for _, source := range sources {
		f.SetCellValue(sheet, cellName(1, r), titler.String(string(source)))
		f.SetCellValue(sheet, cellName(2, r), bySource[source])
		r++
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "C", 16)

	return nil
}

func (e *ExcelExporter) createColumnSheet(f *excelize.File, column domain.ColumnKey, rows []Row) error {
	sheet := column.Label()
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"70AD47"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	headers := []string{"ID", "Source", "Title", "Vendor Status", "Urgency", "Attention Reasons", "SLA Remaining", "Due Date"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), h)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	r := 2
	for _, row := range rows {
		if !row.OnBoard || row.Column != column {
			continue
		}
		f.SetCellValue(sheet, cellName(1, r), row.Task.ID)
		f.SetCellValue(sheet, cellName(2, r), string(row.Task.Source))
		f.SetCellValue(sheet, cellName(3, r), row.Task.Title)
		f.SetCellValue(sheet, cellName(4, r), row.VendorStatus)
		f.SetCellValue(sheet, cellName(5, r), row.Attention.UrgencyScore)
		f.SetCellValue(sheet, cellName(6, r), reasonList(row.Attention))
		f.SetCellValue(sheet, cellName(7, r), slaRemaining(row.Attention))
		f.SetCellValue(sheet, cellName(8, r), formatDatePtr(row.Task.DueDate))
		r++
	}

	f.SetColWidth(sheet, "A", "B", 14)
	f.SetColWidth(sheet, "C", "C", 48)
	f.SetColWidth(sheet, "D", "H", 18)

	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
