// Package board renders the five-column triage board.
package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/avelinek/taskdeck/internal/ui/styles"
)

// Render renders the entire board
func Render(
	columns []Column,
	cursor Cursor,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorCard := 0
		if isActive {
			cursorCard = cursor.Card
		}

		columnStr := renderColumn(col, cursorCard, isActive, columnWidth, height, s)

		// Force consistent width so columns line up
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
