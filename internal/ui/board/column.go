package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avelinek/taskdeck/internal/ui/styles"
)

// renderColumn renders a board column with header and task cards
func renderColumn(
	col Column,
	cursorCard int,
	isActive bool,
	width int,
	height int,
	s *styles.Styles,
) string {
	headerStyle := s.ColumnHeader
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	// Header with title and count (e.g., "─ Open (3) ─────")
	headerText := fmt.Sprintf("─ %s (%d) ", col.Title, len(col.Cards))
	remainingWidth := width - len([]rune(headerText)) - 2
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	var cardStrings []string
	cardWidth := width - 4
	for i, card := range col.Cards {
		isCursor := isActive && i == cursorCard
		cardStrings = append(cardStrings, renderCard(card, isCursor, cardWidth, s))
	}

	content := ""
	if len(cardStrings) > 0 {
		content = strings.Join(cardStrings, "\n")
	}

	columnStyle := s.Column.Width(width).Height(height)
	columnContent := columnStyle.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}
