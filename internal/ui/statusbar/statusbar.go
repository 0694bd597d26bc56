package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/avelinek/taskdeck/internal/types"
	"github.com/avelinek/taskdeck/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	info   string
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar. info is free-form trailing text, typically
// the sync summary.
func New(mode types.Mode, info string, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		info:   info,
		width:  width,
		styles: styles,
	}
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	hints := GetHints(sb.mode)
	separator := sb.styles.StatusHint.Render(" │ ")

	parts := []string{modeBadge}
	if hints != "" {
		parts = append(parts, separator, sb.styles.StatusHint.Render(hints))
	}
	if sb.info != "" {
		parts = append(parts, separator, sb.styles.StatusInfo.Render(sb.info))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
