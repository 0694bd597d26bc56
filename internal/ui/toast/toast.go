// Package toast draws the transient notification stack shown over the
// bottom-right corner of the board.
package toast

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/avelinek/taskdeck/internal/types"
	"github.com/avelinek/taskdeck/internal/ui/styles"
)

const (
	maxWidth   = 44
	maxVisible = 4
)

// Renderer draws toasts using the board's style set
type Renderer struct {
	styles *styles.Styles
}

// New creates a Renderer with the given styles
func New(styles *styles.Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Render stacks toasts vertically, right-aligned, newest at the bottom.
// Only the newest maxVisible entries are drawn; older ones wait until
// expiry frees a slot. Returns "" when there is nothing to show.
func (r *Renderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	visible := toasts
	if len(visible) > maxVisible {
		visible = visible[len(visible)-maxVisible:]
	}

	toastWidth := width / 3
	if toastWidth > maxWidth {
		toastWidth = maxWidth
	}

	lines := make([]string, 0, len(visible))
	for _, t := range visible {
		style := r.styleForLevel(t.Level)
		lines = append(lines, style.Width(toastWidth).Render(glyph(t.Level)+" "+t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}

func (r *Renderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}

// glyph marks the severity so it reads without color
func glyph(level types.ToastLevel) string {
	switch level {
	case types.ToastSuccess:
		return "✓"
	case types.ToastWarning:
		return "!"
	case types.ToastError:
		return "✗"
	default:
		return "•"
	}
}
