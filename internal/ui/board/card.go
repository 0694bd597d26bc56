package board

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/ui/styles"
)

// renderCard renders a task card: pin and attention markers on the title
// line, urgency and source badges below
func renderCard(card Card, isCursor bool, width int, s *styles.Styles) string {
	cardStyle := s.Card
	if card.Pending {
		cardStyle = s.CardPending
	} else if isCursor {
		cardStyle = s.CardActive
	}
	cardStyle = cardStyle.Width(width)

	cursor := ""
	if isCursor {
		cursor = "▶"
	}
	pin := ""
	if card.Task.IsPinned {
		pin = s.PinMarker.Render("📌 ")
	}

	// Title - truncate if needed, accounting for padding and border
	maxTitleLen := width - 4
	title := card.Task.Title
	if len(title) > maxTitleLen && maxTitleLen > 1 {
		title = title[:maxTitleLen-1] + "…"
	}

	titleLine := cursor + pin + s.TaskTitle.Render(title)

	urgencyBadge := s.UrgencyBadge(card.Attention.UrgencyScore).Render(fmt.Sprintf("%d", card.Attention.UrgencyScore))
	sourceBadge := s.SourceBadge(string(card.Task.Source)).Render(string(card.Task.Source))
	badgeLine := lipgloss.JoinHorizontal(lipgloss.Left, urgencyBadge, " ", sourceBadge)

	lines := []string{titleLine, badgeLine}
	if sla := slaLine(card.Attention, s); sla != "" {
		lines = append(lines, sla)
	}
	if card.Pending {
		lines = append(lines, s.StatusHint.Render("syncing…"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(content)
}

// slaLine renders the SLA countdown, or the breach marker when it has run out
func slaLine(att domain.AttentionResult, s *styles.Styles) string {
	if att.Has(domain.ReasonSLABreached) {
		return s.SLALabel.Render("⚠ SLA breached")
	}
	if att.SLARemaining == nil {
		return ""
	}
	remaining := time.Duration(*att.SLARemaining) * time.Millisecond
	return s.SLALabel.Render("SLA " + remaining.Round(time.Minute).String())
}

// RenderCard is the exported version for testing
func RenderCard(card Card, isCursor bool, width int, s *styles.Styles) string {
	return renderCard(card, isCursor, width, s)
}
