package board

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/ui/styles"
)

// stripANSI removes ANSI escape codes from a string for testing
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func testCard(id, title string, urgency int) Card {
	return Card{
		Task: domain.Task{
			ID:     id,
			Source: domain.SourceJira,
			Title:  title,
			Status: domain.StatusOpen,
		},
		Attention: domain.AttentionResult{
			TaskID:       id,
			Reasons:      map[domain.AttentionReason]bool{},
			UrgencyScore: urgency,
		},
	}
}

func TestRenderCard_Basic(t *testing.T) {
	s := styles.New()
	card := testCard("jira:SUP-1", "Gateway timeouts", 82)

	result := RenderCard(card, false, 30, s)
	stripped := stripANSI(result)

	if !strings.Contains(stripped, "Gateway timeouts") {
		t.Errorf("Card should contain task title, got: %s", stripped)
	}
	if !strings.Contains(stripped, "82") {
		t.Errorf("Card should contain urgency badge, got: %s", stripped)
	}
	if !strings.Contains(stripped, "jira") {
		t.Errorf("Card should contain source badge, got: %s", stripped)
	}
}

func TestRenderCard_Cursor(t *testing.T) {
	s := styles.New()
	card := testCard("jira:SUP-1", "Gateway timeouts", 10)

	result := RenderCard(card, true, 30, s)
	if !strings.Contains(stripANSI(result), "▶") {
		t.Error("Cursor card should contain cursor indicator")
	}
}

func TestRenderCard_Pinned(t *testing.T) {
	s := styles.New()
	card := testCard("jira:SUP-1", "Gateway timeouts", 10)
	card.Task.IsPinned = true

	result := RenderCard(card, false, 30, s)
	if !strings.Contains(stripANSI(result), "📌") {
		t.Error("Pinned card should contain pin marker")
	}
}

func TestRenderCard_Pending(t *testing.T) {
	s := styles.New()
	card := testCard("jira:SUP-1", "Gateway timeouts", 10)
	card.Pending = true

	result := RenderCard(card, false, 30, s)
	if !strings.Contains(stripANSI(result), "syncing") {
		t.Error("Pending card should show syncing marker")
	}
}

func TestRenderCard_SLABreached(t *testing.T) {
	s := styles.New()
	card := testCard("jira:SUP-1", "Gateway timeouts", 82)
	card.Attention.Reasons[domain.ReasonSLABreached] = true

	result := RenderCard(card, false, 40, s)
	if !strings.Contains(stripANSI(result), "SLA breached") {
		t.Error("Breached card should show the breach marker")
	}
}

func TestRenderCard_TruncatesLongTitle(t *testing.T) {
	s := styles.New()
	card := testCard("jira:SUP-1", strings.Repeat("x", 100), 10)

	result := RenderCard(card, false, 30, s)
	if !strings.Contains(stripANSI(result), "…") {
		t.Error("Long title should be truncated with ellipsis")
	}
}

func TestRender_AllColumns(t *testing.T) {
	s := styles.New()
	columns := []Column{
		{Key: domain.ColumnOpen, Title: "Open", Cards: []Card{testCard("a", "First", 10)}},
		{Key: domain.ColumnWIP, Title: "In Progress", Cards: []Card{testCard("b", "Second", 40)}},
		{Key: domain.ColumnWaitingAgent, Title: "Waiting on Agent", Cards: nil},
		{Key: domain.ColumnWaitingRequestor, Title: "Waiting on Requestor", Cards: nil},
		{Key: domain.ColumnWaitingPartner, Title: "Waiting on Partner", Cards: nil},
	}

	result := stripANSI(Render(columns, Cursor{Column: 1, Card: 0}, s, 200, 40))

	for _, want := range []string{"Open (1)", "In Progress (1)", "Waiting on Agent (0)", "First", "Second"} {
		if !strings.Contains(result, want) {
			t.Errorf("Board should contain %q", want)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	s := styles.New()
	if got := Render(nil, Cursor{}, s, 100, 20); got != "" {
		t.Errorf("Empty board should render empty string, got %q", got)
	}
}
