package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/avelinek/taskdeck/internal/types"
	"github.com/avelinek/taskdeck/internal/ui/styles"
)

func TestRender_NormalMode(t *testing.T) {
	sb := New(types.ModeNormal, "5 tasks · synced 12:04", 120, styles.New())
	result := ansi.Strip(sb.Render())

	if !strings.Contains(result, "NORMAL") {
		t.Errorf("Status bar should contain mode badge, got: %s", result)
	}
	if !strings.Contains(result, "m: move") {
		t.Errorf("Status bar should contain hints, got: %s", result)
	}
	if !strings.Contains(result, "5 tasks") {
		t.Errorf("Status bar should contain info text, got: %s", result)
	}
}

func TestRender_SearchMode(t *testing.T) {
	sb := New(types.ModeSearch, "", 120, styles.New())
	result := ansi.Strip(sb.Render())

	if !strings.Contains(result, "SEARCH") {
		t.Errorf("Status bar should contain mode badge, got: %s", result)
	}
	if !strings.Contains(result, "Esc: cancel") {
		t.Errorf("Status bar should contain search hints, got: %s", result)
	}
}

func TestGetHints_AllModes(t *testing.T) {
	for _, mode := range []types.Mode{types.ModeNormal, types.ModeSearch, types.ModeMove, types.ModeTransition} {
		if GetHints(mode) == "" {
			t.Errorf("Mode %s should have hints", mode)
		}
	}
}
