package toast

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelinek/taskdeck/internal/types"
	"github.com/avelinek/taskdeck/internal/ui/styles"
)

func TestRenderer_Render_Empty(t *testing.T) {
	r := New(styles.New())

	assert.Equal(t, "", r.Render(nil, 80))
	assert.Equal(t, "", r.Render([]types.Toast{}, 80))
}

func TestRenderer_Render_StackOrder(t *testing.T) {
	r := New(styles.New())

	toasts := []types.Toast{
		types.NewToast(types.ToastInfo, "Dismissed jira:SUP-1"),
		types.NewToast(types.ToastSuccess, "Sources synced"),
	}

	result := r.Render(toasts, 120)

	assert.Contains(t, result, "Dismissed jira:SUP-1")
	assert.Contains(t, result, "Sources synced")
	lines := strings.Split(result, "\n")
	assert.Greater(t, len(lines), 1, "stacked toasts render on separate lines")
}

func TestRenderer_Render_CapsVisibleStack(t *testing.T) {
	r := New(styles.New())

	var toasts []types.Toast
	for i := 0; i < maxVisible+2; i++ {
		toasts = append(toasts, types.NewToast(types.ToastInfo, fmt.Sprintf("note %d", i)))
	}

	result := r.Render(toasts, 120)

	// Oldest entries are held back until a slot frees up
	assert.NotContains(t, result, "note 0")
	assert.NotContains(t, result, "note 1")
	assert.Contains(t, result, fmt.Sprintf("note %d", maxVisible+1))
}

func TestRenderer_Render_LevelGlyphs(t *testing.T) {
	r := New(styles.New())

	tests := []struct {
		level types.ToastLevel
		glyph string
	}{
		{types.ToastInfo, "•"},
		{types.ToastSuccess, "✓"},
		{types.ToastWarning, "!"},
		{types.ToastError, "✗"},
	}

	for _, tt := range tests {
		result := r.Render([]types.Toast{types.NewToast(tt.level, "msg")}, 120)
		assert.Contains(t, result, tt.glyph)
	}
}
