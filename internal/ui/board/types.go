package board

import "github.com/avelinek/taskdeck/internal/domain"

// Card is one task plus the derived triage state it renders with
type Card struct {
	Task      domain.Task
	Attention domain.AttentionResult
	// Pending marks a card displayed in its optimistic column while the
	// source transition settles
	Pending bool
}

// Column represents a board column with its cards
type Column struct {
	Key   domain.ColumnKey
	Title string
	Cards []Card
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index (0-4)
	Card   int // Card index within column
}
