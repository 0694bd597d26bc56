package app

import (
	"github.com/avelinek/taskdeck/internal/ui/board"
)

// currentCard returns the card under the cursor, nil when the column is empty
func (m Model) currentCard(columns []board.Column) *board.Card {
	if m.cursor.Column >= len(columns) {
		return nil
	}
	cards := columns[m.cursor.Column].Cards
	if m.cursor.Card >= len(cards) {
		return nil
	}
	return &cards[m.cursor.Card]
}

func (m *Model) moveCursorDown(columns []board.Column) {
	if n := len(columns[m.cursor.Column].Cards); m.cursor.Card < n-1 {
		m.cursor.Card++
	}
}

func (m *Model) moveCursorUp(columns []board.Column) {
	if m.cursor.Card > 0 {
		m.cursor.Card--
	}
}

func (m *Model) moveCursorLeft(columns []board.Column) {
	if m.cursor.Column > 0 {
		m.cursor.Column--
		m.clampCursor(columns)
	}
}

func (m *Model) moveCursorRight(columns []board.Column) {
	if m.cursor.Column < len(columns)-1 {
		m.cursor.Column++
		m.clampCursor(columns)
	}
}

// clampCursor keeps the cursor inside the current column after the card
// set changes
func (m *Model) clampCursor(columns []board.Column) {
	if len(columns) == 0 {
		m.cursor = board.Cursor{}
		return
	}
	if m.cursor.Column >= len(columns) {
		m.cursor.Column = len(columns) - 1
	}
	n := len(columns[m.cursor.Column].Cards)
	if n == 0 {
		m.cursor.Card = 0
	} else if m.cursor.Card >= n {
		m.cursor.Card = n - 1
	}
}
