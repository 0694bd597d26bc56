package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelinek/taskdeck/internal/domain"
)

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.controller.StopAll()
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchMode(msg)
	case ModeMove:
		return m.handleMoveMode(msg)
	case ModeTransition:
		return m.handleTransitionMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()

	switch msg.String() {
	case "q":
		m.controller.StopAll()
		return m, tea.Quit

	// Vertical navigation
	case "j", "down":
		m.moveCursorDown(columns)
		return m, nil

	case "k", "up":
		m.moveCursorUp(columns)
		return m, nil

	// Horizontal navigation
	case "h", "left":
		m.moveCursorLeft(columns)
		return m, nil

	case "l", "right":
		m.moveCursorRight(columns)
		return m, nil

	case "g":
		m.cursor.Card = 0
		return m, nil

	case "G":
		if n := len(columns[m.cursor.Column].Cards); n > 0 {
			m.cursor.Card = n - 1
		}
		return m, nil

	case "m": // Move current card to another column
		if m.currentCard(columns) == nil {
			return m, nil
		}
		m.mode = ModeMove
		m.moveTarget = m.cursor.Column
		return m, nil

	case "p": // Toggle pin
		if card := m.currentCard(columns); card != nil {
			m.svc.TogglePin(card.Task.ID)
		}
		return m, nil

	case "x": // Dismiss
		if card := m.currentCard(columns); card != nil {
			m.svc.Dismiss(card.Task.ID)
			m.addToast(ToastInfo, fmt.Sprintf("Dismissed %s", card.Task.ID))
		}
		return m, nil

	case "/": // Search
		m.mode = ModeSearch
		m.searchDraft = m.filter.SearchQuery
		return m, nil

	case "s": // Cycle sort field
		m.cycleSort()
		return m, nil

	case "f": // Toggle pinned-only filter
		m.filter.PinnedOnly = !m.filter.PinnedOnly
		m.clampCursor(m.buildColumns())
		return m, nil

	case "a": // Toggle attention-only filter
		for _, reason := range []domain.AttentionReason{
			domain.ReasonSLABreached,
			domain.ReasonSLAApproaching,
			domain.ReasonOverdueUpdate,
		} {
			m.filter.ToggleReason(reason)
		}
		m.clampCursor(m.buildColumns())
		return m, nil

	case "F": // Clear all filters
		m.filter.Clear()
		return m, nil

	case "r": // Manual sync
		return m, m.syncCmd()
	}

	return m, nil
}

// handleSearchMode edits the search query character by character
func (m Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filter.SearchQuery = m.searchDraft
		m.mode = ModeNormal
		m.clampCursor(m.buildColumns())
		return m, nil

	case "esc":
		m.searchDraft = ""
		m.mode = ModeNormal
		return m, nil

	case "backspace":
		if len(m.searchDraft) > 0 {
			m.searchDraft = m.searchDraft[:len(m.searchDraft)-1]
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.searchDraft += string(msg.Runes)
		}
		return m, nil
	}
}

// handleMoveMode picks the destination column, then resolves transitions
func (m Model) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.moveTarget > 0 {
			m.moveTarget--
		}
		return m, nil

	case "l", "right":
		if m.moveTarget < len(domain.Columns)-1 {
			m.moveTarget++
		}
		return m, nil

	case "enter":
		columns := m.buildColumns()
		card := m.currentCard(columns)
		if card == nil || m.moveTarget == m.cursor.Column {
			m.mode = ModeNormal
			return m, nil
		}
		target := domain.Columns[m.moveTarget]
		return m, m.fetchTransitionsCmd(card.Task, target)

	case "esc":
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}

// handleTransitionMode drives the manual transition picker
func (m Model) handleTransitionMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.pickIndex < len(m.pickCandidates)-1 {
			m.pickIndex++
		}
		return m, nil

	case "k", "up":
		if m.pickIndex > 0 {
			m.pickIndex--
		}
		return m, nil

	case "enter":
		chosen := m.pickCandidates[m.pickIndex].Candidate
		task, target := m.pickTask, m.pickTarget
		m.mode = ModeNormal
		m.pickCandidates = nil
		return m, m.commitCmd(task, target, chosen.ID)

	case "esc":
		m.mode = ModeNormal
		m.pickCandidates = nil
		return m, nil
	}

	return m, nil
}

// cycleSort advances through the sort fields in a fixed order
func (m *Model) cycleSort() {
	order := []domain.SortField{
		domain.SortByUrgency,
		domain.SortByDueDate,
		domain.SortByPriority,
		domain.SortByUpdated,
	}
	for i, field := range order {
		if m.sort.Field == field {
			m.sort.Field = order[(i+1)%len(order)]
			m.sort.Order = domain.SortAsc
			return
		}
	}
	m.sort.Field = domain.SortByUrgency
	m.sort.Order = domain.SortAsc
}
