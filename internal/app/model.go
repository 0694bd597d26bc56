// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelinek/taskdeck/internal/attention"
	"github.com/avelinek/taskdeck/internal/config"
	"github.com/avelinek/taskdeck/internal/domain"
	"github.com/avelinek/taskdeck/internal/kanban"
	"github.com/avelinek/taskdeck/internal/reconcile"
	"github.com/avelinek/taskdeck/internal/sync"
	"github.com/avelinek/taskdeck/internal/types"
	"github.com/avelinek/taskdeck/internal/ui/board"
	"github.com/avelinek/taskdeck/internal/ui/statusbar"
	"github.com/avelinek/taskdeck/internal/ui/styles"
	"github.com/avelinek/taskdeck/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal     = types.ModeNormal
	ModeSearch     = types.ModeSearch
	ModeMove       = types.ModeMove
	ModeTransition = types.ModeTransition
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Model is the main application state
type Model struct {
	// Services
	svc        *sync.Service
	controller *reconcile.Controller

	// Board state
	cursor board.Cursor
	mode   Mode
	filter *domain.Filter
	sort   *domain.Sort

	// Search draft while in search mode
	searchDraft string

	// Move/transition state
	moveTarget     int
	pickTask       domain.Task
	pickTarget     domain.ColumnKey
	pickCandidates []kanban.ScoredTransition
	pickIndex      int

	// Toasts
	toasts []Toast

	// Terminal size
	width  int
	height int

	// Styles
	styles *styles.Styles

	// Configuration
	config *config.Config

	// Loading state
	loading  bool
	spinner  spinner.Model
	lastSync time.Time

	// Logger
	logger *slog.Logger
}

// New creates a new application model with the given config and services
func New(cfg *config.Config, svc *sync.Service, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	if logger == nil {
		logger = slog.Default()
	}

	return Model{
		svc:        svc,
		controller: reconcile.NewController(svc, logger),
		mode:       ModeNormal,
		filter:     domain.NewFilter(),
		sort:       &domain.Sort{Field: domain.SortField(cfg.Board.DefaultSort), Order: domain.SortAsc},
		toasts:     []Toast{},
		styles:     styles.New(),
		config:     cfg,
		loading:    true,
		spinner:    s,
		logger:     logger,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.syncCmd(),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case syncDoneMsg:
		wasLoading := m.loading
		m.loading = false
		if msg.err != nil {
			m.addToast(ToastError, fmt.Sprintf("Sync failed: %v", msg.err))
			return m, tickEvery(m.refreshInterval())
		}
		m.lastSync = m.svc.Now()
		if wasLoading {
			m.addToast(ToastSuccess, "Sources synced")
		}
		return m, tickEvery(m.refreshInterval())

	case tickMsg:
		m.expireToasts()
		return m, m.syncCmd()

	case transitionsMsg:
		return m.handleTransitions(msg)

	case commitDoneMsg:
		if msg.err != nil {
			m.addToast(ToastError, fmt.Sprintf("Move failed: %v", msg.err))
			return m, nil
		}
		m.addToast(ToastSuccess, fmt.Sprintf("Moved %s", msg.taskID))
		return m, nil
	}

	return m, nil
}

// handleTransitions resolves a fetched transition list against the target
// column: a confident match commits immediately, otherwise the manual
// picker opens.
func (m Model) handleTransitions(msg transitionsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.mode = ModeNormal
		m.addToast(ToastError, fmt.Sprintf("Transitions unavailable: %v", msg.err))
		return m, nil
	}

	best, err := kanban.BestTransition(msg.target, msg.candidates)
	if err == nil {
		m.mode = ModeNormal
		return m, m.commitCmd(msg.task, msg.target, best.ID)
	}

	// No scoring match: let the user pick from the raw list
	if len(msg.candidates) == 0 {
		m.mode = ModeNormal
		m.addToast(ToastWarning, "No transitions available for this task")
		return m, nil
	}

	m.mode = ModeTransition
	m.pickTask = msg.task
	m.pickTarget = msg.target
	m.pickCandidates = kanban.ScoreTransitions(msg.target, msg.candidates)
	m.pickIndex = 0
	return m, nil
}

// View renders the full TUI frame
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.loading {
		return m.renderLoading()
	}

	columns := m.buildColumns()

	boardHeight := m.height - 3
	mainView := board.Render(columns, m.cursor, m.styles, m.width, boardHeight)

	sb := statusbar.New(m.mode, m.statusInfo(columns), m.width, m.styles)
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, sb.Render())

	if m.mode == ModeTransition {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.renderTransitionPicker())
	}

	if len(m.toasts) > 0 {
		toastView := toast.New(m.styles).Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// buildColumns derives the board from the current task set: attention is
// classified at the sync service's clock, filter and sort apply, then each
// task lands in its column with any optimistic override winning.
func (m Model) buildColumns() []board.Column {
	tasks := m.svc.Tasks()
	now := m.svc.Now()

	att := make(map[string]domain.AttentionResult, len(tasks))
	for _, task := range tasks {
		att[task.ID] = attention.Classify(task, now)
	}

	tasks = m.filter.Apply(tasks, att)
	tasks = m.sort.Apply(tasks, att)

	cards := make(map[domain.ColumnKey][]board.Card)
	for _, task := range tasks {
		column, onBoard := kanban.MapToColumn(task)
		pending := false
		if ov, ok := m.controller.Override(task.ID); ok {
			column, onBoard = ov, true
			pending = true
		}
		if !onBoard {
			continue
		}
		cards[column] = append(cards[column], board.Card{
			Task:      task,
			Attention: att[task.ID],
			Pending:   pending,
		})
	}

	columns := make([]board.Column, 0, len(domain.Columns))
	for _, key := range domain.Columns {
		columns = append(columns, board.Column{
			Key:   key,
			Title: key.Label(),
			Cards: cards[key],
		})
	}
	return columns
}

// statusInfo builds the trailing status bar text
func (m Model) statusInfo(columns []board.Column) string {
	if m.mode == ModeSearch {
		return "/" + m.searchDraft
	}
	if m.mode == ModeMove {
		return "move to: " + domain.Columns[m.moveTarget].Label()
	}

	total := 0
	for _, col := range columns {
		total += len(col.Cards)
	}
	info := fmt.Sprintf("%d tasks", total)
	if m.filter.IsActive() {
		info += " (filtered)"
	}
	if !m.lastSync.IsZero() {
		info += " · synced " + m.lastSync.Format("15:04")
	}
	return info
}

func (m Model) renderLoading() string {
	content := fmt.Sprintf("%s Syncing sources...", m.spinner.View())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderTransitionPicker shows the manual transition list when no
// candidate scored against the target column
func (m Model) renderTransitionPicker() string {
	title := m.styles.OverlayTitle.Render(fmt.Sprintf("Pick transition → %s", m.pickTarget.Label()))

	lines := []string{title}
	for i, st := range m.pickCandidates {
		label := st.Candidate.Name
		if st.Candidate.ToStatusName != "" {
			label += " → " + st.Candidate.ToStatusName
		}
		style := m.styles.MenuItem
		prefix := "  "
		if i == m.pickIndex {
			style = m.styles.MenuItemActive
			prefix = "▶ "
		}
		lines = append(lines, style.Render(prefix+label))
	}

	return m.styles.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) refreshInterval() time.Duration {
	return time.Duration(m.config.Board.RefreshSeconds) * time.Second
}

func (m *Model) addToast(level ToastLevel, message string) {
	m.toasts = append(m.toasts, types.NewToast(level, message))
}

func (m *Model) expireToasts() {
	now := time.Now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}
