package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/tdee/internal/cli/formatter"
	"github.com/alexanderramin/tdee/internal/contract"
	"github.com/alexanderramin/tdee/internal/domain"
)

// ── key bindings ─────────────────────────────────────────────────────────────

type dashKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func newDashKeyMap() dashKeyMap {
	return dashKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Refresh, k.Quit}
}

func (k dashKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ── messages ─────────────────────────────────────────────────────────────────

type dashLoadedMsg struct {
	summary *contract.SummaryResponse
	entries []domain.LogEntry
	err     error
}

type dashDeletedMsg struct {
	entry domain.LogEntry
	tdee  int
	err   error
}

// ── model ────────────────────────────────────────────────────────────────────

// dashVisibleRows caps how many entries the list shows around the cursor.
const dashVisibleRows = 14

// dashModel is the interactive dashboard: the summary box above a
// selectable list of log entries, newest first.
type dashModel struct {
	app     *App
	keys    dashKeyMap
	help    help.Model
	loading bool
	err     error
	notice  string

	summary *contract.SummaryResponse
	entries []domain.LogEntry
	cursor  int
	width   int
}

func newDashModel(app *App) *dashModel {
	return &dashModel{
		app:     app,
		keys:    newDashKeyMap(),
		help:    help.New(),
		loading: true,
	}
}

func (m *dashModel) Init() tea.Cmd {
	return m.load()
}

func (m *dashModel) load() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		req := contract.NewSummaryRequest()
		now := app.now()
		req.Now = &now

		summary, err := app.Tracker.GetSummary(ctx, req)
		if err != nil {
			return dashLoadedMsg{err: err}
		}
		entries, err := app.Tracker.ListLogs(ctx, 0)
		if err != nil {
			return dashLoadedMsg{err: err}
		}
		return dashLoadedMsg{summary: summary, entries: entries}
	}
}

func (m *dashModel) deleteSelected() tea.Cmd {
	if m.cursor >= len(m.entries) {
		return nil
	}
	entry := m.entries[m.cursor]
	app := m.app
	return func() tea.Msg {
		tdee, err := app.Tracker.DeleteLog(context.Background(), entry.Date)
		return dashDeletedMsg{entry: entry, tdee: tdee, err: err}
	}
}

func (m *dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case dashLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.summary = msg.summary
		m.entries = msg.entries
		m.cursor = min(m.cursor, max(0, len(m.entries)-1))
		return m, nil

	case dashDeletedMsg:
		if msg.err != nil {
			m.notice = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.notice = fmt.Sprintf("Deleted %s. TDEE is now %s", msg.entry.DateKey(), formatter.Kcal(float64(msg.tdee)))
		m.loading = true
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Delete):
			return m, m.deleteSelected()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.notice = ""
			return m, m.load()
		}
	}
	return m, nil
}

func (m *dashModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.summary == nil:
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
	default:
		b.WriteString(formatter.FormatSummary(m.summary, weightSeries(m.entries)))
		b.WriteString("\n\n")
		b.WriteString(m.renderEntries())
	}

	if m.notice != "" {
		b.WriteString("\n  " + m.notice + "\n")
	}
	b.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m *dashModel) renderEntries() string {
	if len(m.entries) == 0 {
		return "  " + formatter.Dim("No log entries yet. Add one with: tdee log add --weight KG") + "\n"
	}

	start := max(0, m.cursor-dashVisibleRows+1)
	end := min(len(m.entries), start+dashVisibleRows)
	now := m.app.now()

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		e := m.entries[i]
		marker := " "
		date := e.DateKey()
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("›")
			date = formatter.Bold(date)
		}
		rows = append(rows, []string{
			marker,
			date,
			formatter.Dim(formatter.RelativeDayFrom(e.Date, now)),
			formatter.Kg(e.Weight),
			formatter.OptionalKcal(e.Calories),
		})
	}

	table := formatter.RenderTable([]string{" ", "DATE", "WHEN", "WEIGHT", "CALORIES"}, rows, 3, 4)
	var b strings.Builder
	for _, l := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		b.WriteString("  " + l + "\n")
	}
	if len(m.entries) > dashVisibleRows {
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("%d of %d entries", end-start, len(m.entries))) + "\n")
	}
	return b.String()
}
