package logs

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"evwatch/internal/modules/logs/domain"
	"evwatch/internal/modules/logs/dto"
	"evwatch/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LogsPort interface {
	FetchAndAppend(ctx context.Context) (dto.FetchOutput, error)
	List(ctx context.Context) []domain.LogEntry
	Filter(ctx context.Context, input dto.FilterInput) []domain.LogEntry
}

// ─── messages ────────────────────────────────────────────────────────────────

// FetchedMsg completes a backend fetch, success or not.
type FetchedMsg struct {
	Entry domain.LogEntry
	Err   error
}

// LoadMsg asks the app to load the entry's sessions into the dashboard.
type LoadMsg struct{ Entry domain.LogEntry }

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry domain.LogEntry
}

func (i entryItem) Title() string { return i.entry.ID }
func (i entryItem) Description() string {
	return fmt.Sprintf("%s  %d sessions, %d anomalies",
		i.entry.Timestamp, i.entry.SessionCount, i.entry.AnomalyCount)
}
func (i entryItem) FilterValue() string { return i.entry.ID }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     LogsPort
	list     list.Model
	search   textinput.Model
	spinner  spinner.Model
	fetching bool
	status   string
	width    int
	height   int
}

func New(port LogsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Charger Logs"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "search by id or timestamp…"
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, search: ti, spinner: sp}
}

// Searching reports whether the search box has focus. The app model checks
// this to keep global keys out of the query text.
func (m Model) Searching() bool { return m.search.Focused() }

// Fetching reports whether a backend fetch is in flight.
func (m Model) Fetching() bool { return m.fetching }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case FetchedMsg:
		m.fetching = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("fetched %s with %d sessions", msg.Entry.ID, msg.Entry.SessionCount)
		return m, m.refresh()

	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.search.Blur()
				return m, nil
			}
			before := m.search.Value()
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
			if m.search.Value() != before {
				cmds = append(cmds, m.refresh())
			}
			return m, tea.Batch(cmds...)
		}

		switch msg.String() {
		case "/":
			return m, m.search.Focus()
		case "r":
			if m.fetching {
				return m, nil
			}
			m.fetching = true
			m.status = ""
			return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)
		case "enter":
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				entry := item.entry
				return m, func() tea.Msg { return LoadMsg{Entry: entry} }
			}
			return m, nil
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := "search: " + m.search.View()
	if m.fetching {
		header += "   " + m.spinner.View() + " fetching…"
	} else if m.status != "" {
		header += "   " + theme.Muted.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Padding(0, 1).Render(header),
		m.list.View(),
		theme.Muted.Render(" r: fetch from backend  /: search  enter: load into dashboard"),
	)
}

// ─── private ─────────────────────────────────────────────────────────────────

// refresh re-reads the stored entries through the current query. The stored
// list itself is never touched; a query with no hits just shows empty.
func (m *Model) refresh() tea.Cmd {
	entries := m.port.Filter(context.Background(), dto.FilterInput{Query: m.search.Value()})
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return m.list.SetItems(items)
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.FetchAndAppend(context.Background())
		return FetchedMsg{Entry: out.Entry, Err: err}
	}
}
