package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"evwatch/internal/modules/monitor/domain"
	monitordto "evwatch/internal/modules/monitor/dto"
	"evwatch/internal/ui/components"
	"evwatch/internal/ui/theme"
	logsview "evwatch/internal/ui/views/logs"
	sessionsview "evwatch/internal/ui/views/sessions"
	statsview "evwatch/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type monitorPort interface {
	AnalyzeFile(ctx context.Context, input monitordto.AnalyzeFileInput) (monitordto.AnalysisOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSessions tabID = iota
	tabAnalytics
	tabLogs
	tabCount
)

var tabLabels = [tabCount]string{
	"Sessions", "Analytics", "Logs",
}

// ─── async messages ───────────────────────────────────────────────────────────

type analysisDoneMsg struct {
	out monitordto.AnalysisOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab    key.Binding
	Upload key.Binding
	Flag   key.Binding
	Ack    key.Binding
	Fetch  key.Binding
	Search key.Binding
	SubTab key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Upload: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload csv")),
		Flag:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flag user")),
		Ack:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "acknowledge")),
		Fetch:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "fetch logs")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search logs")),
		SubTab: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "category")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Upload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Upload, k.SubTab},
		{k.Flag, k.Ack},
		{k.Fetch, k.Search},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the session board, tab routing,
// the upload overlay, and the global help overlay. Every board change flows
// through the domain reducers here; sub-views only render snapshots and emit
// intent messages.
type Model struct {
	baseURL string
	monitor monitorPort

	board domain.Board

	sessionsView sessionsview.Model
	statsView    statsview.Model
	logsView     logsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	uploader  components.Uploader
	uploading bool
	spinner   spinner.Model
	status    string
	width     int
	height    int
}

func NewModel(baseURL string, monitor monitorPort, logs logsview.LogsPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		baseURL:      baseURL,
		monitor:      monitor,
		sessionsView: sessionsview.New(),
		statsView:    statsview.New(),
		logsView:     logsview.New(logs),
		activeTab:    tabSessions,
		keys:         defaultKeys(),
		help:         help.New(),
		uploader:     components.NewUploader(),
		spinner:      sp,
		status:       "ready, press u to upload session data",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The upload overlay intercepts all input while open.
	if m.uploader.Visible() {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.width = size.Width
			m.height = size.Height
			m.uploader.SetWidth(min(m.width-4, 80))
			m.propagateSize()
		}
		var cmd tea.Cmd
		m.uploader, cmd = m.uploader.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.uploader.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case components.UploaderPickMsg:
		if m.uploading {
			return m, nil
		}
		m.uploading = true
		m.status = "analyzing " + filepath.Base(msg.Path) + "…"
		return m, tea.Batch(m.analyzeCmd(msg.Path), m.spinner.Tick)

	case components.UploaderCancelMsg:
		m.status = "upload cancelled"

	case analysisDoneMsg:
		m.uploading = false
		if msg.err != nil {
			m.status = m.guidance(msg.err)
			return m, nil
		}
		m.board = m.board.ReplaceAll(msg.out.Sessions)
		m.propagateBoard()
		m.activeTab = tabSessions
		m.status = fmt.Sprintf("%s: %d sessions analyzed, %d anomalies",
			msg.out.Filename, msg.out.TotalSessions, msg.out.AnomaliesFound)

	case spinner.TickMsg:
		if m.uploading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case sessionsview.SelectMsg:
		m.board = m.board.Select(msg.SessionID)
		m.propagateBoard()

	case sessionsview.FlagMsg:
		m.board = m.board.Flag(msg.SessionID)
		m.propagateBoard()
		m.status = "user flagged and session suspended"

	case sessionsview.AcknowledgeMsg:
		m.board = m.board.Acknowledge(msg.SessionID)
		m.propagateBoard()
		m.status = "alert acknowledged"

	// FetchedMsg must reach the logs view even when another tab is active,
	// otherwise its busy flag never clears.
	case logsview.FetchedMsg:
		var cmd tea.Cmd
		m.logsView, cmd = m.logsView.Update(msg)
		return m, cmd

	// LoadMsg bubbles up from the logs view so the board swap and the tab
	// switch happen in one place.
	case logsview.LoadMsg:
		m.board = m.board.ReplaceAll(msg.Entry.Sessions)
		m.propagateBoard()
		m.activeTab = tabSessions
		m.status = fmt.Sprintf("loaded %s into dashboard", msg.Entry.ID)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the logs search box while it is focused.
		if m.activeTab == tabLogs && m.logsView.Searching() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case "u":
			if m.uploading {
				m.status = "an upload is already running"
				return m, nil
			}
			return m, m.uploader.Open()
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSessions:
		m.sessionsView, tabCmd = m.sessionsView.Update(msg)
	case tabAnalytics:
		m.statsView, tabCmd = m.statsView.Update(msg)
	case tabLogs:
		m.logsView, tabCmd = m.logsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.uploader.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.uploader.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSessions:
		return m.sessionsView.View()
	case tabAnalytics:
		return m.statsView.View()
	case tabLogs:
		return m.logsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "evwatch  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.uploading {
		left = m.spinner.View() + " " + left
	}
	counts := m.board.StatusCounts()
	if counts.Critical > 0 {
		left = theme.Critical.Render(fmt.Sprintf("● %d critical", counts.Critical)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  u:upload  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateBoard() {
	m.sessionsView.SetBoard(m.board)
	m.statsView.SetBoard(m.board)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.sessionsView, _ = m.sessionsView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
	m.logsView, _ = m.logsView.Update(sz)
}

// guidance turns an analysis failure into an operator-facing hint.
func (m Model) guidance(err error) string {
	var serverErr *domain.ServerError
	switch {
	case errors.Is(err, domain.ErrNotCSV):
		return "only .csv files can be analyzed"
	case errors.Is(err, domain.ErrBackendUnreachable):
		return "cannot reach the analysis backend. Check that it is running at " + m.baseURL
	case errors.As(err, &serverErr):
		if serverErr.Detail != "" {
			return "backend rejected the upload: " + serverErr.Detail
		}
		return serverErr.Error()
	default:
		return "analysis failed: " + err.Error()
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) analyzeCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.monitor.AnalyzeFile(context.Background(), monitordto.AnalyzeFileInput{Path: path})
		return analysisDoneMsg{out: out, err: err}
	}
}
