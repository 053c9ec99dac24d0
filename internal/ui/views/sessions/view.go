package sessions

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"evwatch/internal/modules/monitor/domain"
	"evwatch/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SelectMsg is emitted when the cursor lands on a different session.
type SelectMsg struct{ SessionID string }

// FlagMsg asks for the session to be escalated to critical.
type FlagMsg struct{ SessionID string }

// AcknowledgeMsg asks for the session's alert to be cleared.
type AcknowledgeMsg struct{ SessionID string }

// ─── category sub-tabs ───────────────────────────────────────────────────────

type subTab struct {
	label string
	cat   domain.Category
	all   bool
}

var subTabs = []subTab{
	{label: "All", all: true},
	{label: "Fraud", cat: domain.CategoryFraud},
	{label: "DoS", cat: domain.CategoryDoS},
	{label: "Multi-User", cat: domain.CategoryMultiUser},
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	board  domain.Board
	tab    int
	table  table.Model
	detail viewport.Model
	risk   progress.Model
	width  int
	height int
}

func New() Model {
	t := table.New(
		table.WithColumns(columns(60)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(theme.Sapphire).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Surface1).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.Base).
		Background(theme.Lavender).
		Bold(true)
	t.SetStyles(styles)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	bar := progress.New(
		progress.WithGradient(string(theme.Green), string(theme.Red)),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return Model{table: t, detail: vp, risk: bar}
}

// SetBoard installs a new board snapshot and rebuilds the table. The cursor
// follows the board's selection when it is visible under the current sub-tab.
func (m *Model) SetBoard(board domain.Board) {
	m.board = board
	m.rebuild()
}

// Board returns the snapshot currently rendered.
func (m Model) Board() domain.Board { return m.board }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.rebuild()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "1", "2", "3", "4":
			m.tab = int(msg.String()[0] - '1')
			m.rebuild()
			if id, ok := m.cursorID(); ok && id != m.board.SelectedID {
				cmds = append(cmds, selectCmd(id))
			}
			return m, tea.Batch(cmds...)
		case "f":
			if id, ok := m.cursorID(); ok {
				return m, func() tea.Msg { return FlagMsg{SessionID: id} }
			}
			return m, nil
		case "a":
			if id, ok := m.cursorID(); ok {
				return m, func() tea.Msg { return AcknowledgeMsg{SessionID: id} }
			}
			return m, nil
		}
	}

	prev := m.table.Cursor()
	var tCmd tea.Cmd
	m.table, tCmd = m.table.Update(msg)
	cmds = append(cmds, tCmd)
	if m.table.Cursor() != prev {
		if id, ok := m.cursorID(); ok {
			cmds = append(cmds, selectCmd(id))
		}
	}

	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	tableW := m.width * 6 / 10
	detailW := m.width - tableW

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSubTabs(),
		m.table.View(),
	)
	leftPane := lipgloss.NewStyle().
		Width(tableW).
		Height(m.height).
		Render(left)

	m.detail.SetContent(m.renderDetail(detailW - 4))
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, detailPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func selectCmd(id string) tea.Cmd {
	return func() tea.Msg { return SelectMsg{SessionID: id} }
}

func columns(w int) []table.Column {
	return []table.Column{
		{Title: "Session", Width: w * 14 / 100},
		{Title: "Charger", Width: w * 10 / 100},
		{Title: "User", Width: w * 12 / 100},
		{Title: "Start", Width: w * 10 / 100},
		{Title: "Min", Width: w * 8 / 100},
		{Title: "kWh", Width: w * 9 / 100},
		{Title: "Risk", Width: w * 8 / 100},
		{Title: "Category", Width: w * 14 / 100},
		{Title: "Status", Width: w * 10 / 100},
	}
}

func (m Model) visible() []domain.Session {
	st := subTabs[m.tab]
	if st.all {
		return m.board.Sessions
	}
	return m.board.ByCategory(st.cat)
}

func (m *Model) rebuild() {
	sessions := m.visible()
	rows := make([]table.Row, len(sessions))
	cursor := 0
	for i, s := range sessions {
		label := s.Category.Label()
		if label == "" {
			label = "—"
		}
		rows[i] = table.Row{
			s.SessionID,
			s.ChargerID,
			s.UserID,
			s.StartClock,
			fmt.Sprintf("%.0f", s.DurationMin),
			fmt.Sprintf("%.2f", s.EnergyKWh),
			fmt.Sprintf("%.0f%%", s.Score*100),
			label,
			string(s.Status),
		}
		if s.SessionID == m.board.SelectedID {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(cursor)
	}
}

func (m Model) cursorID() (string, bool) {
	sessions := m.visible()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(sessions) {
		return "", false
	}
	return sessions[idx].SessionID, true
}

func (m *Model) resize() {
	tableW := m.width * 6 / 10
	detailW := m.width - tableW
	m.table.SetColumns(columns(tableW - 4))
	m.table.SetWidth(tableW)
	m.table.SetHeight(m.height - 3)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderSubTabs() string {
	counts := domain.CountByCategory(m.board.Sessions)
	totals := []int{len(m.board.Sessions), counts.Fraud, counts.DoS, counts.MultiUser}

	parts := make([]string, len(subTabs))
	for i, st := range subTabs {
		label := fmt.Sprintf(" %s (%d) ", st.label, totals[i])
		if i == m.tab {
			parts[i] = theme.Hot.Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderDetail(width int) string {
	s, ok := m.board.Selected()
	if !ok {
		return theme.Muted.Render("Select a session to view details")
	}

	var sb strings.Builder
	sb.WriteString(m.alertStyle(s).Render(alertTitle(s)) + "\n\n")
	sb.WriteString(wrap(alertDescription(s), width) + "\n\n")

	sb.WriteString(theme.Title.Render("Session Details") + "\n")
	sb.WriteString(theme.Muted.Render("session:  ") + s.SessionID + "\n")
	sb.WriteString(theme.Muted.Render("user:     ") + s.UserID + "\n")
	sb.WriteString(theme.Muted.Render("charger:  ") + s.ChargerID + "\n")
	sb.WriteString(theme.Muted.Render("start:    ") + s.StartClock + "\n")
	sb.WriteString(fmt.Sprintf("%s%.0f min\n", theme.Muted.Render("duration: "), s.DurationMin))
	sb.WriteString(fmt.Sprintf("%s%.2f kWh\n", theme.Muted.Render("energy:   "), s.EnergyKWh))
	if s.Payment != nil {
		sb.WriteString(fmt.Sprintf("%s₹%.2f\n", theme.Muted.Render("payment:  "), *s.Payment))
	}
	if s.IPAddress != "" {
		sb.WriteString(theme.Muted.Render("ip:       ") + s.IPAddress + "\n")
	}

	if s.Score > 0 {
		sb.WriteString("\n" + theme.Title.Render("Risk Score") +
			fmt.Sprintf("  %.0f%%\n", s.Score*100))
		sb.WriteString(m.risk.ViewAs(s.Score) + "\n")
	}

	sb.WriteString("\n")
	if s.Status == domain.StatusCritical {
		sb.WriteString(theme.Critical.Render("f: flag user & suspend session") + "\n")
	}
	if s.Status != domain.StatusNormal {
		sb.WriteString(theme.Ok.Render("a: acknowledge alert") + "\n")
	}
	return sb.String()
}

func (m Model) alertStyle(s domain.Session) lipgloss.Style {
	switch s.Status {
	case domain.StatusCritical:
		return theme.Critical
	case domain.StatusWarning:
		return theme.Warning
	default:
		return theme.Muted
	}
}

func alertTitle(s domain.Session) string {
	switch s.Category {
	case domain.CategoryFraud:
		return "CRITICAL ALERT: FRAUD DETECTED"
	case domain.CategoryDoS:
		return "CRITICAL ALERT: DoS ATTACK DETECTED"
	case domain.CategoryMultiUser:
		return "WARNING: MULTI-USER CONFLICT"
	default:
		return "Session Information"
	}
}

func alertDescription(s domain.Session) string {
	switch s.Category {
	case domain.CategoryFraud:
		payment := 0.0
		if s.Payment != nil {
			payment = *s.Payment
		}
		return fmt.Sprintf("High fraud score (%.0f%%). Large amount of energy (%.2f kWh) delivered with minimal payment (₹%.2f).",
			s.Score*100, s.EnergyKWh, payment)
	case domain.CategoryDoS:
		return fmt.Sprintf("Potential DoS attack detected. Abnormally short session duration (%.0f min) indicating possible system abuse.",
			s.DurationMin)
	case domain.CategoryMultiUser:
		return "Multiple users detected on the same charger with overlapping time slots."
	default:
		return "No anomalies detected for this session."
	}
}

// wrap breaks text on spaces so the alert copy fits the detail pane.
func wrap(text string, width int) string {
	if width < 16 {
		width = 16
	}
	words := strings.Fields(text)
	var sb strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len(w) > width {
				sb.WriteString("\n")
				line = 0
			} else {
				sb.WriteString(" ")
				line++
			}
		}
		sb.WriteString(w)
		line += len(w)
	}
	return sb.String()
}
