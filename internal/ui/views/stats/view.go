package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"evwatch/internal/modules/monitor/domain"
	"evwatch/internal/ui/theme"
)

// Model renders the analytics tab. It is a pure projection of the board
// snapshot; every number here is recomputed from the session list on render.
type Model struct {
	board  domain.Board
	body   viewport.Model
	width  int
	height int
}

func New() Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{body: vp}
}

// SetBoard installs a new board snapshot.
func (m *Model) SetBoard(board domain.Board) {
	m.board = board
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.body.Width = size.Width - 4
		m.body.Height = size.Height - 4
		return m, nil
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	m.body.SetContent(m.render())
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.body.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

var cardStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Surface1).
	Padding(0, 2).
	Align(lipgloss.Center)

func card(title, value string, accent lipgloss.Style) string {
	return cardStyle.Render(
		theme.Muted.Render(title) + "\n" + accent.Render(value),
	)
}

func (m Model) render() string {
	board := m.board
	status := board.StatusCounts()
	cats := domain.CountByCategory(board.Sessions)
	agg := board.Aggregate()

	var sb strings.Builder

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Active Sessions", fmt.Sprintf("%d", board.ActiveCount()), theme.Ok),
		card("Total Sessions", fmt.Sprintf("%d", len(board.Sessions)), theme.Title),
		card("Critical Alerts", fmt.Sprintf("%d", status.Critical), theme.Critical),
		card("Warnings", fmt.Sprintf("%d", status.Warning), theme.Warning),
	))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Bill Fraud Detected", fmt.Sprintf("%d", cats.Fraud), theme.Critical),
		card("DoS Attacks Detected", fmt.Sprintf("%d", cats.DoS), theme.Hot),
		card("Multi-User Conflicts", fmt.Sprintf("%d", cats.MultiUser), theme.Warning),
	))

	sb.WriteString("\n\n" + theme.Title.Render("Anomaly Distribution") + "\n")
	total := len(board.Sessions)
	sb.WriteString(bar("Normal", cats.None, total, theme.Ok))
	sb.WriteString(bar("Bill Fraud", cats.Fraud, total, theme.Critical))
	sb.WriteString(bar("DoS Attack", cats.DoS, total, theme.Hot))
	sb.WriteString(bar("Multi-User", cats.MultiUser, total, theme.Warning))

	sb.WriteString("\n" + theme.Title.Render("Energy Consumption by Status") + "\n")
	maxEnergy := 0.0
	for _, e := range agg.EnergyByStatus {
		if e > maxEnergy {
			maxEnergy = e
		}
	}
	sb.WriteString(energyBar("Critical", agg.EnergyByStatus[domain.StatusCritical], maxEnergy, theme.Critical))
	sb.WriteString(energyBar("Warning", agg.EnergyByStatus[domain.StatusWarning], maxEnergy, theme.Warning))
	sb.WriteString(energyBar("Normal", agg.EnergyByStatus[domain.StatusNormal], maxEnergy, theme.Ok))

	sb.WriteString("\n" + theme.Title.Render("Session Statistics") + "\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Avg Duration", fmt.Sprintf("%.1f min", agg.AvgDurationMin), theme.Title),
		card("Avg Energy", fmt.Sprintf("%.1f kWh", agg.AvgEnergyKWh), theme.Ok),
		card("Detection Rate", fmt.Sprintf("%.0f%%", agg.DetectionRate*100), theme.Warning),
		card("Avg Risk Score", fmt.Sprintf("%.0f%%", agg.AvgScore*100), theme.Critical),
	))

	return sb.String()
}

const barWidth = 40

// bar renders one row of the distribution chart, scaled to the list size.
func bar(label string, count, total int, accent lipgloss.Style) string {
	filled := 0
	if total > 0 {
		filled = count * barWidth / total
	}
	line := fmt.Sprintf("%-12s %s %d\n",
		label,
		accent.Render(strings.Repeat("█", filled))+theme.Muted.Render(strings.Repeat("░", barWidth-filled)),
		count,
	)
	return line
}

func energyBar(label string, value, max float64, accent lipgloss.Style) string {
	filled := 0
	if max > 0 {
		filled = int(value / max * barWidth)
	}
	if filled > barWidth {
		filled = barWidth
	}
	return fmt.Sprintf("%-12s %s %.1f kWh\n",
		label,
		accent.Render(strings.Repeat("█", filled))+theme.Muted.Render(strings.Repeat("░", barWidth-filled)),
		value,
	)
}
