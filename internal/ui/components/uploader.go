package components

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"evwatch/internal/ui/theme"
)

// UploaderPickMsg is emitted when the user confirms a CSV file.
type UploaderPickMsg struct{ Path string }

// UploaderCancelMsg is emitted when the user presses esc.
type UploaderCancelMsg struct{}

var (
	uploaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	uploaderHint = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Uploader is a file-picking overlay restricted to .csv files. It only
// chooses the path; submitting it to the backend is the caller's job.
type Uploader struct {
	picker  filepicker.Model
	visible bool
	notice  string
	width   int
}

// NewUploader creates an inactive Uploader rooted at the working directory.
func NewUploader() Uploader {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowPermissions = false
	fp.Height = 12
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	return Uploader{picker: fp}
}

// Visible reports whether the overlay is currently shown.
func (u Uploader) Visible() bool { return u.visible }

// Open shows the picker and returns its init command.
func (u *Uploader) Open() tea.Cmd {
	u.visible = true
	u.notice = ""
	return u.picker.Init()
}

// SetWidth sets the render width for the overlay.
func (u *Uploader) SetWidth(w int) { u.width = w }

func (u Uploader) Update(msg tea.Msg) (Uploader, tea.Cmd) {
	if !u.visible {
		return u, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		u.visible = false
		return u, func() tea.Msg { return UploaderCancelMsg{} }
	}

	var cmd tea.Cmd
	u.picker, cmd = u.picker.Update(msg)

	if ok, path := u.picker.DidSelectFile(msg); ok {
		// The picker greys out non-CSV entries, but enter on one still
		// lands here on some terminals. Reject locally, no request goes out.
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			u.notice = "only .csv files can be analyzed"
			return u, cmd
		}
		u.visible = false
		return u, tea.Batch(cmd, func() tea.Msg { return UploaderPickMsg{Path: path} })
	}
	if ok, path := u.picker.DidSelectDisabledFile(msg); ok {
		u.notice = filepath.Base(path) + " is not a .csv file"
	}
	return u, cmd
}

func (u Uploader) View() string {
	if !u.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Upload session data") + "\n")
	sb.WriteString(uploaderHint.Render(u.picker.CurrentDirectory) + "\n\n")
	sb.WriteString(u.picker.View())
	if u.notice != "" {
		sb.WriteString("\n" + theme.Warning.Render(u.notice))
	}
	sb.WriteString("\n" + uploaderHint.Render("enter: analyze  esc: cancel"))

	w := u.width
	if w < 20 {
		w = 72
	}
	return uploaderStyle.Width(w - 2).Render(sb.String())
}
