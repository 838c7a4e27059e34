package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

// Style definitions
var (
	primaryColor = lipgloss.Color("#3b82f6")
	errorColor   = lipgloss.Color("#ef4444")
	mutedColor   = lipgloss.Color("#94a3b8")

	buttonStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	readoutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e2e8f0"))

	grabbingStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
)

type toolbarButton struct {
	label  string
	action shortcuts.Action
}

var toolbar = []toolbarButton{
	{"[+]", shortcuts.ActionZoomIn},
	{"[-]", shortcuts.ActionZoomOut},
	{"[reset]", shortcuts.ActionResetZoom},
	{"[x]", shortcuts.ActionClose},
}

// toolbarActionAt maps a column of the toolbar row to its button. Buttons
// start at column 1 and are separated by one space.
func toolbarActionAt(col int) shortcuts.Action {
	x := 1
	for _, b := range toolbar {
		if col >= x && col < x+len(b.label) {
			return b.action
		}
		x += len(b.label) + 1
	}
	return shortcuts.ActionNone
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	rows := make([]string, 0, m.height)
	rows = append(rows, m.renderToolbar())
	rows = append(rows, m.renderCanvas()...)
	rows = append(rows, m.renderFooter())
	return strings.Join(rows, "\n")
}

func (m Model) renderToolbar() string {
	var b strings.Builder
	b.WriteString(" ")
	for i, btn := range toolbar {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(buttonStyle.Render(btn.label))
	}
	b.WriteString("  ")
	b.WriteString(readoutStyle.Render(m.v.surface.readout))
	if m.title != "" {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render(m.title))
	}
	return b.String()
}

func (m Model) renderCanvas() []string {
	r := m.v.surface.rect
	height := int(r.Height)
	rows := make([]string, height)

	if !m.v.open.Get() {
		msg := mutedStyle.Render("viewer closed · o to reopen · q to quit")
		if height > 0 {
			rows[height/2] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, msg)
		}
		return rows
	}

	style := contentStyle
	if m.v.surface.cursor == viewport.CursorGrabbing {
		style = grabbingStyle
	}

	line := make([]rune, m.width)
	for i := range rows {
		row := int(r.Top) + i
		for col := range line {
			ch, ok := m.v.surface.contentAt(m.content, m.contentWidth, col, row)
			if !ok {
				ch = ' '
			}
			line[col] = ch
		}
		rows[i] = style.Render(strings.TrimRight(string(line), " "))
	}
	return rows
}

func (m Model) renderFooter() string {
	if m.v.status != "" {
		if m.v.statusErr {
			return " " + errorStyle.Render(m.v.status)
		}
		return " " + mutedStyle.Render(m.v.status)
	}
	return " " + m.help.ShortHelpView(m.keyMap.ShortHelp())
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(buttonStyle.Render("panzoom"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keyMap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("esc closes the viewer · alt+= / alt+- / alt+0 zoom in, out, reset"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("wheel zooms toward the pointer · left drag pans"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(b.String()))
}
