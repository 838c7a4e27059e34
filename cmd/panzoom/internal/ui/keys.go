package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/recera/panzoom/pkg/shortcuts"
)

// KeyMap defines the host keys. Escape and the modifier shortcuts belong to
// the shortcut binder and are not listed here.
type KeyMap struct {
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Reset   key.Binding
	Reopen  key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	ZoomIn: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "zoom out"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Reopen: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy css"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Reopen, k.Copy},
		{k.Help, k.Quit},
	}
}

// keyEventFromTea converts a terminal key press to a shortcut key event.
//
// Terminals cannot report Ctrl together with punctuation, so Alt stands in
// for the command modifier: alt+= zooms in like Cmd+= does in a browser.
func keyEventFromTea(msg tea.KeyMsg) (shortcuts.KeyEvent, bool) {
	var ev shortcuts.KeyEvent
	if msg.Alt {
		ev.Modifiers |= shortcuts.ModMeta
	}

	switch msg.Type {
	case tea.KeyEsc:
		ev.Key = shortcuts.KeyEscape
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return ev, false
		}
		ev.Key = string(msg.Runes)
	default:
		name := strings.TrimPrefix(msg.String(), "alt+")
		if !strings.HasPrefix(name, "ctrl+") {
			return ev, false
		}
		ev.Modifiers |= shortcuts.ModCtrl
		ev.Key = strings.TrimPrefix(name, "ctrl+")
	}
	return ev, true
}
