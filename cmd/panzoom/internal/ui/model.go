package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/recera/panzoom/pkg/frame"
	"github.com/recera/panzoom/pkg/reactive"
	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

// frameInterval is the terminal's stand-in for the display refresh.
const frameInterval = 16 * time.Millisecond

// wheelDelta is the DeltaY reported for one wheel notch.
const wheelDelta = 100

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// ConfigMsg replaces the viewport options, e.g. after the config file
// changed on disk.
type ConfigMsg struct {
	Options viewport.Options
}

type frameMsg struct{}

// viewer holds the state shared by every copy of the Model. Controller and
// binder callbacks close over it.
type viewer struct {
	controller *viewport.Controller
	binder     *shortcuts.Binder
	open       *reactive.State[bool]
	frames     *frame.Queue
	pointers   *viewport.ListenerSet
	keys       *shortcuts.KeyListeners
	surface    *termSurface

	hasCanvas   bool
	tickPending bool

	status    string
	statusErr bool
}

// Model represents the viewer TUI state
type Model struct {
	// Window dimensions
	width  int
	height int

	title        string
	content      [][]rune
	contentWidth int

	v *viewer

	keyMap   KeyMap
	help     help.Model
	showHelp bool
	quitting bool
}

// NewModel creates a viewer showing lines and opens it.
func NewModel(title string, lines []string, opts viewport.Options) Model {
	m := Model{
		title:  title,
		keyMap: DefaultKeyMap,
		help:   help.New(),
	}
	for _, line := range lines {
		r := []rune(line)
		if len(r) > m.contentWidth {
			m.contentWidth = len(r)
		}
		m.content = append(m.content, r)
	}

	v := &viewer{
		open:     reactive.NewState(false),
		frames:   frame.NewQueue(),
		pointers: viewport.NewListenerSet(),
		keys:     shortcuts.NewKeyListeners(),
		surface:  newTermSurface(),
	}
	v.frames.SetErrorHandler(func(err interface{}) {
		v.setError(fmt.Sprintf("frame callback failed: %v", err))
	})
	v.open.Watch(func(open bool) {
		if open {
			v.setStatus("")
		} else {
			v.setStatus("viewer closed")
		}
	})
	v.controller = v.newController(opts)
	v.binder = shortcuts.New(v.open.Get, shortcuts.Callbacks{
		OnClose:     v.close,
		OnZoomIn:    func() { v.controller.ZoomIn() },
		OnZoomOut:   func() { v.controller.ZoomOut() },
		OnResetZoom: func() { v.controller.ResetZoom() },
	})
	v.binder.Mount(v.keys)
	m.v = v

	v.openViewer()
	return m
}

func (v *viewer) newController(opts viewport.Options) *viewport.Controller {
	c := viewport.New(&opts, v.pointers, v.frames)
	if v.hasCanvas {
		c.SetCanvas(v.surface)
	}
	c.SetContent(v.surface)
	c.SetReadout(v.surface)
	return c
}

func (v *viewer) openViewer() {
	v.open.Set(true)
	v.controller.InitTransform()
}

func (v *viewer) close() {
	v.open.Set(false)
	v.controller.Cleanup()
}

// reconfigure swaps in a controller built from opts. An open viewer is
// re-initialised with the new initial scale.
func (v *viewer) reconfigure(opts viewport.Options) {
	v.controller.Cleanup()
	v.controller = v.newController(opts)
	if v.open.Get() {
		v.controller.InitTransform()
	}
	v.setStatus("config reloaded")
}

func (v *viewer) setStatus(s string) {
	v.status = s
	v.statusErr = false
}

func (v *viewer) setError(s string) {
	v.status = s
	v.statusErr = true
}

// scheduleFrame returns a tick when frame callbacks are waiting and no tick
// is already in flight.
func (v *viewer) scheduleFrame() tea.Cmd {
	if v.tickPending || v.frames.Pending() == 0 {
		return nil
	}
	v.tickPending = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.v.scheduleFrame()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.v.surface.rect = canvasRect(msg.Width, msg.Height)
		if !m.v.hasCanvas {
			m.v.hasCanvas = true
			m.v.controller.SetCanvas(m.v.surface)
		}

	case frameMsg:
		m.v.tickPending = false
		m.v.frames.Flush()

	case ConfigMsg:
		m.v.reconfigure(msg.Options)

	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Quit) {
			m.quitting = true
			m.v.binder.Unmount()
			m.v.controller.Cleanup()
			return m, tea.Quit
		}
		m = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, m.v.scheduleFrame()
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	if ev, ok := keyEventFromTea(msg); ok {
		m.v.keys.Dispatch(&ev)
		if ev.DefaultPrevented {
			return m
		}
	}

	switch {
	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keyMap.Reopen):
		if !m.v.open.Get() {
			m.v.openViewer()
		}
	}

	if !m.v.open.Get() {
		return m
	}
	switch {
	case key.Matches(msg, m.keyMap.ZoomIn):
		m.v.controller.ZoomIn()
	case key.Matches(msg, m.keyMap.ZoomOut):
		m.v.controller.ZoomOut()
	case key.Matches(msg, m.keyMap.Reset):
		m.v.controller.ResetZoom()
	case key.Matches(msg, m.keyMap.Copy):
		css := m.v.controller.Transform().CSS()
		if err := writeClipboard(css); err != nil {
			m.v.setError(fmt.Sprintf("copy failed: %v", err))
		} else {
			m.v.setStatus("copied " + css)
		}
	}
	return m
}

// handleMouse routes terminal mouse input the way a browser routes it:
// wheel and press go to the canvas, motion and release go to the document
// listeners so a drag keeps tracking outside the canvas.
func (m Model) handleMouse(msg tea.MouseMsg) {
	x, y := float64(msg.X)+0.5, float64(msg.Y)+0.5

	switch msg.Action {
	case tea.MouseActionMotion:
		m.v.pointers.DispatchMove(viewport.PointerEvent{ClientX: x, ClientY: y})
		return
	case tea.MouseActionRelease:
		m.v.pointers.DispatchUp(viewport.PointerEvent{ClientX: x, ClientY: y})
		return
	}

	if !m.v.open.Get() {
		return
	}
	if msg.Y == 0 {
		if msg.Button == tea.MouseButtonLeft {
			m.pressToolbar(msg.X)
		}
		return
	}
	if !m.inCanvas(msg.X, msg.Y) {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.v.controller.HandleWheel(&viewport.WheelEvent{ClientX: x, ClientY: y, DeltaY: -wheelDelta})
	case tea.MouseButtonWheelDown:
		m.v.controller.HandleWheel(&viewport.WheelEvent{ClientX: x, ClientY: y, DeltaY: wheelDelta})
	case tea.MouseButtonLeft:
		m.v.controller.HandlePointerDown(viewport.PointerEvent{ClientX: x, ClientY: y, Button: viewport.ButtonPrimary})
	case tea.MouseButtonMiddle:
		m.v.controller.HandlePointerDown(viewport.PointerEvent{ClientX: x, ClientY: y, Button: viewport.ButtonMiddle})
	case tea.MouseButtonRight:
		m.v.controller.HandlePointerDown(viewport.PointerEvent{ClientX: x, ClientY: y, Button: viewport.ButtonSecondary})
	}
}

func (m Model) pressToolbar(col int) {
	switch toolbarActionAt(col) {
	case shortcuts.ActionZoomIn:
		m.v.controller.ZoomIn()
	case shortcuts.ActionZoomOut:
		m.v.controller.ZoomOut()
	case shortcuts.ActionResetZoom:
		m.v.controller.ResetZoom()
	case shortcuts.ActionClose:
		m.v.close()
	}
}

func (m Model) inCanvas(col, row int) bool {
	r := m.v.surface.rect
	x, y := float64(col), float64(row)
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// Transform returns the transform last applied to the content surface.
func (m Model) Transform() viewport.Transform {
	return m.v.surface.transform
}

// Open reports whether the viewer is showing.
func (m Model) Open() bool {
	return m.v.open.Get()
}

// canvasRect is the area between the toolbar row and the footer row.
func canvasRect(width, height int) viewport.Rect {
	h := height - 2
	if h < 0 {
		h = 0
	}
	return viewport.Rect{Left: 0, Top: 1, Width: float64(width), Height: float64(h)}
}
