//go:build !wasm
// +build !wasm

package live

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/recera/panzoom/pkg/frame"
	"github.com/recera/panzoom/pkg/reactive"
	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

// remoteSurface stands in for the client's canvas, content and readout
// elements and records what the controller writes to them.
type remoteSurface struct {
	rect      viewport.Rect
	transform viewport.Transform
	origin    string
	cursor    viewport.Cursor
	zoom      string
}

func (r *remoteSurface) BoundingRect() viewport.Rect { return r.rect }
func (r *remoteSurface) SetTransform(t viewport.Transform) { r.transform = t }
func (r *remoteSurface) SetTransformOrigin(origin string) { r.origin = origin }
func (r *remoteSurface) SetCursor(c viewport.Cursor) { r.cursor = c }
func (r *remoteSurface) SetText(text string) { r.zoom = text }

// Session represents a live connection session. It hosts one viewport
// controller and one shortcut binder on behalf of the client.
type Session struct {
	ID           string
	conn         *websocket.Conn
	lastSeq      uint64
	sendChan     chan []byte
	sendTextChan chan []byte // For JSON/text messages
	closeChan    chan struct{}
	logger       *slog.Logger

	// mu serialises event handling; the controller is single-threaded.
	mu         sync.Mutex
	controller *viewport.Controller
	binder     *shortcuts.Binder
	open       *reactive.State[bool]
	frames     *frame.Queue
	pointers   *viewport.ListenerSet
	keys       *shortcuts.KeyListeners
	surface    *remoteSurface
	hasCanvas  bool
	last       StateMessage
	closed     bool
}

func newSession(id string, conn *websocket.Conn, opts viewport.Options) *Session {
	s := &Session{
		ID:           id,
		conn:         conn,
		sendChan:     make(chan []byte, 256),
		sendTextChan: make(chan []byte, 256),
		closeChan:    make(chan struct{}),
		logger:       slog.Default().With("session", id),
		open:         reactive.NewState(false),
		frames:       frame.NewQueue(),
		pointers:     viewport.NewListenerSet(),
		keys:         shortcuts.NewKeyListeners(),
		surface:      &remoteSurface{},
	}
	s.frames.SetErrorHandler(func(err interface{}) {
		s.logger.Error("frame callback failed", "err", err)
	})

	s.controller = viewport.New(&opts, s.pointers, s.frames)
	s.controller.SetContent(s.surface)
	s.controller.SetReadout(s.surface)

	s.binder = shortcuts.New(s.open.Get, shortcuts.Callbacks{
		OnClose:     s.closeViewer,
		OnZoomIn:    s.controller.ZoomIn,
		OnZoomOut:   s.controller.ZoomOut,
		OnResetZoom: s.controller.ResetZoom,
	})
	s.binder.Mount(s.keys)

	s.last = s.snapshot()
	return s
}

// State returns the last state sent to the client.
func (s *Session) State() StateMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// handleEvent applies one client event, runs due frame callbacks and
// publishes the resulting state if it changed.
func (s *Session) handleEvent(event *Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	switch event.Type {
	case EventOpen:
		s.open.Set(true)
		s.controller.InitTransform()
	case EventClose:
		s.closeViewer()
	case EventResize:
		s.surface.rect = event.Rect
		if !s.hasCanvas {
			s.hasCanvas = true
			s.controller.SetCanvas(s.surface)
		}
	case EventWheel:
		s.controller.HandleWheel(&viewport.WheelEvent{ClientX: event.X, ClientY: event.Y, DeltaY: event.DeltaY})
	case EventPointerDown:
		s.controller.HandlePointerDown(viewport.PointerEvent{ClientX: event.X, ClientY: event.Y, Button: event.Button})
	case EventPointerMove:
		s.pointers.DispatchMove(viewport.PointerEvent{ClientX: event.X, ClientY: event.Y})
	case EventPointerUp:
		s.pointers.DispatchUp(viewport.PointerEvent{ClientX: event.X, ClientY: event.Y})
	case EventKeyDown:
		s.keys.Dispatch(&shortcuts.KeyEvent{Key: event.Key, Modifiers: event.Modifiers})
	case EventZoomIn:
		s.controller.ZoomIn()
	case EventZoomOut:
		s.controller.ZoomOut()
	case EventReset:
		s.controller.ResetZoom()
	default:
		s.logger.Warn("unknown event type", "type", event.Type)
		return
	}

	// The event handler has completed; this is the session's paint point.
	s.frames.Flush()
	s.publish()
}

// closeViewer hides the viewer: shortcuts stop dispatching and any drag
// session is dropped.
func (s *Session) closeViewer() {
	s.open.Set(false)
	s.controller.Cleanup()
}

func (s *Session) snapshot() StateMessage {
	t := s.surface.transform
	return StateMessage{
		Type:       "state",
		Transform:  t.CSS(),
		Origin:     s.surface.origin,
		Cursor:     string(s.surface.cursor),
		Zoom:       s.surface.zoom,
		Open:       s.open.Get(),
		Scale:      t.Scale,
		TranslateX: t.TranslateX,
		TranslateY: t.TranslateY,
	}
}

func (s *Session) publish() {
	msg := s.snapshot()
	if msg == s.last {
		return
	}
	s.last = msg

	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("failed to encode state", "err", err)
		return
	}
	select {
	case s.sendTextChan <- data:
		s.lastSeq++
	default:
		s.logger.Warn("send buffer full, dropping state")
	}
}

// shutdown releases the session's listeners. Safe to call more than once.
func (s *Session) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.controller.Cleanup()
	s.binder.Unmount()
}
