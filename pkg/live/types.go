package live

import (
	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

// MessageType represents the type of live protocol message
type MessageType uint8

const (
	// Frame types
	FrameEvent   MessageType = 0x01
	FrameControl MessageType = 0x02
)

// EventType represents client-side event types
type EventType uint8

const (
	EventOpen        EventType = 0x01
	EventClose       EventType = 0x02
	EventResize      EventType = 0x03
	EventWheel       EventType = 0x04
	EventPointerDown EventType = 0x05
	EventPointerMove EventType = 0x06
	EventPointerUp   EventType = 0x07
	EventKeyDown     EventType = 0x08
	EventZoomIn      EventType = 0x09
	EventZoomOut     EventType = 0x0A
	EventReset       EventType = 0x0B
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventResize:
		return "resize"
	case EventWheel:
		return "wheel"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerMove:
		return "pointermove"
	case EventPointerUp:
		return "pointerup"
	case EventKeyDown:
		return "keydown"
	case EventZoomIn:
		return "zoomin"
	case EventZoomOut:
		return "zoomout"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event represents a client-side event. Only the fields relevant to Type
// are encoded.
type Event struct {
	Type EventType

	// Pointer and wheel position
	X float64
	Y float64

	DeltaY float64
	Button viewport.Button

	// Canvas geometry for EventResize
	Rect viewport.Rect

	Key       string
	Modifiers shortcuts.Modifier
}

// StateMessage is sent to the client as JSON whenever the viewport's
// rendered state changes.
type StateMessage struct {
	Type       string  `json:"type"`
	Transform  string  `json:"transform"`
	Origin     string  `json:"origin,omitempty"`
	Cursor     string  `json:"cursor,omitempty"`
	Zoom       string  `json:"zoom,omitempty"`
	Open       bool    `json:"open"`
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
}
