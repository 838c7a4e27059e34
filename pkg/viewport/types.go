package viewport

import (
	"math"
	"strconv"
)

// Transform is a snapshot of the viewport state.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

// CSS renders the transform as a CSS transform value, e.g.
// "translate(-10px, 0px) scale(1.1)".
func (t Transform) CSS() string {
	return "translate(" + formatFloat(t.TranslateX) + "px, " + formatFloat(t.TranslateY) + "px) scale(" + formatFloat(t.Scale) + ")"
}

// Percent renders the scale as a rounded percentage, e.g. "200%".
func (t Transform) Percent() string {
	return strconv.FormatInt(int64(math.Round(t.Scale*100)), 10) + "%"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Rect is a surface's bounding box in client coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Button identifies a pointer button using DOM numbering.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// PointerEvent carries client coordinates and the pressed button.
type PointerEvent struct {
	ClientX float64
	ClientY float64
	Button  Button
}

// WheelEvent is a cancelable wheel event.
type WheelEvent struct {
	ClientX float64
	ClientY float64
	DeltaY  float64

	// DefaultPrevented is set by PreventDefault; platform bindings forward it.
	DefaultPrevented bool
}

// PreventDefault suppresses the platform's default scroll handling.
func (e *WheelEvent) PreventDefault() {
	e.DefaultPrevented = true
}

// Cursor is a CSS cursor value written to the content surface.
type Cursor string

const (
	CursorGrab     Cursor = "grab"
	CursorGrabbing Cursor = "grabbing"
)

// OriginCenter is the transform origin the controller's pivot math assumes.
const OriginCenter = "center"
