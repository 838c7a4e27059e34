package ui

import (
	"math"

	"github.com/recera/panzoom/pkg/viewport"
)

// termSurface is the terminal rendition of the viewer's three elements. The
// canvas is the cell area below the toolbar; the content is the text laid
// out centered in it. Cell coordinates are the client coordinates.
type termSurface struct {
	rect      viewport.Rect
	transform viewport.Transform
	origin    string
	cursor    viewport.Cursor
	readout   string
}

func newTermSurface() *termSurface {
	return &termSurface{
		transform: viewport.Transform{Scale: 1},
		readout:   "100%",
	}
}

func (s *termSurface) BoundingRect() viewport.Rect { return s.rect }

func (s *termSurface) SetTransform(t viewport.Transform) { s.transform = t }

func (s *termSurface) SetTransformOrigin(origin string) { s.origin = origin }

func (s *termSurface) SetCursor(c viewport.Cursor) { s.cursor = c }

func (s *termSurface) SetText(text string) { s.readout = text }

// contentAt returns the content cell shown at screen cell (col, row), or
// false when that cell shows background.
//
// A content point p, measured from the content's center, lands on screen at
// canvasCenter + translate + scale*p. Sampling inverts that at the cell's
// center.
func (s *termSurface) contentAt(content [][]rune, width, col, row int) (rune, bool) {
	t := s.transform
	if t.Scale <= 0 {
		return 0, false
	}
	cx, cy := s.rect.Center()
	px := (float64(col) + 0.5 - cx - t.TranslateX) / t.Scale
	py := (float64(row) + 0.5 - cy - t.TranslateY) / t.Scale

	x := int(math.Floor(px + float64(width)/2))
	y := int(math.Floor(py + float64(len(content))/2))
	if y < 0 || y >= len(content) || x < 0 || x >= len(content[y]) {
		return 0, false
	}
	return content[y][x], true
}
