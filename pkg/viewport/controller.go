// Package viewport implements a pan/zoom controller for a content element
// hosted inside a fixed canvas element.
//
// The controller keeps its transform in plain fields and pushes it to the
// surfaces imperatively after every mutation. High-frequency wheel and drag
// input therefore never goes through a render/diff pass.
package viewport

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// dragSession lives between a primary pointer-down and the matching up.
type dragSession struct {
	active          bool
	startPointerX   float64
	startPointerY   float64
	startTranslateX float64
	startTranslateY float64
}

// Controller owns the transform of one viewport. It is not safe for
// concurrent use; all methods are expected to run on the goroutine that
// delivers input events.
type Controller struct {
	opts Options

	scale      float64
	translateX float64
	translateY float64

	canvas  Canvas
	content Content
	readout Readout

	doc    Document
	frames FrameScheduler

	drag    dragSession
	release func()
}

// New creates a controller. doc receives the drag listeners and frames runs
// the deferred part of InitTransform; either may be nil.
func New(opts *Options, doc Document, frames FrameScheduler) *Controller {
	o := opts.withDefaults()
	return &Controller{
		opts:   o,
		scale:  o.InitialScale,
		doc:    doc,
		frames: frames,
	}
}

// SetCanvas attaches the canvas surface. Pass an untyped nil to detach; a
// typed nil pointer counts as attached and will be called.
func (c *Controller) SetCanvas(canvas Canvas) { c.canvas = canvas }

// SetContent attaches the content surface. Pass an untyped nil to detach.
func (c *Controller) SetContent(content Content) { c.content = content }

// SetReadout attaches the zoom readout surface. Pass an untyped nil to
// detach.
func (c *Controller) SetReadout(readout Readout) { c.readout = readout }

// Options returns the normalised options.
func (c *Controller) Options() Options { return c.opts }

// Transform returns the current state.
func (c *Controller) Transform() Transform {
	return Transform{TranslateX: c.translateX, TranslateY: c.translateY, Scale: c.scale}
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool { return c.drag.active }

// ApplyTransform writes the state to the content and readout surfaces.
func (c *Controller) ApplyTransform() {
	if c.content == nil {
		return
	}
	t := c.Transform()
	c.content.SetTransform(t)
	if c.readout != nil {
		c.readout.SetText(t.Percent())
	}
}

// ZoomIn multiplies the scale by 1+ZoomStep. The translate is kept, so the
// zoom is anchored on whatever is currently centred.
func (c *Controller) ZoomIn() {
	c.scale = clamp(c.scale*(1+c.opts.ZoomStep), c.opts.MinScale, c.opts.MaxScale)
	c.ApplyTransform()
}

// ZoomOut divides the scale by 1+ZoomStep, the exact inverse of ZoomIn.
func (c *Controller) ZoomOut() {
	c.scale = clamp(c.scale/(1+c.opts.ZoomStep), c.opts.MinScale, c.opts.MaxScale)
	c.ApplyTransform()
}

// ResetZoom restores the initial scale and centres the content.
func (c *Controller) ResetZoom() {
	c.resetState()
	c.ApplyTransform()
}

func (c *Controller) resetState() {
	c.scale = c.opts.InitialScale
	c.translateX = 0
	c.translateY = 0
}

// HandleWheel zooms toward the pointer: the content point under the pointer
// stays under it. The content uses a centre origin, so the pivot is measured
// from the canvas centre.
func (c *Controller) HandleWheel(ev *WheelEvent) {
	if ev == nil {
		return
	}
	ev.PreventDefault()
	// NaN would survive clamp and stick in the state.
	if c.canvas == nil || !finite(ev.ClientX, ev.ClientY, ev.DeltaY) {
		return
	}

	cx, cy := c.canvas.BoundingRect().Center()
	mx := ev.ClientX - cx
	my := ev.ClientY - cy

	delta := -ev.DeltaY * c.opts.WheelSensitivity
	newScale := clamp(c.scale*(1+delta), c.opts.MinScale, c.opts.MaxScale)
	ratio := newScale / c.scale

	c.translateX = mx - (mx-c.translateX)*ratio
	c.translateY = my - (my-c.translateY)*ratio
	c.scale = newScale
	c.ApplyTransform()
}

// HandlePointerDown starts a drag session on the primary button.
func (c *Controller) HandlePointerDown(ev PointerEvent) {
	if ev.Button != ButtonPrimary || !finite(ev.ClientX, ev.ClientY) {
		return
	}

	c.drag = dragSession{
		active:          true,
		startPointerX:   ev.ClientX,
		startPointerY:   ev.ClientY,
		startTranslateX: c.translateX,
		startTranslateY: c.translateY,
	}
	if c.content != nil {
		c.content.SetCursor(CursorGrabbing)
	}

	// A down without a matching up (lost focus, missed event) must not stack
	// a second listener pair.
	if c.release == nil && c.doc != nil {
		c.release = c.doc.AddPointerListeners(c.handlePointerMove, c.handlePointerUp)
		if debugLog != nil {
			debugLog("[Viewport] drag listeners registered")
		}
	}
}

func (c *Controller) handlePointerMove(ev PointerEvent) {
	if !c.drag.active || !finite(ev.ClientX, ev.ClientY) {
		return
	}
	c.translateX = c.drag.startTranslateX + (ev.ClientX - c.drag.startPointerX)
	c.translateY = c.drag.startTranslateY + (ev.ClientY - c.drag.startPointerY)
	c.ApplyTransform()
}

func (c *Controller) handlePointerUp(PointerEvent) {
	if !c.drag.active {
		return
	}
	c.drag.active = false
	if c.content != nil {
		c.content.SetCursor(CursorGrab)
	}
	c.removeListeners()
}

// InitTransform resets the state now and applies it at the next frame, once
// the surfaces have settled their layout. Without a FrameScheduler the
// second half runs inline.
func (c *Controller) InitTransform() {
	c.resetState()
	if c.frames == nil {
		c.settle()
		return
	}
	c.frames.RequestFrame(c.settle)
}

// settle is the deferred half of InitTransform. The content may have been
// detached since it was scheduled.
func (c *Controller) settle() {
	if c.content == nil {
		if debugLog != nil {
			debugLog("[Viewport] content detached before frame, skipping")
		}
		return
	}
	c.content.SetTransformOrigin(OriginCenter)
	c.content.SetCursor(CursorGrab)
	c.ApplyTransform()
}

// Cleanup ends any drag session and removes the drag listeners. It is safe
// to call at any time and more than once.
func (c *Controller) Cleanup() {
	c.drag.active = false
	c.removeListeners()
}

func (c *Controller) removeListeners() {
	if c.release == nil {
		return
	}
	c.release()
	c.release = nil
	if debugLog != nil {
		debugLog("[Viewport] drag listeners removed")
	}
}
