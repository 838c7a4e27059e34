//go:build js && wasm
// +build js,wasm

package viewport

import "syscall/js"

// Element adapts a DOM element to the Canvas, Content and Readout surfaces.
// An undefined or null element turns every method into a no-op.
type Element struct {
	v js.Value
}

// NewElement wraps a DOM element.
func NewElement(v js.Value) Element {
	return Element{v: v}
}

func (e Element) valid() bool { return e.v.Truthy() }

// BoundingRect implements Canvas.
func (e Element) BoundingRect() Rect {
	if !e.valid() {
		return Rect{}
	}
	r := e.v.Call("getBoundingClientRect")
	return Rect{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

// SetTransform implements Content.
func (e Element) SetTransform(t Transform) {
	if !e.valid() {
		return
	}
	e.v.Get("style").Set("transform", t.CSS())
}

// SetTransformOrigin implements Content.
func (e Element) SetTransformOrigin(origin string) {
	if !e.valid() {
		return
	}
	e.v.Get("style").Set("transformOrigin", origin)
}

// SetCursor implements Content.
func (e Element) SetCursor(c Cursor) {
	if !e.valid() {
		return
	}
	e.v.Get("style").Set("cursor", string(c))
}

// SetText implements Readout.
func (e Element) SetText(text string) {
	if !e.valid() {
		return
	}
	e.v.Set("textContent", text)
}

// DocumentListeners registers drag listeners on the global document.
type DocumentListeners struct {
	document js.Value
}

// NewDocumentListeners binds to the global document.
func NewDocumentListeners() *DocumentListeners {
	return &DocumentListeners{document: js.Global().Get("document")}
}

// AddPointerListeners implements Document.
func (d *DocumentListeners) AddPointerListeners(move, up func(PointerEvent)) func() {
	moveFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 && move != nil {
			move(pointerEventFromJS(args[0]))
		}
		return nil
	})
	upFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 && up != nil {
			up(pointerEventFromJS(args[0]))
		}
		return nil
	})
	d.document.Call("addEventListener", "mousemove", moveFn)
	d.document.Call("addEventListener", "mouseup", upFn)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		d.document.Call("removeEventListener", "mousemove", moveFn)
		d.document.Call("removeEventListener", "mouseup", upFn)
		moveFn.Release()
		upFn.Release()
	}
}

// Bind attaches the controller's wheel and mousedown handlers to the canvas
// element and returns a func that detaches them. The wheel listener is
// registered non-passive so preventDefault takes effect.
func Bind(c *Controller, canvas js.Value) (unbind func()) {
	if !canvas.Truthy() {
		return func() {}
	}
	wheelFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return nil
		}
		ev := args[0]
		w := &WheelEvent{
			ClientX: ev.Get("clientX").Float(),
			ClientY: ev.Get("clientY").Float(),
			DeltaY:  ev.Get("deltaY").Float(),
		}
		c.HandleWheel(w)
		if w.DefaultPrevented {
			ev.Call("preventDefault")
		}
		return nil
	})
	downFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			c.HandlePointerDown(pointerEventFromJS(args[0]))
		}
		return nil
	})

	opts := js.Global().Get("Object").New()
	opts.Set("passive", false)
	canvas.Call("addEventListener", "wheel", wheelFn, opts)
	canvas.Call("addEventListener", "mousedown", downFn)

	return func() {
		canvas.Call("removeEventListener", "wheel", wheelFn, opts)
		canvas.Call("removeEventListener", "mousedown", downFn)
		wheelFn.Release()
		downFn.Release()
	}
}

func pointerEventFromJS(ev js.Value) PointerEvent {
	return PointerEvent{
		ClientX: ev.Get("clientX").Float(),
		ClientY: ev.Get("clientY").Float(),
		Button:  Button(ev.Get("button").Int()),
	}
}
