//go:build js && wasm
// +build js,wasm

// Command client is the browser host for the viewport. It expects this
// markup:
//
//	<div id="panzoom-viewer" hidden>
//	  <button data-panzoom="zoom-in">+</button>
//	  <button data-panzoom="zoom-out">-</button>
//	  <button data-panzoom="reset">reset</button>
//	  <button data-panzoom="close">x</button>
//	  <span id="panzoom-zoom"></span>
//	  <div id="panzoom-canvas"><div id="panzoom-content">...</div></div>
//	</div>
//
// and exposes window.panzoom.open() / window.panzoom.close().
//
// When the viewer element carries data-live-url, open, close and toolbar
// actions are mirrored to that live server session.
package main

import (
	"syscall/js"

	"github.com/recera/panzoom/pkg/debug"
	"github.com/recera/panzoom/pkg/frame"
	"github.com/recera/panzoom/pkg/live"
	"github.com/recera/panzoom/pkg/reactive"
	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

var (
	document js.Value
	window   js.Value
	console  js.Value
)

func main() {
	// Initialize global JS references
	document = js.Global().Get("document")
	window = js.Global().Get("window")
	console = js.Global().Get("console")

	if window.Get("location").Get("search").String() == "?debug" {
		debug.EnableLogging()
	}

	console.Call("log", "panzoom client starting...")

	// Wait for DOM ready
	if document.Get("readyState").String() != "loading" {
		onReady()
	} else {
		var ready js.Func
		ready = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			ready.Release()
			onReady()
			return nil
		})
		document.Call("addEventListener", "DOMContentLoaded", ready, map[string]interface{}{"once": true})
	}

	// Keep the WASM runtime alive
	select {}
}

// host owns one mounted viewer: the controller, its bindings and the open
// flag the shortcut binder is gated on.
type host struct {
	root       js.Value
	canvas     js.Value
	controller *viewport.Controller
	binder     *shortcuts.Binder
	open       *reactive.State[bool]
	unbind     func()
	buttons    []js.Func
	remote     *live.Client
}

func onReady() {
	root := byID("panzoom-viewer")
	canvas := byID("panzoom-canvas")
	if root.IsNull() || canvas.IsNull() {
		console.Call("error", "panzoom: #panzoom-viewer or #panzoom-canvas not found")
		return
	}

	h := &host{
		root:   root,
		canvas: canvas,
		open:   reactive.NewState(false),
	}
	h.controller = viewport.New(nil, viewport.NewDocumentListeners(), frame.NewAnimationFrames())
	h.controller.SetCanvas(viewport.NewElement(canvas))
	h.controller.SetContent(viewport.NewElement(byID("panzoom-content")))
	h.controller.SetReadout(viewport.NewElement(byID("panzoom-zoom")))

	h.binder = shortcuts.New(h.open.Get, shortcuts.Callbacks{
		OnClose:     h.close,
		OnZoomIn:    h.controller.ZoomIn,
		OnZoomOut:   h.controller.ZoomOut,
		OnResetZoom: h.controller.ResetZoom,
	})

	// The listener lives as long as the page; the open flag gates it.
	h.binder.Mount(shortcuts.NewDocumentKeys())

	h.open.Watch(func(open bool) {
		h.root.Set("hidden", !open)
	})

	h.bindButtons()
	h.connectRemote()

	api := js.Global().Get("Object").New()
	api.Set("open", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		h.openViewer()
		return nil
	}))
	api.Set("close", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		h.close()
		return nil
	}))
	js.Global().Set("panzoom", api)
}

func (h *host) openViewer() {
	if h.open.Get() {
		return
	}
	h.open.Set(true)
	h.unbind = viewport.Bind(h.controller, h.canvas)
	h.controller.InitTransform()
	h.mirror(live.EventOpen)
}

func (h *host) close() {
	if !h.open.Get() {
		return
	}
	h.open.Set(false)
	if h.unbind != nil {
		h.unbind()
		h.unbind = nil
	}
	h.controller.Cleanup()
	h.mirror(live.EventClose)
}

// bindButtons wires every [data-panzoom] button inside the viewer.
func (h *host) bindButtons() {
	actions := map[string]func(){
		"zoom-in": func() {
			h.controller.ZoomIn()
			h.mirror(live.EventZoomIn)
		},
		"zoom-out": func() {
			h.controller.ZoomOut()
			h.mirror(live.EventZoomOut)
		},
		"reset": func() {
			h.controller.ResetZoom()
			h.mirror(live.EventReset)
		},
		"close": h.close,
	}

	nodes := h.root.Call("querySelectorAll", "[data-panzoom]")
	for i := 0; i < nodes.Length(); i++ {
		node := nodes.Index(i)
		action, ok := actions[node.Get("dataset").Get("panzoom").String()]
		if !ok {
			continue
		}
		fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			action()
			return nil
		})
		node.Call("addEventListener", "click", fn)
		h.buttons = append(h.buttons, fn)
	}
}

// connectRemote opens the live mirror named by data-live-url, if any.
func (h *host) connectRemote() {
	url := h.root.Get("dataset").Get("liveUrl")
	if url.Type() != js.TypeString || url.String() == "" {
		return
	}
	h.remote = live.NewClient(url.String())
	h.remote.OnState(func(msg live.StateMessage) {
		debug.Logf("panzoom: remote %s %s", msg.Zoom, msg.Transform)
	})
	h.remote.OnError(func(err error) {
		console.Call("warn", "panzoom: live mirror:", err.Error())
	})
	if err := h.remote.Connect(); err != nil {
		console.Call("warn", "panzoom: live mirror:", err.Error())
		h.remote = nil
	}
}

func (h *host) mirror(t live.EventType) {
	if h.remote == nil {
		return
	}
	if err := h.remote.SendEvent(live.Event{Type: t}); err != nil {
		console.Call("warn", "panzoom: live mirror:", err.Error())
	}
}

func byID(id string) js.Value {
	return document.Call("getElementById", id)
}
