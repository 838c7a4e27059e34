//go:build js && wasm
// +build js,wasm

package frame

import "syscall/js"

// AnimationFrames schedules callbacks with window.requestAnimationFrame.
type AnimationFrames struct {
	window js.Value
}

// NewAnimationFrames binds to the global window.
func NewAnimationFrames() *AnimationFrames {
	return &AnimationFrames{window: js.Global().Get("window")}
}

// RequestFrame runs fn on the next animation frame. The js.Func is released
// after it fires.
func (a *AnimationFrames) RequestFrame(fn func()) {
	if fn == nil || !a.window.Truthy() {
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer cb.Release()
		fn()
		return nil
	})
	a.window.Call("requestAnimationFrame", cb)
}
