//go:build js && wasm
// +build js,wasm

package shortcuts

import "syscall/js"

// DocumentKeys installs key-down listeners on the global document.
type DocumentKeys struct {
	document js.Value
}

// NewDocumentKeys binds to the global document.
func NewDocumentKeys() *DocumentKeys {
	return &DocumentKeys{document: js.Global().Get("document")}
}

// AddKeyDownListener implements KeyTarget.
func (d *DocumentKeys) AddKeyDownListener(fn func(*KeyEvent)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 || fn == nil {
			return nil
		}
		jsEv := args[0]
		ev := &KeyEvent{
			Key:       jsEv.Get("key").String(),
			Modifiers: modifiersFromJS(jsEv),
		}
		fn(ev)
		if ev.DefaultPrevented {
			jsEv.Call("preventDefault")
		}
		return nil
	})
	d.document.Call("addEventListener", "keydown", cb)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		d.document.Call("removeEventListener", "keydown", cb)
		cb.Release()
	}
}

func modifiersFromJS(ev js.Value) Modifier {
	var m Modifier
	if ev.Get("shiftKey").Truthy() {
		m |= ModShift
	}
	if ev.Get("ctrlKey").Truthy() {
		m |= ModCtrl
	}
	if ev.Get("altKey").Truthy() {
		m |= ModAlt
	}
	if ev.Get("metaKey").Truthy() {
		m |= ModMeta
	}
	return m
}
