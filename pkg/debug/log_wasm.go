//go:build js && wasm
// +build js,wasm

package debug

import (
	"fmt"
	"syscall/js"

	"github.com/recera/panzoom/pkg/frame"
	"github.com/recera/panzoom/pkg/reactive"
	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

// EnableLogging enables debug logging for the viewport, shortcut, frame and
// reactive packages
func EnableLogging() {
	logFn := func(args ...interface{}) {
		js.Global().Get("console").Call("log", args...)
	}

	viewport.SetDebugLog(logFn)
	shortcuts.SetDebugLog(logFn)
	frame.SetDebugLog(logFn)
	reactive.SetDebugLog(logFn)
}

// Log logs a message to the console
func Log(args ...interface{}) {
	js.Global().Get("console").Call("log", args...)
}

// Logf logs a formatted message to the console
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	js.Global().Get("console").Call("log", msg)
}
