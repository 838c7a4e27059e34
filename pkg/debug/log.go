//go:build !js || !wasm

// Package debug wires the per-package debug hooks to a single sink.
package debug

import (
	"log"

	"github.com/recera/panzoom/pkg/frame"
	"github.com/recera/panzoom/pkg/reactive"
	"github.com/recera/panzoom/pkg/shortcuts"
	"github.com/recera/panzoom/pkg/viewport"
)

// EnableLogging routes the viewport, shortcut, frame and reactive debug
// hooks to logger. A nil logger uses the standard logger.
func EnableLogging(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	logFn := func(args ...interface{}) {
		logger.Println(args...)
	}

	viewport.SetDebugLog(logFn)
	shortcuts.SetDebugLog(logFn)
	frame.SetDebugLog(logFn)
	reactive.SetDebugLog(logFn)
}

// DisableLogging clears every debug hook.
func DisableLogging() {
	viewport.SetDebugLog(nil)
	shortcuts.SetDebugLog(nil)
	frame.SetDebugLog(nil)
	reactive.SetDebugLog(nil)
}
