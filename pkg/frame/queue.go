// Package frame defers callbacks to the next paint opportunity.
//
// In the browser that is requestAnimationFrame (see AnimationFrames). Hosts
// that own their own render loop, such as a terminal UI or a remote session,
// use a Queue and call Flush once per frame.
package frame

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// ErrorHandler receives a panic raised by a frame callback, with its stack.
type ErrorHandler func(err interface{})

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

type request struct {
	id uint64
	fn func()
}

// Queue collects frame callbacks until the host flushes them.
type Queue struct {
	mu      sync.Mutex
	nextID  uint64
	pending []request
	onError ErrorHandler
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		nextID:  1,
		pending: make([]request, 0, 8),
	}
}

// SetErrorHandler sets the handler for panicking callbacks. Without one the
// panic is logged through the debug hook and dropped.
func (q *Queue) SetErrorHandler(handler ErrorHandler) {
	q.mu.Lock()
	q.onError = handler
	q.mu.Unlock()
}

// RequestFrame schedules fn for the next Flush.
func (q *Queue) RequestFrame(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	id := q.nextID
	q.nextID++
	q.pending = append(q.pending, request{id: id, fn: fn})
	q.mu.Unlock()

	if debugLog != nil {
		debugLog("[Frame] Requested frame", id)
	}
}

// Pending returns the number of callbacks waiting for the next Flush.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs every callback requested before the call, in request order,
// and returns how many ran. Callbacks requested while flushing wait for the
// next Flush.
func (q *Queue) Flush() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = make([]request, 0, cap(batch))
	q.mu.Unlock()

	if len(batch) == 0 {
		return 0
	}
	if debugLog != nil {
		debugLog("[Frame] Flushing", len(batch), "callbacks")
	}
	for _, r := range batch {
		q.run(r)
	}
	return len(batch)
}

// run executes one callback with panic recovery.
func (q *Queue) run(r request) {
	defer func() {
		if err := recover(); err != nil {
			q.handleError(r, err)
		}
	}()
	r.fn()
}

func (q *Queue) handleError(r request, err interface{}) {
	msg := fmt.Sprintf("frame %d panic: %v\n%s", r.id, err, debug.Stack())

	q.mu.Lock()
	handler := q.onError
	q.mu.Unlock()

	if handler != nil {
		handler(msg)
		return
	}
	if debugLog != nil {
		debugLog("[Frame]", msg)
	}
}
