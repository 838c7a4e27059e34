package reactive

import (
	"sync"
)

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Set(T)
	Watch(fn func(T)) (unwatch func())
}

// State represents a reactive state value. Reads are never cached by
// watchers; Get always returns the latest value.
type State[T any] struct {
	value T
	mu    sync.RWMutex

	// Watchers notified after every Set or Update
	watchers  map[uint32]func(T)
	nextID    uint32
	watcherMu sync.RWMutex
}

// NewState creates a new reactive state
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value:    initial,
		watchers: make(map[uint32]func(T)),
		nextID:   1,
	}
}

// Get returns the current value
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies watchers
func (s *State[T]) Set(value T) {
	if debugLog != nil {
		debugLog("[State] Set called with value:", value)
	}

	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.notify(value)
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	s.value = fn(oldValue)
	newValue := s.value
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[State] Update called, old:", oldValue, "new:", newValue)
	}

	s.notify(newValue)
}

// Watch registers fn to run after every change and returns a func that
// removes it.
func (s *State[T]) Watch(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	s.watcherMu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.watcherMu.Unlock()

	return func() {
		s.watcherMu.Lock()
		delete(s.watchers, id)
		s.watcherMu.Unlock()
	}
}

// notify calls watchers outside the locks so they may read or write the state.
func (s *State[T]) notify(value T) {
	s.watcherMu.RLock()
	fns := make([]func(T), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.watcherMu.RUnlock()

	if debugLog != nil && len(fns) > 0 {
		debugLog("[State] Notifying", len(fns), "watchers")
	}
	for _, fn := range fns {
		fn(value)
	}
}
