package viewport

import "sync"

// Canvas is the fixed viewport element. It is only queried for geometry.
type Canvas interface {
	BoundingRect() Rect
}

// Content is the element that receives the transform.
type Content interface {
	SetTransform(t Transform)
	SetTransformOrigin(origin string)
	SetCursor(c Cursor)
}

// Readout displays the current zoom percentage.
type Readout interface {
	SetText(text string)
}

// Document is the process-wide target for drag listeners, so a drag keeps
// tracking after the pointer leaves the canvas.
type Document interface {
	// AddPointerListeners registers a move/up pair and returns a func that
	// removes it. The returned func must be safe to call more than once.
	AddPointerListeners(move, up func(PointerEvent)) (remove func())
}

// FrameScheduler runs a callback at the next paint opportunity.
type FrameScheduler interface {
	RequestFrame(fn func())
}

type listenerPair struct {
	move func(PointerEvent)
	up   func(PointerEvent)
}

// ListenerSet is an in-memory Document. Hosts that receive pointer input
// themselves (terminals, remote sessions) route move and up events through it.
type ListenerSet struct {
	mu     sync.Mutex
	nextID uint32
	pairs  map[uint32]listenerPair
}

// NewListenerSet creates an empty listener set.
func NewListenerSet() *ListenerSet {
	return &ListenerSet{
		nextID: 1,
		pairs:  make(map[uint32]listenerPair),
	}
}

// AddPointerListeners implements Document.
func (s *ListenerSet) AddPointerListeners(move, up func(PointerEvent)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.pairs[id] = listenerPair{move: move, up: up}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.pairs, id)
			s.mu.Unlock()
		})
	}
}

// Len returns the number of registered listener pairs.
func (s *ListenerSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pairs)
}

// DispatchMove delivers a move event to every registered pair.
func (s *ListenerSet) DispatchMove(ev PointerEvent) {
	for _, p := range s.snapshot() {
		if p.move != nil {
			p.move(ev)
		}
	}
}

// DispatchUp delivers an up event to every registered pair.
func (s *ListenerSet) DispatchUp(ev PointerEvent) {
	for _, p := range s.snapshot() {
		if p.up != nil {
			p.up(ev)
		}
	}
}

// snapshot copies the pairs so handlers may remove themselves while running.
func (s *ListenerSet) snapshot() []listenerPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]listenerPair, 0, len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p)
	}
	return out
}
