package shortcuts

import (
	"strings"
	"sync"
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Primary reports whether the platform command modifier is held. Ctrl and
// Cmd are treated as equivalent.
func (m Modifier) Primary() bool {
	return m.Has(ModCtrl) || m.Has(ModMeta)
}

// String returns a representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// Key identifiers, as reported by KeyboardEvent.key.
const (
	KeyEscape = "Escape"
	KeyPlus   = "+"
	KeyEqual  = "="
	KeyMinus  = "-"
	KeyZero   = "0"
)

// KeyEvent is a key-down event.
type KeyEvent struct {
	Key       string
	Modifiers Modifier

	// DefaultPrevented is set by PreventDefault; platform bindings forward it.
	DefaultPrevented bool
}

// PreventDefault suppresses the platform's default handling of the key.
func (e *KeyEvent) PreventDefault() {
	e.DefaultPrevented = true
}

// String returns a representation like "Ctrl+=".
func (e KeyEvent) String() string {
	if e.Modifiers == ModNone {
		return e.Key
	}
	return e.Modifiers.String() + "+" + e.Key
}

// KeyTarget is where the binder installs its global key-down listener.
type KeyTarget interface {
	// AddKeyDownListener registers fn and returns a func that removes it.
	// The returned func must be safe to call more than once.
	AddKeyDownListener(fn func(*KeyEvent)) (remove func())
}

// KeyListeners is an in-memory KeyTarget for hosts that receive key input
// themselves.
type KeyListeners struct {
	mu        sync.Mutex
	nextID    uint32
	listeners map[uint32]func(*KeyEvent)
}

// NewKeyListeners creates an empty listener registry.
func NewKeyListeners() *KeyListeners {
	return &KeyListeners{
		nextID:    1,
		listeners: make(map[uint32]func(*KeyEvent)),
	}
}

// AddKeyDownListener implements KeyTarget.
func (k *KeyListeners) AddKeyDownListener(fn func(*KeyEvent)) func() {
	k.mu.Lock()
	id := k.nextID
	k.nextID++
	k.listeners[id] = fn
	k.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			delete(k.listeners, id)
			k.mu.Unlock()
		})
	}
}

// Len returns the number of installed listeners.
func (k *KeyListeners) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.listeners)
}

// Dispatch delivers ev to every installed listener.
func (k *KeyListeners) Dispatch(ev *KeyEvent) {
	k.mu.Lock()
	fns := make([]func(*KeyEvent), 0, len(k.listeners))
	for _, fn := range k.listeners {
		fns = append(fns, fn)
	}
	k.mu.Unlock()

	for _, fn := range fns {
		if fn != nil {
			fn(ev)
		}
	}
}
