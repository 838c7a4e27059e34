// Package shortcuts maps global key events to viewport operations.
//
// A Binder holds no transform state. It forwards recognised key
// combinations to caller-supplied callbacks, but only while its activity
// predicate reports true. The predicate is consulted per event, so it can
// change freely without the listener being reinstalled.
package shortcuts

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Action is the operation a key event resolved to.
type Action int

const (
	ActionNone Action = iota
	ActionClose
	ActionZoomIn
	ActionZoomOut
	ActionResetZoom
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionClose:
		return "close"
	case ActionZoomIn:
		return "zoom-in"
	case ActionZoomOut:
		return "zoom-out"
	case ActionResetZoom:
		return "reset-zoom"
	default:
		return "none"
	}
}

// Callbacks are the operations the binder forwards to. Nil entries are
// skipped.
type Callbacks struct {
	OnClose     func()
	OnZoomIn    func()
	OnZoomOut   func()
	OnResetZoom func()
}

// Binder owns one key-down listener for its mounted lifetime.
type Binder struct {
	active func() bool
	cb     Callbacks
	remove func()
}

// New creates a binder. active is read on every key event; a nil predicate
// is treated as always false.
func New(active func() bool, cb Callbacks) *Binder {
	return &Binder{active: active, cb: cb}
}

// Mount installs the key-down listener on target. Mounting an already
// mounted binder does nothing.
func (b *Binder) Mount(target KeyTarget) {
	if b.remove != nil || target == nil {
		return
	}
	b.remove = target.AddKeyDownListener(func(ev *KeyEvent) {
		b.HandleKeyDown(ev)
	})
}

// Unmount removes the listener installed by Mount. Safe to call more than
// once.
func (b *Binder) Unmount() {
	if b.remove == nil {
		return
	}
	b.remove()
	b.remove = nil
}

// Mounted reports whether the listener is installed.
func (b *Binder) Mounted() bool { return b.remove != nil }

// HandleKeyDown dispatches ev and returns the action taken.
func (b *Binder) HandleKeyDown(ev *KeyEvent) Action {
	if ev == nil || b.active == nil || !b.active() {
		return ActionNone
	}

	action := resolve(ev)
	switch action {
	case ActionClose:
		call(b.cb.OnClose)
	case ActionZoomIn:
		ev.PreventDefault()
		call(b.cb.OnZoomIn)
	case ActionZoomOut:
		ev.PreventDefault()
		call(b.cb.OnZoomOut)
	case ActionResetZoom:
		ev.PreventDefault()
		call(b.cb.OnResetZoom)
	default:
		return ActionNone
	}

	if debugLog != nil {
		debugLog("[Shortcuts]", ev.String(), "->", action.String())
	}
	return action
}

// resolve maps a key event to an action without side effects.
func resolve(ev *KeyEvent) Action {
	if ev.Key == KeyEscape {
		return ActionClose
	}
	if !ev.Modifiers.Primary() {
		return ActionNone
	}
	switch ev.Key {
	case KeyPlus, KeyEqual:
		return ActionZoomIn
	case KeyMinus:
		return ActionZoomOut
	case KeyZero:
		return ActionResetZoom
	}
	return ActionNone
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
