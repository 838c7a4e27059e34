package shortcuts

import (
	"testing"

	"github.com/recera/panzoom/pkg/reactive"
)

type counts struct {
	close, in, out, reset int
}

func (c *counts) callbacks() Callbacks {
	return Callbacks{
		OnClose:     func() { c.close++ },
		OnZoomIn:    func() { c.in++ },
		OnZoomOut:   func() { c.out++ },
		OnResetZoom: func() { c.reset++ },
	}
}

func (c *counts) total() int { return c.close + c.in + c.out + c.reset }

func TestBinder_Dispatch(t *testing.T) {
	tests := []struct {
		name        string
		ev          KeyEvent
		want        Action
		wantPrevent bool
	}{
		{"escape", KeyEvent{Key: KeyEscape}, ActionClose, false},
		{"escape with ctrl", KeyEvent{Key: KeyEscape, Modifiers: ModCtrl}, ActionClose, false},
		{"ctrl equal", KeyEvent{Key: KeyEqual, Modifiers: ModCtrl}, ActionZoomIn, true},
		{"ctrl plus", KeyEvent{Key: KeyPlus, Modifiers: ModCtrl | ModShift}, ActionZoomIn, true},
		{"cmd equal", KeyEvent{Key: KeyEqual, Modifiers: ModMeta}, ActionZoomIn, true},
		{"ctrl minus", KeyEvent{Key: KeyMinus, Modifiers: ModCtrl}, ActionZoomOut, true},
		{"cmd minus", KeyEvent{Key: KeyMinus, Modifiers: ModMeta}, ActionZoomOut, true},
		{"ctrl zero", KeyEvent{Key: KeyZero, Modifiers: ModCtrl}, ActionResetZoom, true},
		{"cmd zero", KeyEvent{Key: KeyZero, Modifiers: ModMeta}, ActionResetZoom, true},
		{"bare plus", KeyEvent{Key: KeyPlus}, ActionNone, false},
		{"bare minus", KeyEvent{Key: KeyMinus}, ActionNone, false},
		{"bare zero", KeyEvent{Key: KeyZero}, ActionNone, false},
		{"alt minus", KeyEvent{Key: KeyMinus, Modifiers: ModAlt}, ActionNone, false},
		{"ctrl other", KeyEvent{Key: "a", Modifiers: ModCtrl}, ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c counts
			b := New(func() bool { return true }, c.callbacks())
			ev := tt.ev

			if got := b.HandleKeyDown(&ev); got != tt.want {
				t.Errorf("action = %v, want %v", got, tt.want)
			}
			if ev.DefaultPrevented != tt.wantPrevent {
				t.Errorf("DefaultPrevented = %v, want %v", ev.DefaultPrevented, tt.wantPrevent)
			}

			want := counts{}
			switch tt.want {
			case ActionClose:
				want.close = 1
			case ActionZoomIn:
				want.in = 1
			case ActionZoomOut:
				want.out = 1
			case ActionResetZoom:
				want.reset = 1
			}
			if c != want {
				t.Errorf("callbacks = %+v, want %+v", c, want)
			}
		})
	}
}

func TestBinder_Gated(t *testing.T) {
	var c counts
	b := New(func() bool { return false }, c.callbacks())

	for _, ev := range []KeyEvent{
		{Key: KeyEscape},
		{Key: KeyEqual, Modifiers: ModCtrl},
		{Key: KeyMinus, Modifiers: ModCtrl},
		{Key: KeyZero, Modifiers: ModMeta},
	} {
		ev := ev
		if got := b.HandleKeyDown(&ev); got != ActionNone {
			t.Errorf("%s: action %v while inactive", ev.String(), got)
		}
		if ev.DefaultPrevented {
			t.Errorf("%s: default prevented while inactive", ev.String())
		}
	}
	if c.total() != 0 {
		t.Errorf("callbacks invoked while inactive: %+v", c)
	}
}

func TestBinder_NilPredicateAndCallbacks(t *testing.T) {
	b := New(nil, Callbacks{})
	if got := b.HandleKeyDown(&KeyEvent{Key: KeyEscape}); got != ActionNone {
		t.Errorf("nil predicate dispatched %v", got)
	}

	b = New(func() bool { return true }, Callbacks{})
	if got := b.HandleKeyDown(&KeyEvent{Key: KeyZero, Modifiers: ModCtrl}); got != ActionResetZoom {
		t.Errorf("action = %v with nil callbacks", got)
	}
	if got := b.HandleKeyDown(nil); got != ActionNone {
		t.Errorf("nil event dispatched %v", got)
	}
}

func TestBinder_PredicateReadPerEvent(t *testing.T) {
	open := reactive.NewState(false)
	var c counts
	b := New(open.Get, c.callbacks())
	target := NewKeyListeners()
	b.Mount(target)

	target.Dispatch(&KeyEvent{Key: KeyEscape})
	open.Set(true)
	target.Dispatch(&KeyEvent{Key: KeyEscape})
	target.Dispatch(&KeyEvent{Key: KeyEqual, Modifiers: ModCtrl})
	open.Set(false)
	target.Dispatch(&KeyEvent{Key: KeyEscape})

	if c.close != 1 || c.in != 1 {
		t.Errorf("callbacks = %+v, want one close and one zoom-in", c)
	}
	if target.Len() != 1 {
		t.Errorf("predicate changes reinstalled listener: Len = %d", target.Len())
	}
}

func TestBinder_MountLifecycle(t *testing.T) {
	var c counts
	b := New(func() bool { return true }, c.callbacks())
	target := NewKeyListeners()

	b.Mount(target)
	b.Mount(target)
	if target.Len() != 1 || !b.Mounted() {
		t.Fatalf("Len = %d after double Mount, want 1", target.Len())
	}

	target.Dispatch(&KeyEvent{Key: KeyMinus, Modifiers: ModCtrl})
	if c.out != 1 {
		t.Errorf("zoom-out count = %d", c.out)
	}

	b.Unmount()
	b.Unmount()
	if target.Len() != 0 || b.Mounted() {
		t.Fatalf("Len = %d after Unmount, want 0", target.Len())
	}
	target.Dispatch(&KeyEvent{Key: KeyMinus, Modifiers: ModCtrl})
	if c.out != 1 {
		t.Error("unmounted binder still dispatching")
	}

	// Remount after unmount installs again.
	b.Mount(target)
	if target.Len() != 1 {
		t.Errorf("Len = %d after remount", target.Len())
	}
	b.Unmount()
}

func TestModifier_String(t *testing.T) {
	tests := []struct {
		m    Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModMeta | ModAlt, "Alt+Meta"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
	if got := (KeyEvent{Key: KeyEqual, Modifiers: ModCtrl}).String(); got != "Ctrl+=" {
		t.Errorf("KeyEvent.String() = %q", got)
	}
}

// countingTarget records how many listeners were ever installed.
type countingTarget struct {
	*KeyListeners
	adds int
}

func (c *countingTarget) AddKeyDownListener(fn func(*KeyEvent)) func() {
	c.adds++
	return c.KeyListeners.AddKeyDownListener(fn)
}

func TestBinder_OpenCloseCyclesKeepOneListener(t *testing.T) {
	open := reactive.NewState(false)
	var c counts
	cb := c.callbacks()
	cb.OnClose = func() {
		c.close++
		open.Set(false)
	}
	b := New(open.Get, cb)
	target := &countingTarget{KeyListeners: NewKeyListeners()}
	b.Mount(target)

	for i := 0; i < 3; i++ {
		open.Set(true)
		target.Dispatch(&KeyEvent{Key: KeyEqual, Modifiers: ModMeta})
		target.Dispatch(&KeyEvent{Key: KeyEscape})
		// Closed: the same listener sees the key but does nothing.
		target.Dispatch(&KeyEvent{Key: KeyEqual, Modifiers: ModMeta})
	}

	if c.in != 3 || c.close != 3 {
		t.Errorf("callbacks = %+v, want three zoom-ins and three closes", c)
	}
	if target.adds != 1 || target.Len() != 1 {
		t.Errorf("adds = %d, Len = %d; want one listener for the whole lifetime", target.adds, target.Len())
	}
}
