package viewport

import "testing"

func TestListenerSet_AddRemove(t *testing.T) {
	s := NewListenerSet()
	var moves, ups int
	remove := s.AddPointerListeners(
		func(PointerEvent) { moves++ },
		func(PointerEvent) { ups++ },
	)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}

	s.DispatchMove(PointerEvent{})
	s.DispatchUp(PointerEvent{})
	if moves != 1 || ups != 1 {
		t.Errorf("moves=%d ups=%d", moves, ups)
	}

	remove()
	remove()
	if s.Len() != 0 {
		t.Fatalf("Len = %d after remove, want 0", s.Len())
	}
	s.DispatchMove(PointerEvent{})
	if moves != 1 {
		t.Error("removed listener still called")
	}
}

func TestListenerSet_RemoveDuringDispatch(t *testing.T) {
	s := NewListenerSet()
	var remove func()
	calls := 0
	remove = s.AddPointerListeners(nil, func(PointerEvent) {
		calls++
		remove()
	})
	s.DispatchUp(PointerEvent{})
	s.DispatchUp(PointerEvent{})
	if calls != 1 || s.Len() != 0 {
		t.Errorf("calls=%d len=%d", calls, s.Len())
	}
}

func TestRect_Center(t *testing.T) {
	x, y := Rect{Left: 10, Top: 20, Width: 100, Height: 50}.Center()
	if x != 60 || y != 45 {
		t.Errorf("Center = (%v, %v), want (60, 45)", x, y)
	}
}
