package utils

import "testing"

func TestDragTrackerInitialState(t *testing.T) {
	d := NewDragTracker()

	if d.State() != DragStateNone {
		t.Errorf("Expected initial state to be DragStateNone, got %v", d.State())
	}
	if d.IsDragging() {
		t.Error("Expected IsDragging to be false initially")
	}
	if d.TouchID() != -1 {
		t.Errorf("Expected TouchID -1, got %d", d.TouchID())
	}
}

func TestDragTrackerMouseDrag(t *testing.T) {
	d := NewDragTracker()

	if dx, dy := d.Feed(PointerSample{Pressed: true, X: 100, Y: 200, TouchID: -1}); dx != 0 || dy != 0 {
		t.Errorf("Expected no movement on press, got (%d, %d)", dx, dy)
	}
	if d.State() != DragStateStarted {
		t.Errorf("Expected DragStateStarted, got %v", d.State())
	}

	dx, dy := d.Feed(PointerSample{Pressed: true, X: 110, Y: 170, TouchID: -1})
	if dx != 10 || dy != -30 {
		t.Errorf("Expected (10, -30), got (%d, %d)", dx, dy)
	}
	_, dy = d.Feed(PointerSample{Pressed: true, X: 110, Y: 150, TouchID: -1})
	if dy != -20 {
		t.Errorf("Expected dy -20, got %d", dy)
	}
	if d.State() != DragStateDragging {
		t.Errorf("Expected DragStateDragging, got %v", d.State())
	}

	sx, sy := d.Distance()
	if sx != 10 || sy != -50 {
		t.Errorf("Expected total distance (10, -50), got (%d, %d)", sx, sy)
	}

	d.Feed(PointerSample{TouchID: -1})
	if d.State() != DragStateEnded {
		t.Errorf("Expected DragStateEnded after release, got %v", d.State())
	}
	d.Feed(PointerSample{TouchID: -1})
	if d.State() != DragStateNone {
		t.Errorf("Expected DragStateNone one frame after release, got %v", d.State())
	}
}

func TestDragTrackerTouchSwitch(t *testing.T) {
	d := NewDragTracker()

	d.Feed(PointerSample{Pressed: true, X: 0, Y: 0, Touch: true, TouchID: 3})
	if d.TouchID() != 3 {
		t.Errorf("Expected tracked touch 3, got %d", d.TouchID())
	}

	// 另一个触摸点：结束当前拖拽，不产生位移
	if _, dy := d.Feed(PointerSample{Pressed: true, X: 0, Y: 500, Touch: true, TouchID: 4}); dy != 0 {
		t.Errorf("Expected no movement when touch changes, got %d", dy)
	}
	if d.State() != DragStateEnded {
		t.Errorf("Expected DragStateEnded, got %v", d.State())
	}

	// 下一帧从新的触摸点开始
	d.Feed(PointerSample{Pressed: true, X: 0, Y: 500, Touch: true, TouchID: 4})
	if d.State() != DragStateStarted || d.TouchID() != 4 {
		t.Errorf("Expected new drag from touch 4, got state %v touch %d", d.State(), d.TouchID())
	}
}

func TestDragTrackerReset(t *testing.T) {
	d := NewDragTracker()
	d.Feed(PointerSample{Pressed: true, X: 100, Y: 200, TouchID: -1})
	d.Feed(PointerSample{Pressed: true, X: 150, Y: 250, TouchID: -1})

	d.Reset()

	if d.State() != DragStateNone {
		t.Errorf("Expected state to be DragStateNone after reset, got %v", d.State())
	}
	if dx, dy := d.Distance(); dx != 0 || dy != 0 {
		t.Errorf("Expected distance (0, 0) after reset, got (%d, %d)", dx, dy)
	}
}
