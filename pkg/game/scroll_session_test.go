package game

import (
	"math"
	"testing"
)

const frameDt = 1.0 / 60.0

func newRunningSession(limit float64) *ScrollSession {
	s := NewScrollSession(0.2, 1)
	s.SetLimit(limit)
	s.Start()
	return s
}

// TestNewScrollSession_Defaults 非法参数使用默认值
func TestNewScrollSession_Defaults(t *testing.T) {
	s := NewScrollSession(0, 0)
	if s.Lerp != DefaultScrollLerp || s.WheelMultiplier != 1 {
		t.Errorf("Unexpected defaults: lerp=%v wheel=%v", s.Lerp, s.WheelMultiplier)
	}
	if NewScrollSession(1.5, 2).Lerp != DefaultScrollLerp {
		t.Error("lerp > 1 should fall back to default")
	}
	if s.Running() {
		t.Error("new session should not be running")
	}
}

// TestScrollSession_Converges 平滑滚动收敛到目标
func TestScrollSession_Converges(t *testing.T) {
	s := newRunningSession(5000)
	s.ScrollTo(1000, false)

	s.Frame(frameDt)
	first := s.Scroll()
	want := 1000 * (1 - math.Exp(-0.2))
	if math.Abs(first-want) > 1e-9 {
		t.Errorf("first frame: got %v, want %v", first, want)
	}

	prev := first
	for i := 0; i < 200 && s.Moving(); i++ {
		s.Frame(frameDt)
		if s.Scroll() < prev {
			t.Fatalf("scroll moved backwards: %v -> %v", prev, s.Scroll())
		}
		prev = s.Scroll()
	}

	if s.Moving() {
		t.Fatal("session should have settled")
	}
	if s.Scroll() != 1000 {
		t.Errorf("settled scroll: got %v, want 1000", s.Scroll())
	}
	if s.Frame(frameDt) {
		t.Error("Frame should report no change once settled")
	}
}

// TestScrollSession_FrameRateIndependent 两个半帧等于一个整帧
func TestScrollSession_FrameRateIndependent(t *testing.T) {
	a := newRunningSession(5000)
	b := newRunningSession(5000)
	a.ScrollTo(800, false)
	b.ScrollTo(800, false)

	a.Frame(frameDt)
	b.Frame(frameDt / 2)
	b.Frame(frameDt / 2)

	if math.Abs(a.Scroll()-b.Scroll()) > 1e-9 {
		t.Errorf("got %v and %v", a.Scroll(), b.Scroll())
	}
}

// TestScrollSession_ClampToLimit 目标被限制在 [0, limit]
func TestScrollSession_ClampToLimit(t *testing.T) {
	s := newRunningSession(1000)

	s.ScrollTo(5000, true)
	if s.Scroll() != 1000 || s.Target() != 1000 {
		t.Errorf("got scroll=%v target=%v, want 1000", s.Scroll(), s.Target())
	}

	s.ScrollBy(-3000)
	if s.Target() != 0 {
		t.Errorf("target: got %v, want 0", s.Target())
	}

	// 缩小范围时当前位置也被限制
	s.ScrollTo(900, true)
	s.SetLimit(500)
	if s.Scroll() != 500 {
		t.Errorf("scroll after SetLimit: got %v, want 500", s.Scroll())
	}
	if s.Progress() != 1 {
		t.Errorf("progress: got %v, want 1", s.Progress())
	}
}

// TestScrollSession_Stop 停止可重复调用，停止后位置不变且忽略输入
func TestScrollSession_Stop(t *testing.T) {
	s := newRunningSession(5000)
	s.ScrollTo(2000, false)
	s.Frame(frameDt)
	frozen := s.Scroll()

	s.Stop()
	s.Stop()
	if s.Running() {
		t.Error("session should be stopped")
	}

	s.Wheel(500)
	s.ScrollTo(100, true)
	for i := 0; i < 10; i++ {
		s.Frame(frameDt)
	}
	if s.Scroll() != frozen {
		t.Errorf("scroll changed while stopped: %v -> %v", frozen, s.Scroll())
	}

	// 重新启动后从停止位置继续
	s.Start()
	if s.Target() != frozen || s.Moving() {
		t.Errorf("restart should resume from %v, target=%v moving=%v", frozen, s.Target(), s.Moving())
	}
}

// TestScrollSession_Wheel 滚轮增量乘以倍率
func TestScrollSession_Wheel(t *testing.T) {
	s := NewScrollSession(0.2, 2)
	s.SetLimit(5000)
	s.Start()

	s.Wheel(100)
	s.Wheel(50)
	if s.Target() != 300 {
		t.Errorf("target: got %v, want 300", s.Target())
	}
}

// TestScrollSession_OnScroll 位置变化时通知监听者
func TestScrollSession_OnScroll(t *testing.T) {
	s := newRunningSession(5000)
	var got []float64
	s.OnScroll(func(v float64) { got = append(got, v) })

	s.ScrollTo(300, true)
	s.ScrollTo(300, true) // 位置未变化，不通知
	s.ScrollTo(600, false)
	s.Frame(frameDt)

	if len(got) != 2 || got[0] != 300 || got[1] <= 300 {
		t.Errorf("notifications: got %v", got)
	}
}

// TestScrollSession_ProgressNoRange 无可滚动范围时进度为 0
func TestScrollSession_ProgressNoRange(t *testing.T) {
	s := newRunningSession(0)
	s.ScrollBy(100)
	if s.Progress() != 0 || s.Scroll() != 0 {
		t.Errorf("got progress=%v scroll=%v", s.Progress(), s.Scroll())
	}
}
