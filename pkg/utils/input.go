package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSample 一帧的指针状态（触摸或鼠标左键）
type PointerSample struct {
	Pressed bool
	X, Y    int

	// Touch 为 true 时 TouchID 有效
	Touch   bool
	TouchID ebiten.TouchID
}

// ReadPointer 读取本帧的指针状态
//
// 优先使用触摸输入；mouse 为 false 时忽略鼠标（桌面端鼠标只用滚轮）。
// tracking 是正在跟踪的触摸，仍然按住时继续使用它。
func ReadPointer(mouse bool, tracking ebiten.TouchID) PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	for _, id := range touchIDs {
		if id == tracking {
			x, y := ebiten.TouchPosition(id)
			return PointerSample{Pressed: true, X: x, Y: y, Touch: true, TouchID: id}
		}
	}
	if pressed := inpututil.AppendJustPressedTouchIDs(nil); len(pressed) > 0 {
		x, y := ebiten.TouchPosition(pressed[0])
		return PointerSample{Pressed: true, X: x, Y: y, Touch: true, TouchID: pressed[0]}
	}

	if !mouse {
		return PointerSample{TouchID: -1}
	}
	x, y := ebiten.CursorPosition()
	return PointerSample{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
		TouchID: -1,
	}
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放），只持续一帧
	DragStateEnded
)

// DragTracker 跟踪指针拖拽，逐帧给出位移
type DragTracker struct {
	state          DragState
	startX, startY int
	lastX, lastY   int
	touchID        ebiten.TouchID
	touch          bool
}

// NewDragTracker 创建拖拽跟踪器
func NewDragTracker() *DragTracker {
	return &DragTracker{touchID: -1}
}

// Feed 输入一帧的指针状态，返回相对上一帧的位移
func (d *DragTracker) Feed(s PointerSample) (dx, dy int) {
	switch d.state {
	case DragStateNone, DragStateEnded:
		if !s.Pressed {
			d.Reset()
			return 0, 0
		}
		d.state = DragStateStarted
		d.startX, d.startY = s.X, s.Y
		d.lastX, d.lastY = s.X, s.Y
		d.touch, d.touchID = s.Touch, s.TouchID
		return 0, 0

	default:
		// 换了一个触摸点视为上一次拖拽结束
		if !s.Pressed || s.Touch != d.touch || (s.Touch && s.TouchID != d.touchID) {
			d.state = DragStateEnded
			return 0, 0
		}
		d.state = DragStateDragging
		dx, dy = s.X-d.lastX, s.Y-d.lastY
		d.lastX, d.lastY = s.X, s.Y
		return dx, dy
	}
}

// Reset 重置拖拽状态
func (d *DragTracker) Reset() {
	*d = DragTracker{touchID: -1}
}

// State 当前拖拽状态
func (d *DragTracker) State() DragState {
	return d.state
}

// IsDragging 是否正在拖拽（含刚按下的一帧）
func (d *DragTracker) IsDragging() bool {
	return d.state == DragStateStarted || d.state == DragStateDragging
}

// TouchID 正在跟踪的触摸（鼠标拖拽或未拖拽时为 -1）
func (d *DragTracker) TouchID() ebiten.TouchID {
	if d.IsDragging() && d.touch {
		return d.touchID
	}
	return -1
}

// Distance 从起点到当前位置的距离
func (d *DragTracker) Distance() (dx, dy int) {
	return d.lastX - d.startX, d.lastY - d.startY
}
