package game

import (
	"log"
	"math"
)

// DefaultScrollLerp 默认平滑系数（60fps 基准下每帧靠近目标的比例）
const DefaultScrollLerp = 0.2

// ScrollSession 平滑滚动会话
//
// 输入（滚轮、按键、ScrollTo）只修改目标位置，Frame 每帧把实际位置
// 按指数衰减向目标靠近。会话停止后忽略输入，实际位置保持不变。
type ScrollSession struct {
	// Lerp 平滑系数，取值 (0, 1]，1 表示立即到达
	Lerp float64

	// WheelMultiplier 滚轮增量倍率
	WheelMultiplier float64

	target   float64
	animated float64
	limit    float64
	running  bool
	moving   bool

	listeners []func(scroll float64)
}

// NewScrollSession 创建滚动会话（未启动）
func NewScrollSession(lerp, wheelMultiplier float64) *ScrollSession {
	if lerp <= 0 || lerp > 1 {
		lerp = DefaultScrollLerp
	}
	if wheelMultiplier == 0 {
		wheelMultiplier = 1
	}
	return &ScrollSession{
		Lerp:            lerp,
		WheelMultiplier: wheelMultiplier,
	}
}

// Start 启动会话，可重复调用
func (s *ScrollSession) Start() {
	if s.running {
		return
	}
	s.running = true
	log.Printf("[ScrollSession] started (lerp=%.2f, limit=%.0f)", s.Lerp, s.limit)
}

// Stop 停止会话，可重复调用
// 停止时丢弃未完成的平滑滚动，位置停在当前值
func (s *ScrollSession) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.target = s.animated
	s.moving = false
	log.Printf("[ScrollSession] stopped at %.1f", s.animated)
}

// Running 返回会话是否在运行
func (s *ScrollSession) Running() bool {
	return s.running
}

// OnScroll 注册位置变化回调（在 Frame 中调用）
func (s *ScrollSession) OnScroll(fn func(scroll float64)) {
	s.listeners = append(s.listeners, fn)
}

// SetLimit 设置最大滚动位置，当前位置与目标被限制在新范围内
func (s *ScrollSession) SetLimit(limit float64) {
	if limit < 0 {
		limit = 0
	}
	s.limit = limit
	s.target = s.clamp(s.target)
	if clamped := s.clamp(s.animated); clamped != s.animated {
		s.animated = clamped
		s.emit()
	}
}

// Limit 返回最大滚动位置
func (s *ScrollSession) Limit() float64 {
	return s.limit
}

// Wheel 处理滚轮增量（像素，向下为正）
func (s *ScrollSession) Wheel(delta float64) {
	s.ScrollBy(delta * s.WheelMultiplier)
}

// ScrollBy 平滑滚动 delta 像素
func (s *ScrollSession) ScrollBy(delta float64) {
	if !s.running {
		return
	}
	s.ScrollTo(s.target+delta, false)
}

// ScrollTo 滚动到 target；immediate 为 true 时跳过平滑直接到达
func (s *ScrollSession) ScrollTo(target float64, immediate bool) {
	if !s.running {
		return
	}
	s.target = s.clamp(target)
	if immediate {
		s.moving = false
		if s.animated != s.target {
			s.animated = s.target
			s.emit()
		}
		return
	}
	s.moving = s.animated != s.target
}

// Frame 推进 dt 秒
// 返回位置是否发生变化
func (s *ScrollSession) Frame(dt float64) bool {
	if !s.running || !s.moving {
		return false
	}

	s.animated = damp(s.animated, s.target, s.Lerp*60, dt)
	if math.Round(s.animated) == math.Round(s.target) {
		s.animated = s.target
		s.moving = false
	}
	s.emit()
	return true
}

// Scroll 返回当前（平滑后的）滚动位置
func (s *ScrollSession) Scroll() float64 {
	return s.animated
}

// Target 返回目标滚动位置
func (s *ScrollSession) Target() float64 {
	return s.target
}

// Moving 返回是否正在平滑滚动
func (s *ScrollSession) Moving() bool {
	return s.moving
}

// Progress 返回滚动进度 [0, 1]，无可滚动范围时为 0
func (s *ScrollSession) Progress() float64 {
	if s.limit <= 0 {
		return 0
	}
	return s.animated / s.limit
}

func (s *ScrollSession) clamp(v float64) float64 {
	return math.Max(0, math.Min(v, s.limit))
}

func (s *ScrollSession) emit() {
	for _, fn := range s.listeners {
		fn(s.animated)
	}
}

// damp 帧率无关的指数平滑
// lambda 为每秒衰减速率，lerp 0.2 @ 60fps 对应 lambda = 12
func damp(from, to, lambda, dt float64) float64 {
	t := 1 - math.Exp(-lambda*dt)
	return from + (to-from)*t
}
