// Package timeline 实现滚动驱动（scrub）的补间时间轴
//
// 时间轴的进度直接由滚动位置决定：每个补间属于一个触发器，
// 触发器把滚动区间 [Start, End] 映射到进度 [0, 1]，补间再把进度
// 经过重复、往返和缓动换算成属性值。
//
// 本包不依赖渲染和实体存储，属性写入通过 Tween.Apply 回调完成。
package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadPosition 触发器位置写法无法识别
var ErrBadPosition = errors.New("invalid trigger position")

// Edge 元素或视口的边
type Edge int

const (
	EdgeTop Edge = iota
	EdgeCenter
	EdgeBottom
)

func parseEdge(s string) (Edge, bool) {
	switch s {
	case "top":
		return EdgeTop, true
	case "center":
		return EdgeCenter, true
	case "bottom":
		return EdgeBottom, true
	}
	return 0, false
}

// PositionKind 触发器位置的类型
type PositionKind int

const (
	// PositionPixels 固定滚动位置
	PositionPixels PositionKind = iota
	// PositionMax 最大滚动位置
	PositionMax
	// PositionRelative 元素的边与视口的边对齐时的滚动位置
	PositionRelative
)

// Position 触发器起点或终点
type Position struct {
	Kind     PositionKind
	Pixels   float64
	Element  Edge
	Viewport Edge
}

// ParsePosition 解析位置写法
//
// 支持：
//   - 数值（像素），如 "0"、"1200"
//   - "max"：文档最大滚动位置
//   - "<元素边> <视口边>"，边取 top / center / bottom，如 "top top"、"center bottom"
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Position{}, fmt.Errorf("%w: empty", ErrBadPosition)
	}
	if s == "max" {
		return Position{Kind: PositionMax}, nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return Position{Kind: PositionPixels, Pixels: n}, nil
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	el, ok1 := parseEdge(fields[0])
	vp, ok2 := parseEdge(fields[1])
	if !ok1 || !ok2 {
		return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	return Position{Kind: PositionRelative, Element: el, Viewport: vp}, nil
}

// MustParsePosition 解析位置，失败时 panic（用于常量配置）
func MustParsePosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Box 触发元素在文档中的纵向范围
type Box struct {
	Top    float64
	Height float64
}

// Scene 解析位置所需的页面信息
type Scene struct {
	// Element 触发元素（nil 表示无触发元素）
	Element *Box

	// ViewportHeight 视口高度
	ViewportHeight float64

	// Limit 最大滚动位置
	Limit float64
}

func edgeOffset(e Edge, size float64) float64 {
	switch e {
	case EdgeCenter:
		return size / 2
	case EdgeBottom:
		return size
	}
	return 0
}

// Resolve 将位置换算成滚动像素
//
// 相对位置在没有触发元素时按文档顶部（高度 0）计算。
func (p Position) Resolve(sc Scene) float64 {
	switch p.Kind {
	case PositionMax:
		return sc.Limit
	case PositionRelative:
		box := Box{}
		if sc.Element != nil {
			box = *sc.Element
		}
		return box.Top + edgeOffset(p.Element, box.Height) - edgeOffset(p.Viewport, sc.ViewportHeight)
	}
	return p.Pixels
}

// Trigger 已解析的滚动区间
type Trigger struct {
	Start float64
	End   float64
}

// NewTrigger 解析起点和终点
func NewTrigger(start, end Position, sc Scene) Trigger {
	return Trigger{Start: start.Resolve(sc), End: end.Resolve(sc)}
}

// Progress 返回滚动位置对应的进度 [0, 1]
//
// 区间长度 <= 0 时，到达起点即为 1。
func (t Trigger) Progress(scroll float64) float64 {
	if t.End <= t.Start {
		if scroll >= t.Start {
			return 1
		}
		return 0
	}
	p := (scroll - t.Start) / (t.End - t.Start)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
