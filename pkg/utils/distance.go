package utils

import "math"

// 位移计算默认参数
const (
	// DefaultSpread 元素最大位移量（像素）
	DefaultSpread = 400.0

	// DefaultMaxDistance 最大作用距离（像素）
	// 元素中心到视口中心的距离 >= 此值时，位移为 {0, 0}
	DefaultMaxDistance = 5000.0
)

// Viewport 视口尺寸（像素）
// 每次调用时从显示表面读取，不做缓存
type Viewport struct {
	Width  float64
	Height float64
}

// Center 返回视口中心点
func (v Viewport) Center() (float64, float64) {
	return v.Width / 2, v.Height / 2
}

// ElementGeometry 元素几何信息
//
// 包含两套坐标：
//   - Left/Top：渲染后的包围盒左上角（视口坐标，受滚动和父级变换影响）
//   - OffsetLeft/OffsetTop：相对父级的布局位置（不受滚动和变换影响）
//
// Width/Height 是未变换的布局尺寸。
type ElementGeometry struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64

	OffsetLeft float64
	OffsetTop  float64
}

// Offset 带符号的像素位移
type Offset struct {
	X float64
	Y float64
}

// TranslationOptions 位移计算参数，零值字段使用默认值
type TranslationOptions struct {
	Spread      float64
	MaxDistance float64
}

func (o TranslationOptions) withDefaults() TranslationOptions {
	if o.Spread == 0 {
		o.Spread = DefaultSpread
	}
	if o.MaxDistance == 0 {
		o.MaxDistance = DefaultMaxDistance
	}
	return o
}

// MapRange 将 x 从区间 [a, b] 线性映射到 [c, d]
// a == b 时结果为 ±Inf 或 NaN，由调用方避免
func MapRange(x, a, b, c, d float64) float64 {
	return (x-a)*(d-c)/(b-a) + c
}

// CenterDistance 计算元素中心与视口中心的欧氏距离
// 使用布局坐标（OffsetLeft/OffsetTop），与当前滚动位置无关
func CenterDistance(el ElementGeometry, vp Viewport) float64 {
	elX := el.OffsetLeft + el.Width/2
	elY := el.OffsetTop + el.Height/2
	winX, winY := vp.Center()
	return math.Hypot(elX-winX, elY-winY)
}

// TranslationDistance 计算元素需要远离视口中心移动的 x/y 位移
//
// 有效位移量随中心距离线性衰减，距离达到 MaxDistance 时为 0。
// 方向由元素视口坐标中心相对视口中心的角度决定。
//
// 注意：元素中心与视口中心重合时 atan2(0, 0) = 0，返回 {spread, 0}。
func TranslationDistance(el ElementGeometry, vp Viewport, opts TranslationOptions) Offset {
	opts = opts.withDefaults()

	elX := el.Left + el.Width/2
	elY := el.Top + el.Height/2
	winX, winY := vp.Center()

	spread := math.Max(MapRange(CenterDistance(el, vp), 0, opts.MaxDistance, opts.Spread, 0), 0)

	angle := math.Atan2(math.Abs(winY-elY), math.Abs(winX-elX))

	x := math.Abs(math.Cos(angle) * spread)
	y := math.Abs(math.Sin(angle) * spread)

	if elX < winX {
		x = -x
	}
	if elY < winY {
		y = -y
	}
	return Offset{X: x, Y: y}
}
