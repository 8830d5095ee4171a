package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Easing Functions (缓动函数)
//
// 所有函数接受进度值 t ∈ [0, 1]，返回缓动后的值（端点固定为 0 和 1）。
// 名称沿用时间轴配置中的写法："none"、"power2.out"、"power4.inOut" 等。
//
// power 系列与多项式阶数的对应关系：
//
//	power1 = Quad, power2 = Cubic, power3 = Quart, power4 = Quint
//
// 参考：https://easings.net/

// EaseFunc 缓动函数类型
type EaseFunc func(t float64) float64

// ErrUnknownEase 缓动名称无法识别
var ErrUnknownEase = errors.New("unknown ease")

// EaseLinear 线性缓动（配置名 "none" / "linear"）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInCubic 三次方缓入
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
func EaseInOutCubic(t float64) float64 {
	return easeInOutPow(t, 3)
}

// EaseInOutQuint 五次方缓入缓出（配置名 "power4.inOut"）
// 公式：
//
//	t < 0.5: f(t) = 16t⁵
//	t >= 0.5: f(t) = 1 - (-2t + 2)⁵ / 2
func EaseInOutQuint(t float64) float64 {
	return easeInOutPow(t, 5)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func easeInPow(t, p float64) float64 {
	return math.Pow(t, p)
}

func easeOutPow(t, p float64) float64 {
	return 1 - math.Pow(1-t, p)
}

func easeInOutPow(t, p float64) float64 {
	if t < 0.5 {
		return math.Pow(2, p-1) * math.Pow(t, p)
	}
	return 1 - math.Pow(-2*t+2, p)/2
}

// ParseEase 根据配置名称返回缓动函数
//
// 支持：
//   - "" / "none" / "linear"
//   - "power0" ~ "power4"，可带 ".in" / ".out" / ".inOut" 后缀（无后缀等同 ".out"）
//
// 返回：
//   - EaseFunc: 缓动函数
//   - error: 名称无法识别时返回包装了 ErrUnknownEase 的错误
func ParseEase(name string) (EaseFunc, error) {
	switch name {
	case "", "none", "linear", "power0":
		return EaseLinear, nil
	}

	base, dir, hasDir := strings.Cut(name, ".")
	if !strings.HasPrefix(base, "power") || len(base) != len("power")+1 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}

	level := base[len(base)-1]
	if level < '0' || level > '4' {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
	}
	if level == '0' {
		return EaseLinear, nil
	}
	p := float64(level-'0') + 1

	if !hasDir {
		dir = "out"
	}
	switch dir {
	case "in":
		return func(t float64) float64 { return easeInPow(t, p) }, nil
	case "out":
		return func(t float64) float64 { return easeOutPow(t, p) }, nil
	case "inOut":
		return func(t float64) float64 { return easeInOutPow(t, p) }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEase, name)
}
