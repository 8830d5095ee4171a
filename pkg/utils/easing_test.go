package utils

import (
	"errors"
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 1} {
		if math.Abs(EaseLinear(v)-v) > 0.001 {
			t.Errorf("EaseLinear(%v) = %v, 期望 %v", v, EaseLinear(v), v)
		}
	}
}

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseInOutQuint 测试五次方缓入缓出（power4.inOut）
func TestEaseInOutQuint(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.0, 0.0},
		{0.25, 0.015625}, // 16 * 0.25^5
		{0.5, 0.5},
		{0.75, 0.984375},
		{1.0, 1.0},
	}

	for _, tt := range tests {
		result := EaseInOutQuint(tt.input)
		if math.Abs(result-tt.expected) > 1e-9 {
			t.Errorf("EaseInOutQuint(%v) = %v, 期望 %v", tt.input, result, tt.expected)
		}
	}

	// 关于中点对称
	for p := 0.05; p < 0.5; p += 0.05 {
		if math.Abs(EaseInOutQuint(p)+EaseInOutQuint(1-p)-1) > 1e-9 {
			t.Errorf("EaseInOutQuint 在 %v 处不对称", p)
		}
	}
}

// TestParseEase 测试缓动名称解析
func TestParseEase(t *testing.T) {
	tests := []struct {
		name string
		at   float64
		want float64
	}{
		{"none", 0.3, 0.3},
		{"", 0.3, 0.3},
		{"linear", 0.7, 0.7},
		{"power0", 0.7, 0.7},
		{"power1.in", 0.5, 0.25},
		{"power1.out", 0.5, 0.75},
		{"power1", 0.5, 0.75},
		{"power2.out", 0.5, 0.875},
		{"power2.inOut", 0.25, 0.0625},
		{"power3.in", 0.5, 0.0625},
		{"power4.inOut", 0.25, 0.015625},
		{"power4.inOut", 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := ParseEase(tt.name)
			if err != nil {
				t.Fatalf("ParseEase(%q) error: %v", tt.name, err)
			}
			if got := fn(tt.at); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%s(%v) = %v, 期望 %v", tt.name, tt.at, got, tt.want)
			}
			if math.Abs(fn(0)) > 1e-9 || math.Abs(fn(1)-1) > 1e-9 {
				t.Errorf("%s 端点应为 0 和 1", tt.name)
			}
		})
	}
}

// TestParseEase_Unknown 测试无法识别的缓动名称
func TestParseEase_Unknown(t *testing.T) {
	for _, name := range []string{"bounce", "power5", "power2.sideways", "powerX.in", "power"} {
		if _, err := ParseEase(name); !errors.Is(err, ErrUnknownEase) {
			t.Errorf("ParseEase(%q) 应返回 ErrUnknownEase, 实际: %v", name, err)
		}
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestClamp01 测试进度截断
func TestClamp01(t *testing.T) {
	if Clamp01(-0.5) != 0 || Clamp01(1.5) != 1 || Clamp01(0.4) != 0.4 {
		t.Error("Clamp01 截断结果不正确")
	}
}

// TestScaleAnimation 测试缩放动画（从 0.8 到 1.0，线性）
func TestScaleAnimation(t *testing.T) {
	tests := []struct {
		progress      float64
		expectedScale float64
	}{
		{0.0, 0.8},
		{0.5, 0.9},
		{1.0, 1.0},
	}

	for _, tt := range tests {
		scale := Lerp(0.8, 1.0, EaseLinear(tt.progress))
		if math.Abs(scale-tt.expectedScale) > 0.001 {
			t.Errorf("进度 %v 时，缩放应该是 %v，实际: %v", tt.progress, tt.expectedScale, scale)
		}
	}
}
