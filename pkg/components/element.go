package components

import "github.com/decker502/columns/pkg/ecs"

// ElementComponent 元素的布局盒（未变换）
//
// X/Y 是相对父元素内容区左上角的布局位置（即 offsetLeft/offsetTop），
// 不受滚动和变换影响。根元素的 Parent 为 0，X/Y 为文档坐标。
type ElementComponent struct {
	Parent ecs.EntityID

	X      float64
	Y      float64
	Width  float64
	Height float64

	// Index 在同类兄弟元素中的序号（文档顺序，从 0 开始）
	Index int
}

// SelectorComponent 元素的类名集合，用于按类名查询目标
type SelectorComponent struct {
	Classes []string
}

// HasClass 检查是否包含指定类名
func (s *SelectorComponent) HasClass(class string) bool {
	for _, c := range s.Classes {
		if c == class {
			return true
		}
	}
	return false
}
