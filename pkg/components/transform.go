package components

// TransformComponent 元素的动画属性，由时间轴写入、渲染系统读取
//
// 变换原点为元素中心。最终屏幕位置 = 布局位置 + (X, Y) + YPercent% * 高度，
// 再叠加祖先元素的变换。
type TransformComponent struct {
	// Scale 缩放（1.0 = 原始大小）
	Scale float64

	// X/Y 平移（像素）
	X float64
	Y float64

	// YPercent 以自身高度百分比表示的纵向平移（10 = 下移 10% 高度）
	YPercent float64

	// Opacity 不透明度 0.0 ~ 1.0，作用于整个子树
	Opacity float64

	// Grayscale 灰度 0.0（彩色）~ 1.0（完全灰度）
	Grayscale float64
}

// NewTransform 返回单位变换
func NewTransform() *TransformComponent {
	return &TransformComponent{
		Scale:   1,
		Opacity: 1,
	}
}

// Reset 恢复单位变换
func (t *TransformComponent) Reset() {
	*t = *NewTransform()
}
