package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageComponent 存储元素的图片
//
// Source 由预加载器在后台解码得到；Image 在渲染线程首次绘制时由 Source 创建。
type ImageComponent struct {
	Key    string
	Source image.Image
	Image  *ebiten.Image
}

// SectionComponent 标记页面分区
type SectionComponent struct {
	Name string

	// Pinned 固定在视口中，不随滚动移动
	Pinned bool
}
