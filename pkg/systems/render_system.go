package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/decker502/columns/pkg/components"
	"github.com/decker502/columns/pkg/ecs"
	"github.com/decker502/columns/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 绘制分栏页面
//
// 每个条目图片按 cover 方式填满条目并裁剪到条目范围内，再叠加
// 祖先元素的缩放、平移、不透明度和灰度。展示区在滚入视口时绘制底色。
type RenderSystem struct {
	entityManager *ecs.EntityManager

	Background   color.Color
	ShowcaseFill color.Color
	EmptyItem    color.Color
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		Background:    color.RGBA{R: 0x0d, G: 0x0d, B: 0x0d, A: 0xff},
		ShowcaseFill:  color.RGBA{R: 0x1c, G: 0x1a, B: 0x17, A: 0xff},
		EmptyItem:     color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	}
}

// Draw 按文档顺序绘制所有元素
func (s *RenderSystem) Draw(screen *ebiten.Image, scroll float64) {
	em := s.entityManager
	screen.Fill(s.Background)
	bounds := screen.Bounds()
	screenRect := Rect{X: float64(bounds.Min.X), Y: float64(bounds.Min.Y), Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}

	for _, id := range ecs.GetEntitiesWith1[*components.SectionComponent](em) {
		sec, _ := ecs.GetComponent[*components.SectionComponent](em, id)
		if sec.Pinned {
			continue
		}
		if r, ok := ClientRect(em, id, scroll); ok && r.Intersects(screenRect) {
			vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), s.ShowcaseFill, false)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ElementComponent, *components.ImageComponent](em) {
		s.drawImage(screen, screenRect, id, scroll)
	}
}

func (s *RenderSystem) drawImage(screen *ebiten.Image, screenRect Rect, id ecs.EntityID, scroll float64) {
	em := s.entityManager
	el, _ := ecs.GetComponent[*components.ElementComponent](em, id)
	img, _ := ecs.GetComponent[*components.ImageComponent](em, id)

	// 裁剪到父元素（条目）范围
	clip, ok := ClientRect(em, el.Parent, scroll)
	if !ok {
		clip, ok = ClientRect(em, id, scroll)
		if !ok {
			return
		}
	}
	clipRect, visible := intersectRect(clip, screenRect)
	if !visible {
		return
	}

	alpha, saturation := InheritedStyle(em, id)
	if alpha <= 0 {
		return
	}

	target := screen.SubImage(clipRect).(*ebiten.Image)

	if img.Image == nil && img.Source != nil {
		img.Image = ebiten.NewImageFromImage(img.Source)
	}
	if img.Image == nil {
		var cm colorm.ColorM
		cm.Scale(1, 1, 1, alpha)
		r, g, b, a := s.EmptyItem.RGBA()
		c := color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
		vector.DrawFilledRect(target, float32(clip.X), float32(clip.Y), float32(clip.Width), float32(clip.Height), cm.Apply(c), false)
		return
	}

	world, ok := WorldGeoM(em, id, scroll)
	if !ok {
		return
	}
	ib := img.Image.Bounds()
	geo := CoverGeoM(el.Width, el.Height, float64(ib.Dx()), float64(ib.Dy()))
	geo.Concat(world)

	var cm colorm.ColorM
	cm.ChangeHSV(0, saturation, 1)
	cm.Scale(1, 1, 1, alpha)

	op := &colorm.DrawImageOptions{}
	op.GeoM = geo
	op.Filter = ebiten.FilterLinear
	colorm.DrawImage(target, img.Image, cm, op)
}

// CoverGeoM 把 iw x ih 的图片等比缩放到完全覆盖 w x h 并居中
func CoverGeoM(w, h, iw, ih float64) ebiten.GeoM {
	var g ebiten.GeoM
	if iw <= 0 || ih <= 0 {
		return g
	}
	k := math.Max(w/iw, h/ih)
	g.Scale(k, k)
	g.Translate((w-iw*k)/2, (h-ih*k)/2)
	return g
}

// InheritedStyle 返回元素及其祖先累积的不透明度和饱和度
//
// 不透明度逐级相乘；灰度 g 对应饱和度 1-g，同样逐级相乘。
func InheritedStyle(em *ecs.EntityManager, id ecs.EntityID) (alpha, saturation float64) {
	alpha, saturation = 1, 1
	for depth := 0; depth < maxTreeDepth && id != 0; depth++ {
		if tr, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok {
			alpha *= utils.Clamp01(tr.Opacity)
			saturation *= 1 - utils.Clamp01(tr.Grayscale)
		}
		el, ok := ecs.GetComponent[*components.ElementComponent](em, id)
		if !ok {
			break
		}
		id = el.Parent
	}
	return alpha, saturation
}

// intersectRect 返回 r 与 screen 相交部分的整数像素矩形
func intersectRect(r, screen Rect) (image.Rectangle, bool) {
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
	sr := image.Rect(int(screen.X), int(screen.Y), int(screen.X+screen.Width), int(screen.Y+screen.Height))
	rect = rect.Intersect(sr)
	return rect, !rect.Empty()
}
