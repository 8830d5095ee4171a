package systems

import (
	"math"

	"github.com/decker502/columns/pkg/components"
	"github.com/decker502/columns/pkg/ecs"
	"github.com/decker502/columns/pkg/timeline"
	"github.com/decker502/columns/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxTreeDepth 防止父子关系成环时无限递归
const maxTreeDepth = 64

// Rect 视口坐标中的轴对齐矩形
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Intersects 检查两个矩形是否相交
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// localGeoM 元素自身的变换：绕中心缩放，再平移到父元素中的布局位置
func localGeoM(el *components.ElementComponent, tr *components.TransformComponent) ebiten.GeoM {
	var g ebiten.GeoM
	if tr != nil {
		if tr.Scale != 1 {
			g.Translate(-el.Width/2, -el.Height/2)
			g.Scale(tr.Scale, tr.Scale)
			g.Translate(el.Width/2, el.Height/2)
		}
		g.Translate(tr.X, tr.Y+tr.YPercent*el.Height/100)
	}
	g.Translate(el.X, el.Y)
	return g
}

// WorldGeoM 返回把元素本地坐标映射到视口坐标的变换
//
// 包含元素自身及所有祖先的变换；非固定的根元素随滚动上移。
func WorldGeoM(em *ecs.EntityManager, id ecs.EntityID, scroll float64) (ebiten.GeoM, bool) {
	var g ebiten.GeoM
	for depth := 0; depth < maxTreeDepth; depth++ {
		el, ok := ecs.GetComponent[*components.ElementComponent](em, id)
		if !ok {
			return ebiten.GeoM{}, false
		}
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

		local := localGeoM(el, tr)
		g.Concat(local)

		if el.Parent == 0 {
			if !isPinned(em, id) {
				g.Translate(0, -scroll)
			}
			return g, true
		}
		id = el.Parent
	}
	return ebiten.GeoM{}, false
}

func isPinned(em *ecs.EntityManager, id ecs.EntityID) bool {
	sec, ok := ecs.GetComponent[*components.SectionComponent](em, id)
	return ok && sec.Pinned
}

// ClientRect 返回元素渲染后的包围盒（视口坐标，含所有变换和滚动）
func ClientRect(em *ecs.EntityManager, id ecs.EntityID, scroll float64) (Rect, bool) {
	el, ok := ecs.GetComponent[*components.ElementComponent](em, id)
	if !ok {
		return Rect{}, false
	}
	g, ok := WorldGeoM(em, id, scroll)
	if !ok {
		return Rect{}, false
	}
	return transformRect(g, el.Width, el.Height), true
}

func transformRect(g ebiten.GeoM, w, h float64) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := g.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// OffsetPosition 返回元素相对根分区的布局位置（不含变换和滚动）
func OffsetPosition(em *ecs.EntityManager, id ecs.EntityID) (float64, float64, bool) {
	var x, y float64
	for depth := 0; depth < maxTreeDepth; depth++ {
		el, ok := ecs.GetComponent[*components.ElementComponent](em, id)
		if !ok {
			return 0, 0, false
		}
		if el.Parent == 0 {
			return x, y, true
		}
		x += el.X
		y += el.Y
		id = el.Parent
	}
	return 0, 0, false
}

// Geometry 返回位移计算所需的元素几何信息
//
// Left/Top 取渲染包围盒（视口坐标），Width/Height 取未变换的布局尺寸，
// OffsetLeft/OffsetTop 取相对根分区的布局位置。
func Geometry(em *ecs.EntityManager, id ecs.EntityID, scroll float64) (utils.ElementGeometry, bool) {
	el, ok := ecs.GetComponent[*components.ElementComponent](em, id)
	if !ok {
		return utils.ElementGeometry{}, false
	}
	rect, ok := ClientRect(em, id, scroll)
	if !ok {
		return utils.ElementGeometry{}, false
	}
	ox, oy, ok := OffsetPosition(em, id)
	if !ok {
		return utils.ElementGeometry{}, false
	}
	return utils.ElementGeometry{
		Left:       rect.X,
		Top:        rect.Y,
		Width:      el.Width,
		Height:     el.Height,
		OffsetLeft: ox,
		OffsetTop:  oy,
	}, true
}

// DocumentBox 返回元素在文档中的纵向范围（布局位置，用于解析滚动触发器）
func DocumentBox(em *ecs.EntityManager, id ecs.EntityID) (timeline.Box, bool) {
	el, ok := ecs.GetComponent[*components.ElementComponent](em, id)
	if !ok {
		return timeline.Box{}, false
	}
	top := 0.0
	cur := id
	for depth := 0; depth < maxTreeDepth; depth++ {
		e, ok := ecs.GetComponent[*components.ElementComponent](em, cur)
		if !ok {
			return timeline.Box{}, false
		}
		top += e.Y
		if e.Parent == 0 {
			return timeline.Box{Top: top, Height: el.Height}, true
		}
		cur = e.Parent
	}
	return timeline.Box{}, false
}

// SelectByClass 按文档顺序返回拥有类名的元素
func SelectByClass(em *ecs.EntityManager, class string) []ecs.EntityID {
	var result []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith2[*components.ElementComponent, *components.SelectorComponent](em) {
		sel, _ := ecs.GetComponent[*components.SelectorComponent](em, id)
		if sel.HasClass(class) {
			result = append(result, id)
		}
	}
	return result
}

// Children 按文档顺序返回子元素
func Children(em *ecs.EntityManager, parent ecs.EntityID) []ecs.EntityID {
	var result []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.ElementComponent](em) {
		el, _ := ecs.GetComponent[*components.ElementComponent](em, id)
		if el.Parent == parent {
			result = append(result, id)
		}
	}
	return result
}
