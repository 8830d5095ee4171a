package systems

import (
	"image"
	"log"

	"github.com/decker502/columns/pkg/components"
	"github.com/decker502/columns/pkg/config"
	"github.com/decker502/columns/pkg/ecs"
	"github.com/decker502/columns/pkg/game"
	"github.com/decker502/columns/pkg/utils"
)

// ImageLookup 按图片键返回已解码的图片，不存在时返回 nil
type ImageLookup func(key string) image.Image

// MapImages 把图片表包装成 ImageLookup
func MapImages(images map[string]image.Image) ImageLookup {
	return func(key string) image.Image {
		return images[key]
	}
}

// Document 布局结果：页面的分区和滚动范围
type Document struct {
	// ColumnsSection 固定在视口中的分栏区
	ColumnsSection ecs.EntityID

	// ShowcaseSection 分栏区之后的展示区
	ShowcaseSection ecs.EntityID

	// Height 文档总高度
	Height float64

	// Limit 最大滚动位置（文档高度 - 视口高度）
	Limit float64

	Viewport utils.Viewport
}

// LayoutSystem 根据布局配置生成页面元素树
//
// 元素树（类名）：
//
//	section--columns（固定）
//	  columns
//	    column-wrap × Columns
//	      column
//	        column__item × ItemsPerColumn
//	          column__item-img
//	section--showcase
//
// 分栏区固定在视口，之后是 ScrollPages 个视口高度的滚动距离和
// 一个视口高度的展示区。
type LayoutSystem struct {
	entityManager *ecs.EntityManager
	layout        config.LayoutConfig
}

// NewLayoutSystem 创建布局系统
func NewLayoutSystem(em *ecs.EntityManager, layout config.LayoutConfig) *LayoutSystem {
	return &LayoutSystem{
		entityManager: em,
		layout:        layout,
	}
}

// ItemCount 返回条目总数
func (s *LayoutSystem) ItemCount() int {
	return s.layout.Columns * s.layout.ItemsPerColumn
}

// Build 清空实体并按视口尺寸重新生成元素树
//
// images 按图片键提供条目图片（ImageComponent.Source），缺失的键保持为空，
// 由渲染系统绘制占位底色。
func (s *LayoutSystem) Build(vp utils.Viewport, images ImageLookup) Document {
	em := s.entityManager
	em.Clear()

	l := s.layout
	contentWidth := vp.Width * l.ContentWidth
	colWidth := (contentWidth - float64(l.Columns-1)*l.Gap) / float64(l.Columns)
	itemHeight := colWidth * l.ItemAspect
	colHeight := float64(l.ItemsPerColumn)*itemHeight + float64(l.ItemsPerColumn-1)*l.Gap

	section := s.createElement(0, 0, 0, 0, vp.Width, vp.Height, "section", config.ClassColumnsSection)
	ecs.AddComponent(em, section, &components.SectionComponent{Name: "columns", Pinned: true})

	// 分栏整体在分区内水平、垂直居中（高于视口时向上溢出）
	columns := s.createElement(section, 0, (vp.Width-contentWidth)/2, (vp.Height-colHeight)/2, contentWidth, colHeight, config.ClassColumns)

	n := 0
	for c := 0; c < l.Columns; c++ {
		wrap := s.createElement(columns, c, float64(c)*(colWidth+l.Gap), 0, colWidth, colHeight, config.ClassColumnWrap)
		column := s.createElement(wrap, 0, 0, 0, colWidth, colHeight, config.ClassColumn)

		for i := 0; i < l.ItemsPerColumn; i++ {
			item := s.createElement(column, i, 0, float64(i)*(itemHeight+l.Gap), colWidth, itemHeight, config.ClassItem)
			img := s.createElement(item, 0, 0, 0, colWidth, itemHeight, config.ClassItemImage)

			key := game.ImageKey(n)
			comp := &components.ImageComponent{Key: key}
			if images != nil {
				comp.Source = images(key)
			}
			ecs.AddComponent(em, img, comp)
			n++
		}
	}

	spacer := vp.Height * l.ScrollPages
	showcase := s.createElement(0, 1, 0, spacer, vp.Width, vp.Height, "section", config.ClassShowcaseSection)
	ecs.AddComponent(em, showcase, &components.SectionComponent{Name: "showcase"})

	doc := Document{
		ColumnsSection:  section,
		ShowcaseSection: showcase,
		Height:          spacer + vp.Height,
		Viewport:        vp,
	}
	doc.Limit = doc.Height - vp.Height
	if doc.Limit < 0 {
		doc.Limit = 0
	}

	log.Printf("[LayoutSystem] %dx%d items, item %.0fx%.0f, document height %.0f (viewport %.0fx%.0f)",
		l.Columns, l.ItemsPerColumn, colWidth, itemHeight, doc.Height, vp.Width, vp.Height)
	return doc
}

func (s *LayoutSystem) createElement(parent ecs.EntityID, index int, x, y, w, h float64, classes ...string) ecs.EntityID {
	em := s.entityManager
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.ElementComponent{
		Parent: parent,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Index:  index,
	})
	ecs.AddComponent(em, id, &components.SelectorComponent{Classes: classes})
	ecs.AddComponent(em, id, components.NewTransform())
	return id
}
