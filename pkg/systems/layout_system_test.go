package systems

import (
	"image"
	"testing"

	"github.com/decker502/columns/pkg/components"
	"github.com/decker502/columns/pkg/config"
	"github.com/decker502/columns/pkg/ecs"
	"github.com/decker502/columns/pkg/game"
	"github.com/decker502/columns/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testViewport = utils.Viewport{Width: 1000, Height: 800}

// testLayout 2 栏 x 2 条目，条目 500x500，无间距
func testLayout() config.LayoutConfig {
	return config.LayoutConfig{
		Columns:        2,
		ItemsPerColumn: 2,
		ContentWidth:   1,
		ItemAspect:     1,
		Gap:            0,
		ScrollPages:    3,
	}
}

func buildTestDocument(t *testing.T) (*ecs.EntityManager, Document) {
	t.Helper()
	em := ecs.NewEntityManager()
	doc := NewLayoutSystem(em, testLayout()).Build(testViewport, nil)
	return em, doc
}

func TestLayoutSystem_Build(t *testing.T) {
	em, doc := buildTestDocument(t)

	// section + columns + 2*(wrap+column) + 4*(item+img) + showcase
	assert.Equal(t, 15, em.EntityCount())
	assert.Equal(t, 3200.0, doc.Height)
	assert.Equal(t, 2400.0, doc.Limit)
	assert.Equal(t, testViewport, doc.Viewport)

	assert.Len(t, SelectByClass(em, config.ClassColumnWrap), 2)
	assert.Len(t, SelectByClass(em, config.ClassColumn), 2)
	assert.Len(t, SelectByClass(em, config.ClassItemImage), 4)
	assert.Equal(t, []ecs.EntityID{doc.ColumnsSection, doc.ShowcaseSection}, SelectByClass(em, "section"))

	items := SelectByClass(em, config.ClassItem)
	require.Len(t, items, 4)
	want := [][2]float64{{0, -100}, {0, 400}, {500, -100}, {500, 400}}
	for i, id := range items {
		x, y, ok := OffsetPosition(em, id)
		require.True(t, ok)
		assert.Equal(t, want[i], [2]float64{x, y}, "item %d", i)
	}

	sec, ok := ecs.GetComponent[*components.SectionComponent](em, doc.ColumnsSection)
	require.True(t, ok)
	assert.True(t, sec.Pinned)
}

func TestLayoutSystem_Images(t *testing.T) {
	em := ecs.NewEntityManager()
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	images := map[string]image.Image{game.ImageKey(0): src}

	NewLayoutSystem(em, testLayout()).Build(testViewport, MapImages(images))

	imgs := SelectByClass(em, config.ClassItemImage)
	first, _ := ecs.GetComponent[*components.ImageComponent](em, imgs[0])
	second, _ := ecs.GetComponent[*components.ImageComponent](em, imgs[1])
	assert.Equal(t, game.ImageKey(0), first.Key)
	assert.Same(t, src, first.Source.(*image.RGBA))
	assert.Nil(t, second.Source)
}

func TestLayoutSystem_Rebuild(t *testing.T) {
	em := ecs.NewEntityManager()
	ls := NewLayoutSystem(em, testLayout())
	ls.Build(testViewport, nil)
	doc := ls.Build(utils.Viewport{Width: 500, Height: 400}, nil)

	assert.Equal(t, 15, em.EntityCount(), "rebuild should replace the previous tree")
	assert.Equal(t, 1200.0, doc.Limit)
	assert.Equal(t, 4, ls.ItemCount())
}

func TestGeometry_ClientRect(t *testing.T) {
	em, doc := buildTestDocument(t)
	items := SelectByClass(em, config.ClassItem)

	r, ok := ClientRect(em, items[0], 0)
	require.True(t, ok)
	assert.Equal(t, Rect{X: 0, Y: -100, Width: 500, Height: 500}, r)

	// 固定分区不随滚动移动
	r, _ = ClientRect(em, items[0], 1000)
	assert.Equal(t, -100.0, r.Y)

	// 展示区随滚动上移
	r, _ = ClientRect(em, doc.ShowcaseSection, 2400)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 1000, Height: 800}, r)

	// 分区绕中心缩放
	sectionTr, _ := ecs.GetComponent[*components.TransformComponent](em, doc.ColumnsSection)
	sectionTr.Scale = 0.5
	r, _ = ClientRect(em, items[0], 0)
	assert.InDelta(t, 250, r.X, 1e-9)
	assert.InDelta(t, 150, r.Y, 1e-9)
	assert.InDelta(t, 250, r.Width, 1e-9)
	assert.InDelta(t, 250, r.Height, 1e-9)

	// yPercent 以自身高度计算
	sectionTr.Scale = 1
	wraps := SelectByClass(em, config.ClassColumnWrap)
	wrapTr, _ := ecs.GetComponent[*components.TransformComponent](em, wraps[0])
	wrapTr.YPercent = 10 // 高度 1000 -> 下移 100
	r, _ = ClientRect(em, items[0], 0)
	assert.InDelta(t, 0, r.Y, 1e-9)
}

func TestGeometry_ElementGeometry(t *testing.T) {
	em, doc := buildTestDocument(t)
	items := SelectByClass(em, config.ClassItem)

	sectionTr, _ := ecs.GetComponent[*components.TransformComponent](em, doc.ColumnsSection)
	sectionTr.Scale = 0.7

	g, ok := Geometry(em, items[0], 0)
	require.True(t, ok)
	assert.InDelta(t, 150, g.Left, 1e-9)
	assert.InDelta(t, 50, g.Top, 1e-9)
	assert.Equal(t, 500.0, g.Width, "size is the untransformed layout size")
	assert.Equal(t, 500.0, g.Height)
	assert.Equal(t, 0.0, g.OffsetLeft, "offset position ignores transforms")
	assert.Equal(t, -100.0, g.OffsetTop)

	_, ok = Geometry(em, 9999, 0)
	assert.False(t, ok)
}

func TestGeometry_DocumentBox(t *testing.T) {
	em, doc := buildTestDocument(t)

	box, ok := DocumentBox(em, doc.ShowcaseSection)
	require.True(t, ok)
	assert.Equal(t, 2400.0, box.Top)
	assert.Equal(t, 800.0, box.Height)

	items := SelectByClass(em, config.ClassItem)
	box, _ = DocumentBox(em, items[1])
	assert.Equal(t, 400.0, box.Top)
}

func TestGeometry_Children(t *testing.T) {
	em, doc := buildTestDocument(t)
	children := Children(em, doc.ColumnsSection)
	require.Len(t, children, 1)
	assert.Equal(t, SelectByClass(em, config.ClassColumns), children)
	assert.Len(t, Children(em, 0), 2, "two root sections")
}

func TestRect_Intersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, a.Intersects(Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.False(t, a.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5}), "edges touching do not intersect")
	cx, cy := a.Center()
	assert.Equal(t, [2]float64{5, 5}, [2]float64{cx, cy})
}
