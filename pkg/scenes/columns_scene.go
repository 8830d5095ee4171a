package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/columns/pkg/config"
	"github.com/decker502/columns/pkg/ecs"
	"github.com/decker502/columns/pkg/game"
	"github.com/decker502/columns/pkg/systems"
	"github.com/decker502/columns/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Command 滚动场景的输入命令
type Command int

const (
	CommandNone Command = iota
	CommandLineDown
	CommandLineUp
	CommandPageDown
	CommandPageUp
	CommandHome
	CommandEnd
	CommandToggleHUD
)

// pageFraction 翻页时滚动的视口高度比例
const pageFraction = 0.9

// ColumnsScene 分栏滚动场景
//
// 进入场景时依次：生成布局、启动平滑滚动会话、构建时间轴。
// 滚动会话由 FrameLoop 逐帧推进，位置变化时驱动时间轴。
type ColumnsScene struct {
	deps        Deps
	variantName string
	variant     config.VariantConfig
	images      systems.ImageLookup

	entityManager  *ecs.EntityManager
	layoutSystem   *systems.LayoutSystem
	timelineSystem *systems.TimelineSystem
	renderSystem   *systems.RenderSystem

	session *game.ScrollSession
	queue   *game.FrameQueue
	loop    *game.FrameLoop

	// drag 触摸拖拽滚动；dragMouse 时鼠标左键也可拖拽
	drag      *utils.DragTracker
	dragMouse bool

	doc       systems.Document
	viewport  utils.Viewport
	elapsed   float64
	lastFrame float64
	showHUD   bool
}

// NewColumnsScene 创建指定变体的分栏场景
//
// 返回：
//   - error: 配置中不存在该变体（包装 config.ErrUnknownVariant）
func NewColumnsScene(deps Deps, variantName string, images systems.ImageLookup) (*ColumnsScene, error) {
	variant, err := deps.Config.Variant(variantName)
	if err != nil {
		return nil, err
	}

	lerp, wheel := deps.Config.Scroll.Lerp, deps.Config.Scroll.WheelMultiplier
	if deps.Settings != nil {
		lerp, wheel = deps.Settings.ScrollOptions(lerp, wheel)
	}

	em := ecs.NewEntityManager()
	queue := game.NewFrameQueue()
	s := &ColumnsScene{
		deps:           deps,
		variantName:    variantName,
		variant:        variant,
		images:         images,
		entityManager:  em,
		layoutSystem:   systems.NewLayoutSystem(em, deps.Config.Layout),
		timelineSystem: systems.NewTimelineSystem(em),
		renderSystem:   systems.NewRenderSystem(em),
		session:        game.NewScrollSession(lerp, wheel),
		queue:          queue,
		loop:           game.NewFrameLoop(queue),
		drag:           utils.NewDragTracker(),
		dragMouse:      utils.IsMobile(),
		showHUD:        true,
	}
	s.session.OnScroll(s.timelineSystem.Update)
	return s, nil
}

// OnEnter 生成布局，启动滚动会话并构建时间轴
func (s *ColumnsScene) OnEnter() {
	s.layout()
	s.session.Start()

	if st := s.deps.Settings; st != nil && st.GetSettings().RestoreScroll {
		s.session.ScrollTo(st.GetSettings().LastScroll, true)
	}

	if err := s.timelineSystem.Build(s.variant, s.doc, s.session.Scroll()); err != nil {
		log.Printf("[ColumnsScene] Failed to build timeline for %s: %v", s.variantName, err)
	}

	s.lastFrame = s.elapsed
	s.loop.Start(s.frame)
	log.Printf("[ColumnsScene] Entered variant %s", s.variantName)
}

// OnExit 停止滚动并记录位置
func (s *ColumnsScene) OnExit() {
	s.loop.Cancel()
	s.session.Stop()
	if s.deps.Settings != nil {
		s.deps.Settings.SetLastScroll(s.session.Scroll())
	}
}

// layout 按当前视口生成元素树并更新滚动范围
func (s *ColumnsScene) layout() {
	s.viewport = s.deps.Viewport()
	s.doc = s.layoutSystem.Build(s.viewport, s.images)
	s.session.SetLimit(s.doc.Limit)
}

// refresh 视口尺寸变化后重新布局并重建时间轴，保持滚动进度
func (s *ColumnsScene) refresh() {
	progress := s.session.Progress()
	s.layout()
	s.session.ScrollTo(progress*s.doc.Limit, true)
	if err := s.timelineSystem.Build(s.variant, s.doc, s.session.Scroll()); err != nil {
		log.Printf("[ColumnsScene] Failed to rebuild timeline: %v", err)
	}
	log.Printf("[ColumnsScene] Refreshed for viewport %.0fx%.0f", s.viewport.Width, s.viewport.Height)
}

// frame FrameLoop 回调：推进平滑滚动
func (s *ColumnsScene) frame(now float64) {
	dt := now - s.lastFrame
	s.lastFrame = now
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	s.session.Frame(dt)
}

// Update 处理输入并执行帧回调
func (s *ColumnsScene) Update(deltaTime float64) {
	s.elapsed += deltaTime

	if vp := s.deps.Viewport(); vp != s.viewport {
		s.refresh()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		// ebiten 向上滚动为正，页面向下滚动为正
		s.session.Wheel(-dy * s.deps.Config.Scroll.WheelStep)
	}
	if _, dy := s.drag.Feed(utils.ReadPointer(s.dragMouse, s.drag.TouchID())); dy != 0 {
		s.HandleDrag(dy)
	}
	for _, cmd := range readCommands() {
		s.HandleCommand(cmd)
	}
	if name, ok := readVariantKey(s.deps.Config.VariantNames()); ok && name != s.variantName {
		s.saveSettings()
		if s.deps.SceneManager != nil {
			s.deps.SceneManager.LoadVariant(name)
		}
	}

	s.queue.Flush(s.elapsed)
}

// HandleCommand 执行一个输入命令
func (s *ColumnsScene) HandleCommand(cmd Command) {
	page := s.viewport.Height * pageFraction
	step := s.deps.Config.Scroll.KeyStep

	switch cmd {
	case CommandLineDown:
		s.session.ScrollBy(step)
	case CommandLineUp:
		s.session.ScrollBy(-step)
	case CommandPageDown:
		s.session.ScrollBy(page)
	case CommandPageUp:
		s.session.ScrollBy(-page)
	case CommandHome:
		s.session.ScrollTo(0, false)
	case CommandEnd:
		s.session.ScrollTo(s.doc.Limit, false)
	case CommandToggleHUD:
		s.showHUD = !s.showHUD
	}
}

// HandleDrag 指针纵向拖动 dy 像素，页面跟随手指反向滚动
func (s *ColumnsScene) HandleDrag(dy int) {
	s.session.ScrollBy(-float64(dy))
}

// Draw 绘制页面和状态信息
func (s *ColumnsScene) Draw(screen *ebiten.Image) {
	scroll := s.session.Scroll()
	s.renderSystem.Draw(screen, scroll)

	if !s.showHUD {
		return
	}
	title := s.variant.Title
	if title == "" {
		title = s.variantName
	}
	hud := fmt.Sprintf("%s\nscroll %5.0f / %.0f  progress %3.0f%%\nwheel/arrows/space: scroll  1-%d: variant  H: hud",
		title, scroll, s.doc.Limit, s.timelineSystem.Progress(scroll)*100, len(s.deps.Config.VariantNames()))
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)
}

// SaveOnExit 保存变体和滚动位置
func (s *ColumnsScene) SaveOnExit() bool {
	return s.saveSettings()
}

func (s *ColumnsScene) saveSettings() bool {
	st := s.deps.Settings
	if st == nil {
		return true
	}
	st.SetVariant(s.variantName)
	st.SetLastScroll(s.session.Scroll())
	if err := st.Save(); err != nil {
		log.Printf("[ColumnsScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// Session 返回滚动会话
func (s *ColumnsScene) Session() *game.ScrollSession {
	return s.session
}

// Document 返回当前布局
func (s *ColumnsScene) Document() systems.Document {
	return s.doc
}

// EntityManager 返回场景的实体管理器
func (s *ColumnsScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// VariantName 返回变体名称
func (s *ColumnsScene) VariantName() string {
	return s.variantName
}
