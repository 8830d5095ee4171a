package scenes

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/decker502/columns/pkg/components"
	"github.com/decker502/columns/pkg/config"
	"github.com/decker502/columns/pkg/ecs"
	"github.com/decker502/columns/pkg/game"
	"github.com/decker502/columns/pkg/systems"
	"github.com/decker502/columns/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
layout: {columns: 2, items_per_column: 2, gap: 0, item_aspect: 1, scroll_pages: 3}
variants:
  grayscale:
    title: gray
    tweens:
      - targets: section--columns
        start_at: {scale: 0.8}
        to: {scale: 1}
  spread:
    tweens:
      - targets: column__item
        trigger: {element: section--showcase, start: 0, end: top top}
        to:
          x: {translate: {spread: 600}}
`

type testEnv struct {
	deps Deps
	vp   utils.Viewport
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg, err := config.ParseDemoConfig([]byte(testYAML))
	require.NoError(t, err)
	settings, err := game.NewSettingsManager(nil)
	require.NoError(t, err)

	env := &testEnv{vp: utils.Viewport{Width: 1000, Height: 800}}
	env.deps = Deps{
		Config:       cfg,
		Settings:     settings,
		SceneManager: game.NewSceneManager(),
		Viewport:     func() utils.Viewport { return env.vp },
	}
	return env
}

func step(s *ColumnsScene, frames int) {
	for i := 0; i < frames; i++ {
		s.Update(1.0 / 60.0)
	}
}

func TestNewColumnsScene_UnknownVariant(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewColumnsScene(env.deps, "missing", nil)
	assert.True(t, errors.Is(err, config.ErrUnknownVariant), "got %v", err)
}

func TestColumnsScene_EnterBuildsTimeline(t *testing.T) {
	env := newTestEnv(t)
	s, err := NewColumnsScene(env.deps, "grayscale", nil)
	require.NoError(t, err)

	env.deps.SceneManager.SwitchTo(s)

	assert.True(t, s.Session().Running())
	assert.Equal(t, 2400.0, s.Document().Limit)
	assert.Equal(t, 2400.0, s.Session().Limit())

	section, ok := ecs.GetComponent[*components.TransformComponent](s.EntityManager(), s.Document().ColumnsSection)
	require.True(t, ok)
	assert.InDelta(t, 0.8, section.Scale, 1e-12)

	// End 平滑滚动到底部，时间轴跟随
	s.HandleCommand(CommandEnd)
	step(s, 120)
	assert.Equal(t, 2400.0, s.Session().Scroll())
	assert.InDelta(t, 1, section.Scale, 1e-9)

	s.HandleCommand(CommandHome)
	step(s, 120)
	assert.Equal(t, 0.0, s.Session().Scroll())
	assert.InDelta(t, 0.8, section.Scale, 1e-9)
}

func TestColumnsScene_Commands(t *testing.T) {
	env := newTestEnv(t)
	s, _ := NewColumnsScene(env.deps, "grayscale", nil)
	s.OnEnter()

	s.HandleCommand(CommandPageDown)
	assert.InDelta(t, 720, s.Session().Target(), 1e-9)
	s.HandleCommand(CommandLineDown)
	assert.InDelta(t, 720+config.DefaultKeyStep, s.Session().Target(), 1e-9)
	s.HandleCommand(CommandLineUp)
	s.HandleCommand(CommandPageUp)
	assert.InDelta(t, 0, s.Session().Target(), 1e-9)

	s.HandleCommand(CommandToggleHUD)
	assert.False(t, s.showHUD)
}

func TestColumnsScene_Drag(t *testing.T) {
	env := newTestEnv(t)
	s, _ := NewColumnsScene(env.deps, "grayscale", nil)
	s.OnEnter()

	// 手指上移，页面向下滚动
	s.HandleDrag(-150)
	assert.InDelta(t, 150, s.Session().Target(), 1e-9)
	s.HandleDrag(400)
	assert.Equal(t, 0.0, s.Session().Target(), "不能滚过顶部")
}

func TestColumnsScene_RestoreScroll(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Settings.SetLastScroll(1200)

	s, _ := NewColumnsScene(env.deps, "grayscale", nil)
	s.OnEnter()
	assert.Equal(t, 1200.0, s.Session().Scroll())

	section, _ := ecs.GetComponent[*components.TransformComponent](s.EntityManager(), s.Document().ColumnsSection)
	assert.InDelta(t, 0.9, section.Scale, 1e-9)

	s.HandleCommand(CommandPageDown)
	step(s, 120)
	s.OnExit()
	assert.False(t, s.Session().Running())
	assert.InDelta(t, 1920, env.deps.Settings.GetSettings().LastScroll, 1e-9)
}

func TestColumnsScene_NoRestore(t *testing.T) {
	env := newTestEnv(t)
	env.deps.Settings.SetLastScroll(1200)
	env.deps.Settings.SetRestoreScroll(false)

	s, _ := NewColumnsScene(env.deps, "grayscale", nil)
	s.OnEnter()
	assert.Equal(t, 0.0, s.Session().Scroll())
}

func TestColumnsScene_ResizeRefresh(t *testing.T) {
	env := newTestEnv(t)
	s, _ := NewColumnsScene(env.deps, "spread", nil)
	s.OnEnter()
	s.Session().ScrollTo(1200, true)

	env.vp = utils.Viewport{Width: 500, Height: 400}
	step(s, 1)

	assert.Equal(t, 1200.0, s.Document().Limit)
	assert.Equal(t, 600.0, s.Session().Scroll(), "scroll progress is kept")

	// 偏移按新视口重新求取
	tl := s.timelineSystem.Timeline()
	require.NotNil(t, tl)
	require.Len(t, tl.Tweens, 1)
	assert.Less(t, tl.Tweens[0].To[0], 0.0)
}

func TestColumnsScene_Images(t *testing.T) {
	env := newTestEnv(t)
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	s, _ := NewColumnsScene(env.deps, "grayscale", systems.MapImages(map[string]image.Image{game.ImageKey(3): src}))
	s.OnEnter()

	imgs := systems.SelectByClass(s.EntityManager(), config.ClassItemImage)
	require.Len(t, imgs, 4)
	last, _ := ecs.GetComponent[*components.ImageComponent](s.EntityManager(), imgs[3])
	assert.NotNil(t, last.Source)
}

func TestColumnsScene_SaveOnExit(t *testing.T) {
	env := newTestEnv(t)
	s, _ := NewColumnsScene(env.deps, "spread", nil)
	s.OnEnter()
	s.Session().ScrollTo(300, true)

	assert.True(t, s.SaveOnExit())
	assert.Equal(t, "spread", env.deps.Settings.GetSettings().Variant)
	assert.Equal(t, 300.0, env.deps.Settings.GetSettings().LastScroll)
}

func TestLoadingScene_ResolvesOnce(t *testing.T) {
	env := newTestEnv(t)
	gate := game.NewPreloader(2, 0).Start(context.Background(), nil)

	calls := 0
	ls := NewLoadingScene(env.deps, gate, func(images map[string]image.Image) { calls++ })
	ls.Update(1.0 / 60.0)
	ls.Update(1.0 / 60.0)

	assert.True(t, ls.Done())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, ls.Progress())
}

func TestLoadingScene_WaitsForGate(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := game.NewPreloader(1, 0)
	p.PlaceholderSize = 4
	gate := p.Start(ctx, game.PlaceholderSources(2))
	<-gate.Done()

	var got map[string]image.Image
	ls := NewLoadingScene(env.deps, gate, func(images map[string]image.Image) { got = images })
	ls.Update(0.1)
	assert.Len(t, got, 2)
}
