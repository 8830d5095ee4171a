// Package app 提供演示应用的核心包装器
//
// 该包把初始化逻辑从 main 包中提取出来：加载配置和设置、启动图片
// 预加载、组装场景，并实现 ebiten.Game 接口。
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/decker502/columns/pkg/config"
	"github.com/decker502/columns/pkg/game"
	"github.com/decker502/columns/pkg/scenes"
	"github.com/decker502/columns/pkg/systems"
	"github.com/decker502/columns/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "scroll_columns"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 启动变体，为空则使用上次保存的变体
	Variant string
	// ImageDir 条目图片目录，为空则使用程序生成的图片
	ImageDir string
	// ResetSettings 启动时清除已保存的设置
	ResetSettings bool
}

// App 是演示应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	demoConfig   *config.DemoConfig
	settings     *game.SettingsManager
	sceneManager *game.SceneManager

	viewport      utils.Viewport
	cancelPreload context.CancelFunc
	verbose       bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化演示应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	demoConfig, err := config.LoadDemoConfig(config.DemoConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir not ready: %v", err)
	}

	// gdata 打开失败时进入降级模式（设置仅保存在内存中）
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}
	if cfg.ResetSettings {
		settings.Reset()
		if err := settings.Save(); err != nil {
			log.Printf("[App] Warning: failed to reset settings: %v", err)
		}
		log.Printf("[App] Settings reset to defaults")
	}

	variant, err := pickVariant(demoConfig, cfg.Variant, settings.GetSettings().Variant)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Starting variant: %s", variant)

	a := &App{
		demoConfig:   demoConfig,
		settings:     settings,
		sceneManager: game.NewSceneManager(),
		viewport: utils.Viewport{
			Width:  float64(demoConfig.Window.Width),
			Height: float64(demoConfig.Window.Height),
		},
		verbose: cfg.Verbose,
	}

	deps := scenes.Deps{
		Config:       demoConfig,
		Settings:     settings,
		SceneManager: a.sceneManager,
		Viewport:     a.Viewport,
	}

	itemCount := demoConfig.Layout.Columns * demoConfig.Layout.ItemsPerColumn
	sources, err := game.DirSources(cfg.ImageDir, itemCount)
	if err != nil {
		log.Printf("[App] Warning: %v (using placeholders)", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelPreload = cancel
	preloader := game.NewPreloader(demoConfig.Preload.Concurrency, demoConfig.Preload.MaxSize)
	gate := preloader.Start(ctx, sources)

	loading := scenes.NewLoadingScene(deps, gate, func(images map[string]image.Image) {
		lookup := systems.MapImages(images)
		a.sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
			return scenes.NewColumnsScene(deps, name, lookup)
		})
		if !a.sceneManager.LoadVariant(variant) {
			log.Printf("[App] Error: failed to enter variant %s", variant)
		}
	})
	a.sceneManager.SwitchTo(loading)

	return a, nil
}

// pickVariant 选择启动变体：命令行参数优先，其次是保存的设置
//
// 命令行指定了不存在的变体时返回错误；保存的变体不存在时退回第一个变体。
func pickVariant(cfg *config.DemoConfig, requested, saved string) (string, error) {
	if requested != "" {
		if _, err := cfg.Variant(requested); err != nil {
			return "", err
		}
		return requested, nil
	}
	if _, err := cfg.Variant(saved); err == nil {
		return saved, nil
	}
	names := cfg.VariantNames()
	if len(names) == 0 {
		return "", config.ErrUnknownVariant
	}
	log.Printf("[App] Saved variant %q not available, using %s", saved, names[0])
	return names[0], nil
}

// Update 更新演示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.demoConfig.Window.Width, a.demoConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.demoConfig.Window.Width, a.demoConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时用黑色填充边缘，并以线性滤波缩放画面
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，并记录为当前视口
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		a.viewport = utils.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	}
	return outsideWidth, outsideHeight
}

// Viewport 返回当前视口尺寸
func (a *App) Viewport() utils.Viewport {
	return a.viewport
}

// Close 取消未完成的预加载，并保存当前场景的状态
func (a *App) Close() {
	if a.cancelPreload != nil {
		a.cancelPreload()
		a.cancelPreload = nil
	}
	if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if !saveable.SaveOnExit() {
			log.Printf("[App] Warning: failed to save state on exit")
		}
	}
}

// WindowConfig 返回窗口配置
func (a *App) WindowConfig() config.WindowConfig {
	return a.demoConfig.Window
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// IsUnknownVariant 判断错误是否为变体不存在
func IsUnknownVariant(err error) bool {
	return errors.Is(err, config.ErrUnknownVariant)
}
