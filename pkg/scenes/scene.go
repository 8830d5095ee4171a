package scenes

import (
	"github.com/decker502/columns/pkg/config"
	"github.com/decker502/columns/pkg/game"
	"github.com/decker502/columns/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// ViewportFunc 返回当前视口尺寸（每次调用时读取，不缓存）
type ViewportFunc func() utils.Viewport

// Deps 场景共享的依赖
type Deps struct {
	Config       *config.DemoConfig
	Settings     *game.SettingsManager
	SceneManager *game.SceneManager
	Viewport     ViewportFunc
}
