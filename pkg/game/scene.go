package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the demo (loading screen, columns view).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Enterable 可选接口：场景成为当前场景时调用 OnEnter
type Enterable interface {
	OnEnter()
}

// Exitable 可选接口：场景被替换时调用 OnExit（用于停止滚动会话、取消帧循环）
type Exitable interface {
	OnExit()
}

// Saveable 可选接口，用于在程序退出时保存状态
//
// 实现此接口的场景会在窗口关闭时被调用 SaveOnExit()
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
