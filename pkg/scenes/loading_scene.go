package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/decker502/columns/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ReadyFunc 预加载完成后调用，参数为已解码的图片
type ReadyFunc func(images map[string]image.Image)

// LoadingScene 预加载期间显示的进度条
//
// 预加载 gate 解析后调用一次 onReady（由调用方切换到分栏场景）。
type LoadingScene struct {
	deps    Deps
	gate    *game.PreloadGate
	onReady ReadyFunc

	progress    float64 // 显示进度（平滑跟随 gate 进度）
	elapsedTime float64
	done        bool
}

// NewLoadingScene creates a new loading scene.
func NewLoadingScene(deps Deps, gate *game.PreloadGate, onReady ReadyFunc) *LoadingScene {
	return &LoadingScene{
		deps:    deps,
		gate:    gate,
		onReady: onReady,
	}
}

// Update 跟踪 gate 进度，解析后交给 onReady
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime

	target := s.gate.Progress()
	s.progress += (target - s.progress) * 0.3
	if target-s.progress < 0.005 || s.gate.Resolved() {
		s.progress = target
	}

	if s.done || !s.gate.Resolved() {
		return
	}
	s.done = true

	if err := s.gate.Err(); err != nil {
		log.Printf("[LoadingScene] Warning: %v (continuing with %d images)", err, len(s.gate.Images()))
	}
	log.Printf("[LoadingScene] Preload finished in %.2fs", s.elapsedTime)

	if s.onReady != nil {
		s.onReady(s.gate.Images())
	}
}

// Done 返回是否已交给 onReady
func (s *LoadingScene) Done() bool {
	return s.done
}

// Progress 返回显示进度
func (s *LoadingScene) Progress() float64 {
	return s.progress
}

// Draw 绘制进度条和百分比
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x0d, G: 0x0d, B: 0x0d, A: 0xff})

	vp := s.deps.Viewport()
	barW := float32(vp.Width * 0.4)
	barH := float32(4)
	x := float32(vp.Width)/2 - barW/2
	y := float32(vp.Height) / 2

	vector.DrawFilledRect(screen, x, y, barW, barH, color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, false)
	vector.DrawFilledRect(screen, x, y, barW*float32(s.progress), barH, color.RGBA{R: 0xe8, G: 0xe3, B: 0xd9, A: 0xff}, false)

	label := fmt.Sprintf("Loading %3.0f%%", s.progress*100)
	ebitenutil.DebugPrintAt(screen, label, int(x), int(y)+12)
}
