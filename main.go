package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/columns/pkg/app"
	"github.com/decker502/columns/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	variant       = flag.String("variant", "", "演示变体（grayscale | spread），为空则使用上次的变体")
	imageDir      = flag.String("images", "", "条目图片目录（png/jpeg/webp），为空则使用生成的图片")
	verbose       = flag.Bool("verbose", false, "显示详细日志")
	resetSettings = flag.Bool("reset-settings", false, "清除已保存的设置")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		Variant:       *variant,
		ImageDir:      *imageDir,
		ResetSettings: *resetSettings,
	})
	if err != nil {
		if app.IsUnknownVariant(err) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	win := gameApp.WindowConfig()
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
	gameApp.Close()
}
