// verify_translation 无窗口输出每个条目的中心距离和散开位移
//
// 用法：
//
//	go run ./cmd/verify_translation --width 1280 --height 800 --variant spread
//
// 变体的 start_at（如分区缩放 0.7）会在求值前应用，与构建时间轴时一致。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/decker502/columns/pkg/config"
	"github.com/decker502/columns/pkg/ecs"
	"github.com/decker502/columns/pkg/embedded"
	"github.com/decker502/columns/pkg/systems"
	"github.com/decker502/columns/pkg/utils"
)

var (
	root        = flag.String("root", ".", "包含 data/ 目录的项目根目录")
	width       = flag.Float64("width", config.DefaultWindowWidth, "视口宽度")
	height      = flag.Float64("height", config.DefaultWindowHeight, "视口高度")
	spread      = flag.Float64("spread", utils.DefaultSpread, "最大位移")
	maxDistance = flag.Float64("max-distance", utils.DefaultMaxDistance, "位移衰减到 0 的中心距离")
	variant     = flag.String("variant", "", "先应用该变体的起始值（为空则不应用）")
	scroll      = flag.Float64("scroll", 0, "求值时的滚动位置")
	verbose     = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "verify_translation: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	if err := embedded.InitFromDir(*root); err != nil {
		return err
	}
	cfg, err := config.LoadDemoConfig(config.DemoConfigPath)
	if err != nil {
		return err
	}

	vp := utils.Viewport{Width: *width, Height: *height}
	em := ecs.NewEntityManager()
	doc := systems.NewLayoutSystem(em, cfg.Layout).Build(vp, nil)

	if *variant != "" {
		v, err := cfg.Variant(*variant)
		if err != nil {
			return err
		}
		// 只取 start_at 的效果：构建后回到滚动起点
		if err := systems.NewTimelineSystem(em).Build(v, doc, 0); err != nil {
			return fmt.Errorf("build %s: %w", *variant, err)
		}
	}

	opts := utils.TranslationOptions{Spread: *spread, MaxDistance: *maxDistance}

	fmt.Fprintf(out, "viewport %.0fx%.0f  spread %.0f  max distance %.0f  limit %.0f\n\n",
		vp.Width, vp.Height, *spread, *maxDistance, doc.Limit)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "item\tcol\trow\toffsetLeft\toffsetTop\tleft\ttop\tdistance\tx\ty\t")

	perColumn := cfg.Layout.ItemsPerColumn
	for i, id := range systems.SelectByClass(em, config.ClassItem) {
		g, ok := systems.Geometry(em, id, *scroll)
		if !ok {
			continue
		}
		off := utils.TranslationDistance(g, vp, opts)
		fmt.Fprintf(w, "%d\t%d\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t\n",
			i, i/perColumn, i%perColumn,
			g.OffsetLeft, g.OffsetTop, g.Left, g.Top,
			utils.CenterDistance(g, vp), off.X, off.Y)
	}
	return w.Flush()
}
