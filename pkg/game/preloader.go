package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // 注册 WebP 解码器
	"golang.org/x/sync/errgroup"
)

// ErrPreloadCancelled is reported by a gate whose context was cancelled
// before every image finished loading.
var ErrPreloadCancelled = errors.New("preload cancelled")

// imageExtensions lists the file extensions recognised by DirSources.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ImageSource describes one image to preload.
// An empty Path produces a procedural placeholder seeded by Seed.
type ImageSource struct {
	Key  string
	Path string
	Seed int
}

// ImageKey returns the key used for the n-th column item image.
func ImageKey(n int) string {
	return fmt.Sprintf("item-%02d", n)
}

// PlaceholderSources returns count procedural sources.
func PlaceholderSources(count int) []ImageSource {
	sources := make([]ImageSource, count)
	for i := range sources {
		sources[i] = ImageSource{Key: ImageKey(i), Seed: i}
	}
	return sources
}

// DirSources builds count sources from the images found in dir.
//
// Files are taken in name order and reused cyclically when the directory
// holds fewer images than count. An empty dir, or a dir without any
// supported image, falls back to placeholders.
//
// Parameters:
//   - dir: directory containing png/jpeg/webp files (may be empty)
//   - count: number of sources to return
//
// Returns:
//   - []ImageSource: exactly count sources
//   - error: the directory could not be read (placeholders are still returned)
func DirSources(dir string, count int) ([]ImageSource, error) {
	if dir == "" {
		return PlaceholderSources(count), nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return PlaceholderSources(count), fmt.Errorf("failed to read image dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		log.Printf("[Preloader] No images in %s, using placeholders", dir)
		return PlaceholderSources(count), nil
	}

	sources := make([]ImageSource, count)
	for i := range sources {
		sources[i] = ImageSource{Key: ImageKey(i), Path: files[i%len(files)], Seed: i}
	}
	return sources, nil
}

// Preloader decodes images concurrently behind a PreloadGate.
type Preloader struct {
	// Concurrency bounds the number of images decoded at once (<= 0 means 1).
	Concurrency int

	// MaxSize limits the longer edge of decoded images (0 keeps the original size).
	MaxSize int

	// PlaceholderSize is the edge length of generated placeholders.
	PlaceholderSize int
}

// NewPreloader creates a preloader.
func NewPreloader(concurrency, maxSize int) *Preloader {
	return &Preloader{
		Concurrency:     concurrency,
		MaxSize:         maxSize,
		PlaceholderSize: 512,
	}
}

// Start begins loading sources in the background and returns the gate
// that resolves once every source has been handled or ctx is cancelled.
//
// Images that fail to open or decode are replaced by placeholders and
// logged, so they never fail the gate.
func (p *Preloader) Start(ctx context.Context, sources []ImageSource) *PreloadGate {
	gate := newPreloadGate(len(sources))
	if len(sources) == 0 {
		gate.resolve(nil)
		return gate
	}

	limit := p.Concurrency
	if limit <= 0 {
		limit = 1
	}

	go func() {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(limit)

		for _, src := range sources {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				gate.store(src.Key, p.load(src))
				return nil
			})
		}

		err := g.Wait()
		if err == nil && int(gate.loaded.Load()) < gate.total {
			err = ctx.Err()
		}
		if err != nil {
			log.Printf("[Preloader] Cancelled after %d/%d images", gate.loaded.Load(), gate.total)
			gate.resolve(fmt.Errorf("%w: %v", ErrPreloadCancelled, err))
			return
		}
		log.Printf("[Preloader] Loaded %d images", gate.total)
		gate.resolve(nil)
	}()

	return gate
}

// load returns the decoded, size-limited image for src.
func (p *Preloader) load(src ImageSource) image.Image {
	if src.Path == "" {
		return Placeholder(src.Seed, p.placeholderSize(), p.placeholderSize())
	}

	img, err := decodeFile(src.Path)
	if err != nil {
		log.Printf("[Preloader] Warning: %v (using placeholder)", err)
		return Placeholder(src.Seed, p.placeholderSize(), p.placeholderSize())
	}
	return FitImage(img, p.MaxSize)
}

func (p *Preloader) placeholderSize() int {
	if p.PlaceholderSize <= 0 {
		return 512
	}
	return p.PlaceholderSize
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// FitImage scales img down so that its longer edge is at most maxSize.
// Images already within the limit (or maxSize <= 0) are returned as is.
func FitImage(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	scale := float64(maxSize) / float64(max(w, h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Placeholder generates a w x h gradient whose hue depends on seed.
func Placeholder(seed, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	hue := math.Mod(float64(seed)*47, 360)
	c1 := hsvColor(hue, 0.55, 0.85)
	c2 := hsvColor(math.Mod(hue+40, 360), 0.7, 0.35)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := (float64(x)/float64(max(w, 1)) + float64(y)/float64(max(h, 1))) / 2
			img.SetRGBA(x, y, mixColor(c1, c2, t))
		}
	}

	// 中间一条横带，便于观察缩放和灰度效果
	band := image.Rect(0, h*9/20, w, h*11/20)
	draw.Draw(img, band, image.NewUniform(hsvColor(math.Mod(hue+180, 360), 0.6, 0.95)), image.Point{}, draw.Over)
	return img
}

func hsvColor(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

func mixColor(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// PreloadGate reports the progress of a Preloader run and resolves exactly once.
type PreloadGate struct {
	total  int
	loaded atomic.Int64

	mu     sync.Mutex
	images map[string]image.Image
	err    error

	done chan struct{}
	once sync.Once
}

func newPreloadGate(total int) *PreloadGate {
	return &PreloadGate{
		total:  total,
		images: make(map[string]image.Image, total),
		done:   make(chan struct{}),
	}
}

func (g *PreloadGate) store(key string, img image.Image) {
	g.mu.Lock()
	g.images[key] = img
	g.mu.Unlock()
	g.loaded.Add(1)
}

func (g *PreloadGate) resolve(err error) {
	g.once.Do(func() {
		g.mu.Lock()
		g.err = err
		g.mu.Unlock()
		close(g.done)
	})
}

// Done returns a channel closed when the gate resolves.
func (g *PreloadGate) Done() <-chan struct{} {
	return g.done
}

// Resolved reports whether the gate has resolved, without blocking.
func (g *PreloadGate) Resolved() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// Progress returns the fraction of sources handled, in [0, 1].
func (g *PreloadGate) Progress() float64 {
	if g.total == 0 {
		return 1
	}
	return float64(g.loaded.Load()) / float64(g.total)
}

// Images returns a copy of the images loaded so far.
func (g *PreloadGate) Images() map[string]image.Image {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]image.Image, len(g.images))
	for k, v := range g.images {
		out[k] = v
	}
	return out
}

// Err returns the error the gate resolved with (nil while pending or on success).
func (g *PreloadGate) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Wait blocks until the gate resolves or ctx is done.
func (g *PreloadGate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return g.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
