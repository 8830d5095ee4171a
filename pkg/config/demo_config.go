package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/columns/pkg/embedded"
	"github.com/decker502/columns/pkg/timeline"
	"github.com/decker502/columns/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DemoConfigPath 默认配置文件路径（嵌入资源）
const DemoConfigPath = "data/columns.yaml"

// ErrUnknownVariant 配置中不存在指定的演示变体
var ErrUnknownVariant = errors.New("unknown variant")

// DemoConfig 演示配置文件的顶层结构
//
// 结构：
//
//	window: {...}
//	scroll: {...}
//	layout: {...}
//	variants:
//	  grayscale:
//	    title: ...
//	    tweens: [...]
type DemoConfig struct {
	Window   WindowConfig             `yaml:"window"`
	Scroll   ScrollConfig             `yaml:"scroll"`
	Layout   LayoutConfig             `yaml:"layout"`
	Preload  PreloadConfig            `yaml:"preload"`
	Variants map[string]VariantConfig `yaml:"variants"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ScrollConfig 平滑滚动配置
type ScrollConfig struct {
	Lerp            float64 `yaml:"lerp"`             // 每帧（60fps 基准）向目标靠近的比例
	WheelMultiplier float64 `yaml:"wheel_multiplier"` // 滚轮增量倍率
	WheelStep       float64 `yaml:"wheel_step"`       // 每个滚轮刻度对应的像素
	KeyStep         float64 `yaml:"key_step"`         // 方向键每次滚动的像素
}

// LayoutConfig 分栏布局配置
type LayoutConfig struct {
	Columns        int     `yaml:"columns"`          // 栏数
	ItemsPerColumn int     `yaml:"items_per_column"` // 每栏条目数
	ContentWidth   float64 `yaml:"content_width"`    // 分栏区域宽度（相对视口宽度）
	ItemAspect     float64 `yaml:"item_aspect"`      // 条目高宽比
	Gap            float64 `yaml:"gap"`              // 条目间距（像素）
	ScrollPages    float64 `yaml:"scroll_pages"`     // 展示区之前的滚动长度（视口高度的倍数）
}

// PreloadConfig 图片预加载配置
type PreloadConfig struct {
	Concurrency int `yaml:"concurrency"` // 并发解码数
	MaxSize     int `yaml:"max_size"`    // 解码后长边最大像素（0 = 不缩放）
}

// VariantConfig 一个演示变体（一条主时间轴）
type VariantConfig struct {
	Title  string        `yaml:"title"`
	Tweens []TweenConfig `yaml:"tweens"`
}

// TweenConfig 单个补间动画配置
//
// 未指定 Trigger 时跟随主时间轴（start: 0, end: max）。
type TweenConfig struct {
	Targets string               `yaml:"targets"`  // 目标类名
	Ease    string               `yaml:"ease"`     // 缓动名称
	StartAt map[string]ValueSpec `yaml:"start_at"` // 起始值（构建时立即应用）
	To      map[string]ValueSpec `yaml:"to"`       // 结束值
	Yoyo    bool                 `yaml:"yoyo"`
	Repeat  int                  `yaml:"repeat"`
	Trigger *TriggerConfig       `yaml:"trigger,omitempty"`
}

// TriggerConfig 滚动触发器配置
//
// Start/End 取值：像素数值、"max"，或 "<元素边> <视口边>"（如 "top top"）。
type TriggerConfig struct {
	Element string `yaml:"element"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
}

// StartOrDefault 起点写法，未设置时为 "0"
func (t *TriggerConfig) StartOrDefault() string {
	if t.Start == "" {
		return "0"
	}
	return t.Start
}

// EndOrDefault 终点写法，未设置时为 "max"
func (t *TriggerConfig) EndOrDefault() string {
	if t.End == "" {
		return "max"
	}
	return t.End
}

// ValueKind 属性值的类型
type ValueKind int

const (
	// ValueNumber 固定数值
	ValueNumber ValueKind = iota
	// ValueAlternate 按目标序号奇偶取值
	ValueAlternate
	// ValueTranslate 由位移计算器按目标几何求值
	ValueTranslate
)

// TranslateSpec 位移计算参数
type TranslateSpec struct {
	Spread      float64 `yaml:"spread"`
	MaxDistance float64 `yaml:"max_distance"`
}

// Options 转换为位移计算参数（零值取默认）
func (t TranslateSpec) Options() utils.TranslationOptions {
	return utils.TranslationOptions{Spread: t.Spread, MaxDistance: t.MaxDistance}
}

// ValueSpec 属性值描述
//
// YAML 写法：
//
//	scale: 1.4                         # 数值
//	grayscale: 100%                    # 百分比，等于 1.0
//	yPercent: {alternate: [-10, 10]}   # [偶数序号, 奇数序号]
//	x: {translate: {spread: 600}}      # 远离视口中心的位移
type ValueSpec struct {
	Kind      ValueKind
	Number    float64
	Alternate [2]float64
	Translate TranslateSpec
}

// Number 构造固定数值
func Number(v float64) ValueSpec {
	return ValueSpec{Kind: ValueNumber, Number: v}
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (v *ValueSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		n, err := parseNumber(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = Number(n)
		return nil

	case yaml.MappingNode:
		var raw struct {
			Alternate []float64      `yaml:"alternate"`
			Translate *TranslateSpec `yaml:"translate"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		switch {
		case raw.Alternate != nil && raw.Translate != nil:
			return fmt.Errorf("line %d: alternate and translate are exclusive", node.Line)
		case raw.Alternate != nil:
			if len(raw.Alternate) != 2 {
				return fmt.Errorf("line %d: alternate needs exactly 2 values, got %d", node.Line, len(raw.Alternate))
			}
			*v = ValueSpec{Kind: ValueAlternate, Alternate: [2]float64{raw.Alternate[0], raw.Alternate[1]}}
		case raw.Translate != nil:
			*v = ValueSpec{Kind: ValueTranslate, Translate: *raw.Translate}
		default:
			return fmt.Errorf("line %d: empty value mapping", node.Line)
		}
		return nil
	}
	return fmt.Errorf("line %d: unsupported value node", node.Line)
}

// MarshalYAML 实现 yaml.Marshaler
func (v ValueSpec) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case ValueAlternate:
		return map[string][]float64{"alternate": {v.Alternate[0], v.Alternate[1]}}, nil
	case ValueTranslate:
		return map[string]TranslateSpec{"translate": v.Translate}, nil
	}
	return v.Number, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
		}
		return n / 100, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return n, nil
}

// LoadDemoConfig 从嵌入资源加载演示配置
//
// 参数：
//   - path: 配置文件路径（如 "data/columns.yaml"）
//
// 返回：
//   - *DemoConfig: 已填充默认值并通过校验的配置
//   - error: 读取、解析或校验错误
func LoadDemoConfig(path string) (*DemoConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read demo config %s: %w", path, err)
	}
	cfg, err := ParseDemoConfig(data)
	if err != nil {
		return nil, fmt.Errorf("demo config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseDemoConfig 解析 YAML 配置内容
func ParseDemoConfig(data []byte) (*DemoConfig, error) {
	var cfg DemoConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults 为未设置的字段填充默认值
func (c *DemoConfig) ApplyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultWindowHeight
	}
	if c.Window.Title == "" {
		c.Window.Title = DefaultWindowTitle
	}

	if c.Scroll.Lerp == 0 {
		c.Scroll.Lerp = DefaultScrollLerp
	}
	if c.Scroll.WheelMultiplier == 0 {
		c.Scroll.WheelMultiplier = 1
	}
	if c.Scroll.WheelStep == 0 {
		c.Scroll.WheelStep = DefaultWheelStep
	}
	if c.Scroll.KeyStep == 0 {
		c.Scroll.KeyStep = DefaultKeyStep
	}

	if c.Layout.Columns == 0 {
		c.Layout.Columns = DefaultColumns
	}
	if c.Layout.ItemsPerColumn == 0 {
		c.Layout.ItemsPerColumn = DefaultItemsPerColumn
	}
	if c.Layout.ContentWidth == 0 {
		c.Layout.ContentWidth = 1
	}
	if c.Layout.ItemAspect == 0 {
		c.Layout.ItemAspect = DefaultItemAspect
	}
	if c.Layout.ScrollPages == 0 {
		c.Layout.ScrollPages = DefaultScrollPages
	}

	if c.Preload.Concurrency == 0 {
		c.Preload.Concurrency = DefaultPreloadConcurrency
	}
}

// Validate 校验配置
//
// 检查布局参数、缓动名称、属性名称和触发器位置写法。
func (c *DemoConfig) Validate() error {
	if c.Layout.Columns < 1 || c.Layout.ItemsPerColumn < 1 {
		return fmt.Errorf("layout needs at least 1 column and 1 item, got %dx%d", c.Layout.Columns, c.Layout.ItemsPerColumn)
	}
	if c.Scroll.Lerp <= 0 || c.Scroll.Lerp > 1 {
		return fmt.Errorf("scroll.lerp must be in (0, 1], got %v", c.Scroll.Lerp)
	}
	if len(c.Variants) == 0 {
		return errors.New("no variants defined")
	}

	for name, variant := range c.Variants {
		for i, tw := range variant.Tweens {
			where := fmt.Sprintf("variant %q tween %d", name, i)
			if tw.Targets == "" {
				return fmt.Errorf("%s: targets is empty", where)
			}
			if _, err := utils.ParseEase(tw.Ease); err != nil {
				return fmt.Errorf("%s: %w", where, err)
			}
			if len(tw.To) == 0 {
				return fmt.Errorf("%s: no properties to animate", where)
			}
			for prop := range tw.To {
				if !IsAnimatableProperty(prop) {
					return fmt.Errorf("%s: unknown property %q", where, prop)
				}
			}
			for prop := range tw.StartAt {
				if !IsAnimatableProperty(prop) {
					return fmt.Errorf("%s: unknown start_at property %q", where, prop)
				}
			}
			if tw.Repeat < 0 {
				return fmt.Errorf("%s: repeat must be >= 0", where)
			}
			if tw.Trigger != nil {
				if _, err := timeline.ParsePosition(tw.Trigger.StartOrDefault()); err != nil {
					return fmt.Errorf("%s: trigger start: %w", where, err)
				}
				if _, err := timeline.ParsePosition(tw.Trigger.EndOrDefault()); err != nil {
					return fmt.Errorf("%s: trigger end: %w", where, err)
				}
			}
		}
	}
	return nil
}

// Variant 返回指定名称的变体
func (c *DemoConfig) Variant(name string) (VariantConfig, error) {
	v, ok := c.Variants[name]
	if !ok {
		return VariantConfig{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownVariant, name, strings.Join(c.VariantNames(), ", "))
	}
	return v, nil
}

// VariantNames 返回排序后的变体名称列表
func (c *DemoConfig) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAnimatableProperty 检查属性名是否可被时间轴驱动
func IsAnimatableProperty(name string) bool {
	switch name {
	case PropScale, PropOpacity, PropGrayscale, PropX, PropY, PropYPercent:
		return true
	}
	return false
}
