package config

// 布局配置常量
// 本文件定义窗口尺寸、分栏布局默认值以及元素类名

// 窗口配置
const (
	// DefaultWindowWidth 默认窗口宽度（逻辑像素）
	DefaultWindowWidth = 1280

	// DefaultWindowHeight 默认窗口高度（逻辑像素）
	DefaultWindowHeight = 800

	// DefaultWindowTitle 默认窗口标题
	DefaultWindowTitle = "Scroll Columns"
)

// 平滑滚动默认值
const (
	// DefaultScrollLerp 平滑滚动插值系数（60fps 下每帧靠近目标 20%）
	DefaultScrollLerp = 0.2

	// DefaultWheelStep 每个滚轮刻度滚动的像素
	DefaultWheelStep = 100.0

	// DefaultKeyStep 方向键每次滚动的像素
	DefaultKeyStep = 80.0
)

// 分栏布局默认值
const (
	DefaultColumns        = 5
	DefaultItemsPerColumn = 6

	// DefaultItemAspect 条目高宽比（高 = 宽 * 1.3）
	DefaultItemAspect = 1.3

	// DefaultScrollPages 展示区之前的滚动长度（视口高度的倍数）
	DefaultScrollPages = 3.0

	// DefaultPreloadConcurrency 默认并发解码数
	DefaultPreloadConcurrency = 4
)

// 元素类名（时间轴 targets / trigger.element 使用）
const (
	ClassColumnsSection  = "section--columns"
	ClassShowcaseSection = "section--showcase"
	ClassColumns         = "columns"
	ClassColumnWrap      = "column-wrap"
	ClassColumn          = "column"
	ClassItem            = "column__item"
	ClassItemImage       = "column__item-img"
)

// 可动画的属性名
const (
	PropScale     = "scale"
	PropOpacity   = "opacity"
	PropGrayscale = "grayscale"
	PropX         = "x"
	PropY         = "y"
	PropYPercent  = "yPercent"
)
