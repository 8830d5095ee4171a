package timeline

import (
	"math"

	"github.com/decker502/columns/pkg/utils"
)

// ApplyFunc 将第 index 个目标的属性设置为 value
type ApplyFunc func(index int, value float64)

// Tween 补间动画：一组目标的同一属性从 From 变化到 To
type Tween struct {
	// Name 用于日志（如 "column__item.grayscale"）
	Name string

	From []float64
	To   []float64

	// Ease 缓动函数（nil 为线性）
	Ease utils.EaseFunc

	// Repeat 额外重复次数，总迭代次数 = Repeat + 1
	Repeat int

	// Yoyo 奇数次迭代反向播放
	Yoyo bool

	// Trigger 独立触发器（nil 跟随所在时间轴）
	Trigger *Trigger

	Apply ApplyFunc
}

// EasedProgress 将触发器进度换算为缓动后的插值系数
func (tw *Tween) EasedProgress(p float64) float64 {
	p = utils.Clamp01(p)
	iterations := tw.Repeat + 1
	if iterations < 1 {
		iterations = 1
	}

	total := p * float64(iterations)
	iter := int(math.Floor(total))
	local := total - float64(iter)
	if iter >= iterations {
		iter = iterations - 1
		local = 1
	}

	if tw.Yoyo && iter%2 == 1 {
		local = 1 - local
	}

	if tw.Ease != nil {
		return tw.Ease(local)
	}
	return local
}

// Value 返回第 index 个目标在进度 p 时的属性值
func (tw *Tween) Value(index int, p float64) float64 {
	return utils.Lerp(tw.From[index], tw.To[index], tw.EasedProgress(p))
}

// Len 目标数量
func (tw *Tween) Len() int {
	return len(tw.To)
}

// Render 按进度 p 写入所有目标
func (tw *Tween) Render(p float64) {
	if tw.Apply == nil {
		return
	}
	for i := range tw.To {
		tw.Apply(i, tw.Value(i, p))
	}
}

// Timeline 一组由同一滚动位置驱动的补间
type Timeline struct {
	// Trigger 主触发器，未指定独立触发器的补间跟随它
	Trigger Trigger

	Tweens []*Tween
}

// New 创建时间轴
func New(trigger Trigger) *Timeline {
	return &Timeline{Trigger: trigger}
}

// Add 追加补间（所有补间都放在时间轴起点，与主进度同步）
func (tl *Timeline) Add(tw *Tween) *Timeline {
	tl.Tweens = append(tl.Tweens, tw)
	return tl
}

// Progress 返回主进度
func (tl *Timeline) Progress(scroll float64) float64 {
	return tl.Trigger.Progress(scroll)
}

// TriggerFor 返回补间实际使用的触发器
func (tl *Timeline) TriggerFor(tw *Tween) Trigger {
	if tw.Trigger != nil {
		return *tw.Trigger
	}
	return tl.Trigger
}

// Seek 用滚动位置驱动所有补间
// 补间按添加顺序写入，后添加的补间覆盖先添加的同名属性
func (tl *Timeline) Seek(scroll float64) {
	for _, tw := range tl.Tweens {
		tw.Render(tl.TriggerFor(tw).Progress(scroll))
	}
}
