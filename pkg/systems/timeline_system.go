package systems

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/columns/pkg/components"
	"github.com/decker502/columns/pkg/config"
	"github.com/decker502/columns/pkg/ecs"
	"github.com/decker502/columns/pkg/timeline"
	"github.com/decker502/columns/pkg/utils"
)

// TimelineSystem 把变体配置构建成滚动时间轴，并按滚动位置写入元素变换
//
// 构建规则：
//   - 按配置顺序处理补间，目标按文档顺序选取
//   - start_at 在构建时立即写入，未指定时起始值取构建时的当前值
//   - alternate / translate 值在构建时按目标逐个求值一次
//   - 没有独立触发器的补间跟随主触发器（0 到最大滚动位置）
type TimelineSystem struct {
	entityManager *ecs.EntityManager
	timeline      *timeline.Timeline
}

// NewTimelineSystem 创建时间轴系统
func NewTimelineSystem(em *ecs.EntityManager) *TimelineSystem {
	return &TimelineSystem{entityManager: em}
}

// Timeline 返回当前时间轴（未构建时为 nil）
func (s *TimelineSystem) Timeline() *timeline.Timeline {
	return s.timeline
}

// Build 重置所有变换并构建时间轴，然后定位到 scroll
//
// 参数：
//   - variant: 变体配置
//   - doc: 当前布局
//   - scroll: 当前滚动位置（用于求取元素几何信息和初始定位）
func (s *TimelineSystem) Build(variant config.VariantConfig, doc Document, scroll float64) error {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.TransformComponent](em) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		tr.Reset()
	}

	tl := timeline.New(timeline.Trigger{Start: 0, End: doc.Limit})

	for i, twc := range variant.Tweens {
		tweens, err := s.buildTweens(twc, doc, scroll)
		if err != nil {
			return fmt.Errorf("tween %d (%s): %w", i, twc.Targets, err)
		}
		for _, tw := range tweens {
			tl.Add(tw)
		}
	}

	s.timeline = tl
	tl.Seek(scroll)
	log.Printf("[TimelineSystem] Built %q: %d tweens, limit %.0f", variant.Title, len(tl.Tweens), doc.Limit)
	return nil
}

func (s *TimelineSystem) buildTweens(twc config.TweenConfig, doc Document, scroll float64) ([]*timeline.Tween, error) {
	em := s.entityManager

	targets := SelectByClass(em, twc.Targets)
	if len(targets) == 0 {
		log.Printf("[TimelineSystem] Warning: no elements match %q, tween skipped", twc.Targets)
		return nil, nil
	}

	ease, err := utils.ParseEase(twc.Ease)
	if err != nil {
		return nil, err
	}

	transforms := make([]*components.TransformComponent, len(targets))
	for i, id := range targets {
		tr, ok := ecs.GetComponent[*components.TransformComponent](em, id)
		if !ok {
			tr = components.NewTransform()
			ecs.AddComponent(em, id, tr)
		}
		transforms[i] = tr
	}

	r := &valueResolver{em: em, targets: targets, vp: doc.Viewport, scroll: scroll}

	for _, prop := range sortedProps(twc.StartAt) {
		for i, tr := range transforms {
			v, err := r.resolve(twc.StartAt[prop], prop, i)
			if err != nil {
				return nil, err
			}
			if err := setProperty(tr, prop, v); err != nil {
				return nil, err
			}
		}
	}

	// start_at 改变了元素几何信息，位移值按新的几何信息求取
	r.offsets = nil

	var trigger *timeline.Trigger
	if twc.Trigger != nil {
		t, err := s.resolveTrigger(twc.Trigger, doc)
		if err != nil {
			return nil, err
		}
		trigger = &t
	}

	var tweens []*timeline.Tween
	for _, prop := range sortedProps(twc.To) {
		from := make([]float64, len(targets))
		to := make([]float64, len(targets))
		for i, tr := range transforms {
			cur, err := getProperty(tr, prop)
			if err != nil {
				return nil, err
			}
			from[i] = cur
			if to[i], err = r.resolve(twc.To[prop], prop, i); err != nil {
				return nil, err
			}
		}

		tweens = append(tweens, &timeline.Tween{
			Name:    twc.Targets + "." + prop,
			From:    from,
			To:      to,
			Ease:    ease,
			Repeat:  twc.Repeat,
			Yoyo:    twc.Yoyo,
			Trigger: trigger,
			Apply: func(i int, v float64) {
				_ = setProperty(transforms[i], prop, v)
			},
		})
	}
	return tweens, nil
}

func (s *TimelineSystem) resolveTrigger(tc *config.TriggerConfig, doc Document) (timeline.Trigger, error) {
	start, err := timeline.ParsePosition(tc.StartOrDefault())
	if err != nil {
		return timeline.Trigger{}, fmt.Errorf("trigger start: %w", err)
	}
	end, err := timeline.ParsePosition(tc.EndOrDefault())
	if err != nil {
		return timeline.Trigger{}, fmt.Errorf("trigger end: %w", err)
	}

	sc := timeline.Scene{ViewportHeight: doc.Viewport.Height, Limit: doc.Limit}
	if tc.Element != "" {
		if ids := SelectByClass(s.entityManager, tc.Element); len(ids) > 0 {
			if box, ok := DocumentBox(s.entityManager, ids[0]); ok {
				sc.Element = &box
			}
		} else {
			log.Printf("[TimelineSystem] Warning: trigger element %q not found, using document top", tc.Element)
		}
	}
	return timeline.NewTrigger(start, end, sc), nil
}

// Update 按滚动位置写入所有补间
func (s *TimelineSystem) Update(scroll float64) {
	if s.timeline != nil {
		s.timeline.Seek(scroll)
	}
}

// Progress 返回主时间轴进度
func (s *TimelineSystem) Progress(scroll float64) float64 {
	if s.timeline == nil {
		return 0
	}
	return s.timeline.Progress(scroll)
}

// valueResolver 在构建时求取单个目标的属性值
type valueResolver struct {
	em      *ecs.EntityManager
	targets []ecs.EntityID
	vp      utils.Viewport
	scroll  float64

	// offsets 缓存每个目标的位移，x 和 y 共用一次几何求值
	offsets map[offsetKey]utils.Offset
}

type offsetKey struct {
	index int
	spec  config.TranslateSpec
}

func (r *valueResolver) resolve(spec config.ValueSpec, prop string, i int) (float64, error) {
	switch spec.Kind {
	case config.ValueNumber:
		return spec.Number, nil
	case config.ValueAlternate:
		return spec.Alternate[i%2], nil
	case config.ValueTranslate:
		off, err := r.offset(spec, i)
		if err != nil {
			return 0, err
		}
		switch prop {
		case config.PropX:
			return off.X, nil
		case config.PropY:
			return off.Y, nil
		}
		return 0, fmt.Errorf("translate value is only valid for %q and %q, got %q", config.PropX, config.PropY, prop)
	}
	return 0, fmt.Errorf("unsupported value kind %d", spec.Kind)
}

func (r *valueResolver) offset(spec config.ValueSpec, i int) (utils.Offset, error) {
	key := offsetKey{index: i, spec: spec.Translate}
	if off, ok := r.offsets[key]; ok {
		return off, nil
	}
	geom, ok := Geometry(r.em, r.targets[i], r.scroll)
	if !ok {
		return utils.Offset{}, fmt.Errorf("element %d has no geometry", r.targets[i])
	}
	off := utils.TranslationDistance(geom, r.vp, spec.Translate.Options())
	if r.offsets == nil {
		r.offsets = make(map[offsetKey]utils.Offset)
	}
	r.offsets[key] = off
	return off, nil
}

func sortedProps(m map[string]config.ValueSpec) []string {
	props := make([]string, 0, len(m))
	for k := range m {
		props = append(props, k)
	}
	sort.Strings(props)
	return props
}
