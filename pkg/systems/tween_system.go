package systems

import (
	"math"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
)

// TweenSystem 推进关键帧动画
type TweenSystem struct {
	em *ecs.EntityManager
}

// NewTweenSystem 创建动画系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{em: em}
}

// Update 推进所有轨道并应用插值结果，播放完的非循环轨道被移除
func (s *TweenSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TweenComponent](s.em) {
		tween, _ := ecs.GetComponent[*components.TweenComponent](s.em, id)

		live := tween.Tracks[:0]
		for _, track := range tween.Tracks {
			track.Elapsed += deltaTime
			at := track.Elapsed
			duration := track.Duration()
			if track.Loop && duration > 0 {
				at = math.Mod(at, duration)
			}
			if track.Apply != nil {
				track.Apply(track.ValueAt(at))
			}
			if !track.Loop && track.Elapsed >= duration {
				track.Done = true
				continue
			}
			live = append(live, track)
		}
		tween.Tracks = live
	}
}
