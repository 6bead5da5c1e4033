package systems

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
)

// LightSystem 让跟随型光源贴着目标实体移动
type LightSystem struct {
	em *ecs.EntityManager
}

// NewLightSystem 创建光源系统
func NewLightSystem(em *ecs.EntityManager) *LightSystem {
	return &LightSystem{em: em}
}

// Update 同步光源位置；目标消失后光源停在原地，由生命周期删除
func (s *LightSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.LightComponent, *components.PositionComponent](s.em) {
		light, _ := ecs.GetComponent[*components.LightComponent](s.em, id)
		if light.Follow == 0 || light.Follow == id || !s.em.Exists(light.Follow) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		pos.Set(positionOf(s.em, light.Follow))
	}
}
