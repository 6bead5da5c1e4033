package systems

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/messages"
)

// BoundsSystem 检测离开地图边界的实体，每个实体只通知一次
type BoundsSystem struct {
	svc      *Services
	bounds   config.Bounds
	enabled  bool
	reported map[ecs.EntityID]bool
}

// NewBoundsSystem 创建边界系统，SetBounds 之前不做任何检测
func NewBoundsSystem(svc *Services) *BoundsSystem {
	return &BoundsSystem{svc: svc, reported: make(map[ecs.EntityID]bool)}
}

// SetBounds 设置地图边界
func (s *BoundsSystem) SetBounds(b config.Bounds) {
	s.bounds = b
	s.enabled = true
}

// Update 发送 OutOfBoundsMessage
func (s *BoundsSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}
	em := s.svc.EM

	for id := range s.reported {
		if !em.Exists(id) {
			delete(s.reported, id)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ActorComponent, *components.PositionComponent](em) {
		if s.reported[id] {
			continue
		}
		actor, _ := ecs.GetComponent[*components.ActorComponent](em, id)
		if actor.Kind == components.ActorBlast {
			continue
		}
		if s.bounds.Contains(positionOf(em, id)) {
			continue
		}
		s.reported[id] = true
		debugf("[BoundsSystem] %s %d left the map", actor.Kind, id)
		s.svc.Router.Send(id, messages.OutOfBoundsMessage{})
	}
}
