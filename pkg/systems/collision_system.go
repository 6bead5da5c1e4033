package systems

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/messages"
)

// CollisionSystem 区域与碰撞体的接触检测
//
// 每帧对所有重叠的（区域, 碰撞体）发送一次通知：爆炸区域发送 ExplodeHitMessage，
// 拾取区域发送 TouchedMessage。重叠持续多帧就会重复通知，由接收方去重。
type CollisionSystem struct {
	svc *Services
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(svc *Services) *CollisionSystem {
	return &CollisionSystem{svc: svc}
}

// Update 检测本帧的全部接触
func (s *CollisionSystem) Update(deltaTime float64) {
	em := s.svc.EM
	regions := ecs.GetEntitiesWith2[*components.RegionComponent, *components.PositionComponent](em)
	if len(regions) == 0 {
		return
	}
	colliders := ecs.GetEntitiesWith2[*components.ColliderComponent, *components.PositionComponent](em)

	for _, regionID := range regions {
		for _, colliderID := range colliders {
			if regionID == colliderID {
				continue
			}
			// 前面的通知可能已经删除了区域或碰撞体
			region, ok := ecs.GetComponent[*components.RegionComponent](em, regionID)
			if !ok || !em.Exists(regionID) {
				break
			}
			if !em.Exists(colliderID) {
				continue
			}
			collider, ok := ecs.GetComponent[*components.ColliderComponent](em, colliderID)
			if !ok || !region.Accepts(collider) {
				continue
			}

			center := positionOf(em, regionID)
			center.Y += region.OffsetY
			if center.Dist(positionOf(em, colliderID)) > region.Radius+collider.Radius {
				continue
			}

			switch region.Kind {
			case components.RegionBlast:
				s.svc.Router.Send(regionID, messages.ExplodeHitMessage{Opposing: colliderID})
			case components.RegionPickup:
				s.svc.Router.Send(regionID, messages.TouchedMessage{Toucher: colliderID})
			}
		}
	}
}
