package systems

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/entities"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

const powerupBoxTouchRadius = 0.6

// PowerupBoxSystem 管理普通能量箱（开启"能量道具"选项时定期掉落）
type PowerupBoxSystem struct {
	svc *Services
}

// NewPowerupBoxSystem 创建能量箱系统
func NewPowerupBoxSystem(svc *Services) *PowerupBoxSystem {
	return &PowerupBoxSystem{svc: svc}
}

// Spawn 在指定位置放置一个能量箱，powerupType 为空时随机选择
func (s *PowerupBoxSystem) Spawn(pos utils.Vec3, powerupType string) ecs.EntityID {
	drops := s.svc.Config.PowerupDrops
	if powerupType == "" && len(drops.Types) > 0 {
		powerupType = drops.Types[s.svc.Rand.Intn(len(drops.Types))]
	}
	id := entities.NewPowerupBoxEntity(s.svc.EM, pos, powerupType, powerupBoxTouchRadius, drops.Lifetime)
	debugf("[PowerupBoxSystem] Dropped %s box %d", powerupType, id)
	return id
}

// HandleMessage 处理发给能量箱的消息
func (s *PowerupBoxSystem) HandleMessage(id ecs.EntityID, msg messages.Message) {
	em := s.svc.EM
	switch m := msg.(type) {
	case messages.TouchedMessage:
		box, ok := ecs.GetComponent[*components.PowerupBoxComponent](em, id)
		if !ok || !Alive(em, m.Toucher) || !ecs.HasComponent[*components.PlayerComponent](em, m.Toucher) {
			return
		}
		if !box.MarkTouched() {
			return
		}
		s.svc.Router.Send(m.Toucher, messages.PowerupMessage{Type: box.Type, Source: id})
		s.svc.FX.PlaySound(fxSound("powerup01", 1.0, em, id))
		em.DestroyEntity(id)
	case messages.DieMessage, messages.OutOfBoundsMessage:
		em.DestroyEntity(id)
	}
}
