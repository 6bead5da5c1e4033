package systems

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/entities"
	"github.com/gonewx/icedm/pkg/messages"
)

const (
	landMineArmTime = 1.0
	landMineRadius  = 0.5
)

// BombSystem 管理炸弹：引信、连锁引爆与移除
type BombSystem struct {
	svc    *Services
	blasts *BlastSystem
}

// NewBombSystem 创建炸弹系统
func NewBombSystem(svc *Services, blasts *BlastSystem) *BombSystem {
	return &BombSystem{svc: svc, blasts: blasts}
}

// Spawn 创建炸弹并点燃引信
// 地雷没有引信，落地一秒后武装，被玩家碰到时引爆
func (s *BombSystem) Spawn(spec entities.BombSpec) ecs.EntityID {
	em := s.svc.EM
	id := entities.NewBombEntity(em, &s.svc.Config.Bomb, spec)
	bomb, _ := ecs.GetComponent[*components.BombComponent](em, id)

	if bomb.BombType == "land_mine" {
		bomb.Fuse.Set(s.svc.Clock.After(landMineArmTime, func() {
			if !em.Exists(id) || bomb.Exploded() {
				return
			}
			em.AddComponent(id, &components.RegionComponent{
				Kind:    components.RegionPickup,
				Radius:  landMineRadius,
				Targets: []string{components.MaterialPlayer},
			})
			s.svc.FX.PlaySound(fxSound("activateBeep", 1.0, em, id))
		}))
		return id
	}

	bomb.Fuse.Set(s.svc.Clock.After(s.svc.Config.Bomb.FuseTime, func() {
		s.Explode(id)
	}))
	return id
}

// Explode 引爆炸弹
//
// 只有第一次调用会生成爆炸并执行爆炸回调；无论哪条路径触发，
// 炸弹自身都在下一帧（RemoveDelay 之后）通过 DieMessage 移除，
// 而不是在当前调用栈内同步删除。
func (s *BombSystem) Explode(id ecs.EntityID) {
	em := s.svc.EM
	if !em.Exists(id) {
		return
	}
	bomb, ok := ecs.GetComponent[*components.BombComponent](em, id)
	if !ok {
		return
	}

	if bomb.MarkExploded() {
		bomb.Fuse.Cancel()
		ecs.RemoveComponent[*components.RegionComponent](em, id)

		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		blast := s.blasts.Spawn(entities.BlastSpec{
			Position:     pos.Vec(),
			Velocity:     vel.Vec(),
			Radius:       bomb.BlastRadius,
			BlastType:    bomb.BombType,
			SourcePlayer: bomb.SourcePlayer,
			HitType:      bomb.HitType,
			HitSubtype:   bomb.HitSubtype,
		})
		for _, cb := range bomb.OnExplode {
			cb(id, blast)
		}
	}

	bomb.Remove.Set(s.svc.sendAfter(s.svc.Config.Bomb.RemoveDelay, id, messages.DieMessage{}))
}

// HandleMessage 处理发给炸弹的消息
func (s *BombSystem) HandleMessage(id ecs.EntityID, msg messages.Message) {
	switch m := msg.(type) {
	case messages.HitMessage:
		// 被其他爆炸波及时连锁引爆
		if m.HitType == "explosion" {
			s.Explode(id)
		}
	case messages.ExplodeHitMessage:
		s.Explode(id)
	case messages.TouchedMessage:
		s.Explode(id)
	case messages.DieMessage, messages.OutOfBoundsMessage:
		s.remove(id)
	}
}

// remove 执行死亡动作并删除炸弹
func (s *BombSystem) remove(id ecs.EntityID) {
	em := s.svc.EM
	bomb, ok := ecs.GetComponent[*components.BombComponent](em, id)
	if !ok {
		return
	}
	bomb.Fuse.Cancel()
	bomb.Remove.Cancel()

	actions := bomb.DeathActions
	bomb.DeathActions = nil
	em.DestroyEntity(id)

	for _, action := range actions {
		action()
	}
}
