package systems

import (
	"math"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

// looseFriction 没有移动组件的物体（炸弹）的速度衰减
const looseFriction = 2.0

// PhysicsSystem 平面上的简单运动积分
//
// 玩家速度 = 输入速度 + 击退速度；击退速度按摩擦逐渐衰减。
// 冰冻或死亡的玩家忽略输入，但仍会被击退。
type PhysicsSystem struct {
	svc *Services
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(svc *Services) *PhysicsSystem {
	return &PhysicsSystem{svc: svc}
}

// Update 推进所有运动实体
func (s *PhysicsSystem) Update(deltaTime float64) {
	em := s.svc.EM
	cfg := s.svc.Config.Player

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

		friction := looseFriction
		var input utils.Vec3

		if move, ok := ecs.GetComponent[*components.MovementComponent](em, id); ok {
			friction = move.Friction
			if move.HasRollerMaterial(components.MaterialHockey) {
				friction = cfg.HockeyFriction
			}
			if s.canMove(id) {
				input = utils.Vec3{X: move.MoveX, Z: move.MoveZ}
				if l := input.Len(); l > 1 {
					input = input.Scale(1 / l)
				}
				speed := move.Speed
				if move.Hockey {
					speed *= cfg.HockeySpeedScale
				}
				input = input.Scale(speed)
				if input.X != 0 || input.Z != 0 {
					move.Facing = math.Atan2(input.X, input.Z) * 180 / math.Pi
				}
			}
		}

		v := vel.Vec()
		pos.Set(pos.Vec().Add(v.Add(input).Scale(deltaTime)))
		vel.Set(v.Scale(math.Max(0, 1-friction*deltaTime)))
	}
}

func (s *PhysicsSystem) canMove(id ecs.EntityID) bool {
	em := s.svc.EM
	if frz, ok := ecs.GetComponent[*components.FreezeComponent](em, id); ok && frz.Frozen {
		return false
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok && health.Dead {
		return false
	}
	return true
}
