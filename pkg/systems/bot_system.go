package systems

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

const (
	botThinkInterval = 0.25
	botBombRange     = 2.5
	botPunchRange    = 0.9
	botBombChance    = 0.35 // 每次思考时在投弹距离内投弹的概率
)

// BotSystem 简单的电脑玩家
//
// 优先去拿超级冰能量，否则追最近的活着的对手，
// 靠近后有一定概率投弹，贴身时出拳。
type BotSystem struct {
	svc     *Services
	elapsed map[ecs.EntityID]float64
}

// NewBotSystem 创建电脑玩家系统
func NewBotSystem(svc *Services) *BotSystem {
	return &BotSystem{svc: svc, elapsed: make(map[ecs.EntityID]float64)}
}

// Update 每隔 botThinkInterval 秒为每个电脑玩家重新决策
func (s *BotSystem) Update(deltaTime float64) {
	em := s.svc.EM
	for id := range s.elapsed {
		if !em.Exists(id) {
			delete(s.elapsed, id)
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ControlComponent, *components.MovementComponent](em) {
		control, _ := ecs.GetComponent[*components.ControlComponent](em, id)
		if !control.Bot || !Alive(em, id) {
			continue
		}
		s.elapsed[id] += deltaTime
		if s.elapsed[id] < botThinkInterval {
			continue
		}
		s.elapsed[id] = 0
		s.think(id, control)
	}
}

func (s *BotSystem) think(id ecs.EntityID, control *components.ControlComponent) {
	em := s.svc.EM
	move, _ := ecs.GetComponent[*components.MovementComponent](em, id)
	me := positionOf(em, id)

	target, enemy, ok := s.pickTarget(id, me)
	if !ok {
		move.MoveX, move.MoveZ = 0, 0
		return
	}

	dir := target.Sub(me)
	dir.Y = 0
	dist := dir.Len()
	dir = dir.Normalize()
	move.MoveX, move.MoveZ = dir.X, dir.Z

	if !enemy {
		return
	}
	if dist < botPunchRange && control.EnablePunch {
		control.WantPunch = true
	}
	if dist < botBombRange && s.svc.Rand.Float64() < botBombChance {
		control.WantBomb = true
		// 投完弹往反方向跑
		move.MoveX, move.MoveZ = -dir.X, -dir.Z
	}
}

// pickTarget 返回目标位置，以及目标是否为敌人
func (s *BotSystem) pickTarget(id ecs.EntityID, me utils.Vec3) (utils.Vec3, bool, bool) {
	em := s.svc.EM

	for _, power := range ecs.GetEntitiesWith1[*components.PowerComponent](em) {
		if comp, _ := ecs.GetComponent[*components.PowerComponent](em, power); !comp.Touched() {
			return positionOf(em, power), false, true
		}
	}

	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	best, found := utils.Vec3{}, false
	bestDist := 0.0
	for _, other := range ecs.GetEntitiesWith1[*components.PlayerComponent](em) {
		if other == id || !Alive(em, other) {
			continue
		}
		otherPlayer, _ := ecs.GetComponent[*components.PlayerComponent](em, other)
		if otherPlayer.TeamID == player.TeamID {
			continue
		}
		pos := positionOf(em, other)
		if d := pos.Dist(me); !found || d < bestDist {
			best, bestDist, found = pos, d, true
		}
	}
	return best, true, found
}
