package systems

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
)

// ControlSystem 把玩家的投弹/出拳请求交给 PlayerSystem 执行
//
// 请求来自键盘输入或 BotSystem，每帧消费后清零。
type ControlSystem struct {
	em      *ecs.EntityManager
	players *PlayerSystem
}

// NewControlSystem 创建操作系统
func NewControlSystem(em *ecs.EntityManager, players *PlayerSystem) *ControlSystem {
	return &ControlSystem{em: em, players: players}
}

// Update 执行本帧的操作请求
func (s *ControlSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ControlComponent](s.em) {
		control, _ := ecs.GetComponent[*components.ControlComponent](s.em, id)
		if control.WantBomb && control.EnableBomb {
			s.players.DropBomb(id)
		}
		if control.WantPunch {
			s.players.PunchPress(id)
		}
		control.WantBomb, control.WantPunch = false, false
	}
}
