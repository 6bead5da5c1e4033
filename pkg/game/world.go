package game

import (
	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/systems"
)

// World 一局比赛的实体存储、计时器与全部系统
//
// Update 在单个 goroutine 上按固定顺序推进：
// 计时器 → 电脑玩家 → 操作 → 物理 → 碰撞 → 边界 → 动画 → 灯光 → 生命周期 → 延迟删除。
type World struct {
	EM       *ecs.EntityManager
	Clock    *clock.Scheduler
	Services *systems.Services

	Blasts  *systems.BlastSystem
	Bombs   *systems.BombSystem
	Powers  *systems.PowerSystem
	Boxes   *systems.PowerupBoxSystem
	Players *systems.PlayerSystem

	bots      *systems.BotSystem
	control   *systems.ControlSystem
	physics   *systems.PhysicsSystem
	collision *systems.CollisionSystem
	Bounds    *systems.BoundsSystem
	tween     *systems.TweenSystem
	light     *systems.LightSystem
	lifetime  *systems.LifetimeSystem
}

// NewWorld 创建并连接所有系统
func NewWorld(cfg *config.ModeConfig, sink fx.Sink, seed int64) *World {
	em := ecs.NewEntityManager()
	clk := clock.NewScheduler()
	svc := systems.NewServices(em, clk, sink, cfg, seed)

	w := &World{EM: em, Clock: clk, Services: svc}
	w.Blasts = systems.NewBlastSystem(svc)
	w.Bombs = systems.NewBombSystem(svc, w.Blasts)
	w.Powers = systems.NewPowerSystem(svc)
	w.Boxes = systems.NewPowerupBoxSystem(svc)
	w.Players = systems.NewPlayerSystem(svc, w.Bombs)

	w.bots = systems.NewBotSystem(svc)
	w.control = systems.NewControlSystem(em, w.Players)
	w.physics = systems.NewPhysicsSystem(svc)
	w.collision = systems.NewCollisionSystem(svc)
	w.Bounds = systems.NewBoundsSystem(svc)
	w.tween = systems.NewTweenSystem(em)
	w.light = systems.NewLightSystem(em)
	w.lifetime = systems.NewLifetimeSystem(em)

	router := svc.MessageRouter()
	router.Register(components.ActorBlast, w.Blasts)
	router.Register(components.ActorBomb, w.Bombs)
	router.Register(components.ActorPowerPickup, w.Powers)
	router.Register(components.ActorPowerupBox, w.Boxes)
	router.Register(components.ActorPlayer, w.Players)
	return w
}

// Update 推进一帧
func (w *World) Update(deltaTime float64) {
	w.Clock.Update(deltaTime)
	w.bots.Update(deltaTime)
	w.control.Update(deltaTime)
	w.physics.Update(deltaTime)
	w.collision.Update(deltaTime)
	w.Bounds.Update(deltaTime)
	w.tween.Update(deltaTime)
	w.light.Update(deltaTime)
	w.lifetime.Update(deltaTime)
	w.EM.RemoveMarkedEntities()
}

// Now 当前模拟时间
func (w *World) Now() float64 {
	return w.Clock.Now()
}
