package systems

import (
	"testing"

	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/entities"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/utils"
)

// tick 测试使用的帧长，二进制可精确表示，避免计时器边界上的浮点误差
const tick = 0.125

// harness 组装一套完整的系统用于测试
type harness struct {
	t   *testing.T
	em  *ecs.EntityManager
	clk *clock.Scheduler
	rec *fx.Recorder
	svc *Services

	blasts    *BlastSystem
	bombs     *BombSystem
	powers    *PowerSystem
	boxes     *PowerupBoxSystem
	players   *PlayerSystem
	collision *CollisionSystem
	physics   *PhysicsSystem
	tween     *TweenSystem
	lifetime  *LifetimeSystem
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	em := ecs.NewEntityManager()
	clk := clock.NewScheduler()
	rec := fx.NewRecorder()
	svc := NewServices(em, clk, rec, config.DefaultModeConfig(), 1)

	h := &harness{t: t, em: em, clk: clk, rec: rec, svc: svc}
	h.blasts = NewBlastSystem(svc)
	h.bombs = NewBombSystem(svc, h.blasts)
	h.powers = NewPowerSystem(svc)
	h.boxes = NewPowerupBoxSystem(svc)
	h.players = NewPlayerSystem(svc, h.bombs)
	h.collision = NewCollisionSystem(svc)
	h.physics = NewPhysicsSystem(svc)
	h.tween = NewTweenSystem(em)
	h.lifetime = NewLifetimeSystem(em)

	router := svc.MessageRouter()
	router.Register(components.ActorBlast, h.blasts)
	router.Register(components.ActorBomb, h.bombs)
	router.Register(components.ActorPowerPickup, h.powers)
	router.Register(components.ActorPowerupBox, h.boxes)
	router.Register(components.ActorPlayer, h.players)
	return h
}

// step 以固定帧长推进 seconds 秒
func (h *harness) step(seconds float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += tick {
		h.clk.Update(tick)
		h.physics.Update(tick)
		h.collision.Update(tick)
		h.tween.Update(tick)
		h.lifetime.Update(tick)
		h.em.RemoveMarkedEntities()
	}
}

// stepTo 推进到指定的模拟时间
func (h *harness) stepTo(at float64) {
	h.step(at - h.clk.Now())
}

func (h *harness) spawnPlayer(name string, pos utils.Vec3) ecs.EntityID {
	return h.players.Spawn(entities.PlayerSpec{
		Name:        name,
		Position:    pos,
		EnablePunch: true,
		Appearance: components.Appearance{
			Color:     components.Color{1, 0, 0},
			Highlight: components.Color{1, 1, 0},
		},
	})
}

func (h *harness) frozen(id ecs.EntityID) bool {
	frz, ok := ecs.GetComponent[*components.FreezeComponent](h.em, id)
	return ok && frz.Frozen
}

func (h *harness) icePower(id ecs.EntityID) *components.IcePowerComponent {
	ice, ok := ecs.GetComponent[*components.IcePowerComponent](h.em, id)
	if !ok {
		h.t.Fatalf("entity %d has no IcePowerComponent", id)
	}
	return ice
}

func (h *harness) health(id ecs.EntityID) *components.HealthComponent {
	health, ok := ecs.GetComponent[*components.HealthComponent](h.em, id)
	if !ok {
		h.t.Fatalf("entity %d has no HealthComponent", id)
	}
	return health
}

func (h *harness) count(kind components.ActorKind) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ActorComponent](h.em) {
		actor, _ := ecs.GetComponent[*components.ActorComponent](h.em, id)
		if actor.Kind == kind {
			n++
		}
	}
	return n
}
