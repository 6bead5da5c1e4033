package systems

import (
	"testing"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/entities"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

// TestBomb_ExplodeTwiceCreatesOneBlast 重复引爆只产生一次爆炸
func TestBomb_ExplodeTwiceCreatesOneBlast(t *testing.T) {
	h := newHarness(t)
	bomb := h.bombs.Spawn(entities.BombSpec{Position: utils.Vec3{X: 3}})

	explodeCallbacks := 0
	comp, _ := ecs.GetComponent[*components.BombComponent](h.em, bomb)
	comp.OnExplode = append(comp.OnExplode, func(_, _ ecs.EntityID) { explodeCallbacks++ })

	h.bombs.Explode(bomb)
	h.bombs.Explode(bomb)
	// 同一帧内被其他爆炸波及
	h.svc.Router.Send(bomb, messages.HitMessage{HitType: "explosion", Magnitude: 1000})

	if n := h.count(components.ActorBlast); n != 1 {
		t.Errorf("expected exactly 1 blast, got %d", n)
	}
	if explodeCallbacks != 1 {
		t.Errorf("explode callbacks ran %d times, want 1", explodeCallbacks)
	}
	if !h.em.Exists(bomb) {
		t.Error("bomb must not be removed synchronously")
	}

	h.step(tick)
	if h.em.Exists(bomb) {
		t.Error("bomb should be removed on the next tick")
	}
}

// TestBomb_FuseAndChainReaction 引信到时爆炸，并引爆范围内的其他炸弹
func TestBomb_FuseAndChainReaction(t *testing.T) {
	h := newHarness(t)
	fuse := h.svc.Config.Bomb.FuseTime

	first := h.bombs.Spawn(entities.BombSpec{Position: utils.Vec3{}})
	h.step(1)
	second := h.bombs.Spawn(entities.BombSpec{Position: utils.Vec3{X: 1}})

	h.stepTo(fuse - tick)
	if h.count(components.ActorBlast) != 0 {
		t.Fatal("nothing should explode before the fuse runs out")
	}

	// 第一帧引爆第一枚，碰撞波及第二枚；下一帧两枚都被移除
	h.step(2 * tick)
	if h.em.Exists(first) || h.em.Exists(second) {
		t.Error("both bombs should be gone after the chain reaction")
	}
	if n := h.rec.SoundCount("hiss"); n != 2 {
		t.Errorf("expected 2 blasts (2 hiss cues), got %d", n)
	}
}

// TestBomb_DeathActionsRunOnce 死亡动作只执行一次
func TestBomb_DeathActionsRunOnce(t *testing.T) {
	h := newHarness(t)
	bomb := h.bombs.Spawn(entities.BombSpec{})

	calls := 0
	comp, _ := ecs.GetComponent[*components.BombComponent](h.em, bomb)
	comp.DeathActions = append(comp.DeathActions, func() { calls++ })

	h.svc.Router.Send(bomb, messages.OutOfBoundsMessage{})
	h.svc.Router.Send(bomb, messages.DieMessage{})
	h.step(h.svc.Config.Bomb.FuseTime + 1)

	if calls != 1 {
		t.Errorf("death actions ran %d times, want 1", calls)
	}
	if h.count(components.ActorBlast) != 0 {
		t.Error("a removed bomb must not explode when its fuse would have run out")
	}
}

// TestBomb_LandMineArmsAndTriggers 地雷武装后被玩家碰到才爆炸
func TestBomb_LandMineArmsAndTriggers(t *testing.T) {
	h := newHarness(t)
	mine := h.bombs.Spawn(entities.BombSpec{Position: utils.Vec3{X: 5}, BombType: "land_mine"})

	h.step(1)
	if !ecs.HasComponent[*components.RegionComponent](h.em, mine) {
		t.Fatal("land mine should be armed after 1s")
	}
	h.step(5)
	if h.count(components.ActorBlast) != 0 || !h.em.Exists(mine) {
		t.Fatal("land mine must not explode without contact")
	}

	h.spawnPlayer("walker", utils.Vec3{X: 5.2})
	h.step(2 * tick)
	if h.em.Exists(mine) {
		t.Error("land mine should have exploded on contact")
	}
	if n := h.rec.SoundCount("hiss"); n != 1 {
		t.Errorf("expected one blast, got %d", n)
	}
}
