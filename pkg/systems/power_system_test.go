package systems

import (
	"math"
	"testing"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

// TestPower_TouchedOnce 拾取物只能被拾取一次
func TestPower_TouchedOnce(t *testing.T) {
	h := newHarness(t)
	consumed, removed := 0, 0
	power := h.powers.Spawn(utils.Vec3{}, 7, 0.5, func() { consumed++ }, func() { removed++ })

	a := h.spawnPlayer("a", utils.Vec3{X: 5})
	b := h.spawnPlayer("b", utils.Vec3{X: -5})

	h.svc.Router.Send(power, messages.TouchedMessage{Toucher: a})
	h.svc.Router.Send(power, messages.TouchedMessage{Toucher: b})
	h.powers.HandleMessage(power, messages.TouchedMessage{Toucher: b})

	if !h.icePower(a).Active {
		t.Error("first toucher should get super ice")
	}
	if h.icePower(b).Active {
		t.Error("second toucher must not get super ice")
	}
	if consumed != 1 || removed != 0 {
		t.Errorf("consumed=%d removed=%d, want 1/0", consumed, removed)
	}
	if n := h.rec.SoundCount("sparkle03"); n != 1 {
		t.Errorf("sparkle03 played %d times, want 1", n)
	}

	// DieMessage（非立即）：0.1 秒缩小后删除
	h.step(tick)
	if h.em.Exists(power) {
		t.Error("consumed pickup should be gone after its fade")
	}
}

// TestPower_SimultaneousContact 两名玩家同一帧碰到拾取物，只有一人获得能量
func TestPower_SimultaneousContact(t *testing.T) {
	h := newHarness(t)
	power := h.powers.Spawn(utils.Vec3{}, 0, 0.5, nil, nil)
	pos, _ := ecs.GetComponent[*components.PositionComponent](h.em, power)
	pos.Y = 0

	a := h.spawnPlayer("a", utils.Vec3{X: 0.3})
	b := h.spawnPlayer("b", utils.Vec3{X: -0.3})

	h.collision.Update(0)

	granted := 0
	for _, id := range []ecs.EntityID{a, b} {
		if h.icePower(id).Active {
			granted++
		}
	}
	if granted != 1 {
		t.Errorf("%d players got super ice, want exactly 1", granted)
	}
}

// TestPower_IgnoresNonPlayers 只有活着的玩家能拾取
func TestPower_IgnoresNonPlayers(t *testing.T) {
	h := newHarness(t)
	power := h.powers.Spawn(utils.Vec3{}, 7, 0.5, nil, nil)

	bomb := h.em.CreateEntity()
	h.svc.Router.Send(power, messages.TouchedMessage{Toucher: bomb})

	dead := h.spawnPlayer("dead", utils.Vec3{})
	h.svc.Router.Send(dead, messages.DieMessage{})
	h.svc.Router.Send(power, messages.TouchedMessage{Toucher: dead})

	comp, _ := ecs.GetComponent[*components.PowerComponent](h.em, power)
	if comp.Touched() {
		t.Error("pickup should ignore non-players and dead players")
	}
}

// TestPower_OutOfBoundsAndImmediateDie 离开边界或立即死亡时马上删除并取消计时器
func TestPower_OutOfBoundsAndImmediateDie(t *testing.T) {
	tests := []struct {
		name string
		msg  messages.Message
	}{
		{"离开边界", messages.OutOfBoundsMessage{}},
		{"立即删除", messages.DieMessage{Immediate: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			removed := 0
			power := h.powers.Spawn(utils.Vec3{}, 7, 0.5, nil, func() { removed++ })
			if h.clk.Pending() == 0 {
				t.Fatal("presentation timers should be running")
			}

			h.svc.Router.Send(power, tt.msg)

			if h.em.Exists(power) {
				t.Error("pickup should be removed immediately")
			}
			if removed != 1 {
				t.Errorf("OnRemoved called %d times, want 1", removed)
			}
			if h.clk.Pending() != 0 {
				t.Errorf("all presentation timers should be cancelled, %d pending", h.clk.Pending())
			}
		})
	}
}

// TestPower_FadeOut 非立即删除先缩小再删除
func TestPower_FadeOut(t *testing.T) {
	h := newHarness(t)
	power := h.powers.Spawn(utils.Vec3{}, 7, 0.5, nil, nil)
	h.step(0.25)

	h.svc.Router.Send(power, messages.DieMessage{})
	if !h.em.Exists(power) {
		t.Fatal("fade should not remove the pickup synchronously")
	}
	if ecs.HasComponent[*components.RegionComponent](h.em, power) {
		t.Error("a fading pickup should not be touchable")
	}

	h.step(tick)
	if h.em.Exists(power) {
		t.Error("pickup should be removed after 0.1s")
	}
}

// TestPower_Presentation 降落、计数、光圈和模型循环
func TestPower_Presentation(t *testing.T) {
	h := newHarness(t)
	base := utils.Vec3{X: 1, Y: 2, Z: 3}
	power := h.powers.Spawn(base, 7, 0.5, nil, nil)
	comp, _ := ecs.GetComponent[*components.PowerComponent](h.em, power)
	pos, _ := ecs.GetComponent[*components.PositionComponent](h.em, power)

	if pos.Y != 9 {
		t.Errorf("pickup should start at base+maxHeight, y=%v", pos.Y)
	}
	if comp.Mesh != "flash" {
		t.Errorf("first mesh = %q, want flash", comp.Mesh)
	}

	h.step(0.75)
	if comp.Mesh != "flash" {
		t.Errorf("mesh should not change before 0.8s, got %q", comp.Mesh)
	}
	h.step(tick)
	if comp.Mesh != "box" {
		t.Errorf("mesh at 0.8s = %q, want box", comp.Mesh)
	}

	h.stepTo(3.5)
	if math.Abs(pos.Y-(base.Y+7-6.4*0.5)) > 1e-9 {
		t.Errorf("pickup should be half way down at 3.5s, y=%v", pos.Y)
	}

	h.stepTo(7)
	if pos.Y < base.Y+0.5-1e-9 || pos.Y > base.Y+0.7+1e-9 {
		t.Errorf("pickup should hover around base+0.6 after 7s, y=%v", pos.Y)
	}
	if comp.Ticks != h.svc.Config.Power.MaxTicks {
		t.Errorf("Ticks = %d, want %d", comp.Ticks, h.svc.Config.Power.MaxTicks)
	}

	h.step(3)
	if comp.Ticks != h.svc.Config.Power.MaxTicks {
		t.Error("tick counter should stop at its maximum")
	}
	if pos.Y < base.Y+0.5-1e-9 || pos.Y > base.Y+0.7+1e-9 {
		t.Errorf("bobbing out of range: y=%v", pos.Y)
	}
	if comp.Rings[0].Size == 0 && comp.Rings[1].Size == 0 {
		t.Error("rings should be pulsing")
	}
	if n := h.rec.SoundCount("sparkle02"); n < 12 {
		t.Errorf("sparkle02 should play every 0.8s, got %d in 10s", n)
	}
}
