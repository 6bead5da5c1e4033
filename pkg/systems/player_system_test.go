package systems

import (
	"testing"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

func superIce() messages.PowerupMessage {
	return messages.PowerupMessage{Type: PowerupSuperIce}
}

// TestFreeze_AutoThaw 冰冻 5 秒后自动解冻
func TestFreeze_AutoThaw(t *testing.T) {
	h := newHarness(t)
	h.players.FreezeTime = 5
	p := h.spawnPlayer("p", utils.Vec3{})

	h.svc.Router.Send(p, messages.FreezeMessage{})
	if !h.frozen(p) {
		t.Fatal("player should be frozen")
	}

	h.stepTo(5 - tick)
	if !h.frozen(p) {
		t.Error("player should still be frozen just before 5s")
	}
	h.step(tick)
	if h.frozen(p) {
		t.Error("player should thaw at 5s")
	}
}

// TestFreeze_Refusals 超级冰能量、无敌与护盾都会阻止冰冻
func TestFreeze_Refusals(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(h *harness, p ecs.EntityID)
		wantBlock int
	}{
		{
			name: "超级冰能量期间免疫冰冻",
			setup: func(h *harness, p ecs.EntityID) {
				h.svc.Router.Send(p, superIce())
			},
			wantBlock: 1,
		},
		{
			name: "无敌状态",
			setup: func(h *harness, p ecs.EntityID) {
				player, _ := ecs.GetComponent[*components.PlayerComponent](h.em, p)
				player.Invincible = true
			},
			wantBlock: 1,
		},
		{
			name: "护盾",
			setup: func(h *harness, p ecs.EntityID) {
				h.svc.Router.Send(p, messages.PowerupMessage{Type: PowerupShield})
			},
			wantBlock: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			p := h.spawnPlayer("p", utils.Vec3{})
			tt.setup(h, p)
			pending := h.clk.Pending()

			h.svc.Router.Send(p, messages.FreezeMessage{})

			if h.frozen(p) {
				t.Error("freeze should be refused")
			}
			frz, _ := ecs.GetComponent[*components.FreezeComponent](h.em, p)
			if frz.Thaw.Timer() != nil {
				t.Error("no thaw timer should be scheduled")
			}
			if h.clk.Pending() != pending {
				t.Errorf("pending timers changed: %d -> %d", pending, h.clk.Pending())
			}
			if n := h.rec.SoundCount("block"); n != tt.wantBlock {
				t.Errorf("block cue = %d, want %d", n, tt.wantBlock)
			}
		})
	}
}

// TestFreeze_AlreadyFrozenKeepsTimer 已冰冻时再次冰冻不会延长时间
func TestFreeze_AlreadyFrozenKeepsTimer(t *testing.T) {
	h := newHarness(t)
	h.players.FreezeTime = 5
	p := h.spawnPlayer("p", utils.Vec3{})

	h.svc.Router.Send(p, messages.FreezeMessage{})
	h.step(2)
	h.svc.Router.Send(p, messages.FreezeMessage{})

	h.stepTo(5)
	if h.frozen(p) {
		t.Error("second freeze must not extend the first one")
	}
}

// TestFreeze_DeadPlayerShatters 已死亡的玩家被冰冻时立即碎裂
func TestFreeze_DeadPlayerShatters(t *testing.T) {
	h := newHarness(t)
	p := h.spawnPlayer("p", utils.Vec3{})
	h.health(p).CurrentHealth = 0

	h.svc.Router.Send(p, messages.FreezeMessage{})

	if n := h.rec.SoundCount("shatter"); n != 1 {
		t.Errorf("shatter cue = %d, want 1", n)
	}
	if h.em.Exists(p) {
		t.Error("shattered player should be removed")
	}
	if n := h.rec.ParticleCount("chunks", "ice"); n != 1 {
		t.Errorf("ice chunks = %d, want 1", n)
	}
}

// TestFreeze_BlastKillThenShatter 爆炸打死玩家后紧跟的冰冻让尸体碎裂，死亡只记录一次
func TestFreeze_BlastKillThenShatter(t *testing.T) {
	h := newHarness(t)
	p := h.spawnPlayer("p", utils.Vec3{})
	h.health(p).CurrentHealth = 10

	deaths := 0
	h.players.OnDeath = func(victim, killer ecs.EntityID, how messages.DeathType) {
		deaths++
		if how != messages.DeathImpact {
			t.Errorf("death type = %v, want impact", how)
		}
	}

	blast := h.blasts.Spawn(iceBlast(utils.Vec3{}))
	h.svc.Router.Send(blast, messages.ExplodeHitMessage{Opposing: p})

	if deaths != 1 {
		t.Errorf("deaths = %d, want 1", deaths)
	}
	if h.rec.SoundCount("shatter") != 1 || h.em.Exists(p) {
		t.Error("killed player should shatter immediately")
	}
}

// TestHit_FrozenShatters 冰冻中受到重击或被打死直接碎裂，轻击只掉血
func TestHit_FrozenShatters(t *testing.T) {
	tests := []struct {
		name        string
		frozen      bool
		health      int
		magnitude   float64
		wantShatter bool
	}{
		{"冰冻中重击", true, 1000, 1000, true},
		{"冰冻中轻击", true, 1000, 400, false},
		{"冰冻中被轻击打死", true, 100, 400, true},
		{"未冰冻重击", false, 1000, 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.players.FreezeTime = 5
			attacker := h.spawnPlayer("a", utils.Vec3{X: 3})
			p := h.spawnPlayer("p", utils.Vec3{})
			h.health(p).CurrentHealth = tt.health
			if tt.frozen {
				h.svc.Router.Send(p, messages.FreezeMessage{})
			}

			var killer ecs.EntityID
			deaths := 0
			h.players.OnDeath = func(victim, k ecs.EntityID, how messages.DeathType) {
				deaths++
				killer = k
			}

			h.svc.Router.Send(p, messages.HitMessage{Magnitude: tt.magnitude, Radius: 2, HitType: "explosion", SourcePlayer: attacker})

			if got := h.rec.SoundCount("shatter") == 1; got != tt.wantShatter {
				t.Errorf("shattered = %v, want %v", got, tt.wantShatter)
			}
			if h.em.Exists(p) == tt.wantShatter {
				t.Errorf("player exists = %v after hit", h.em.Exists(p))
			}
			if tt.wantShatter && (deaths != 1 || killer != attacker) {
				t.Errorf("deaths = %d killer = %d, want 1 death credited to %d", deaths, killer, attacker)
			}
		})
	}
}

// TestIcePower_EquipAndExpire 超级冰能量：强制解冻、回血、外观、冰刀，10 秒后恢复
func TestIcePower_EquipAndExpire(t *testing.T) {
	h := newHarness(t)
	h.players.IcePowerTime = 10
	p := h.spawnPlayer("p", utils.Vec3{})

	h.svc.Router.Send(p, messages.FreezeMessage{})
	h.health(p).CurrentHealth = 100
	original, _ := ecs.GetComponent[*components.AppearanceComponent](h.em, p)
	oldLook := original.Appearance

	h.svc.Router.Send(p, superIce())

	ice := h.icePower(p)
	player, _ := ecs.GetComponent[*components.PlayerComponent](h.em, p)
	move, _ := ecs.GetComponent[*components.MovementComponent](h.em, p)

	if h.frozen(p) {
		t.Error("equipping super ice should thaw the player")
	}
	if h.health(p).CurrentHealth != h.svc.Config.Player.MaxHealth {
		t.Error("equipping super ice should fully heal")
	}
	if !ice.Active || player.ImpactScale != 0.2 || !move.Hockey || !move.HasRollerMaterial(components.MaterialHockey) {
		t.Errorf("buff not applied: active=%v impact=%v hockey=%v", ice.Active, player.ImpactScale, move.Hockey)
	}
	if original.Appearance != iceAppearance {
		t.Error("player should wear the ice skin")
	}
	if h.rec.SoundCount("powerup01") != 1 {
		t.Error("powerup01 cue should play once")
	}

	h.step(1)
	if n := h.rec.ParticleCount("fairydust", ""); n < 9 {
		t.Errorf("fairydust should be emitted every 0.1s, got %d in 1s", n)
	}

	h.stepTo(10)
	if ice.Active {
		t.Fatal("super ice should expire at 10s")
	}
	if player.ImpactScale != 1.0 || move.Hockey || move.HasRollerMaterial(components.MaterialHockey) {
		t.Error("expiry should restore impact scale and remove hockey")
	}
	if original.Appearance != oldLook {
		t.Error("expiry should restore the original appearance")
	}
	if h.rec.SoundCount("powerdown01") != 1 {
		t.Error("powerdown01 cue should play once")
	}
	if ice.Efx.Active() || ice.Flicker.Active() || ice.Expiry.Active() {
		t.Error("all buff timers should be cancelled")
	}

	dust := h.rec.ParticleCount("fairydust", "")
	h.step(1)
	if h.rec.ParticleCount("fairydust", "") != dust {
		t.Error("fairydust should stop after expiry")
	}
}

// TestIcePower_FlickerBeforeExpiry 到期前 1.5 秒开始闪烁
func TestIcePower_FlickerBeforeExpiry(t *testing.T) {
	h := newHarness(t)
	h.players.IcePowerTime = 10
	p := h.spawnPlayer("p", utils.Vec3{})
	h.svc.Router.Send(p, superIce())
	ice := h.icePower(p)

	h.stepTo(8.5 - tick)
	if ice.Flicker.Active() {
		t.Fatal("flicker should not start before 8.5s")
	}
	h.step(tick)
	if !ice.Flicker.Active() {
		t.Fatal("flicker should start at 8.5s")
	}

	// 0.05 秒切换一次，一帧 0.125 秒内外观至少翻转过
	h.step(tick)
	if !ice.Active {
		t.Error("buff should still be active while flickering")
	}

	h.stepTo(10)
	if ice.Active || ice.Flicker.Active() {
		t.Error("buff and flicker should end at 10s")
	}
}

// TestIcePower_RegrantResetsDuration 重复拾取把到期时间重置为完整时长
func TestIcePower_RegrantResetsDuration(t *testing.T) {
	h := newHarness(t)
	h.players.IcePowerTime = 10
	p := h.spawnPlayer("p", utils.Vec3{})

	h.svc.Router.Send(p, superIce())
	h.stepTo(5)
	h.svc.Router.Send(p, superIce())
	ice := h.icePower(p)

	if n := h.rec.SoundCount("powerup01"); n != 1 {
		t.Errorf("re-grant must not re-equip, powerup01 played %d times", n)
	}

	h.stepTo(10)
	if !ice.Active {
		t.Fatal("re-granted buff must not end at the original 10s")
	}
	if ice.Flicker.Active() {
		t.Error("original flash timer should have been replaced")
	}

	h.stepTo(15 - tick)
	if !ice.Active {
		t.Error("buff should still be active just before 15s")
	}
	h.step(tick)
	if ice.Active {
		t.Error("buff should end at 15s")
	}
	if n := h.rec.SoundCount("powerdown01"); n != 1 {
		t.Errorf("powerdown01 played %d times, want 1", n)
	}
}

// TestIcePower_RegrantDuringFlicker 闪烁阶段重新拾取会停止闪烁并换回冰外观
func TestIcePower_RegrantDuringFlicker(t *testing.T) {
	h := newHarness(t)
	h.players.IcePowerTime = 10
	p := h.spawnPlayer("p", utils.Vec3{})
	h.svc.Router.Send(p, superIce())

	h.stepTo(9)
	ice := h.icePower(p)
	if !ice.Flicker.Active() {
		t.Fatal("should be flickering at 9s")
	}

	h.svc.Router.Send(p, superIce())
	appearance, _ := ecs.GetComponent[*components.AppearanceComponent](h.em, p)
	if ice.Flicker.Active() || appearance.Appearance != iceAppearance || !ice.Custom {
		t.Error("re-grant should stop flickering and re-apply the ice skin")
	}
}

// TestPowerup_IgnoredWhenDead 死亡后不再接受能量
func TestPowerup_IgnoredWhenDead(t *testing.T) {
	h := newHarness(t)
	p := h.spawnPlayer("p", utils.Vec3{})
	h.svc.Router.Send(p, messages.DieMessage{})
	h.svc.Router.Send(p, superIce())

	if h.icePower(p).Active {
		t.Error("dead player must not receive super ice")
	}
}

// TestPowerup_Standard 普通能量
func TestPowerup_Standard(t *testing.T) {
	h := newHarness(t)
	cfg := h.svc.Config.Player
	p := h.spawnPlayer("p", utils.Vec3{})
	player, _ := ecs.GetComponent[*components.PlayerComponent](h.em, p)

	h.svc.Router.Send(p, messages.PowerupMessage{Type: PowerupTripleBombs})
	if player.BombCount != 3 {
		t.Errorf("BombCount = %d, want 3", player.BombCount)
	}
	h.stepTo(cfg.TripleBombsDuration)
	if player.BombCount != cfg.BombCount {
		t.Errorf("triple bombs should wear off, BombCount = %d", player.BombCount)
	}

	h.svc.Router.Send(p, messages.PowerupMessage{Type: PowerupLandMines})
	h.svc.Router.Send(p, messages.PowerupMessage{Type: PowerupLandMines})
	if player.LandMineCount != 3 {
		t.Errorf("LandMineCount = %d, want capped at 3", player.LandMineCount)
	}

	h.svc.Router.Send(p, messages.PowerupMessage{Type: PowerupShield})
	if player.ShieldHitpoints != cfg.ShieldHitpoints {
		t.Errorf("ShieldHitpoints = %d, want %d", player.ShieldHitpoints, cfg.ShieldHitpoints)
	}

	h.health(p).CurrentHealth = 1
	h.svc.Router.Send(p, messages.PowerupMessage{Type: PowerupHealth})
	if h.health(p).CurrentHealth != cfg.MaxHealth {
		t.Error("health powerup should heal fully")
	}

	// 未知类型只记录日志
	h.svc.Router.Send(p, messages.PowerupMessage{Type: "curse"})
}

// TestHit_Damage 冲击伤害、护盾与无敌
func TestHit_Damage(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(p *components.PlayerComponent)
		wantDamage int
		wantShield int
	}{
		{"正面冲击", func(p *components.PlayerComponent) {}, 450, 0},
		{"超级冰能量降低受击倍率", func(p *components.PlayerComponent) { p.ImpactScale = 0.2 }, 90, 0},
		{"护盾吸收", func(p *components.PlayerComponent) { p.ShieldHitpoints = 300 }, 150, 0},
		{"护盾完全挡住", func(p *components.PlayerComponent) { p.ShieldHitpoints = 650 }, 0, 200},
		{"无敌", func(p *components.PlayerComponent) { p.Invincible = true }, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			p := h.spawnPlayer("p", utils.Vec3{})
			player, _ := ecs.GetComponent[*components.PlayerComponent](h.em, p)
			tt.setup(player)

			// 冲击源与玩家重合：距离衰减为 1
			h.svc.Router.Send(p, messages.HitMessage{Magnitude: 1000, Radius: 2, HitType: "explosion", SourcePlayer: 42})

			got := h.svc.Config.Player.MaxHealth - h.health(p).CurrentHealth
			if got != tt.wantDamage {
				t.Errorf("damage = %d, want %d", got, tt.wantDamage)
			}
			if player.ShieldHitpoints != tt.wantShield {
				t.Errorf("shield = %d, want %d", player.ShieldHitpoints, tt.wantShield)
			}
		})
	}
}

// TestHit_KillCreditsSource 致命一击记到来源玩家
func TestHit_KillCreditsSource(t *testing.T) {
	h := newHarness(t)
	attacker := h.spawnPlayer("a", utils.Vec3{X: 3})
	victim := h.spawnPlayer("v", utils.Vec3{})

	var gotVictim, gotKiller ecs.EntityID
	h.players.OnDeath = func(v, k ecs.EntityID, how messages.DeathType) {
		gotVictim, gotKiller = v, k
	}

	h.health(victim).CurrentHealth = 100
	h.svc.Router.Send(victim, messages.HitMessage{Pos: utils.Vec3{X: 1}, Magnitude: 1000, Radius: 2, SourcePlayer: attacker})

	if gotVictim != victim || gotKiller != attacker {
		t.Errorf("OnDeath(%d, %d), want (%d, %d)", gotVictim, gotKiller, victim, attacker)
	}
	vel, _ := ecs.GetComponent[*components.VelocityComponent](h.em, victim)
	if vel.VX >= 0 {
		t.Errorf("victim should be pushed away from the blast, vx=%v", vel.VX)
	}

	// 尸体保留一段时间后删除
	h.step(h.svc.Config.Player.CorpseLifetime)
	if h.em.Exists(victim) {
		t.Error("corpse should be removed")
	}
}

// TestDropBomb 投弹规则
func TestDropBomb(t *testing.T) {
	h := newHarness(t)
	p := h.spawnPlayer("p", utils.Vec3{})
	player, _ := ecs.GetComponent[*components.PlayerComponent](h.em, p)

	bomb := h.players.DropBomb(p)
	if bomb == 0 {
		t.Fatal("player with a bomb should be able to drop it")
	}
	comp, _ := ecs.GetComponent[*components.BombComponent](h.em, bomb)
	if comp.BombType != "ice" || comp.Owner != p || comp.SourcePlayer != p {
		t.Errorf("unexpected bomb: type=%s owner=%d source=%d", comp.BombType, comp.Owner, comp.SourcePlayer)
	}
	if player.BombCount != 0 {
		t.Errorf("BombCount = %d, want 0", player.BombCount)
	}
	if h.players.DropBomb(p) != 0 {
		t.Error("out of bombs should return 0")
	}

	// 移到爆炸范围外，等炸弹消失后归还
	pos, _ := ecs.GetComponent[*components.PositionComponent](h.em, p)
	pos.X = 20
	h.step(h.svc.Config.Bomb.FuseTime + 2*tick)
	if player.BombCount != 1 {
		t.Errorf("bomb count should be restored after the bomb dies, got %d", player.BombCount)
	}

	player.LandMineCount = 1
	mine := h.players.DropBomb(p)
	if comp, _ := ecs.GetComponent[*components.BombComponent](h.em, mine); comp.BombType != "land_mine" {
		t.Errorf("land mines should be dropped first, got %s", comp.BombType)
	}
	if player.BombCount != 1 {
		t.Error("dropping a land mine must not consume a bomb")
	}

	h.svc.Router.Send(p, messages.FreezeMessage{})
	if h.players.DropBomb(p) != 0 {
		t.Error("frozen players cannot drop bombs")
	}
}

// TestPunchPress 出拳击中前方的玩家
func TestPunchPress(t *testing.T) {
	h := newHarness(t)
	puncher := h.spawnPlayer("a", utils.Vec3{})
	target := h.spawnPlayer("b", utils.Vec3{Z: 0.8})
	far := h.spawnPlayer("c", utils.Vec3{Z: -3})

	h.players.PunchPress(puncher)

	if h.health(target).CurrentHealth == h.svc.Config.Player.MaxHealth {
		t.Error("target in front should be punched")
	}
	if h.health(far).CurrentHealth != h.svc.Config.Player.MaxHealth {
		t.Error("far player should not be punched")
	}

	control, _ := ecs.GetComponent[*components.ControlComponent](h.em, puncher)
	control.EnablePunch = false
	before := h.health(target).CurrentHealth
	h.players.PunchPress(puncher)
	if h.health(target).CurrentHealth != before {
		t.Error("punch disabled should do nothing")
	}
}

// TestStandAndOutOfBounds 站位与掉出地图
func TestStandAndOutOfBounds(t *testing.T) {
	h := newHarness(t)
	p := h.spawnPlayer("p", utils.Vec3{})

	h.svc.Router.Send(p, messages.StandMessage{Pos: utils.Vec3{X: 2, Y: 1, Z: 3}, Angle: 90})
	pos, _ := ecs.GetComponent[*components.PositionComponent](h.em, p)
	move, _ := ecs.GetComponent[*components.MovementComponent](h.em, p)
	if pos.Vec() != (utils.Vec3{X: 2, Y: 1, Z: 3}) || move.Facing != 90 {
		t.Errorf("stand not applied: pos=%v facing=%v", pos.Vec(), move.Facing)
	}

	var how messages.DeathType = -1
	h.players.OnDeath = func(_, _ ecs.EntityID, d messages.DeathType) { how = d }
	h.svc.Router.Send(p, messages.OutOfBoundsMessage{})
	if how != messages.DeathFall {
		t.Errorf("death type = %v, want fall", how)
	}
	if h.em.Exists(p) {
		t.Error("fallen player should be removed immediately")
	}
}
