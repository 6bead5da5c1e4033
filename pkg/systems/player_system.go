package systems

import (
	"log"
	"math"

	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/entities"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

// 普通能量类型
const (
	PowerupHealth      = "health"
	PowerupShield      = "shield"
	PowerupTripleBombs = "triple_bombs"
	PowerupLandMines   = "land_mines"
)

const (
	tripleBombCount = 3
	maxLandMines    = 3

	punchRange     = 1.0
	punchMagnitude = 350.0

	// 距离衰减：冲击半径边缘只剩一半伤害
	minFalloff = 0.5

	// 冰冻中单次伤害超过该值直接碎裂
	shatterDamage = 200
)

// iceAppearance 超级冰能量期间的外观
var iceAppearance = components.Appearance{
	Color:            components.Color{0.5, 1.5, 1.5},
	Highlight:        components.Color{0.5, 1.5, 1.5},
	ColorTexture:     "flagColor",
	ColorMaskTexture: "aliColorMask",
}

// PlayerSystem 可被冰冻的玩家：冰冻/解冻状态机与超级冰能量
//
// 状态：
//   - Normal：frozen=false, ice_power=false
//   - Frozen：收到 FreezeMessage 进入，计划好的自动解冻回到 Normal
//   - IceBuffed：拾取超级冰能量进入（会先强制解冻），到期回到 Normal
//
// IceBuffed 期间免疫冰冻；重复拾取把到期时间重置为完整时长，不叠加。
type PlayerSystem struct {
	svc   *Services
	bombs *BombSystem

	// FreezeTime 冰冻持续时间（秒）
	FreezeTime float64
	// IcePowerTime 超级冰能量持续时间（秒）
	IcePowerTime float64

	// OnDeath 玩家死亡时调用；killer 为最后一次伤害来源（0 表示无）
	OnDeath func(victim, killer ecs.EntityID, how messages.DeathType)
	// OnBombDropped 玩家投下炸弹后调用
	OnBombDropped func(player, bomb ecs.EntityID)
}

// NewPlayerSystem 创建玩家系统，冰冻与能量时长默认 5 秒和 10 秒
func NewPlayerSystem(svc *Services, bombs *BombSystem) *PlayerSystem {
	return &PlayerSystem{
		svc:          svc,
		bombs:        bombs,
		FreezeTime:   5,
		IcePowerTime: 10,
	}
}

// Spawn 创建玩家实体
func (s *PlayerSystem) Spawn(spec entities.PlayerSpec) ecs.EntityID {
	if spec.BlastRadius <= 0 {
		spec.BlastRadius = s.svc.Config.Bomb.BlastRadius
	}
	return entities.NewPlayerEntity(s.svc.EM, &s.svc.Config.Player, spec)
}

// HandleMessage 处理发给玩家的消息
func (s *PlayerSystem) HandleMessage(id ecs.EntityID, msg messages.Message) {
	switch m := msg.(type) {
	case messages.FreezeMessage:
		s.freeze(id)
	case messages.ThawMessage:
		s.thaw(id)
	case messages.PowerupMessage:
		s.powerup(id, m)
	case messages.HitMessage:
		s.hit(id, m)
	case messages.DieMessage:
		s.die(id, m)
	case messages.OutOfBoundsMessage:
		s.die(id, messages.DieMessage{Immediate: true, How: messages.DeathFall})
	case messages.StandMessage:
		s.stand(id, m)
	case messages.BombDiedMessage:
		if player, ok := ecs.GetComponent[*components.PlayerComponent](s.svc.EM, id); ok {
			player.BombCount++
		}
	}
}

func (s *PlayerSystem) freeze(id ecs.EntityID) {
	em := s.svc.EM
	frz, ok := ecs.GetComponent[*components.FreezeComponent](em, id)
	if !ok {
		return
	}
	ice, _ := ecs.GetComponent[*components.IcePowerComponent](em, id)
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)

	if ice.Active || player.Invincible {
		s.svc.FX.PlaySound(fxSound("block", 1.0, em, id))
		return
	}
	if player.Shielded() || frz.Frozen {
		return
	}

	frz.Frozen = true
	frz.Thaw.Set(s.svc.sendAfter(s.FreezeTime, id, messages.ThawMessage{}))
	debugf("[PlayerSystem] %s frozen for %.1fs", player.Name, s.FreezeTime)

	// 已经死亡的玩家被冰冻后立即碎裂
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok && health.CurrentHealth <= 0 {
		s.shatter(id)
	}
}

func (s *PlayerSystem) thaw(id ecs.EntityID) {
	frz, ok := ecs.GetComponent[*components.FreezeComponent](s.svc.EM, id)
	if !ok {
		return
	}
	frz.Thaw.Cancel()
	if frz.Frozen {
		frz.Frozen = false
		debugf("[PlayerSystem] Entity %d thawed", id)
	}
}

// shatter 冰冻的尸体碎裂并立即移除
func (s *PlayerSystem) shatter(id ecs.EntityID) {
	em := s.svc.EM
	frz, ok := ecs.GetComponent[*components.FreezeComponent](em, id)
	if !ok || frz.Shattered {
		return
	}
	frz.Shattered = true

	pos := positionOf(em, id)
	s.svc.FX.Emit(fx.Particles{Position: pos, Count: 30, Scale: 0.6, Spread: 1.5, ChunkType: "ice", EmitType: "chunks"})
	s.svc.FX.PlaySound(fx.Sound{Name: "shatter", Volume: 1.0, Position: pos})

	if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok && !health.Dead {
		s.die(id, messages.DieMessage{Immediate: true, How: messages.DeathImpact})
		return
	}
	s.release(id)
	em.DestroyEntity(id)
}

func (s *PlayerSystem) powerup(id ecs.EntityID, m messages.PowerupMessage) {
	em := s.svc.EM
	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok || health.Dead {
		return
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	cfg := s.svc.Config.Player

	switch m.Type {
	case PowerupSuperIce:
		s.grantIcePower(id)
	case PowerupHealth:
		health.Heal()
		s.svc.FX.PlaySound(fxSound("healthPowerup", 3.0, em, id))
	case PowerupShield:
		player.ShieldHitpoints = cfg.ShieldHitpoints
		s.svc.FX.PlaySound(fxSound("shieldUp", 1.0, em, id))
	case PowerupTripleBombs:
		player.BombCount = tripleBombCount
		player.TripleBombs.Set(s.svc.Clock.After(cfg.TripleBombsDuration, func() {
			if !em.Exists(id) {
				return
			}
			player.BombCount = cfg.BombCount
			s.svc.FX.PlaySound(fxSound("powerdown01", 1.0, em, id))
		}))
	case PowerupLandMines:
		player.LandMineCount = min(player.LandMineCount+cfg.LandMinesPerPowerup, maxLandMines)
	default:
		log.Printf("[PlayerSystem] Warning: unknown powerup type %q", m.Type)
	}
}

// grantIcePower 授予（或刷新）超级冰能量
func (s *PlayerSystem) grantIcePower(id ecs.EntityID) {
	em := s.svc.EM
	ice, ok := ecs.GetComponent[*components.IcePowerComponent](em, id)
	if !ok {
		return
	}
	if !ice.Active {
		s.equipIcePower(id, ice)
	}

	appearance, _ := ecs.GetComponent[*components.AppearanceComponent](em, id)
	ice.Flicker.Cancel()
	appearance.Appearance = iceAppearance
	ice.Custom = true

	duration := s.IcePowerTime
	ice.Flash.Set(s.svc.Clock.After(duration-s.svc.Config.Player.FlickerLead, func() {
		s.startFlicker(id)
	}))
	ice.Expiry.Set(s.svc.Clock.After(duration, func() {
		s.wearOffIcePower(id)
	}))
}

func (s *PlayerSystem) equipIcePower(id ecs.EntityID, ice *components.IcePowerComponent) {
	em := s.svc.EM
	s.thaw(id)
	s.powerup(id, messages.PowerupMessage{Type: PowerupHealth})

	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	appearance, _ := ecs.GetComponent[*components.AppearanceComponent](em, id)
	move, _ := ecs.GetComponent[*components.MovementComponent](em, id)

	ice.OldImpactScale = player.ImpactScale
	ice.OldAppearance = appearance.Appearance
	appearance.Appearance = iceAppearance
	ice.Custom = true

	player.ImpactScale = s.svc.Config.Player.BuffedImpactScale
	move.Hockey = true
	move.RollerMaterials = append(move.RollerMaterials, components.MaterialHockey)
	ice.Active = true

	ice.Efx.Set(s.svc.Clock.Every(0.1, func() {
		if em.Exists(id) {
			s.svc.FX.Emit(fx.Particles{Position: positionOf(em, id), EmitType: "fairydust"})
		}
	}))

	s.animateIceLight(id, ice,
		[]components.Keyframe{{Time: 0, Value: 0}, {Time: 0.1, Value: 0.5}, {Time: 0.2, Value: 0.4}},
		[]components.Keyframe{{Time: 0, Value: 0}, {Time: 0.1, Value: 0.2}, {Time: 0.2, Value: 0.15}})

	s.svc.FX.PlaySound(fxSound("powerup01", 3.0, em, id))
	log.Printf("[PlayerSystem] %s equipped super ice for %.1fs", player.Name, s.IcePowerTime)
}

// startFlicker 能量快结束时在两套外观之间来回切换
func (s *PlayerSystem) startFlicker(id ecs.EntityID) {
	em := s.svc.EM
	if !em.Exists(id) {
		return
	}
	ice, _ := ecs.GetComponent[*components.IcePowerComponent](em, id)
	appearance, _ := ecs.GetComponent[*components.AppearanceComponent](em, id)

	ice.Custom = true
	ice.Flicker.Set(s.svc.Clock.Every(s.svc.Config.Player.FlickerInterval, func() {
		if ice.Custom {
			appearance.Appearance = ice.OldAppearance
		} else {
			appearance.Appearance = iceAppearance
		}
		ice.Custom = !ice.Custom
	}))
}

// wearOffIcePower 超级冰能量到期，恢复原来的状态
func (s *PlayerSystem) wearOffIcePower(id ecs.EntityID) {
	em := s.svc.EM
	if !em.Exists(id) {
		return
	}
	ice, _ := ecs.GetComponent[*components.IcePowerComponent](em, id)
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	appearance, _ := ecs.GetComponent[*components.AppearanceComponent](em, id)
	move, _ := ecs.GetComponent[*components.MovementComponent](em, id)

	s.svc.FX.PlaySound(fxSound("powerdown01", 1.0, em, id))
	player.ImpactScale = ice.OldImpactScale
	ice.Active = false
	ice.Expiry.Cancel()
	ice.Flash.Cancel()
	ice.Efx.Cancel()
	ice.Flicker.Cancel()

	appearance.Appearance = ice.OldAppearance
	ice.Custom = false
	move.Hockey = false
	for i, m := range move.RollerMaterials {
		if m == components.MaterialHockey {
			move.RollerMaterials = append(move.RollerMaterials[:i], move.RollerMaterials[i+1:]...)
			break
		}
	}

	s.animateIceLight(id, ice,
		[]components.Keyframe{{Time: 0, Value: 0.4}, {Time: 0.1, Value: 0.5}, {Time: 0.2, Value: 0}},
		[]components.Keyframe{{Time: 0, Value: 0.15}, {Time: 0.1, Value: 0.2}, {Time: 0.2, Value: 0}})

	log.Printf("[PlayerSystem] %s super ice wore off", player.Name)
}

func (s *PlayerSystem) animateIceLight(id ecs.EntityID, ice *components.IcePowerComponent, intensity, radius []components.Keyframe) {
	tween, ok := ecs.GetComponent[*components.TweenComponent](s.svc.EM, id)
	if !ok {
		return
	}
	tween.Play("ice_light_intensity", intensity, false, func(v float64) { ice.LightIntensity = v })
	tween.Play("ice_light_radius", radius, false, func(v float64) { ice.LightRadius = v })
}

// hit 冲击：击退 + 伤害，伤害 = 强度 × 受击倍率 × 伤害系数 × 距离衰减
func (s *PlayerSystem) hit(id ecs.EntityID, m messages.HitMessage) {
	em := s.svc.EM
	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok {
		return
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	cfg := s.svc.Config.Player

	falloff := 1.0
	if m.Radius > 0 {
		reach := m.Radius + cfg.Radius
		falloff = utils.Clamp(1-0.5*pos.Vec().Dist(m.Pos)/reach, minFalloff, 1)
	}

	// 冰冻中的玩家同样会被推开
	dir := pos.Vec().Sub(m.Pos)
	dir.Y = 0
	push := dir.Normalize().Scale(m.Magnitude * cfg.ImpulseScale * player.ImpactScale * falloff)
	vel.Set(vel.Vec().Add(push))

	if health.Dead {
		return
	}
	if player.Invincible {
		s.svc.FX.PlaySound(fxSound("block", 1.0, em, id))
		return
	}

	damage := int(m.Magnitude * player.ImpactScale * cfg.DamageScale * falloff)
	if player.ShieldHitpoints > 0 {
		absorbed := min(damage, player.ShieldHitpoints)
		player.ShieldHitpoints -= absorbed
		damage -= absorbed
		if player.ShieldHitpoints == 0 {
			s.svc.FX.PlaySound(fxSound("shieldDown", 1.0, em, id))
		} else {
			s.svc.FX.PlaySound(fxSound("shieldHit", 1.0, em, id))
		}
	}
	if m.SourcePlayer != 0 {
		player.LastAttacker = m.SourcePlayer
	}
	if damage <= 0 {
		return
	}

	health.CurrentHealth -= damage
	s.svc.FX.PlaySound(fxSound("impactMedium", 1.0, em, id))
	debugf("[PlayerSystem] %s took %d damage (%d left)", player.Name, damage, health.CurrentHealth)

	if frz, ok := ecs.GetComponent[*components.FreezeComponent](em, id); ok && frz.Frozen &&
		(damage > shatterDamage || health.CurrentHealth <= 0) {
		s.shatter(id)
		return
	}

	if health.CurrentHealth <= 0 {
		s.svc.Router.Send(id, messages.DieMessage{How: messages.DeathImpact})
	}
}

func (s *PlayerSystem) die(id ecs.EntityID, m messages.DieMessage) {
	em := s.svc.EM
	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok {
		return
	}
	if health.Dead {
		if m.Immediate {
			s.release(id)
			em.DestroyEntity(id)
		}
		return
	}
	health.Dead = true
	if health.CurrentHealth > 0 {
		health.CurrentHealth = 0
	}

	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	if control, ok := ecs.GetComponent[*components.ControlComponent](em, id); ok {
		control.WantBomb, control.WantPunch = false, false
	}
	if move, ok := ecs.GetComponent[*components.MovementComponent](em, id); ok {
		move.MoveX, move.MoveZ = 0, 0
	}
	if ice, ok := ecs.GetComponent[*components.IcePowerComponent](em, id); ok {
		ice.Efx.Cancel()
		ice.Flicker.Cancel()
	}

	s.svc.FX.PlaySound(fxSound("death", 1.0, em, id))
	log.Printf("[PlayerSystem] %s died (how=%d, killer=%d)", player.Name, m.How, player.LastAttacker)

	if s.OnDeath != nil {
		s.OnDeath(id, player.LastAttacker, m.How)
	}

	if m.Immediate {
		s.release(id)
		em.DestroyEntity(id)
		return
	}
	player.Timers.Add(s.svc.Clock.After(s.svc.Config.Player.CorpseLifetime, func() {
		if em.Exists(id) {
			s.release(id)
			em.DestroyEntity(id)
		}
	}))
}

// release 取消玩家持有的全部计时器
func (s *PlayerSystem) release(id ecs.EntityID) {
	em := s.svc.EM
	if frz, ok := ecs.GetComponent[*components.FreezeComponent](em, id); ok {
		frz.Thaw.Cancel()
	}
	if ice, ok := ecs.GetComponent[*components.IcePowerComponent](em, id); ok {
		ice.Expiry.Cancel()
		ice.Flash.Cancel()
		ice.Flicker.Cancel()
		ice.Efx.Cancel()
	}
	if player, ok := ecs.GetComponent[*components.PlayerComponent](em, id); ok {
		player.TripleBombs.Cancel()
		player.Timers.CancelAll()
	}
}

func (s *PlayerSystem) stand(id ecs.EntityID, m messages.StandMessage) {
	em := s.svc.EM
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, id); ok {
		pos.Set(m.Pos)
	}
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](em, id); ok {
		vel.Set(utils.Vec3{})
	}
	if move, ok := ecs.GetComponent[*components.MovementComponent](em, id); ok {
		move.Facing = m.Angle
	}
}

// DropBomb 投下一枚炸弹（有地雷时优先投地雷）
// 冰冻、死亡或没有可用炸弹时返回 0
func (s *PlayerSystem) DropBomb(id ecs.EntityID) ecs.EntityID {
	em := s.svc.EM
	if !em.Exists(id) {
		return 0
	}
	player, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
	if !ok {
		return 0
	}
	frz, _ := ecs.GetComponent[*components.FreezeComponent](em, id)
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	if frz.Frozen || health.Dead {
		return 0
	}
	if player.LandMineCount <= 0 && player.BombCount <= 0 {
		return 0
	}

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

	droppingBomb := true
	bombType := player.BombType
	if player.LandMineCount > 0 {
		droppingBomb = false
		player.LandMineCount--
		bombType = "land_mine"
	}

	bomb := s.bombs.Spawn(entities.BombSpec{
		Position:     s.forwardPosition(id),
		Velocity:     vel.Vec(),
		BombType:     bombType,
		BlastRadius:  player.BlastRadius,
		Owner:        id,
		SourcePlayer: id,
	})

	if droppingBomb {
		player.BombCount--
		if comp, ok := ecs.GetComponent[*components.BombComponent](em, bomb); ok {
			comp.DeathActions = append(comp.DeathActions, func() {
				s.svc.Router.Send(id, messages.BombDiedMessage{})
			})
		}
	}

	if s.OnBombDropped != nil {
		s.OnBombDropped(id, bomb)
	}
	return bomb
}

// PunchPress 出拳：记录当前位置，并击中前方近处的其他玩家
func (s *PlayerSystem) PunchPress(id ecs.EntityID) {
	em := s.svc.EM
	if !em.Exists(id) {
		return
	}
	control, ok := ecs.GetComponent[*components.ControlComponent](em, id)
	if !ok || !control.EnablePunch {
		return
	}
	frz, _ := ecs.GetComponent[*components.FreezeComponent](em, id)
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	if frz.Frozen || health.Dead {
		return
	}

	pos := positionOf(em, id)
	log.Printf("[PlayerSystem] Punch at (%.4f, %.4f, %.4f)", pos.X, pos.Y, pos.Z)

	fist := s.forwardPosition(id)
	for _, other := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em) {
		if other == id {
			continue
		}
		if positionOf(em, other).Dist(fist) > punchRange {
			continue
		}
		s.svc.Router.Send(other, messages.HitMessage{
			Pos:          pos,
			Magnitude:    punchMagnitude,
			HitType:      "punch",
			HitSubtype:   "default",
			SourcePlayer: id,
		})
	}
}

// forwardPosition 玩家正前方半个身位的位置
func (s *PlayerSystem) forwardPosition(id ecs.EntityID) utils.Vec3 {
	em := s.svc.EM
	pos := positionOf(em, id)
	move, ok := ecs.GetComponent[*components.MovementComponent](em, id)
	if !ok {
		return pos
	}
	rad := move.Facing * math.Pi / 180
	return pos.Add(utils.Vec3{X: math.Sin(rad), Z: math.Cos(rad)}.Scale(0.5))
}

// Alive 玩家是否存在且未死亡
func Alive(em *ecs.EntityManager, id ecs.EntityID) bool {
	if !em.Exists(id) {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	return ok && !health.Dead
}
