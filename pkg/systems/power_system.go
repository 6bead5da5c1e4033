package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/entities"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

// PowerupSuperIce 超级冰能量
const PowerupSuperIce = "super_ice"

const (
	powerTickInterval    = 1.0
	powerRingPeriod      = 2.6
	powerSparkleInterval = 0.8
	powerEfxInterval     = 0.1
	powerMeshInterval    = 0.8
	powerFadeTime        = 0.1
)

// powerMeshes 拾取物循环显示的模型及其相对缩放
var powerMeshes = []struct {
	name  string
	scale float64
}{
	{"flash", 0.9},
	{"box", 1.0},
	{"frostyPelvis", 2.0},
}

// powerBobKeys 悬浮阶段的上下浮动（相对基准点的高度），1.6 秒一个循环
var powerBobKeys = []components.Keyframe{
	{Time: 0, Value: 0.6},
	{Time: 0.15, Value: 0.55},
	{Time: 0.4, Value: 0.5},
	{Time: 0.65, Value: 0.55},
	{Time: 0.8, Value: 0.6},
	{Time: 0.95, Value: 0.65},
	{Time: 1.2, Value: 0.7},
	{Time: 1.45, Value: 0.65},
	{Time: 1.6, Value: 0.6},
}

// PowerSystem 管理超级冰能量拾取物
type PowerSystem struct {
	svc *Services
}

// NewPowerSystem 创建拾取物系统
func NewPowerSystem(svc *Services) *PowerSystem {
	return &PowerSystem{svc: svc}
}

// Spawn 在 base 上方 maxHeight 处创建拾取物并启动表现循环
// onConsumed 在被玩家拾取后调用；onRemoved 在未被拾取就消失时调用
func (s *PowerSystem) Spawn(base utils.Vec3, maxHeight, meshScale float64, onConsumed, onRemoved func()) ecs.EntityID {
	em := s.svc.EM
	id := entities.NewPowerEntity(em, &s.svc.Config.Power, base, maxHeight, meshScale)

	power, _ := ecs.GetComponent[*components.PowerComponent](em, id)
	power.OnConsumed = onConsumed
	power.OnRemoved = onRemoved

	s.startPresentation(id, power)

	log.Printf("[PowerSystem] Spawned super ice pickup %d at (%.2f, %.2f, %.2f)", id, base.X, base.Y, base.Z)
	return id
}

// startPresentation 启动纯表现的循环：计数、光圈、音效、粒子、降落/浮动、模型切换
func (s *PowerSystem) startPresentation(id ecs.EntityID, power *components.PowerComponent) {
	em := s.svc.EM
	clk := s.svc.Clock
	cfg := s.svc.Config.Power
	tween, _ := ecs.GetComponent[*components.TweenComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

	// 空闲计数：每秒 +1，达到上限后停止
	power.Ticks = 1
	var tickTimer *clock.Timer
	tickTimer = power.Timers.Add(clk.Every(powerTickInterval, func() {
		power.Ticks++
		if power.Ticks >= cfg.MaxTicks {
			tickTimer.Cancel()
		}
	}))

	// 两个交错 1.3 秒的光圈脉冲
	pulse := func(ring int) func() {
		return func() {
			opacity := 0.5 * float64(power.Ticks) / float64(cfg.MaxTicks)
			tween.Play(fmt.Sprintf("ring%d_size", ring), []components.Keyframe{
				{Time: 0, Value: 0},
				{Time: powerRingPeriod, Value: 1.5},
			}, false, func(v float64) { power.Rings[ring].Size = v })
			tween.Play(fmt.Sprintf("ring%d_opacity", ring), []components.Keyframe{
				{Time: 0, Value: 0},
				{Time: 0.2, Value: opacity},
				{Time: 1.8, Value: opacity},
				{Time: powerRingPeriod, Value: 0},
			}, false, func(v float64) { power.Rings[ring].Opacity = v })
		}
	}
	pulse(0)()
	power.Timers.Add(clk.Every(powerRingPeriod, pulse(0)))
	power.Timers.Add(clk.After(powerRingPeriod/2, func() {
		pulse(1)()
		power.Timers.Add(clk.Every(powerRingPeriod, pulse(1)))
	}))

	power.Timers.Add(clk.Every(powerSparkleInterval, func() {
		s.svc.FX.PlaySound(fx.Sound{Name: "sparkle02", Volume: 0.2, Position: pos.Vec()})
	}))
	power.Timers.Add(clk.Every(powerEfxInterval, func() {
		s.svc.FX.Emit(fx.Particles{Position: pos.Vec(), EmitType: "fairydust"})
	}))

	// 从最高处缓慢降落到悬浮高度，之后循环浮动
	baseY := power.Base.Y
	setY := func(v float64) { pos.Y = v }
	tween.Play("y", []components.Keyframe{
		{Time: 0, Value: baseY + power.MaxHeight},
		{Time: cfg.DescendTime, Value: baseY + cfg.HoverHeight},
	}, false, setY)
	power.Timers.Add(clk.After(cfg.DescendTime, func() {
		bob := make([]components.Keyframe, len(powerBobKeys))
		for i, k := range powerBobKeys {
			bob[i] = components.Keyframe{Time: k.Time, Value: baseY + k.Value}
		}
		tween.Play("y", bob, true, setY)
	}))

	changeMesh := func() {
		mesh := powerMeshes[power.MeshIndex%len(powerMeshes)]
		power.MeshIndex++
		power.Mesh = mesh.name
		scale := mesh.scale * power.MeshScale
		tween.Play("scale", []components.Keyframe{
			{Time: 0, Value: 0},
			{Time: 0.1, Value: scale},
			{Time: 0.7, Value: scale},
			{Time: powerMeshInterval, Value: 0},
		}, false, func(v float64) { power.Scale = v })
	}
	changeMesh()
	power.Timers.Add(clk.Every(powerMeshInterval, changeMesh))
}

// HandleMessage 处理发给拾取物的消息
func (s *PowerSystem) HandleMessage(id ecs.EntityID, msg messages.Message) {
	switch m := msg.(type) {
	case messages.TouchedMessage:
		s.handleTouched(id, m)
	case messages.OutOfBoundsMessage:
		s.remove(id)
	case messages.DieMessage:
		if m.Immediate {
			s.remove(id)
			return
		}
		s.fadeOut(id)
	}
}

func (s *PowerSystem) handleTouched(id ecs.EntityID, m messages.TouchedMessage) {
	em := s.svc.EM
	power, ok := ecs.GetComponent[*components.PowerComponent](em, id)
	if !ok {
		return
	}
	// 只有活着的玩家能拾取
	if !Alive(em, m.Toucher) || !ecs.HasComponent[*components.PlayerComponent](em, m.Toucher) {
		return
	}
	if !power.MarkTouched() {
		return
	}
	ecs.RemoveComponent[*components.RegionComponent](em, id)

	s.svc.Router.Send(m.Toucher, messages.PowerupMessage{Type: PowerupSuperIce, Source: id})
	s.svc.FX.PlaySound(fxSound("sparkle03", 1.0, em, id))

	log.Printf("[PowerSystem] Pickup %d consumed by entity %d", id, m.Toucher)
	if power.OnConsumed != nil {
		power.OnConsumed()
	}
	s.svc.Router.Send(id, messages.DieMessage{})
}

// fadeOut 模型在 0.1 秒内缩小到 0 后删除
func (s *PowerSystem) fadeOut(id ecs.EntityID) {
	em := s.svc.EM
	power, ok := ecs.GetComponent[*components.PowerComponent](em, id)
	if !ok {
		return
	}
	power.Timers.CancelAll()
	ecs.RemoveComponent[*components.RegionComponent](em, id)

	if tween, ok := ecs.GetComponent[*components.TweenComponent](em, id); ok {
		tween.Play("scale", []components.Keyframe{
			{Time: 0, Value: power.Scale},
			{Time: powerFadeTime, Value: 0},
		}, false, func(v float64) { power.Scale = v })
	}
	s.svc.Clock.After(powerFadeTime, func() {
		s.remove(id)
	})
}

// remove 立即删除拾取物并取消所有表现计时器
func (s *PowerSystem) remove(id ecs.EntityID) {
	em := s.svc.EM
	if !em.Exists(id) {
		return
	}
	power, ok := ecs.GetComponent[*components.PowerComponent](em, id)
	if !ok {
		return
	}
	power.Timers.CancelAll()
	em.DestroyEntity(id)

	if !power.Touched() && power.OnRemoved != nil {
		power.OnRemoved()
	}
}
