package entities

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

// 爆炸光源颜色（偏冷的蓝白色）
var blastLightColor = components.Color{0.6, 0.6, 1.0}

// 焦痕颜色
var scorchColor = components.Color{1, 1, 1.5}

// blastRegionOffsetY 碰撞区域比爆炸中心略低一点
const blastRegionOffsetY = -0.1

// BlastSpec 创建爆炸实体所需的参数
type BlastSpec struct {
	Position     utils.Vec3
	Velocity     utils.Vec3
	Radius       float64
	BlastType    string
	SourcePlayer ecs.EntityID
	HitType      string
	HitSubtype   string
}

// NewBlastEntity 创建爆炸实体（本身即为碰撞区域节点）
// 区域会接触玩家与炸弹，接触通知由 BlastSystem 处理
func NewBlastEntity(em *ecs.EntityManager, spec BlastSpec) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.ActorComponent{Kind: components.ActorBlast})
	em.AddComponent(id, &components.PositionComponent{
		X: spec.Position.X,
		Y: spec.Position.Y,
		Z: spec.Position.Z,
	})
	em.AddComponent(id, &components.RegionComponent{
		Kind:    components.RegionBlast,
		Radius:  spec.Radius,
		OffsetY: blastRegionOffsetY,
		Targets: []string{components.MaterialPlayer, components.MaterialBomb},
	})
	em.AddComponent(id, &components.BlastComponent{
		BlastType:    spec.BlastType,
		Radius:       spec.Radius,
		SourcePlayer: spec.SourcePlayer,
		HitType:      spec.HitType,
		HitSubtype:   spec.HitSubtype,
		Struck:       make(map[ecs.EntityID]bool),
	})

	return id
}

// NewBlastLightEntity 创建爆炸闪光
// scl 为随机的时间缩放，光源在 scl*3 秒后被删除
func NewBlastLightEntity(em *ecs.EntityManager, pos utils.Vec3, radius float64, big bool, scl float64) ecs.EntityID {
	id := em.CreateEntity()

	lightRadius := radius
	if big {
		lightRadius *= 1.4
	}

	light := &components.LightComponent{Color: blastLightColor}
	em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	em.AddComponent(id, light)

	const iscale = 1.6
	tween := &components.TweenComponent{}
	tween.Play("intensity", []components.Keyframe{
		{Time: 0, Value: 2.0 * iscale},
		{Time: scl * 0.02, Value: 0.1 * iscale},
		{Time: scl * 0.025, Value: 0.2 * iscale},
		{Time: scl * 0.05, Value: 17.0 * iscale},
		{Time: scl * 0.06, Value: 5.0 * iscale},
		{Time: scl * 0.08, Value: 4.0 * iscale},
		{Time: scl * 0.2, Value: 0.6 * iscale},
		{Time: scl * 2.0, Value: 0},
		{Time: scl * 3.0, Value: 0},
	}, false, func(v float64) { light.Intensity = v })
	tween.Play("radius", []components.Keyframe{
		{Time: 0, Value: lightRadius * 0.2},
		{Time: scl * 0.05, Value: lightRadius * 0.55},
		{Time: scl * 0.1, Value: lightRadius * 0.3},
		{Time: scl * 0.3, Value: lightRadius * 0.15},
		{Time: scl * 1.0, Value: lightRadius * 0.05},
	}, false, func(v float64) { light.Radius = v })
	em.AddComponent(id, tween)

	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: scl * 3.0})

	return id
}

// NewScorchEntity 创建爆炸焦痕
// 焦痕在 fadeStart 秒之前完全可见，之后线性淡出，lifetime 秒时删除
func NewScorchEntity(em *ecs.EntityManager, pos utils.Vec3, radius float64, big bool, fadeStart, lifetime float64) ecs.EntityID {
	id := em.CreateEntity()

	scorchRadius := radius
	if big {
		scorchRadius *= 1.15
	}

	scorch := &components.ScorchComponent{
		Color: scorchColor,
		Size:  scorchRadius * 0.5,
		Big:   big,
	}
	em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	em.AddComponent(id, scorch)

	tween := &components.TweenComponent{}
	tween.Play("presence", []components.Keyframe{
		{Time: fadeStart, Value: 1},
		{Time: lifetime, Value: 0},
	}, false, func(v float64) { scorch.Presence = v })
	em.AddComponent(id, tween)

	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: lifetime})

	return id
}

// NewSpawnFlashEntity 玩家出场时的一次闪光，跟随玩家移动
func NewSpawnFlashEntity(em *ecs.EntityManager, follow ecs.EntityID, pos utils.Vec3, color components.Color) ecs.EntityID {
	id := em.CreateEntity()

	light := &components.LightComponent{Color: color, Radius: 0.5, Follow: follow}
	em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	em.AddComponent(id, light)

	tween := &components.TweenComponent{}
	tween.Play("intensity", []components.Keyframe{
		{Time: 0, Value: 0},
		{Time: 0.25, Value: 1},
		{Time: 0.5, Value: 0},
	}, false, func(v float64) { light.Intensity = v })
	em.AddComponent(id, tween)

	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 0.5})

	return id
}
