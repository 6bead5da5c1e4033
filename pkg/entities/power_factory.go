package entities

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

// NewPowerEntity 创建超级冰能量拾取物
// 参数:
//   - em: EntityManager 实例
//   - cfg: 拾取物调参（拾取半径）
//   - base: 悬浮基准点（地图固定坐标）
//   - maxHeight: 初始高度，拾取物从 base+maxHeight 缓慢降落
//   - meshScale: 模型缩放
//
// 返回: 创建的实体ID。表现循环由 PowerSystem 启动。
func NewPowerEntity(em *ecs.EntityManager, cfg *config.PowerConfig, base utils.Vec3, maxHeight, meshScale float64) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.ActorComponent{Kind: components.ActorPowerPickup})
	em.AddComponent(id, &components.PositionComponent{
		X: base.X,
		Y: base.Y + maxHeight,
		Z: base.Z,
	})
	em.AddComponent(id, &components.RegionComponent{
		Kind:    components.RegionPickup,
		Radius:  cfg.TouchRadius,
		Targets: []string{components.MaterialPlayer},
	})
	em.AddComponent(id, &components.PowerComponent{
		Base:      base,
		MaxHeight: maxHeight,
		MeshScale: meshScale,
	})
	em.AddComponent(id, &components.LightComponent{
		Color:     components.Color{0.6, 0.6, 1.0},
		Intensity: 0.4,
		Radius:    0.15,
	})
	em.AddComponent(id, &components.TweenComponent{})

	return id
}

// NewPowerupBoxEntity 创建普通能量箱，超过 lifetime 秒未被拾取则消失
func NewPowerupBoxEntity(em *ecs.EntityManager, pos utils.Vec3, powerupType string, touchRadius, lifetime float64) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.ActorComponent{Kind: components.ActorPowerupBox})
	em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y, Z: pos.Z})
	em.AddComponent(id, &components.RegionComponent{
		Kind:    components.RegionPickup,
		Radius:  touchRadius,
		Targets: []string{components.MaterialPlayer},
	})
	em.AddComponent(id, &components.PowerupBoxComponent{Type: powerupType})
	if lifetime > 0 {
		em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: lifetime})
	}

	return id
}
