package entities

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

// PlayerSpec 创建玩家实体所需的参数
type PlayerSpec struct {
	PlayerID int
	TeamID   int
	Name     string

	Position utils.Vec3
	Facing   float64

	Appearance components.Appearance
	NameColor  components.Color

	BombType    string
	BlastRadius float64

	EnablePickup bool
	EnablePunch  bool
	Bot          bool
}

// NewPlayerEntity 创建一个可被冰冻的玩家实体
// 参数:
//   - em: EntityManager 实例
//   - cfg: 玩家调参
//   - spec: 身份、外观与控制开关
//
// 返回: 创建的实体ID
func NewPlayerEntity(em *ecs.EntityManager, cfg *config.PlayerConfig, spec PlayerSpec) ecs.EntityID {
	id := em.CreateEntity()

	em.AddComponent(id, &components.ActorComponent{Kind: components.ActorPlayer})
	em.AddComponent(id, &components.PositionComponent{
		X: spec.Position.X,
		Y: spec.Position.Y,
		Z: spec.Position.Z,
	})
	em.AddComponent(id, &components.VelocityComponent{})

	em.AddComponent(id, &components.HealthComponent{
		CurrentHealth: cfg.MaxHealth,
		MaxHealth:     cfg.MaxHealth,
	})

	bombType := spec.BombType
	if bombType == "" {
		bombType = "ice"
	}
	em.AddComponent(id, &components.PlayerComponent{
		PlayerID:    spec.PlayerID,
		TeamID:      spec.TeamID,
		Name:        spec.Name,
		BombType:    bombType,
		BombCount:   cfg.BombCount,
		BlastRadius: spec.BlastRadius,
		ImpactScale: 1.0,
	})

	em.AddComponent(id, &components.AppearanceComponent{
		Appearance: spec.Appearance,
		NameColor:  spec.NameColor,
	})

	em.AddComponent(id, &components.MovementComponent{
		Speed:           cfg.Speed,
		Friction:        cfg.Friction,
		RollerMaterials: []string{components.MaterialPlayer},
		Facing:          spec.Facing,
	})

	em.AddComponent(id, &components.ControlComponent{
		EnablePickup: spec.EnablePickup,
		EnablePunch:  spec.EnablePunch,
		EnableBomb:   true,
		Bot:          spec.Bot,
	})

	em.AddComponent(id, &components.ColliderComponent{
		Radius:    cfg.Radius,
		Materials: []string{components.MaterialPlayer},
	})

	em.AddComponent(id, &components.FreezeComponent{})
	em.AddComponent(id, &components.IcePowerComponent{})
	em.AddComponent(id, &components.TweenComponent{})

	return id
}
