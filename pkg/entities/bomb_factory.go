package entities

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/config"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/utils"
)

// BombSpec 创建炸弹实体所需的参数
type BombSpec struct {
	Position     utils.Vec3
	Velocity     utils.Vec3
	BombType     string
	BlastRadius  float64
	Owner        ecs.EntityID
	SourcePlayer ecs.EntityID
	HitType      string
	HitSubtype   string
}

// NewBombEntity 创建炸弹实体
// 引信计时器由 BombSystem 负责挂接
func NewBombEntity(em *ecs.EntityManager, cfg *config.BombConfig, spec BombSpec) ecs.EntityID {
	id := em.CreateEntity()

	if spec.BombType == "" {
		spec.BombType = "ice"
	}
	if spec.BlastRadius <= 0 {
		spec.BlastRadius = cfg.BlastRadius
	}
	if spec.HitType == "" {
		spec.HitType = "explosion"
	}
	if spec.HitSubtype == "" {
		spec.HitSubtype = spec.BombType
	}

	em.AddComponent(id, &components.ActorComponent{Kind: components.ActorBomb})
	em.AddComponent(id, &components.PositionComponent{
		X: spec.Position.X,
		Y: spec.Position.Y,
		Z: spec.Position.Z,
	})
	em.AddComponent(id, &components.VelocityComponent{
		VX: spec.Velocity.X,
		VY: spec.Velocity.Y,
		VZ: spec.Velocity.Z,
	})
	em.AddComponent(id, &components.ColliderComponent{
		Radius:    cfg.Radius,
		Materials: []string{components.MaterialBomb},
	})
	em.AddComponent(id, &components.BombComponent{
		BombType:     spec.BombType,
		BlastRadius:  spec.BlastRadius,
		Owner:        spec.Owner,
		SourcePlayer: spec.SourcePlayer,
		HitType:      spec.HitType,
		HitSubtype:   spec.HitSubtype,
	})

	return id
}
