package systems

import (
	"github.com/gonewx/icedm/pkg/components"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/entities"
	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gonewx/icedm/pkg/messages"
	"github.com/gonewx/icedm/pkg/utils"
)

// BlastSystem 管理爆炸效果
//
// 爆炸创建一个短暂存在的球形碰撞区域，区域接触到的每个实体
// 先收到一次冲击（HitMessage），紧接着收到一次冰冻（FreezeMessage）。
type BlastSystem struct {
	svc *Services
}

// NewBlastSystem 创建爆炸系统
func NewBlastSystem(svc *Services) *BlastSystem {
	return &BlastSystem{svc: svc}
}

// Spawn 创建一次爆炸
// 碰撞区域在 RegionLifetime 秒后自动删除，其余都是纯表现效果
func (s *BlastSystem) Spawn(spec entities.BlastSpec) ecs.EntityID {
	em := s.svc.EM
	id := entities.NewBlastEntity(em, spec)

	s.svc.Clock.After(s.svc.Config.Blast.RegionLifetime, func() {
		if em.Exists(id) {
			em.DestroyEntity(id)
		}
	})

	s.emitEffects(spec)

	debugf("[BlastSystem] %s blast %d at (%.2f, %.2f, %.2f) radius %.2f",
		spec.BlastType, id, spec.Position.X, spec.Position.Y, spec.Position.Z, spec.Radius)
	return id
}

// HandleMessage 处理发给爆炸的消息
func (s *BlastSystem) HandleMessage(id ecs.EntityID, msg messages.Message) {
	switch m := msg.(type) {
	case messages.ExplodeHitMessage:
		s.handleExplodeHit(id, m)
	case messages.DieMessage:
		// 删除区域节点；节点已不存在时什么也不做
		s.svc.EM.DestroyEntity(id)
	}
}

func (s *BlastSystem) handleExplodeHit(id ecs.EntityID, m messages.ExplodeHitMessage) {
	em := s.svc.EM
	blast, ok := ecs.GetComponent[*components.BlastComponent](em, id)
	if !ok || !em.Exists(m.Opposing) {
		return
	}
	// 同一个实体在区域存续期间可能被通知多次，只处理第一次
	if !blast.Strike(m.Opposing) {
		return
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	center := pos.Vec()

	source := blast.SourcePlayer
	if source != 0 && !em.Exists(source) {
		source = 0
	}

	// 爆炸冲击不带速度，方向只由冲击点决定
	s.svc.Router.Send(m.Opposing, messages.HitMessage{
		Pos:          center,
		Magnitude:    s.svc.Config.MagnitudeFor(blast.BlastType),
		Radius:       blast.Radius,
		HitType:      blast.HitType,
		HitSubtype:   blast.HitSubtype,
		SourcePlayer: source,
	})

	s.svc.FX.PlaySound(fx.Sound{Name: "freeze", Volume: 1.0, Position: center})
	s.svc.Router.Send(m.Opposing, messages.FreezeMessage{})
}

// emitEffects 爆炸的表现效果：冰须、扭曲、碎片、闪光、焦痕、音效与镜头震动
func (s *BlastSystem) emitEffects(spec entities.BlastSpec) {
	sink := s.svc.FX
	rng := s.svc.Rand
	pos, vel := spec.Position, spec.Velocity
	tnt := spec.BlastType == "tnt"

	sink.Emit(fx.Particles{
		Position:    pos,
		Velocity:    vel,
		Count:       4 + int(rng.Float64()*4),
		EmitType:    "tendrils",
		TendrilType: "ice",
	})
	spread := 2.0
	if tnt {
		spread = 1.0
	}
	sink.Emit(fx.Particles{Position: pos, EmitType: "distortion", Spread: spread})

	s.svc.Clock.After(s.svc.Config.Blast.ShrapnelDelay, func() {
		s.emitShrapnel(spec.BlastType, pos, vel)
	})

	scl := 0.6 + rng.Float64()*0.3
	if tnt {
		scl *= 3.0
	}
	blastCfg := s.svc.Config.Blast
	entities.NewBlastLightEntity(s.svc.EM, pos, spec.Radius, tnt, scl)
	entities.NewScorchEntity(s.svc.EM, pos, spec.Radius, tnt, blastCfg.ScorchFadeStart, blastCfg.ScorchLifetime)

	sink.PlaySound(fx.Sound{Name: "hiss", Volume: 0.8, Position: pos})

	if tnt {
		sink.CameraShake(5.0)
		sink.PlaySound(fx.Sound{Name: "explode", Volume: 1.0, Position: pos})
		s.svc.Clock.After(0.25, func() {
			sink.PlaySound(fx.Sound{Name: "explode", Volume: 1.0, Position: pos})
		})
		s.svc.Clock.After(0.4, func() {
			sink.PlaySound(fx.Sound{Name: "debrisFall", Volume: 1.0, Position: pos})
			sink.PlaySound(fx.Sound{Name: "woodDebrisFall", Volume: 1.0, Position: pos})
		})
	} else {
		sink.CameraShake(1.0)
	}
}

// emitShrapnel 按爆炸类型发射碎片
func (s *BlastSystem) emitShrapnel(blastType string, pos, vel utils.Vec3) {
	sink := s.svc.FX
	rng := s.svc.Rand
	randCount := func(base, extra float64) int {
		return int(base + rng.Float64()*extra)
	}
	chunks := func(count int, scale, spread float64, chunk, emit string) {
		sink.Emit(fx.Particles{
			Position:  pos,
			Velocity:  vel,
			Count:     count,
			Scale:     scale,
			Spread:    spread,
			ChunkType: chunk,
			EmitType:  emit,
		})
	}

	switch blastType {
	case "ice":
		chunks(30, 0.4, 2.0, "ice", "stickers")
	case "sticky":
		chunks(randCount(4, 8), 1.0, 0.7, "slime", "chunks")
		chunks(randCount(4, 8), 0.5, 0.7, "slime", "chunks")
		chunks(15, 0.6, 0, "slime", "stickers")
		chunks(20, 0.7, 0, "spark", "stickers")
		chunks(randCount(6, 12), 0.8, 1.5, "spark", "chunks")
	case "impact":
		chunks(randCount(4, 8), 0.8, 0, "metal", "chunks")
		chunks(randCount(4, 8), 0.4, 0, "metal", "chunks")
		chunks(20, 0.7, 0, "spark", "stickers")
		chunks(randCount(8, 15), 0.8, 1.5, "spark", "chunks")
	default:
		tnt := blastType == "tnt"
		if !tnt {
			chunks(randCount(4, 8), 1.0, 0, "rock", "chunks")
			chunks(randCount(4, 8), 0.5, 0, "rock", "chunks")
		}
		sparkScale, sprayScale := 0.7, 0.8
		if tnt {
			sparkScale, sprayScale = 1.0, 1.0
		}
		chunks(30, sparkScale, 0, "spark", "stickers")
		chunks(randCount(18, 20), sprayScale, 1.5, "spark", "chunks")

		if tnt {
			s.svc.Clock.After(0.01, func() {
				chunks(randCount(20, 25), 0.8, 1.0, "splinter", "chunks")
			})
		}
		// 偶尔来一次额外的火花
		if tnt || rng.Float64() < 0.1 {
			s.svc.Clock.After(0.02, func() {
				chunks(randCount(10, 20), 0.8, 1.5, "spark", "chunks")
			})
		}
	}
}
