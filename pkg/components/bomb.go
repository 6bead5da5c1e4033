package components

import (
	"sync/atomic"

	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/ecs"
)

// BombComponent 炸弹
type BombComponent struct {
	BombType     string
	BlastRadius  float64
	Owner        ecs.EntityID // 投放者
	SourcePlayer ecs.EntityID // 击杀归属的玩家
	HitType      string
	HitSubtype   string

	Fuse   clock.Slot
	Remove clock.Slot

	// OnExplode 爆炸回调，参数为炸弹与生成的爆炸实体
	OnExplode []func(bomb, blast ecs.EntityID)
	// DeathActions 炸弹移除时执行（例如归还投放者的炸弹数）
	DeathActions []func()

	exploded atomic.Bool
}

// MarkExploded 原子地把炸弹标记为已爆炸
// 只有第一次调用返回 true，之后的调用（包括同一帧内的重复触发）都返回 false
func (b *BombComponent) MarkExploded() bool {
	return b.exploded.CompareAndSwap(false, true)
}

// Exploded 是否已爆炸
func (b *BombComponent) Exploded() bool {
	return b.exploded.Load()
}
