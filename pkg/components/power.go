package components

import (
	"sync/atomic"

	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/utils"
)

// PowerRing 拾取物周围扩散的光圈
type PowerRing struct {
	Size    float64
	Opacity float64
}

// PowerComponent 超级冰能量拾取物
type PowerComponent struct {
	Base      utils.Vec3 // 悬浮最终停留的基准点
	MaxHeight float64    // 初始高度（相对基准点）
	MeshScale float64

	Ticks     int // 空闲计数，驱动光圈亮度
	MeshIndex int
	Mesh      string
	Scale     float64 // 当前模型缩放（补间驱动）
	Rings     [2]PowerRing

	Timers clock.Group

	// OnConsumed 被玩家拾取后调用
	OnConsumed func()
	// OnRemoved 未被拾取就被移除时调用（例如掉出地图）
	OnRemoved func()

	touched atomic.Bool
}

// MarkTouched 原子地标记为已拾取，只有第一次调用返回 true
func (p *PowerComponent) MarkTouched() bool {
	return p.touched.CompareAndSwap(false, true)
}

// Touched 是否已被拾取
func (p *PowerComponent) Touched() bool {
	return p.touched.Load()
}

// PowerupBoxComponent 普通能量箱（health/shield/triple_bombs/land_mines）
type PowerupBoxComponent struct {
	Type string

	touched atomic.Bool
}

// MarkTouched 原子地标记为已拾取
func (p *PowerupBoxComponent) MarkTouched() bool {
	return p.touched.CompareAndSwap(false, true)
}
