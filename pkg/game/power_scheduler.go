package game

import (
	"log"

	"github.com/gonewx/icedm/pkg/clock"
	"github.com/gonewx/icedm/pkg/ecs"
	"github.com/gonewx/icedm/pkg/systems"
	"github.com/gonewx/icedm/pkg/utils"
)

// PowerSpawnScheduler 控制超级冰能量的出现节奏
//
// 开局以及每次能量被拾取后，清空当前拾取物并重新计时；
// 计时到点时如果场上没有拾取物，就在地图的固定位置放一个。
// 场上任意时刻最多只有一个拾取物。
type PowerSpawnScheduler struct {
	clock  systems.Scheduler
	em     *ecs.EntityManager
	powers *systems.PowerSystem

	Interval  float64
	Position  utils.Vec3
	MaxHeight float64
	MeshScale float64

	live    ecs.EntityID
	timer   clock.Slot
	stopped bool
}

// NewPowerSpawnScheduler 创建调度器，尚未开始计时
func NewPowerSpawnScheduler(w *World, interval float64) *PowerSpawnScheduler {
	power := w.Services.Config.Power
	return &PowerSpawnScheduler{
		clock:     w.Clock,
		em:        w.EM,
		powers:    w.Powers,
		Interval:  interval,
		MaxHeight: power.DefaultMaxHeight,
		MeshScale: power.MeshScale,
	}
}

// Start 开局：解除 Stop 并开始第一次计时
func (s *PowerSpawnScheduler) Start() {
	s.stopped = false
	s.Arm()
}

// Arm 清空当前拾取物并重新计时，替换尚未触发的计时器
// Stop 之后只清空，不再计时
func (s *PowerSpawnScheduler) Arm() {
	s.live = 0
	if s.stopped {
		return
	}
	s.timer.Set(s.clock.After(s.Interval, s.spawn))
}

// Stop 取消计时器（比赛结束）；场上剩下的拾取物被拿走或消失后也不会再出现新的
func (s *PowerSpawnScheduler) Stop() {
	s.stopped = true
	s.timer.Cancel()
}

// Live 返回场上的拾取物，没有时返回 0
func (s *PowerSpawnScheduler) Live() ecs.EntityID {
	if s.live != 0 && !s.em.Exists(s.live) {
		return 0
	}
	return s.live
}

func (s *PowerSpawnScheduler) spawn() {
	if s.stopped || s.Live() != 0 {
		return
	}
	s.live = s.powers.Spawn(s.Position, s.MaxHeight, s.MeshScale, s.Arm, s.removed)
	log.Printf("[PowerSpawnScheduler] Super ice %d appeared at (%.2f, %.2f, %.2f)",
		s.live, s.Position.X, s.Position.Y, s.Position.Z)
}

// removed 拾取物没被拿到就消失了（掉出地图等），同样重新计时
func (s *PowerSpawnScheduler) removed() {
	s.Arm()
}
