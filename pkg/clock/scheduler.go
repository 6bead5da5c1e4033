// Package clock 提供游戏内的延迟回调服务
//
// 所有时间都是模拟时间（秒），由游戏循环通过 Update(deltaTime) 推进。
// 回调与碰撞通知在同一个逻辑线程上交错执行，不存在并行。
package clock

import (
	"container/heap"
	"math"
)

// minInterval 重复计时器的最小间隔，防止零间隔造成死循环
const minInterval = 0.001

// Scheduler 延迟/周期回调调度器
//
// 按到期时间顺序触发回调；到期时间相同时按注册顺序触发。
// 回调中可以安全地注册或取消其他计时器。
type Scheduler struct {
	now   float64
	seq   uint64
	queue timerQueue
}

// NewScheduler 创建调度器，模拟时间从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now 返回当前模拟时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 delay 秒后触发一次 fn
func (s *Scheduler) After(delay float64, fn func()) *Timer {
	return s.schedule(delay, 0, fn)
}

// Every 每隔 interval 秒触发一次 fn，直到被取消
// 第一次触发在 interval 秒之后
func (s *Scheduler) Every(interval float64, fn func()) *Timer {
	if interval < minInterval {
		interval = minInterval
	}
	return s.schedule(interval, interval, fn)
}

func (s *Scheduler) schedule(delay, interval float64, fn func()) *Timer {
	if delay < 0 || math.IsNaN(delay) {
		delay = 0
	}
	s.seq++
	t := &Timer{
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	return t
}

// Update 推进模拟时间 deltaTime 秒，并按顺序触发所有到期的回调
func (s *Scheduler) Update(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	target := s.now + deltaTime

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		if next.cancelled {
			continue
		}

		s.now = next.due
		if next.interval > 0 {
			// 先重新入队再执行，回调内的 Cancel 才能生效
			s.seq++
			next.due += next.interval
			next.seq = s.seq
			heap.Push(&s.queue, next)
		} else {
			next.done = true
		}
		next.fn()
	}

	s.now = target
}

// Pending 返回尚未触发且未取消的计时器数量
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Reset 取消所有计时器（回合结束时调用），模拟时间保持不变
func (s *Scheduler) Reset() {
	for _, t := range s.queue {
		t.cancelled = true
	}
	s.queue = s.queue[:0]
}

// Timer 已注册回调的句柄
type Timer struct {
	due       float64
	interval  float64
	seq       uint64
	fn        func()
	cancelled bool
	done      bool
	index     int
}

// Cancel 取消计时器；对 nil、已触发或已取消的计时器调用是安全的
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active 计时器是否仍会触发
func (t *Timer) Active() bool {
	return t != nil && !t.cancelled && !t.done
}

// Due 返回下一次触发的模拟时间
func (t *Timer) Due() float64 {
	if t == nil {
		return math.Inf(1)
	}
	return t.due
}

// timerQueue 按 (due, seq) 排序的最小堆
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
