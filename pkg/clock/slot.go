package clock

// Slot 最多持有一个计时器的槽位
//
// Set 会先显式取消旧计时器再保存新计时器，用来实现"重新开始倒计时"：
// 例如重复拾取能量时替换到期计时器，而不是叠加时长。
type Slot struct {
	timer *Timer
}

// Set 替换槽位中的计时器，旧计时器被取消
func (s *Slot) Set(t *Timer) {
	if s.timer != nil && s.timer != t {
		s.timer.Cancel()
	}
	s.timer = t
}

// Cancel 取消并清空槽位
func (s *Slot) Cancel() {
	if s.timer != nil {
		s.timer.Cancel()
		s.timer = nil
	}
}

// Active 槽位中是否有仍会触发的计时器
func (s *Slot) Active() bool {
	return s.timer.Active()
}

// Timer 返回当前计时器（可能为 nil）
func (s *Slot) Timer() *Timer {
	return s.timer
}

// Group 一组随宿主实体一起失效的计时器
type Group struct {
	timers []*Timer
}

// Add 记录计时器并原样返回
func (g *Group) Add(t *Timer) *Timer {
	// 顺手清理已经失效的计时器，避免长寿实体无限累积
	live := g.timers[:0]
	for _, old := range g.timers {
		if old.Active() {
			live = append(live, old)
		}
	}
	g.timers = append(live, t)
	return t
}

// CancelAll 取消组内全部计时器
func (g *Group) CancelAll() {
	for _, t := range g.timers {
		t.Cancel()
	}
	g.timers = nil
}

// Len 组内仍然有效的计时器数量
func (g *Group) Len() int {
	n := 0
	for _, t := range g.timers {
		if t.Active() {
			n++
		}
	}
	return n
}
