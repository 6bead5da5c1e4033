package components

// Keyframe 关键帧
type Keyframe struct {
	Time  float64
	Value float64
}

// Track 一条属性动画轨道
//
// 值在相邻关键帧之间线性插值；非循环轨道播放到最后一帧后保持最终值并结束。
type Track struct {
	Property string
	Keys     []Keyframe
	Loop     bool
	Elapsed  float64
	Apply    func(value float64)
	Done     bool
}

// Duration 轨道时长（最后一帧的时间）
func (t *Track) Duration() float64 {
	if len(t.Keys) == 0 {
		return 0
	}
	return t.Keys[len(t.Keys)-1].Time
}

// ValueAt 计算时间 at 处的插值结果
func (t *Track) ValueAt(at float64) float64 {
	if len(t.Keys) == 0 {
		return 0
	}
	if at <= t.Keys[0].Time {
		return t.Keys[0].Value
	}
	for i := 1; i < len(t.Keys); i++ {
		k0, k1 := t.Keys[i-1], t.Keys[i]
		if at <= k1.Time {
			span := k1.Time - k0.Time
			if span <= 0 {
				return k1.Value
			}
			return k0.Value + (k1.Value-k0.Value)*(at-k0.Time)/span
		}
	}
	return t.Keys[len(t.Keys)-1].Value
}

// TweenComponent 实体上的属性动画集合
type TweenComponent struct {
	Tracks []*Track
}

// Play 开始一条属性动画，同名属性的旧动画被替换
// 开始时立即应用第一帧的值
func (c *TweenComponent) Play(property string, keys []Keyframe, loop bool, apply func(float64)) *Track {
	track := &Track{Property: property, Keys: keys, Loop: loop, Apply: apply}
	if apply != nil {
		apply(track.ValueAt(0))
	}
	for i, old := range c.Tracks {
		if old.Property == property {
			c.Tracks[i] = track
			return track
		}
	}
	c.Tracks = append(c.Tracks, track)
	return track
}

// Stop 停止指定属性的动画（保持当前值）
func (c *TweenComponent) Stop(property string) {
	for i, old := range c.Tracks {
		if old.Property == property {
			c.Tracks = append(c.Tracks[:i], c.Tracks[i+1:]...)
			return
		}
	}
}

// Playing 指定属性是否有正在播放的动画
func (c *TweenComponent) Playing(property string) bool {
	for _, t := range c.Tracks {
		if t.Property == property && !t.Done {
			return true
		}
	}
	return false
}
