// Package fx 描述纯表现性的特效：粒子、音效、镜头震动
//
// 这些效果对游戏逻辑没有任何影响，发出后即被遗忘（fire-and-forget）。
// 逻辑代码只依赖 Sink 接口，具体输出（日志、音频、测试记录）由宿主决定。
package fx

import "github.com/gonewx/icedm/pkg/utils"

// Particles 一次粒子发射请求
type Particles struct {
	Position    utils.Vec3
	Velocity    utils.Vec3
	Count       int
	Scale       float64
	Spread      float64
	ChunkType   string // "ice"、"rock"、"spark"、"slime"、"metal"、"splinter"
	EmitType    string // "chunks"、"stickers"、"tendrils"、"distortion"、"fairydust"
	TendrilType string
}

// Sound 一次音效播放请求
type Sound struct {
	Name     string
	Volume   float64
	Position utils.Vec3
}

// Sink 特效输出接口
type Sink interface {
	Emit(p Particles)
	PlaySound(s Sound)
	CameraShake(intensity float64)
}

// Discard 丢弃所有特效
type Discard struct{}

func (Discard) Emit(Particles)      {}
func (Discard) PlaySound(Sound)     {}
func (Discard) CameraShake(float64) {}

// Multi 把特效分发给多个 Sink
type Multi []Sink

func (m Multi) Emit(p Particles) {
	for _, s := range m {
		s.Emit(p)
	}
}

func (m Multi) PlaySound(snd Sound) {
	for _, s := range m {
		s.PlaySound(snd)
	}
}

func (m Multi) CameraShake(intensity float64) {
	for _, s := range m {
		s.CameraShake(intensity)
	}
}
