package fx

// Recorder 记录所有特效请求，供测试和回放检查
type Recorder struct {
	Particles []Particles
	Sounds    []Sound
	Shakes    []float64
}

// NewRecorder 创建空的记录器
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(p Particles) {
	r.Particles = append(r.Particles, p)
}

func (r *Recorder) PlaySound(s Sound) {
	r.Sounds = append(r.Sounds, s)
}

func (r *Recorder) CameraShake(intensity float64) {
	r.Shakes = append(r.Shakes, intensity)
}

// SoundCount 统计指定名称音效的播放次数
func (r *Recorder) SoundCount(name string) int {
	n := 0
	for _, s := range r.Sounds {
		if s.Name == name {
			n++
		}
	}
	return n
}

// ParticleCount 统计指定发射类型和碎片类型的发射次数
// chunkType 为空时只匹配发射类型
func (r *Recorder) ParticleCount(emitType, chunkType string) int {
	n := 0
	for _, p := range r.Particles {
		if p.EmitType != emitType {
			continue
		}
		if chunkType != "" && p.ChunkType != chunkType {
			continue
		}
		n++
	}
	return n
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Particles = r.Particles[:0]
	r.Sounds = r.Sounds[:0]
	r.Shakes = r.Shakes[:0]
}
