package fx

import "log"

// LogSink 把特效请求写入日志（用于命令行验证工具）
// Particles 为 false 时不记录粒子，避免 fairydust 之类的高频效果刷屏
type LogSink struct {
	Particles bool
}

func (l LogSink) Emit(p Particles) {
	if !l.Particles {
		return
	}
	log.Printf("[FX] emit %s/%s x%d at (%.2f, %.2f, %.2f)",
		p.EmitType, p.ChunkType, p.Count, p.Position.X, p.Position.Y, p.Position.Z)
}

func (l LogSink) PlaySound(s Sound) {
	log.Printf("[FX] sound %s vol=%.2f at (%.2f, %.2f, %.2f)",
		s.Name, s.Volume, s.Position.X, s.Position.Y, s.Position.Z)
}

func (l LogSink) CameraShake(intensity float64) {
	log.Printf("[FX] camera shake %.1f", intensity)
}
