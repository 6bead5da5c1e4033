package game

import (
	"encoding/binary"
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/icedm/pkg/fx"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 合成音效使用的采样率
const SampleRate = 44100

// cue 一个合成音效：频率从 From 滑到 To，叠加 Noise 比例的噪声，按指数包络衰减
type cue struct {
	From, To float64 // Hz
	Duration float64 // 秒
	Noise    float64 // 0 ~ 1
	Decay    float64 // 包络衰减速度
}

// cues 游戏里用到的全部音效；未列出的名字使用 defaultCue
var cues = map[string]cue{
	"explode":        {From: 120, To: 40, Duration: 0.6, Noise: 0.8, Decay: 6},
	"debrisFall":     {From: 300, To: 200, Duration: 0.4, Noise: 0.9, Decay: 8},
	"woodDebrisFall": {From: 220, To: 160, Duration: 0.4, Noise: 0.7, Decay: 8},
	"hiss":           {From: 4000, To: 3000, Duration: 0.5, Noise: 1.0, Decay: 5},
	"freeze":         {From: 1800, To: 2600, Duration: 0.35, Noise: 0.3, Decay: 7},
	"shatter":        {From: 2500, To: 900, Duration: 0.5, Noise: 0.7, Decay: 6},
	"block":          {From: 900, To: 900, Duration: 0.12, Noise: 0.2, Decay: 20},
	"impactMedium":   {From: 180, To: 90, Duration: 0.2, Noise: 0.5, Decay: 15},
	"death":          {From: 400, To: 120, Duration: 0.5, Noise: 0.1, Decay: 4},
	"spawn":          {From: 300, To: 900, Duration: 0.3, Noise: 0.0, Decay: 6},
	"sparkle02":      {From: 2600, To: 3200, Duration: 0.25, Noise: 0.1, Decay: 10},
	"sparkle03":      {From: 2200, To: 3600, Duration: 0.4, Noise: 0.1, Decay: 6},
	"powerup01":      {From: 500, To: 1500, Duration: 0.4, Noise: 0.0, Decay: 4},
	"powerdown01":    {From: 1200, To: 300, Duration: 0.5, Noise: 0.0, Decay: 4},
	"healthPowerup":  {From: 600, To: 1200, Duration: 0.4, Noise: 0.0, Decay: 4},
	"shieldUp":       {From: 400, To: 800, Duration: 0.4, Noise: 0.05, Decay: 4},
	"shieldHit":      {From: 700, To: 500, Duration: 0.15, Noise: 0.2, Decay: 15},
	"shieldDown":     {From: 800, To: 200, Duration: 0.5, Noise: 0.1, Decay: 5},
	"activateBeep":   {From: 1000, To: 1000, Duration: 0.1, Noise: 0.0, Decay: 10},
}

var defaultCue = cue{From: 440, To: 440, Duration: 0.1, Noise: 0, Decay: 10}

// AudioManager 播放游戏音效，实现 fx.Sink
//
// 没有音频资源文件：每个音效在第一次播放时合成为 PCM 并缓存播放器。
// 音量与开关从 SettingsManager 读取。粒子与镜头震动不归它管，忽略即可。
type AudioManager struct {
	context         *audio.Context   // 可为 nil（无声模式）
	settingsManager *SettingsManager // 可为 nil，使用默认音量
	soundPlayers    map[string]*audio.Player
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（无声模式，如无头工具）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
	}
}

// PlaySound 播放音效，音量 = 请求音量 × 设置中的音效音量
func (am *AudioManager) PlaySound(s fx.Sound) {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return
	}

	player := am.getSoundPlayer(s.Name)
	if player == nil {
		return
	}

	player.SetVolume(math.Min(1, s.Volume*am.getSoundVolume()))
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", s.Name, err)
	}
	player.Play()
}

// Emit 粒子由渲染端处理
func (am *AudioManager) Emit(fx.Particles) {}

// CameraShake 镜头震动由渲染端处理
func (am *AudioManager) CameraShake(float64) {}

// SetSoundVolume 设置音效音量，影响后续播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.getSoundVolume()
}

// Preload 预先合成全部音效，避免首次播放时的卡顿
func (am *AudioManager) Preload() {
	for name := range cues {
		am.getSoundPlayer(name)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.soundPlayers))
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(name string) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, exists := am.soundPlayers[name]; exists {
		return player
	}

	if _, ok := cues[name]; !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s (using default beep)", name)
	}
	player := am.context.NewPlayerFromBytes(SoundPCM(name, SampleRate))
	am.soundPlayers[name] = player
	return player
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

// SoundPCM 合成指定名字的音效（16 位小端立体声），未知名字得到一声短促的提示音
func SoundPCM(name string, sampleRate int) []byte {
	c, ok := cues[name]
	if !ok {
		c = defaultCue
	}
	return synthesize(c, sampleRate, int64(len(name)))
}

// synthesize 生成 16 位小端立体声 PCM
func synthesize(c cue, sampleRate int, seed int64) []byte {
	n := int(c.Duration * float64(sampleRate))
	buf := make([]byte, n*4)
	noise := rand.New(rand.NewSource(seed))

	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		progress := t / c.Duration
		freq := c.From + (c.To-c.From)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		tone := math.Sin(phase)
		v := tone*(1-c.Noise) + (noise.Float64()*2-1)*c.Noise
		v *= math.Exp(-c.Decay*t) * 0.5

		sample := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}
