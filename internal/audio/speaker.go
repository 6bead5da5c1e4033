// Package audio 在没有 ebiten 窗口的场合（终端观战）通过系统扬声器播放音效
package audio

import (
	"encoding/binary"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gonewx/icedm/pkg/fx"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Synth 按名字合成 16 位小端立体声 PCM
type Synth func(name string, sampleRate int) []byte

// Speaker 基于 beep 的 fx.Sink，只处理音效
//
// 合成结果按名字缓存；所有声音混入同一个 Mixer，由扬声器线程拉取。
type Speaker struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	synth       Synth
	volume      float64
	mixer       *beep.Mixer
	cache       map[string][]byte
	initialized bool
}

// NewSpeaker 创建扬声器输出，volume 取值 0 ~ 1
func NewSpeaker(sampleRate int, synth Synth, volume float64) *Speaker {
	return &Speaker{
		rate:   beep.SampleRate(sampleRate),
		synth:  synth,
		volume: volume,
		mixer:  &beep.Mixer{},
		cache:  make(map[string][]byte),
	}
}

// Initialize 打开系统音频设备
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close 停止所有声音并关闭设备
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

// PlaySound 把音效混入输出，音量 = 请求音量 × 全局音量
func (s *Speaker) PlaySound(snd fx.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	pcm, ok := s.cache[snd.Name]
	if !ok {
		pcm = s.synth(snd.Name, int(s.rate))
		s.cache[snd.Name] = pcm
		log.Printf("[Speaker] Synthesized %s (%d bytes)", snd.Name, len(pcm))
	}

	streamer := withVolume(NewPCMStreamer(pcm), snd.Volume*s.volume)
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

func (s *Speaker) Emit(fx.Particles)    {}
func (s *Speaker) CameraShake(float64) {}

// withVolume 线性音量转换为 beep 的对数音量；0 及以下静音
func withVolume(st beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(vol)}
}

// PCMStreamer 把 16 位小端立体声 PCM 转为 beep 采样
type PCMStreamer struct {
	data []byte
	pos  int // 字节偏移
}

// NewPCMStreamer 创建一次性播放的流，data 长度应为 4 的整数倍
func NewPCMStreamer(data []byte) *PCMStreamer {
	return &PCMStreamer{data: data}
}

func (p *PCMStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && p.pos+4 <= len(p.data) {
		left := int16(binary.LittleEndian.Uint16(p.data[p.pos:]))
		right := int16(binary.LittleEndian.Uint16(p.data[p.pos+2:]))
		samples[n][0] = float64(left) / 32768
		samples[n][1] = float64(right) / 32768
		p.pos += 4
		n++
	}
	return n, n > 0
}

func (p *PCMStreamer) Err() error { return nil }

// Len 采样总数
func (p *PCMStreamer) Len() int { return len(p.data) / 4 }
