package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// tone 一个音效由若干段正弦音组成
type tone struct {
	freq     float64
	duration time.Duration
}

// cueTones 每种音效的音高序列
var cueTones = map[Cue][]tone{
	CueShot:   {{freq: 880, duration: 30 * time.Millisecond}},
	CueKill:   {{freq: 660, duration: 60 * time.Millisecond}, {freq: 990, duration: 90 * time.Millisecond}},
	CueEscape: {{freq: 220, duration: 150 * time.Millisecond}},
	CuePlace:  {{freq: 523, duration: 50 * time.Millisecond}, {freq: 784, duration: 50 * time.Millisecond}},
	CueDefeat: {{freq: 392, duration: 200 * time.Millisecond}, {freq: 330, duration: 200 * time.Millisecond}, {freq: 262, duration: 400 * time.Millisecond}},
}

// SoundManager 通过系统扬声器播放合成音效
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager 创建音效播放器，需要调用 Initialize 后才会出声
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize 初始化扬声器
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play 播放一个音效（实现 Sink）
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	streamer, err := cueStreamer(cue)
	if err != nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Cleanup 停止所有声音
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// cueStreamer 合成一个音效的音频流
func cueStreamer(cue Cue) (beep.Streamer, error) {
	tones, ok := cueTones[cue]
	if !ok {
		return nil, fmt.Errorf("no tones for cue %s", cue)
	}

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s tone: %w", cue, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(t.duration), sine))
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   -3,
	}, nil
}
