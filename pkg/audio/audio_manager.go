// Package audio 根据对局事件播放合成音效
//
// 音效不依赖任何音频资源文件，全部由 beep 实时合成。
package audio

import (
	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/simulation"
)

// Cue 音效种类
type Cue int

const (
	// CueShot 防御塔开火
	CueShot Cue = iota
	// CueKill 击落飞机
	CueKill
	// CueEscape 飞机逃逸
	CueEscape
	// CuePlace 放置或升级防御塔
	CuePlace
	// CueDefeat 玩家失败
	CueDefeat
)

// String 返回音效名
func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueKill:
		return "kill"
	case CueEscape:
		return "escape"
	case CuePlace:
		return "place"
	case CueDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Sink 音效输出
type Sink interface {
	Play(cue Cue)
}

// CuesFor 把一个 tick 的统计转换为要播放的音效
// 同一 tick 内同类事件只播放一次
func CuesFor(r simulation.TickReport) []Cue {
	var cues []Cue
	if r.Defeated {
		return append(cues, CueDefeat)
	}
	if r.Escaped > 0 {
		cues = append(cues, CueEscape)
	}
	if r.Killed > 0 {
		cues = append(cues, CueKill)
	}
	if r.Placed > 0 || r.Upgraded > 0 {
		cues = append(cues, CuePlace)
	}
	if r.Shots > 0 {
		cues = append(cues, CueShot)
	}
	return cues
}

// AudioManager 音效管理器
// 从 SettingsManager 读取开关，关闭时不产生任何输出
type AudioManager struct {
	sink            Sink
	settingsManager *game.SettingsManager // 可为 nil，表示始终开启
	defeatPlayed    bool
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - sink: 音效输出（可为 nil，此时所有播放请求被忽略）
//   - sm: 设置管理器（可为 nil）
func NewAudioManager(sink Sink, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		sink:            sink,
		settingsManager: sm,
	}
}

// OnTick 播放一个 tick 对应的音效
//
// 返回：
//   - int: 实际播放的音效数量
func (am *AudioManager) OnTick(r simulation.TickReport) int {
	if am.sink == nil || !am.enabled() {
		return 0
	}

	played := 0
	for _, cue := range CuesFor(r) {
		if cue == CueDefeat {
			// 失败后 Tick 每次都会返回 Defeated，只播放一次
			if am.defeatPlayed {
				continue
			}
			am.defeatPlayed = true
			log.Debug().Str("system", "AudioManager").Msg("defeat cue")
		}
		am.sink.Play(cue)
		played++
	}
	return played
}

// Reset 开始新对局时调用
func (am *AudioManager) Reset() {
	am.defeatPlayed = false
}

func (am *AudioManager) enabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.Settings().SoundEnabled
}
