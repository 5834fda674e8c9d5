package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/audio"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/simulation"
	"github.com/decker502/waterguns/pkg/utils"
)

// BattleScene 对局画面
//
// 场景只负责把 ebiten 的输入转换为指针快照、按游戏速度推进模拟、绘制只读视图；
// 所有规则都在 simulation 中。
type BattleScene struct {
	sim             *simulation.Simulation
	sceneManager    *SceneManager
	settingsManager *game.SettingsManager
	audioManager    *audio.AudioManager
	pointer         *utils.PointerTracker

	clockMs    float64 // 模拟时钟，只在推进 tick 时前进
	paused     bool
	lastReport simulation.TickReport
}

// NewBattleScene 创建对局画面
//
// 参数：
//   - cfg: 游戏配置
//   - sm: 场景管理器（用于失败后重新开始，可为 nil）
//   - settings: 显示设置（不可为 nil）
//   - am: 音效管理器（可为 nil）
func NewBattleScene(cfg *config.GameConfig, sm *SceneManager, settings *game.SettingsManager, am *audio.AudioManager) (*BattleScene, error) {
	sim, err := simulation.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	if am != nil {
		am.Reset()
	}
	return &BattleScene{
		sim:             sim,
		sceneManager:    sm,
		settingsManager: settings,
		audioManager:    am,
		pointer:         utils.NewPointerTracker(),
	}, nil
}

// Simulation 返回场景驱动的对局
func (s *BattleScene) Simulation() *simulation.Simulation {
	return s.sim
}

// Update 处理一帧
func (s *BattleScene) Update(deltaTime float64) {
	s.handleKeys()

	pointer := pollPointer(s.pointer)

	if s.sim.IsDefeated() {
		if pointer.Up || inpututil.IsKeyJustPressed(ebiten.KeyN) {
			s.restart()
		}
		return
	}
	if s.paused {
		return
	}

	s.step(pointer, deltaTime)
}

// step 按游戏速度推进若干 tick
// 指针事件只交给第一个 tick，避免加速时一次点击被处理多次
func (s *BattleScene) step(pointer simulation.Pointer, deltaTime float64) []simulation.TickReport {
	ticks := s.settingsManager.Settings().TicksPerFrame
	reports := make([]simulation.TickReport, 0, ticks)

	for i := 0; i < ticks; i++ {
		s.clockMs += deltaTime * 1000
		input := simulation.Input{NowMs: s.clockMs}
		if i == 0 {
			input.Pointer = pointer
		} else {
			input.Pointer = simulation.Pointer{X: pointer.X, Y: pointer.Y, Down: pointer.Down}
		}

		report := s.sim.Tick(input)
		reports = append(reports, report)
		s.lastReport = report
		if s.audioManager != nil {
			s.audioManager.OnTick(report)
		}
		if report.Defeated {
			break
		}
	}
	return reports
}

// handleKeys 显示设置快捷键
func (s *BattleScene) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.settingsManager.ToggleRanges()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.settingsManager.ToggleHUD()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		s.settingsManager.ToggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		speed := s.settingsManager.CycleSpeed()
		log.Debug().Str("system", "BattleScene").Int("speed", speed).Msg("speed changed")
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.paused = !s.paused
	}
}

func (s *BattleScene) restart() {
	if s.sceneManager == nil {
		return
	}
	s.pointer.Reset()
	s.sceneManager.Restart()
}

// SaveOnExit 退出时保存显示设置
func (s *BattleScene) SaveOnExit() bool {
	if err := s.settingsManager.Save(); err != nil {
		log.Warn().Err(err).Str("system", "BattleScene").Msg("failed to save settings")
		return false
	}
	return true
}
