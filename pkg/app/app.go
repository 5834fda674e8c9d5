// Package app 提供 ebiten 前端的应用包装器
//
// 该包把设置加载、日志、场景和音效的装配从 main 包中提取出来。
package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/decker502/waterguns/pkg/audio"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/scenes"
)

// App 应用包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *scenes.SceneManager
	settingsManager *game.SettingsManager
	soundManager    *audio.SoundManager

	width, height int

	pendingWindowSizeReset   bool // 退出全屏后延迟恢复窗口大小
	windowSizeResetCountdown int
}

// NewApp 创建应用并开始第一局
//
// 参数：
//   - cfg: 游戏配置
//   - settings: 显示设置
//   - sound: 音效输出，可为 nil（静音）
func NewApp(cfg *config.GameConfig, settings *game.SettingsManager, sound *audio.SoundManager) (*App, error) {
	var sink audio.Sink
	if sound != nil {
		sink = sound
	}
	audioManager := audio.NewAudioManager(sink, settings)

	sceneManager := scenes.NewSceneManager()
	sceneManager.SetSceneFactory(func() (scenes.Scene, error) {
		return scenes.NewBattleScene(cfg, sceneManager, settings, audioManager)
	})
	if !sceneManager.Restart() {
		return nil, fmt.Errorf("failed to create battle scene")
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settings,
		soundManager:    sound,
		width:           int(cfg.Field.Width),
		height:          int(cfg.Field.Height),
	}, nil
}

// Run 打开窗口并运行游戏循环，窗口关闭后保存设置
func (a *App) Run() error {
	scale := viper.GetFloat64("window.scale")
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(a.width)*scale), int(float64(a.height)*scale))
	ebiten.SetWindowTitle(viper.GetString("window.title"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if tps := viper.GetInt("tps"); tps > 0 {
		ebiten.SetTPS(tps)
	}

	log.Info().Str("system", "App").Int("width", a.width).Int("height", a.height).Msg("starting")
	err := ebiten.RunGame(a)

	a.sceneManager.SaveOnExit()
	if a.soundManager != nil {
		a.soundManager.Cleanup()
	}
	if err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.width, a.height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 窗口管理器需要几帧处理退出全屏
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 全屏时用黑边填充并线性缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸等于场地尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *scenes.SceneManager {
	return a.sceneManager
}
