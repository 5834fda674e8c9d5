package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/audio"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/simulation"
	"github.com/decker502/waterguns/pkg/utils"
)

// Runner 终端前端的主循环
type Runner struct {
	screen          tcell.Screen
	config          *config.GameConfig
	settingsManager *game.SettingsManager
	audioManager    *audio.AudioManager
	tickInterval    time.Duration

	sim     *simulation.Simulation
	pointer *utils.PointerTracker
	grid    utils.CellGrid

	last    simulation.Pointer  // 最近一次鼠标位置与按下状态
	click   *simulation.Pointer // 还没交给模拟的点击
	clockMs float64
	paused  bool
}

// NewRunner 创建终端前端
//
// 参数：
//   - screen: 已初始化的 tcell 屏幕
//   - cfg: 游戏配置
//   - settings: 显示设置
//   - sink: 音效输出，可为 nil
//   - tps: 每秒 tick 数
func NewRunner(screen tcell.Screen, cfg *config.GameConfig, settings *game.SettingsManager, sink audio.Sink, tps int) (*Runner, error) {
	if tps <= 0 {
		return nil, fmt.Errorf("invalid tps %d", tps)
	}
	r := &Runner{
		screen:          screen,
		config:          cfg,
		settingsManager: settings,
		audioManager:    audio.NewAudioManager(sink, settings),
		tickInterval:    time.Second / time.Duration(tps),
		pointer:         utils.NewPointerTracker(),
	}
	if err := r.restart(); err != nil {
		return nil, err
	}
	if screen != nil {
		r.resize(screen.Size())
	}
	return r, nil
}

// Simulation 返回当前对局
func (r *Runner) Simulation() *simulation.Simulation {
	return r.sim
}

// Run 处理输入并按 tick 推进，直到用户退出或 ctx 结束
func (r *Runner) Run(ctx context.Context) error {
	r.screen.EnableMouse()
	r.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	r.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				r.resize(r.screen.Size())
				r.screen.Sync()
				continue
			}
			if !r.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			r.advance()
			r.draw()
		}
	}
}

// handleEvent 处理键盘和鼠标事件，返回 false 表示退出
func (r *Runner) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return r.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		r.handleMouse(col, row, ev.Buttons()&tcell.Button1 != 0)
	}
	return true
}

func (r *Runner) handleRune(ch rune) bool {
	switch ch {
	case 'q':
		return false
	case 'r':
		r.settingsManager.ToggleRanges()
	case 'h':
		r.settingsManager.ToggleHUD()
	case 'm':
		r.settingsManager.ToggleSound()
	case ' ':
		r.settingsManager.CycleSpeed()
	case 'p':
		r.paused = !r.paused
	case 'n':
		if r.sim.IsDefeated() {
			if err := r.restart(); err != nil {
				log.Error().Err(err).Str("system", "TUI").Msg("failed to restart")
			}
		}
	}
	return true
}

// handleMouse 鼠标事件可能在两个 tick 之间成对到达，松开时先记下点击
func (r *Runner) handleMouse(col, row int, down bool) {
	x, y := r.grid.ToField(col, row)
	p := r.pointer.Sample(down, x, y, row < r.grid.Rows)
	r.last = p
	if !p.Up {
		return
	}

	if r.sim.IsDefeated() {
		if err := r.restart(); err != nil {
			log.Error().Err(err).Str("system", "TUI").Msg("failed to restart")
		}
		return
	}
	r.click = &p
}

// advance 推进一帧，按游戏速度执行若干 tick
func (r *Runner) advance() []simulation.TickReport {
	if r.paused || r.sim.IsDefeated() {
		return nil
	}

	ticks := r.settingsManager.Settings().TicksPerFrame
	reports := make([]simulation.TickReport, 0, ticks)
	for i := 0; i < ticks; i++ {
		r.clockMs += float64(r.tickInterval) / float64(time.Millisecond)
		in := simulation.Input{
			Pointer: simulation.Pointer{X: r.last.X, Y: r.last.Y, Down: r.last.Down},
			NowMs:   r.clockMs,
		}
		if i == 0 && r.click != nil {
			in.Pointer = *r.click
			r.click = nil
		}

		report := r.sim.Tick(in)
		reports = append(reports, report)
		r.audioManager.OnTick(report)
		if report.Defeated {
			break
		}
	}
	return reports
}

func (r *Runner) restart() error {
	sim, err := simulation.New(r.config)
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}
	r.sim = sim
	r.pointer.Reset()
	r.click = nil
	r.clockMs = 0
	r.audioManager.Reset()
	return nil
}

func (r *Runner) resize(cols, rows int) {
	r.grid = FieldGrid(r.config.Field, cols, rows)
}

func (r *Runner) draw() {
	r.screen.Clear()
	Render(r.screen, Frame{
		Sim:      r.sim,
		Settings: *r.settingsManager.Settings(),
		Paused:   r.paused,
	})
	r.screen.Show()
}
