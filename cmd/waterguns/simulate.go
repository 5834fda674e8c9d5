package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/simulation"
	"github.com/decker502/waterguns/pkg/types"
)

// towerSpec 命令行上的一座防御塔，格式 family:x:y
type towerSpec struct {
	Family types.TowerFamily
	X, Y   float64
}

// parseTowerSpec 解析 family:x:y，例如 waterGun:450:300
func parseTowerSpec(s string) (towerSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return towerSpec{}, fmt.Errorf("invalid tower %q: want family:x:y", s)
	}
	family, ok := types.ParseTowerFamily(parts[0])
	if !ok {
		return towerSpec{}, fmt.Errorf("invalid tower %q: unknown family %q", s, parts[0])
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return towerSpec{}, fmt.Errorf("invalid tower %q: bad x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return towerSpec{}, fmt.Errorf("invalid tower %q: bad y: %w", s, err)
	}
	return towerSpec{Family: family, X: x, Y: y}, nil
}

type simulateOptions struct {
	Ticks  int
	Towers []towerSpec
	Cash   int // 小于 0 时使用游戏数据中的初始金钱
	TickMs float64
}

// summary 一次无界面运行的结果
type summary struct {
	Ticks    int  `yaml:"ticks"`
	Round    int  `yaml:"round"`
	Waves    int  `yaml:"waves"`
	Spawned  int  `yaml:"spawned"`
	Killed   int  `yaml:"killed"`
	Escaped  int  `yaml:"escaped"`
	Shots    int  `yaml:"shots"`
	Cash     int  `yaml:"cash"`
	PlayerHP int  `yaml:"playerHP"`
	Towers   int  `yaml:"towers"`
	Defeated bool `yaml:"defeated"`
}

// simulate 放置防御塔后运行至多 Ticks 个 tick
// 玩家失败或全部波次清空时提前结束
func simulate(cfg *config.GameConfig, opts simulateOptions) (summary, error) {
	var simOpts []simulation.Option
	if opts.Cash >= 0 {
		simOpts = append(simOpts, simulation.WithStartingCash(opts.Cash))
	}
	sim, err := simulation.New(cfg, simOpts...)
	if err != nil {
		return summary{}, fmt.Errorf("failed to create simulation: %w", err)
	}

	for _, t := range opts.Towers {
		if _, ok := sim.PlaceTower(t.Family, t.X, t.Y); !ok {
			return summary{}, fmt.Errorf("failed to place %s at (%v, %v): not enough cash (%d)", t.Family, t.X, t.Y, sim.Cash())
		}
	}

	var s summary
	for i := 1; i <= opts.Ticks; i++ {
		r := sim.Tick(simulation.Input{NowMs: float64(i) * opts.TickMs})
		s.Spawned += r.Spawned
		s.Killed += r.Killed
		s.Escaped += r.Escaped
		s.Shots += r.Shots
		if r.Defeated || sim.WavesCleared() {
			break
		}
	}

	s.Ticks = sim.TickCount()
	s.Round = sim.Round()
	s.Waves = sim.WaveCount()
	s.Cash = sim.Cash()
	s.PlayerHP = sim.PlayerHP()
	s.Towers = len(sim.Towers())
	s.Defeated = sim.IsDefeated()

	log.Info().
		Str("system", "Simulate").
		Int("ticks", s.Ticks).
		Int("killed", s.Killed).
		Int("escaped", s.Escaped).
		Bool("defeated", s.Defeated).
		Msg("simulation finished")
	return s, nil
}
