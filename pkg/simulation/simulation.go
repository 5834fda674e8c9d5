// Package simulation 把各个系统按固定顺序串成一个可逐 tick 推进的对局
//
// Simulation 独占实体管理器和经济状态，不接触任何绘图表面：
// 驱动方（ebiten 场景、终端前端、无界面 simulate 命令）每个 tick 传入一次指针快照和毫秒时钟，
// 再通过只读视图读取结果。Simulation 不是并发安全的，只能在一个 goroutine 中调用。
package simulation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/metric"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/entities"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/systems"
	"github.com/decker502/waterguns/pkg/types"
)

// Pointer 一个 tick 的指针快照
type Pointer = systems.PointerState

// Input 驱动方每个 tick 提供的输入
type Input struct {
	Pointer Pointer
	// NowMs 单调递增的毫秒时钟
	NowMs float64
}

// TickReport 一个 tick 内发生的事件统计
type TickReport struct {
	Tick       int // 已推进的 tick 数（从 1 开始）
	Spawned    int
	Killed     int
	Escaped    int
	Shots      int
	CashEarned int
	HPLost     int
	Placed     int
	Upgraded   int
	Deleted    int
	Defeated   bool
}

// Option 配置 Simulation 的可选项
type Option func(*options)

type options struct {
	meter        metric.Meter
	startingCash *int
}

// WithMeter 使用指定的 OTel meter 记录计数器（默认为全局 meter）
func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		o.meter = m
	}
}

// WithStartingCash 覆盖配置中的初始金钱
func WithStartingCash(cash int) Option {
	return func(o *options) {
		o.startingCash = &cash
	}
}

// Simulation 一局游戏
type Simulation struct {
	config        *config.GameConfig
	entityManager *ecs.EntityManager
	gameState     *game.GameState

	waves     *systems.WaveSpawnSystem
	placement *systems.PlacementSystem
	combat    *systems.CombatSystem
	movement  *systems.PathMovementSystem
	lifecycle *systems.LifecycleSystem

	scheduler ecs.EntityID
	counters  *counters

	tick  int
	nowMs float64
}

// New 根据配置创建一局新游戏
//
// 参数:
//   - cfg: 已校验的游戏配置
//   - opts: 可选项
//
// 返回:
//   - *Simulation: 包含工具栏按钮和波次调度器的新对局
//   - error: 创建计数器失败
func New(cfg *config.GameConfig, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config is required")
	}

	o := options{meter: defaultMeter()}
	for _, opt := range opts {
		opt(&o)
	}

	c, err := newCounters(o.meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create counters: %w", err)
	}

	cash := cfg.Economy.StartingCash
	if o.startingCash != nil {
		cash = *o.startingCash
	}

	em := ecs.NewEntityManager()
	gs := game.NewGameState(cash, cfg.Economy.StartingHP)

	s := &Simulation{
		config:        cfg,
		entityManager: em,
		gameState:     gs,
		waves:         systems.NewWaveSpawnSystem(em, cfg),
		placement:     systems.NewPlacementSystem(em, gs, cfg),
		combat:        systems.NewCombatSystem(em),
		movement:      systems.NewPathMovementSystem(em, cfg.FlightPath()),
		lifecycle:     systems.NewLifecycleSystem(em, gs, cfg),
		counters:      c,
	}

	entities.NewToolbar(em, cfg)
	s.scheduler = entities.NewWaveSchedulerEntity(em)

	log.Info().
		Int("cash", gs.Cash()).
		Int("hp", gs.PlayerHP()).
		Int("waves", cfg.WaveCount()).
		Msg("simulation created")
	return s, nil
}

// Tick 推进一个 tick
//
// 顺序：波次调度 → 放置/界面 → 战斗 → 移动 → 回收。
// 玩家失败后 Tick 不再改变任何状态，只返回 Defeated。
func (s *Simulation) Tick(in Input) TickReport {
	if s.gameState.IsDefeated() {
		return TickReport{Tick: s.tick, Defeated: true}
	}

	s.tick++
	s.nowMs = in.NowMs
	report := TickReport{Tick: s.tick}

	report.Spawned = s.waves.Update()

	placement := s.placement.Update(in.Pointer)
	if placement.Placed != 0 {
		report.Placed++
	}
	if placement.Upgraded {
		report.Upgraded++
	}
	if placement.Deleted {
		report.Deleted++
	}

	report.Shots = s.combat.Update(in.NowMs)
	s.movement.Update()

	life := s.lifecycle.Update()
	report.Killed = life.Killed
	report.Escaped = life.Escaped
	report.CashEarned = life.CashEarned
	report.HPLost = life.HPLost

	report.Defeated = s.gameState.IsDefeated()
	s.counters.record(context.Background(), report)

	if report.Defeated {
		log.Info().
			Int("tick", s.tick).
			Int("round", s.Round()).
			Msg("player defeated")
	}
	return report
}

// PlaceTower 在 (x, y) 直接放置一座防御塔，绕过工具栏但同样检查金钱
func (s *Simulation) PlaceTower(family types.TowerFamily, x, y float64) (ecs.EntityID, bool) {
	id, ok := s.placement.PlaceTower(family, x, y)
	if ok {
		s.counters.record(context.Background(), TickReport{Placed: 1})
	}
	return id, ok
}

// SelectTower 将防御塔置为选中状态
// 已选中时保持不变；已删除或不存在的塔返回 false
func (s *Simulation) SelectTower(id ecs.EntityID) bool {
	tower, ok := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
	if !ok || tower.Status == types.TowerDeleted {
		return false
	}
	if tower.Status == types.TowerSelected {
		return true
	}
	return s.placement.ToggleTower(id)
}

// UpgradeTower 升级一座选中的防御塔（规则同升级入口）
func (s *Simulation) UpgradeTower(id ecs.EntityID) bool {
	ok := systems.UpgradeTower(s.entityManager, s.gameState, s.config, id)
	if ok {
		s.counters.record(context.Background(), TickReport{Upgraded: 1})
	}
	return ok
}

// Cash 当前金钱
func (s *Simulation) Cash() int {
	return s.gameState.Cash()
}

// PlayerHP 玩家剩余生命值
func (s *Simulation) PlayerHP() int {
	return s.gameState.PlayerHP()
}

// MaxPlayerHP 玩家初始生命值
func (s *Simulation) MaxPlayerHP() int {
	return s.gameState.MaxPlayerHP()
}

// IsDefeated 玩家是否已失败
func (s *Simulation) IsDefeated() bool {
	return s.gameState.IsDefeated()
}

// Round 下一个要触发的波次（0-based），等于已触发的波次数
func (s *Simulation) Round() int {
	scheduler, ok := ecs.GetComponent[*components.WaveSchedulerComponent](s.entityManager, s.scheduler)
	if !ok {
		return 0
	}
	return scheduler.Round
}

// WaveCount 波次表中的波次总数
func (s *Simulation) WaveCount() int {
	return s.config.WaveCount()
}

// WavesCleared 所有波次都已触发且场上没有飞机
func (s *Simulation) WavesCleared() bool {
	return s.Round() >= s.config.WaveCount() &&
		len(ecs.GetEntitiesWith1[*components.PlaneComponent](s.entityManager)) == 0
}

// TickCount 已推进的 tick 数
func (s *Simulation) TickCount() int {
	return s.tick
}

// NowMs 最近一次 Tick 的时钟
func (s *Simulation) NowMs() float64 {
	return s.nowMs
}

// Path 飞行路径
func (s *Simulation) Path() geom.Path {
	return s.config.FlightPath()
}

// Field 场地尺寸
func (s *Simulation) Field() config.FieldConfig {
	return s.config.Field
}

// Config 对局使用的游戏配置（只读）
func (s *Simulation) Config() *config.GameConfig {
	return s.config
}
