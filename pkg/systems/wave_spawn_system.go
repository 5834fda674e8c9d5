package systems

import (
	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/entities"
)

// WaveSpawnSystem 波次调度
//
// 每个 tick 计数一次，达到当前波次的 AfterTicks 后生成整批飞机并进入下一波。
// 波次严格按顺序触发，不跳过也不重复；波次表耗尽后只计数不生成。
type WaveSpawnSystem struct {
	entityManager *ecs.EntityManager
	config        *config.GameConfig
}

// NewWaveSpawnSystem 创建波次系统
func NewWaveSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig) *WaveSpawnSystem {
	return &WaveSpawnSystem{
		entityManager: em,
		config:        cfg,
	}
}

// Update 推进调度器一个 tick
//
// 返回:
//   - int: 本 tick 生成的飞机数量
func (s *WaveSpawnSystem) Update() int {
	scheduler, ok := s.scheduler()
	if !ok {
		return 0
	}

	scheduler.TicksSinceRoundStart++

	wave, ok := s.config.Wave(scheduler.Round)
	if !ok || scheduler.TicksSinceRoundStart < wave.AfterTicks {
		return 0
	}

	scheduler.TicksSinceRoundStart = 0
	spawned := s.spawnBatch(wave)
	scheduler.LastSpawned = spawned

	log.Debug().
		Str("system", "WaveSpawnSystem").
		Int("round", scheduler.Round).
		Int("planes", spawned).
		Msg("wave started")

	scheduler.Round++
	return spawned
}

// scheduler 返回全局唯一的调度器组件
func (s *WaveSpawnSystem) scheduler() (*components.WaveSchedulerComponent, bool) {
	ids := ecs.GetEntitiesWith1[*components.WaveSchedulerComponent](s.entityManager)
	if len(ids) == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.WaveSchedulerComponent](s.entityManager, ids[0])
}

// spawnBatch 生成一整批飞机
// 序号 i 在各组之间连续，第 i 架飞机位于 x = -size × i × spacingFactor
func (s *WaveSpawnSystem) spawnBatch(wave config.Wave) int {
	size := s.config.Planes.Size
	spacing := s.config.Planes.SpacingFactor
	entryY := s.config.FlightPath().EntryY()

	index := 0
	for _, group := range wave.Groups {
		for n := 0; n < group.Count; n++ {
			x := -size * float64(index) * spacing
			if _, err := entities.NewPlaneEntity(s.entityManager, s.config, group.Kind, x, entryY); err != nil {
				// 配置加载时已校验，这里只可能是编程错误
				log.Error().Err(err).Str("system", "WaveSpawnSystem").Msg("failed to spawn plane")
				continue
			}
			index++
		}
	}
	return index
}
