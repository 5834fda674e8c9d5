package systems

import (
	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/types"
)

// LifecycleResult 一次回收的统计
type LifecycleResult struct {
	Killed        int // 被击落的飞机
	Escaped       int // 逃逸的飞机
	CashEarned    int // 击落奖励总额
	HPLost        int // 玩家实际损失的生命值
	TowersRemoved int // 移除的已删除防御塔
}

// LifecycleSystem 回收飞机和已删除的防御塔，并结算经济
type LifecycleSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	fieldWidth    float64
}

// NewLifecycleSystem 创建生命周期系统
func NewLifecycleSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig) *LifecycleSystem {
	return &LifecycleSystem{
		entityManager: em,
		gameState:     gs,
		fieldWidth:    cfg.Field.Width,
	}
}

// Update 回收本 tick 应移除的实体
//
// 飞机先检查生命值再检查位置，两者互斥：
//   - HP <= 0：移除并获得奖励
//   - 否则 X >= 场地宽度：移除并扣除玩家生命值（不低于 0）
//
// Deleted 状态的防御塔只移除，不退款（退款在标记删除时已完成）。
// 实体在本方法结束前统一清理，每个实体只会被结算一次。
func (s *LifecycleSystem) Update() LifecycleResult {
	var result LifecycleResult

	planes := ecs.GetEntitiesWith3[*components.PlaneComponent, *components.PositionComponent, *components.HealthComponent](s.entityManager)
	for _, id := range planes {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		plane, _ := ecs.GetComponent[*components.PlaneComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)

		switch {
		case health.IsDead():
			s.entityManager.DestroyEntity(id)
			s.gameState.AddCash(plane.Bounty)
			result.Killed++
			result.CashEarned += plane.Bounty

			log.Debug().
				Str("system", "LifecycleSystem").
				Str("kind", plane.Kind.String()).
				Int("bounty", plane.Bounty).
				Int("cash", s.gameState.Cash()).
				Msg("plane shot down")

		case pos.Rect.X() >= s.fieldWidth:
			s.entityManager.DestroyEntity(id)
			before := s.gameState.PlayerHP()
			s.gameState.DamagePlayer(plane.DamageOnEscape)
			result.Escaped++
			result.HPLost += before - s.gameState.PlayerHP()

			log.Debug().
				Str("system", "LifecycleSystem").
				Str("kind", plane.Kind.String()).
				Int("damage", plane.DamageOnEscape).
				Int("hp", s.gameState.PlayerHP()).
				Msg("plane escaped")
		}
	}

	towers := ecs.GetEntitiesWith1[*components.TowerComponent](s.entityManager)
	for _, id := range towers {
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
		if tower.Status == types.TowerDeleted && !s.entityManager.IsMarkedForDestroy(id) {
			s.entityManager.DestroyEntity(id)
			result.TowersRemoved++
		}
	}

	s.entityManager.RemoveMarkedEntities()
	return result
}
