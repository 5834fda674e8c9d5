package entities

import (
	"fmt"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/types"
)

// NewTowerEntity 创建基础形态的防御塔实体
// 防御塔以 (centerX, centerY) 为中心放置
//
// 注意：此函数不检查金钱，扣款由调用方（PlacementSystem）负责
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（家族属性和尺寸）
//   - family: 防御塔家族
//   - centerX, centerY: 中心点坐标
//
// 返回:
//   - ecs.EntityID: 创建的防御塔实体ID，如果失败返回 0
//   - error: 如果家族未配置返回错误信息
func NewTowerEntity(em *ecs.EntityManager, cfg *config.GameConfig, family types.TowerFamily, centerX, centerY float64) (ecs.EntityID, error) {
	stats, ok := cfg.TowerStats(family)
	if !ok {
		return 0, fmt.Errorf("tower family %s is not configured", family)
	}

	entityID := em.CreateEntity()

	size := cfg.Towers.Size
	ecs.AddComponent(em, entityID, &components.PositionComponent{
		Rect: geom.NewRectCentered(centerX, centerY, size, size),
	})

	ecs.AddComponent(em, entityID, &components.TowerComponent{
		Family:      family,
		Tier:        types.TierBasic,
		Range:       stats.Range,
		Damage:      stats.Damage,
		CooldownMs:  stats.CooldownMs,
		LastFiredAt: components.NeverFired,
		Status:      types.TowerNormal,
		UpgradeCost: stats.UpgradeCost,
		SpriteKey:   stats.Sprite,
	})

	return entityID, nil
}
