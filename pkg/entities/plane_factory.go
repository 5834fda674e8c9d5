package entities

import (
	"fmt"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/types"
)

// NewPlaneEntity 创建纸飞机实体
// 飞机以满血、向右飞行的状态出生，速度由类型决定且之后不再改变
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（飞机属性和尺寸）
//   - kind: 飞机类型
//   - x, y: 出生位置（左上角）
//
// 返回:
//   - ecs.EntityID: 创建的飞机实体ID，如果失败返回 0
//   - error: 如果飞机类型未配置返回错误信息
func NewPlaneEntity(em *ecs.EntityManager, cfg *config.GameConfig, kind types.PlaneKind, x, y float64) (ecs.EntityID, error) {
	stats, ok := cfg.PlaneStats(kind)
	if !ok {
		return 0, fmt.Errorf("plane kind %s is not configured", kind)
	}

	entityID := em.CreateEntity()

	size := cfg.Planes.Size
	ecs.AddComponent(em, entityID, &components.PositionComponent{
		Rect: geom.NewRect(x, y, size, size),
	})

	dx, dy, rotation := geom.Velocity(types.DirectionRight, stats.Speed)
	ecs.AddComponent(em, entityID, &components.VelocityComponent{
		DX:       dx,
		DY:       dy,
		Speed:    stats.Speed,
		Rotation: rotation,
	})

	ecs.AddComponent(em, entityID, &components.HealthComponent{
		CurrentHealth: stats.HP,
		MaxHealth:     stats.HP,
	})

	ecs.AddComponent(em, entityID, &components.PlaneComponent{
		Kind:           kind,
		DamageOnEscape: stats.DamageOnEscape,
		Bounty:         stats.Bounty,
		SpriteKey:      stats.Sprite,
	})

	return entityID, nil
}
