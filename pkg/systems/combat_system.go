package systems

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/types"
)

// CombatSystem 防御塔索敌与伤害结算
//
// 索敌没有优先级：按飞机出生顺序扫描，第一架满足射程和冷却条件的飞机被击中。
// 冷却是按塔计算的，所以每个冷却窗口内一座塔最多造成一次伤害。
type CombatSystem struct {
	entityManager *ecs.EntityManager
}

// NewCombatSystem 创建战斗系统
func NewCombatSystem(em *ecs.EntityManager) *CombatSystem {
	return &CombatSystem{entityManager: em}
}

// Update 按放置顺序结算所有未删除的防御塔
//
// 参数:
//   - nowMs: 调用方提供的单调毫秒时钟
//
// 返回:
//   - int: 本次开火次数
func (s *CombatSystem) Update(nowMs float64) int {
	towers := ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.entityManager)
	planes := s.targets()

	shots := 0
	for _, id := range towers {
		if s.resolve(id, planes, nowMs) {
			shots++
		}
	}
	return shots
}

// Resolve 结算单座防御塔，返回是否开火
func (s *CombatSystem) Resolve(towerID ecs.EntityID, nowMs float64) bool {
	return s.resolve(towerID, s.targets(), nowMs)
}

func (s *CombatSystem) targets() []ecs.EntityID {
	return ecs.GetEntitiesWith3[*components.PlaneComponent, *components.PositionComponent, *components.HealthComponent](s.entityManager)
}

func (s *CombatSystem) resolve(towerID ecs.EntityID, planes []ecs.EntityID, nowMs float64) bool {
	tower, ok := ecs.GetComponent[*components.TowerComponent](s.entityManager, towerID)
	if !ok || tower.Status == types.TowerDeleted {
		return false
	}
	towerPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, towerID)
	if !ok {
		return false
	}

	for _, planeID := range planes {
		planePos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, planeID)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, planeID)

		distance := geom.CenterDistance(towerPos.Rect, planePos.Rect)
		if distance >= tower.Range || nowMs-tower.LastFiredAt <= tower.CooldownMs {
			continue
		}

		tower.LastFiredAt = nowMs
		if distance > 0 {
			tower.Rotation = aimRotation(towerPos.Rect, planePos.Rect, distance)
		}
		health.CurrentHealth = max(health.CurrentHealth-tower.Damage, 0)

		log.Debug().
			Str("system", "CombatSystem").
			Uint64("tower", uint64(towerID)).
			Uint64("plane", uint64(planeID)).
			Int("damage", tower.Damage).
			Int("hp", health.CurrentHealth).
			Msg("tower fired")

		// 冷却已重置，同一窗口内其他飞机不会再被击中
		return true
	}
	return false
}

// aimRotation 炮塔朝向目标的角度（弧度）
// 目标在塔下方时沿水平轴镜像
func aimRotation(tower, plane geom.Rect, distance float64) float64 {
	dx := tower.CenterX() - plane.CenterX()
	angle := math.Acos(dx / distance)
	if plane.CenterY() > tower.CenterY() {
		return math.Pi - (angle + 1.5*math.Pi)
	}
	return angle + 1.5*math.Pi
}
