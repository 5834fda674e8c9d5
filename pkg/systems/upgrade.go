package systems

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/types"
)

// ApplyUpgradeStep 按升级表中的一步修改防御塔数值
// 伤害先乘后加，结果四舍五入为整数
func ApplyUpgradeStep(tower *components.TowerComponent, step config.UpgradeStep) {
	tower.Range *= step.RangeMul
	tower.Damage = int(math.Round(float64(tower.Damage)*step.DamageMul)) + step.DamageAdd
	tower.CooldownMs *= step.CooldownMul
	tower.Tier++
}

// UpgradeTower 升级选中的防御塔
//
// 只有处于 Selected 状态、未到顶阶且金钱足够时才会升级；
// 成功后扣除当前升级价格，升级价格再增加固定步长。
// 已到顶阶时什么也不做，也不扣钱。
//
// 返回:
//   - bool: 是否升级成功
func UpgradeTower(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, towerID ecs.EntityID) bool {
	tower, ok := ecs.GetComponent[*components.TowerComponent](em, towerID)
	if !ok || tower.Status != types.TowerSelected {
		return false
	}

	step, ok := cfg.UpgradeStep(tower.Family, tower.Tier)
	if !ok {
		return false
	}

	if !gs.SpendCash(tower.UpgradeCost) {
		return false
	}

	ApplyUpgradeStep(tower, step)
	tower.UpgradeCost += cfg.Economy.UpgradeCostStep

	log.Debug().
		Str("system", "PlacementSystem").
		Uint64("tower", uint64(towerID)).
		Str("form", cfg.TierName(tower.Family, tower.Tier)).
		Int("damage", tower.Damage).
		Float64("range", tower.Range).
		Float64("cooldownMs", tower.CooldownMs).
		Msg("tower upgraded")
	return true
}

// DeleteTower 将选中的防御塔标记为删除并退还当前升级价格
// 实体由 LifecycleSystem 在本 tick 稍后移除
func DeleteTower(em *ecs.EntityManager, gs *game.GameState, towerID ecs.EntityID) bool {
	tower, ok := ecs.GetComponent[*components.TowerComponent](em, towerID)
	if !ok || tower.Status != types.TowerSelected {
		return false
	}

	tower.Status = types.TowerDeleted
	gs.AddCash(tower.UpgradeCost)

	log.Debug().
		Str("system", "PlacementSystem").
		Uint64("tower", uint64(towerID)).
		Int("refund", tower.UpgradeCost).
		Msg("tower deleted")
	return true
}
