package components

import (
	"math"

	"github.com/decker502/waterguns/pkg/types"
)

// FiringFlashMs 开火后显示射击精灵的持续时间（毫秒）
const FiringFlashMs = 100.0

// NeverFired 尚未开火时 LastFiredAt 的取值
// 使新放置的塔在第一次有目标进入射程时即可开火
var NeverFired = math.Inf(-1)

// TowerComponent 标识实体为防御塔
//
// 升级阶梯由 Family × Tier 唯一确定，具体数值来自配置中的升级表。
// 位置存放在同一实体的 PositionComponent 中。
type TowerComponent struct {
	// Family 防御塔家族
	Family types.TowerFamily
	// Tier 当前在家族升级阶梯中的位置
	Tier types.Tier

	// Range 射程半径（中心点到中心点）
	Range float64
	// Damage 每次开火造成的伤害
	Damage int
	// CooldownMs 两次开火之间的最小间隔（毫秒，严格大于才能再次开火）
	CooldownMs float64
	// LastFiredAt 最近一次开火的时间戳（毫秒），初始为 NeverFired
	LastFiredAt float64

	// Rotation 炮塔朝向（弧度）
	Rotation float64
	// Status UI 状态
	Status types.TowerStatus

	// UpgradeCost 下一次升级的价格，删除时按此值退款
	UpgradeCost int

	// SpriteKey 基础精灵名，开火闪烁期间渲染 SpriteKey + "Shooting"
	SpriteKey string
}

// IsFiring 是否处于开火闪烁期
func (t *TowerComponent) IsFiring(nowMs float64) bool {
	return nowMs-t.LastFiredAt < FiringFlashMs
}
