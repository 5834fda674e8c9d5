package components

import "github.com/decker502/waterguns/pkg/types"

// PlaneComponent 标识实体为纸飞机
// 包含被击落奖励和逃逸伤害等经济数据
type PlaneComponent struct {
	// Kind 飞机类型
	Kind types.PlaneKind
	// DamageOnEscape 飞出场地右边界时对玩家造成的伤害
	DamageOnEscape int
	// Bounty 被击落时玩家获得的金钱
	Bounty int
	// SpriteKey 渲染层使用的精灵名
	SpriteKey string
}

// HealthComponent 存储飞机的生命值
// 战斗中只减不增，减到 0 以下时按 0 处理
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// Percent 当前生命值百分比（0-100），用于血条
func (h *HealthComponent) Percent() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	return float64(h.CurrentHealth) / float64(h.MaxHealth) * 100
}

// IsDead 生命值是否已耗尽
func (h *HealthComponent) IsDead() bool {
	return h.CurrentHealth <= 0
}
