// Package game 管理玩家经济状态与本地显示设置
package game

// GameState 玩家经济与生命值
//
// 每个 Simulation 持有自己的实例，不做全局单例，
// 这样测试和无界面模拟可以并行创建多局游戏。
type GameState struct {
	cash     int // 当前金钱，永远 >= 0
	playerHP int // 玩家生命值，下限为 0
	maxHP    int // 初始生命值（用于 HUD 显示）
}

// NewGameState 创建经济状态
// 负的初始值按 0 处理
func NewGameState(startingCash, startingHP int) *GameState {
	return &GameState{
		cash:     max(startingCash, 0),
		playerHP: max(startingHP, 0),
		maxHP:    max(startingHP, 0),
	}
}

// Cash 返回当前金钱
func (gs *GameState) Cash() int {
	return gs.cash
}

// AddCash 增加金钱（击落奖励、删除退款）
// 负数会被忽略，扣款必须走 SpendCash
func (gs *GameState) AddCash(amount int) {
	if amount <= 0 {
		return
	}
	gs.cash += amount
}

// SpendCash 扣除金钱，如果金钱不足返回 false
// 只有当金钱充足时才会扣除，否则不产生任何副作用
func (gs *GameState) SpendCash(amount int) bool {
	if amount < 0 || gs.cash < amount {
		return false
	}
	gs.cash -= amount
	return true
}

// PlayerHP 返回玩家生命值
func (gs *GameState) PlayerHP() int {
	return gs.playerHP
}

// MaxPlayerHP 返回玩家初始生命值
func (gs *GameState) MaxPlayerHP() int {
	return gs.maxHP
}

// DamagePlayer 飞机逃逸时扣除玩家生命值，结果不低于 0
func (gs *GameState) DamagePlayer(amount int) {
	if amount <= 0 {
		return
	}
	gs.playerHP = max(gs.playerHP-amount, 0)
}

// IsDefeated 玩家生命值归零即失败
func (gs *GameState) IsDefeated() bool {
	return gs.playerHP == 0
}
