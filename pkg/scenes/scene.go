// Package scenes 包含 ebiten 前端的场景与场景管理器
package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可以独立更新和绘制的画面（如对局画面）
type Scene interface {
	// Update 更新场景逻辑，deltaTime 为距离上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口，场景在程序退出时保存本地设置
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}

var _ Scene = (*BattleScene)(nil)
var _ Saveable = (*BattleScene)(nil)
