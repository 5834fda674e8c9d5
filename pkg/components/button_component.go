package components

import (
	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/types"
)

// ButtonComponent 工具栏按钮组件
// 纯输入/渲染描述，生命周期跟随工具栏，与游戏实体无关
type ButtonComponent struct {
	// Rect 按钮区域
	Rect geom.Rect
	// Kind 按钮用途
	Kind types.ButtonKind
	// Label 按钮文字
	Label string
	// SpriteKey 渲染层使用的精灵名
	SpriteKey string
	// Cost 放置对应防御塔的价格（非放置类按钮为 0）
	Cost int

	// Selected 是否被选中（同一时刻最多一个）
	Selected bool
	// Pressed 指针按下并停留在按钮上（仅用于渲染）
	Pressed bool
}
