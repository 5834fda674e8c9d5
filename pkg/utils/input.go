// Package utils 提供前端共用的输入与坐标工具
package utils

import (
	"github.com/decker502/waterguns/pkg/simulation"
)

// PointerTracker 把逐帧的按下状态转换为模拟需要的指针快照
//
// 触摸松开的那一帧已经拿不到触摸位置，所以松开时使用最后一次按下期间记录的位置。
type PointerTracker struct {
	wasDown bool
	lastX   float64
	lastY   float64
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Sample 根据本帧的原始输入生成快照
//
// 参数:
//   - down: 指针本帧是否处于按下状态
//   - x, y: 指针位置（逻辑屏幕坐标）；hasPos 为 false 时表示位置不可用
//
// 返回:
//   - simulation.Pointer: Up 只在按下→松开的那一帧为 true
func (pt *PointerTracker) Sample(down bool, x, y float64, hasPos bool) simulation.Pointer {
	if hasPos {
		pt.lastX, pt.lastY = x, y
	}

	pointer := simulation.Pointer{
		X:    pt.lastX,
		Y:    pt.lastY,
		Down: down,
		Up:   pt.wasDown && !down,
	}
	pt.wasDown = down
	return pointer
}

// Reset 丢弃按下状态（例如切换场景后）
func (pt *PointerTracker) Reset() {
	pt.wasDown = false
}
