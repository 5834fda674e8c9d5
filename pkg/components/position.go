package components

import "github.com/decker502/waterguns/pkg/geom"

// PositionComponent 实体在场地上的包围盒
// 飞机和防御塔都使用左上角坐标 + 尺寸，中心点由 geom.Rect 实时计算
type PositionComponent struct {
	Rect geom.Rect
}

// VelocityComponent 飞机的速度与朝向
type VelocityComponent struct {
	// DX, DY 每 tick 的位移
	DX float64
	DY float64
	// Speed 出生时由飞机类型决定，之后不再变化
	Speed float64
	// Rotation 朝向角（角度制：0 右、90 下、180 左、270 上）
	Rotation float64
}
