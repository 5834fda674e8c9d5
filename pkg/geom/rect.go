// Package geom 提供模拟核心使用的几何类型：矩形与飞行路径
package geom

import "math"

// Rect 轴对齐矩形
// 中心点不单独存储，每次读取时由位置和尺寸计算，保证位置变更后不会过期
type Rect struct {
	x, y, w, h float64
}

// NewRect 创建矩形，负的宽高按 0 处理
func NewRect(x, y, w, h float64) Rect {
	return Rect{x: x, y: y, w: math.Max(w, 0), h: math.Max(h, 0)}
}

// NewRectCentered 创建以 (cx, cy) 为中心的矩形
func NewRectCentered(cx, cy, w, h float64) Rect {
	return NewRect(cx-w/2, cy-h/2, w, h)
}

// X 左上角 X 坐标
func (r Rect) X() float64 { return r.x }

// Y 左上角 Y 坐标
func (r Rect) Y() float64 { return r.y }

// W 宽度
func (r Rect) W() float64 { return r.w }

// H 高度
func (r Rect) H() float64 { return r.h }

// CenterX 中心点 X 坐标
func (r Rect) CenterX() float64 { return r.x + r.w/2 }

// CenterY 中心点 Y 坐标
func (r Rect) CenterY() float64 { return r.y + r.h/2 }

// SetPos 移动左上角到 (x, y)
func (r *Rect) SetPos(x, y float64) {
	r.x = x
	r.y = y
}

// Translate 平移 (dx, dy)
func (r *Rect) Translate(dx, dy float64) {
	r.x += dx
	r.y += dy
}

// Contains 判断点是否在矩形内（左闭右开）
func (r Rect) Contains(px, py float64) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

// CenterDistance 两个矩形中心点的欧氏距离
func CenterDistance(a, b Rect) float64 {
	return math.Hypot(a.CenterX()-b.CenterX(), a.CenterY()-b.CenterY())
}
