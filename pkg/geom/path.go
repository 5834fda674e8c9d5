package geom

import "github.com/decker502/waterguns/pkg/types"

// TurnTolerance 判定飞机"碰到"拐点的容差（两个轴都要满足）
const TurnTolerance = 10.0

// Turn 飞行路径上的拐点
type Turn struct {
	X         float64
	Y         float64
	Direction types.Direction
}

// Touching 判断矩形左上角是否落在拐点的容差范围内（开区间）
func (t Turn) Touching(r Rect) bool {
	return r.X() > t.X-TurnTolerance &&
		r.X() < t.X+TurnTolerance &&
		r.Y() > t.Y-TurnTolerance &&
		r.Y() < t.Y+TurnTolerance
}

// Path 有序拐点序列，定义飞机的飞行路线
type Path struct {
	entryY float64
	turns  []Turn
}

// NewPath 创建路径
// entryY 是飞机入场时的 Y 坐标
func NewPath(entryY float64, turns ...Turn) Path {
	copied := make([]Turn, len(turns))
	copy(copied, turns)
	return Path{entryY: entryY, turns: copied}
}

// EntryY 入场 Y 坐标
func (p Path) EntryY() float64 { return p.entryY }

// Turns 返回拐点的只读副本
func (p Path) Turns() []Turn {
	copied := make([]Turn, len(p.turns))
	copy(copied, p.turns)
	return copied
}

// Len 拐点数量
func (p Path) Len() int { return len(p.turns) }

// Polyline 把路径展开为折线，用于绘制
// 从入场点开始依次连接每个拐点，最后沿最后的朝向延伸到场地边缘
func (p Path) Polyline(width, height float64) [][2]float64 {
	points := [][2]float64{{0, p.entryY}}
	dir := types.DirectionRight
	for _, turn := range p.turns {
		points = append(points, [2]float64{turn.X, turn.Y})
		dir = turn.Direction
	}

	last := points[len(points)-1]
	switch dir {
	case types.DirectionRight:
		points = append(points, [2]float64{width, last[1]})
	case types.DirectionLeft:
		points = append(points, [2]float64{0, last[1]})
	case types.DirectionDown:
		points = append(points, [2]float64{last[0], height})
	case types.DirectionUp:
		points = append(points, [2]float64{last[0], 0})
	}
	return points
}

// Heading 按声明顺序扫描全部拐点，返回最后一个匹配拐点的朝向
// 没有任何拐点匹配时返回 false，调用方保持原朝向
func (p Path) Heading(r Rect) (types.Direction, bool) {
	dir, found := types.DirectionRight, false
	for _, turn := range p.turns {
		if turn.Touching(r) {
			dir = turn.Direction
			found = true
		}
	}
	return dir, found
}

// Velocity 将朝向转换为速度分量和旋转角（角度制）
//
//	Up:    dx=0,      dy=-speed, 270°
//	Down:  dx=0,      dy=+speed, 90°
//	Left:  dx=-speed, dy=0,      180°
//	Right: dx=+speed, dy=0,      0°
func Velocity(dir types.Direction, speed float64) (dx, dy, rotation float64) {
	switch dir {
	case types.DirectionUp:
		return 0, -speed, 270
	case types.DirectionDown:
		return 0, speed, 90
	case types.DirectionLeft:
		return -speed, 0, 180
	default:
		return speed, 0, 0
	}
}
