package systems

import (
	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/geom"
)

// PathMovementSystem 让飞机沿飞行路径移动
type PathMovementSystem struct {
	entityManager *ecs.EntityManager
	path          geom.Path
}

// NewPathMovementSystem 创建移动系统
func NewPathMovementSystem(em *ecs.EntityManager, path geom.Path) *PathMovementSystem {
	return &PathMovementSystem{
		entityManager: em,
		path:          path,
	}
}

// Update 按出生顺序推进所有飞机一个 tick
func (s *PathMovementSystem) Update() {
	planes := ecs.GetEntitiesWith3[*components.PlaneComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager)

	for _, id := range planes {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		Advance(pos, vel, s.path)
	}
}

// Advance 单架飞机前进一步
//
// 碰到拐点时采用最后一个匹配拐点的朝向和速度，然后再按速度移动。没有碰到拐点的飞机保持原朝向，直到飞出场地被回收。
func Advance(pos *components.PositionComponent, vel *components.VelocityComponent, path geom.Path) {
	if dir, ok := path.Heading(pos.Rect); ok {
		vel.DX, vel.DY, vel.Rotation = geom.Velocity(dir, vel.Speed)
	}
	pos.Rect.Translate(vel.DX, vel.DY)
}
