package systems

import "github.com/decker502/waterguns/pkg/geom"

// Affordances 选中防御塔的升级/删除入口
// 两个正方形紧贴塔的上边，升级在中线左侧，删除在中线右侧；
// 上方会进入工具栏区域（y < minY）时改为紧贴塔的下边
func Affordances(tower geom.Rect, size, minY float64) (upgrade, remove geom.Rect) {
	top := tower.Y() - size
	if top < minY {
		top = tower.Y() + tower.H()
	}
	upgrade = geom.NewRect(tower.CenterX()-size, top, size, size)
	remove = geom.NewRect(tower.CenterX(), top, size, size)
	return upgrade, remove
}
