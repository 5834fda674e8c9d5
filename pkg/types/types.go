// Package types 定义共享的基础枚举类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// Direction 路径拐点的朝向
type Direction int

const (
	// DirectionRight 向右（默认朝向，飞机从左侧入场）
	DirectionRight Direction = iota
	// DirectionDown 向下
	DirectionDown
	// DirectionLeft 向左
	DirectionLeft
	// DirectionUp 向上
	DirectionUp
)

// String 返回朝向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "Up"
	case DirectionDown:
		return "Down"
	case DirectionLeft:
		return "Left"
	default:
		return "Right"
	}
}

// ParseDirection 解析配置中的朝向字符串（不区分大小写）
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirectionUp, true
	case "down":
		return DirectionDown, true
	case "left":
		return DirectionLeft, true
	case "right":
		return DirectionRight, true
	}
	return DirectionRight, false
}

// PlaneKind 定义纸飞机的类型
type PlaneKind int

const (
	// PlaneUnknown 未知类型
	PlaneUnknown PlaneKind = iota
	// PlaneBasic 普通纸飞机
	PlaneBasic
	// PlaneBullet 子弹型，速度快血量低
	PlaneBullet
	// PlaneGlider 滑翔机
	PlaneGlider
	// PlaneBlimp 飞艇，速度慢血量高
	PlaneBlimp
)

// String 返回飞机类型的字符串表示
func (p PlaneKind) String() string {
	switch p {
	case PlaneBasic:
		return "Basic"
	case PlaneBullet:
		return "Bullet"
	case PlaneGlider:
		return "Glider"
	case PlaneBlimp:
		return "Blimp"
	default:
		return "Unknown"
	}
}

// ParsePlaneKind 解析配置中的飞机类型（不区分大小写）
func ParsePlaneKind(s string) (PlaneKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return PlaneBasic, true
	case "bullet":
		return PlaneBullet, true
	case "glider":
		return PlaneGlider, true
	case "blimp":
		return PlaneBlimp, true
	}
	return PlaneUnknown, false
}

// TowerFamily 防御塔家族，每个家族有独立的升级阶梯
type TowerFamily int

const (
	// FamilyUnknown 未知家族
	FamilyUnknown TowerFamily = iota
	// FamilyWaterGun 水枪
	FamilyWaterGun
	// FamilyAcidTower 酸液塔
	FamilyAcidTower
	// FamilySodaMaker 汽水机
	FamilySodaMaker
)

// String 返回家族的字符串表示
func (f TowerFamily) String() string {
	switch f {
	case FamilyWaterGun:
		return "WaterGun"
	case FamilyAcidTower:
		return "AcidTower"
	case FamilySodaMaker:
		return "SodaMaker"
	default:
		return "Unknown"
	}
}

// ParseTowerFamily 解析配置中的家族名（不区分大小写）
func ParseTowerFamily(s string) (TowerFamily, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "watergun":
		return FamilyWaterGun, true
	case "acidtower":
		return FamilyAcidTower, true
	case "sodamaker":
		return FamilySodaMaker, true
	}
	return FamilyUnknown, false
}

// Tier 升级阶梯中的位置，0 为基础形态
type Tier int

const (
	// TierBasic 基础形态
	TierBasic Tier = iota
	// Tier2 第一次升级后
	Tier2
	// Tier3 第二次升级后
	Tier3
)

// TowerStatus 防御塔的 UI 状态
type TowerStatus int

const (
	// TowerNormal 普通状态
	TowerNormal TowerStatus = iota
	// TowerSelected 被玩家选中，显示升级/删除入口
	TowerSelected
	// TowerDeleted 已删除，等待生命周期系统移除
	TowerDeleted
)

// String 返回状态的字符串表示
func (s TowerStatus) String() string {
	switch s {
	case TowerSelected:
		return "Selected"
	case TowerDeleted:
		return "Deleted"
	default:
		return "Normal"
	}
}

// ButtonKind 按钮用途
type ButtonKind int

const (
	// ButtonOther 无动作按钮
	ButtonOther ButtonKind = iota
	// ButtonWaterGun 放置水枪
	ButtonWaterGun
	// ButtonAcidTower 放置酸液塔
	ButtonAcidTower
	// ButtonSodaMaker 放置汽水机
	ButtonSodaMaker
	// ButtonUpgrade 升级选中的塔
	ButtonUpgrade
	// ButtonDelete 删除选中的塔
	ButtonDelete
)

// String 返回按钮类型的字符串表示
func (b ButtonKind) String() string {
	switch b {
	case ButtonWaterGun:
		return "WaterGun"
	case ButtonAcidTower:
		return "AcidTower"
	case ButtonSodaMaker:
		return "SodaMaker"
	case ButtonUpgrade:
		return "Upgrade"
	case ButtonDelete:
		return "Delete"
	default:
		return "Other"
	}
}

// Family 返回放置类按钮对应的防御塔家族
// 非放置类按钮返回 FamilyUnknown, false
func (b ButtonKind) Family() (TowerFamily, bool) {
	switch b {
	case ButtonWaterGun:
		return FamilyWaterGun, true
	case ButtonAcidTower:
		return FamilyAcidTower, true
	case ButtonSodaMaker:
		return FamilySodaMaker, true
	}
	return FamilyUnknown, false
}

// ButtonForFamily 返回放置某家族防御塔的按钮类型
func ButtonForFamily(f TowerFamily) ButtonKind {
	switch f {
	case FamilyWaterGun:
		return ButtonWaterGun
	case FamilyAcidTower:
		return ButtonAcidTower
	case FamilySodaMaker:
		return ButtonSodaMaker
	}
	return ButtonOther
}

// ParseButtonKind 解析工具栏配置中的按钮类型（不区分大小写）
func ParseButtonKind(s string) (ButtonKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "watergun":
		return ButtonWaterGun, true
	case "acidtower":
		return ButtonAcidTower, true
	case "sodamaker":
		return ButtonSodaMaker, true
	case "upgrade":
		return ButtonUpgrade, true
	case "delete":
		return ButtonDelete, true
	case "other", "":
		return ButtonOther, true
	}
	return ButtonOther, false
}
