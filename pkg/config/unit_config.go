package config

// 默认数值常量
// 本文件定义了场地、经济、飞机和防御塔的默认参数
// data/game.yaml 中的默认配置必须与这里保持一致（由测试保证）

// Field Configuration (场地配置)
const (
	// DefaultFieldWidth 场地宽度（像素）
	// 飞机左上角 X 坐标 >= 该值时视为逃逸
	DefaultFieldWidth = 1280.0

	// DefaultFieldHeight 场地高度（像素）
	DefaultFieldHeight = 720.0

	// DefaultToolbarHeight 顶部工具栏高度（像素）
	// 在工具栏区域内松开指针只会操作按钮，不会放置防御塔
	DefaultToolbarHeight = 100.0
)

// Economy Configuration (经济配置)
const (
	// DefaultStartingCash 初始金钱
	DefaultStartingCash = 50

	// DefaultStartingHP 玩家初始生命值
	DefaultStartingHP = 100

	// DefaultUpgradeCostStep 每次升级后升级价格的固定增量
	DefaultUpgradeCostStep = 10
)

// Plane Configuration (飞机配置)
const (
	// DefaultPlaneSize 飞机边长（像素）
	DefaultPlaneSize = 50.0

	// DefaultSpacingFactor 同一批次飞机之间的间距系数
	// 第 i 架飞机的出生 X = -PlaneSize × i × SpacingFactor
	DefaultSpacingFactor = 2.5

	// DefaultPathEntryY 飞机入场时左上角的 Y 坐标
	DefaultPathEntryY = 200.0
)

// Tower Configuration (防御塔配置)
const (
	// DefaultTowerSize 防御塔边长（像素）
	DefaultTowerSize = 75.0

	// DefaultAffordanceSize 选中防御塔上方升级/删除入口的边长（像素）
	DefaultAffordanceSize = 30.0
)
