package components

// WaveSchedulerComponent 波次调度器状态
// 全局只有一个，由 WaveSpawnSystem 读写
// 注意：波次表是静态配置，不存放在组件中
type WaveSchedulerComponent struct {
	// Round 下一个要触发的波次索引（0-based），只增不减
	Round int

	// TicksSinceRoundStart 距离上一次波次触发经过的 tick 数
	// 每次触发后归零
	TicksSinceRoundStart int

	// LastSpawned 最近一次触发时生成的飞机数（调试与统计用）
	LastSpawned int
}
