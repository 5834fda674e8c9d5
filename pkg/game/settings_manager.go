package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// 游戏速度范围（每帧执行的模拟 tick 数）
const (
	MinTicksPerFrame = 1
	MaxTicksPerFrame = 4
)

// DisplaySettings 本地显示设置
// 只影响前端的呈现方式，不属于对局状态，也不会改变模拟结果
type DisplaySettings struct {
	ShowRanges    bool `yaml:"showRanges"`    // 绘制防御塔射程圈
	ShowHUD       bool `yaml:"showHUD"`       // 显示金钱/生命值/波次
	TicksPerFrame int  `yaml:"ticksPerFrame"` // 游戏速度 1~4
	SoundEnabled  bool `yaml:"soundEnabled"`  // 击落/逃逸音效开关
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DisplaySettings {
	return &DisplaySettings{
		ShowRanges:    true,
		ShowHUD:       true,
		TicksPerFrame: MinTicksPerFrame,
		SoundEnabled:  true,
	}
}

// SettingsManager 设置管理器
// 负责显示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DisplaySettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "display"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例，加载失败时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Warn().Err(err).Str("system", "SettingsManager").Msg("failed to load settings, using defaults")
	}

	return sm
}

// OpenSettingsManager 打开 gdata 存储并创建设置管理器
// gdata 不可用时退化为仅内存设置
func OpenSettingsManager(appName string) *SettingsManager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn().Err(err).Str("system", "SettingsManager").Msg("settings storage unavailable, running in memory")
		return NewSettingsManager(nil)
	}
	return NewSettingsManager(manager)
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.TicksPerFrame = clampSpeed(loaded.TicksPerFrame)

	sm.settings = loaded
	log.Debug().Str("system", "SettingsManager").Msg("settings loaded")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Debug().Str("system", "SettingsManager").Msg("settings saved")
	return nil
}

// Settings 获取当前设置
func (sm *SettingsManager) Settings() *DisplaySettings {
	return sm.settings
}

// ToggleRanges 切换射程圈显示
func (sm *SettingsManager) ToggleRanges() {
	sm.settings.ShowRanges = !sm.settings.ShowRanges
}

// ToggleHUD 切换 HUD 显示
func (sm *SettingsManager) ToggleHUD() {
	sm.settings.ShowHUD = !sm.settings.ShowHUD
}

// ToggleSound 切换音效
func (sm *SettingsManager) ToggleSound() {
	sm.settings.SoundEnabled = !sm.settings.SoundEnabled
}

// CycleSpeed 在 1~4 倍速之间循环
func (sm *SettingsManager) CycleSpeed() int {
	next := sm.settings.TicksPerFrame + 1
	if next > MaxTicksPerFrame {
		next = MinTicksPerFrame
	}
	sm.settings.TicksPerFrame = next
	return next
}

// SetTicksPerFrame 设置游戏速度，超出范围时截断
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetTicksPerFrame(n int) {
	sm.settings.TicksPerFrame = clampSpeed(n)
}

func clampSpeed(n int) int {
	return min(max(n, MinTicksPerFrame), MaxTicksPerFrame)
}
