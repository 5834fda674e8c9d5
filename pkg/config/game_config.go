package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/decker502/waterguns/pkg/embedded"
	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 内置游戏数据文件路径
const DefaultGameConfigPath = "data/game.yaml"

// FieldConfig 场地尺寸
type FieldConfig struct {
	Width         float64 `yaml:"width"`         // 场地宽度，飞机越过即逃逸
	Height        float64 `yaml:"height"`        // 场地高度
	ToolbarHeight float64 `yaml:"toolbarHeight"` // 顶部工具栏高度
}

// EconomyConfig 经济与玩家初始状态
type EconomyConfig struct {
	StartingCash    int `yaml:"startingCash"`    // 初始金钱
	StartingHP      int `yaml:"startingHP"`      // 玩家初始生命值
	UpgradeCostStep int `yaml:"upgradeCostStep"` // 每次升级后升级价格的增量
}

// TurnConfig 路径拐点
type TurnConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Direction string  `yaml:"direction"` // up/down/left/right
}

// PathConfig 飞行路径
type PathConfig struct {
	EntryY float64      `yaml:"entryY"` // 入场 Y 坐标
	Turns  []TurnConfig `yaml:"turns"`  // 按声明顺序扫描
}

// PlaneStats 单个飞机类型的属性配置
type PlaneStats struct {
	Speed          float64 `yaml:"speed"`          // 每 tick 移动的像素数
	HP             int     `yaml:"hp"`             // 最大生命值
	DamageOnEscape int     `yaml:"damageOnEscape"` // 逃逸时对玩家的伤害
	Bounty         int     `yaml:"bounty"`         // 击落奖励
	Sprite         string  `yaml:"sprite"`         // 精灵名
}

// PlanesConfig 飞机配置
type PlanesConfig struct {
	Size          float64               `yaml:"size"`          // 飞机边长
	SpacingFactor float64               `yaml:"spacingFactor"` // 批次内间距系数
	Kinds         map[string]PlaneStats `yaml:"kinds"`         // 飞机类型到属性的映射
}

// UpgradeStep 升级阶梯中的一步
// 乘数为 0 时视为 1（不变）
type UpgradeStep struct {
	Name        string  `yaml:"name"`        // 升级后的形态名
	RangeMul    float64 `yaml:"rangeMul"`    // 射程乘数
	DamageMul   float64 `yaml:"damageMul"`   // 伤害乘数（先乘后加）
	DamageAdd   int     `yaml:"damageAdd"`   // 伤害加值
	CooldownMul float64 `yaml:"cooldownMul"` // 冷却乘数
}

// TowerStats 单个防御塔家族的基础属性与升级阶梯
type TowerStats struct {
	Name        string        `yaml:"name"`        // 基础形态名
	Cost        int           `yaml:"cost"`        // 放置价格
	UpgradeCost int           `yaml:"upgradeCost"` // 第一次升级价格
	Range       float64       `yaml:"range"`       // 射程半径
	Damage      int           `yaml:"damage"`      // 伤害
	CooldownMs  float64       `yaml:"cooldownMs"`  // 冷却（毫秒）
	Sprite      string        `yaml:"sprite"`      // 精灵名
	Upgrades    []UpgradeStep `yaml:"upgrades"`    // 依次升级
}

// TowersConfig 防御塔配置
type TowersConfig struct {
	Size           float64               `yaml:"size"`           // 防御塔边长
	AffordanceSize float64               `yaml:"affordanceSize"` // 升级/删除入口边长
	Families       map[string]TowerStats `yaml:"families"`       // 家族到属性的映射
}

// SpawnGroup 波次中的一组飞机
type SpawnGroup struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

// WaveConfig 单个波次
type WaveConfig struct {
	// AfterTicks 距离上一波（或开局）经过多少 tick 后触发
	AfterTicks int          `yaml:"afterTicks"`
	Groups     []SpawnGroup `yaml:"groups"`
}

// ToolbarButtonConfig 工具栏按钮
type ToolbarButtonConfig struct {
	Kind  string  `yaml:"kind"`
	Label string  `yaml:"label"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
}

// GameConfig 游戏数据文件结构
//
// 加载后会被校验并建立按类型索引的查找表，之后只读。
type GameConfig struct {
	Field   FieldConfig           `yaml:"field"`
	Economy EconomyConfig         `yaml:"economy"`
	Path    PathConfig            `yaml:"path"`
	Planes  PlanesConfig          `yaml:"planes"`
	Towers  TowersConfig          `yaml:"towers"`
	Waves   []WaveConfig          `yaml:"waves"`
	Toolbar []ToolbarButtonConfig `yaml:"toolbar"`

	planes  map[types.PlaneKind]PlaneStats
	towers  map[types.TowerFamily]TowerStats
	path    geom.Path
	waves   []Wave
	toolbar []ToolbarEntry
}

// Spawn 解析后的生成组
type Spawn struct {
	Kind  types.PlaneKind
	Count int
}

// Wave 解析后的波次
type Wave struct {
	AfterTicks int
	Groups     []Spawn
}

// Size 波次生成的飞机总数
func (w Wave) Size() int {
	n := 0
	for _, g := range w.Groups {
		n += g.Count
	}
	return n
}

// ToolbarEntry 解析后的工具栏按钮
type ToolbarEntry struct {
	Kind  types.ButtonKind
	Label string
	Rect  geom.Rect
}

// LoadGameConfig 加载并校验游戏数据文件
// 参数：
//
//	path - 配置文件路径；内置路径（data/ 开头且已嵌入）优先从嵌入资源读取，
//	       否则从文件系统读取
//
// 返回：
//
//	*GameConfig - 解析并建立索引后的配置
//	error - 文件读取、解析或校验失败
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 从 YAML 数据解析游戏配置
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := cfg.index(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// index 校验配置并建立查找表
func (c *GameConfig) index() error {
	if err := validateField(&c.Field); err != nil {
		return err
	}
	if err := validateEconomy(&c.Economy); err != nil {
		return err
	}

	planes, err := validatePlanes(&c.Planes)
	if err != nil {
		return err
	}
	towers, err := validateTowers(&c.Towers)
	if err != nil {
		return err
	}
	path, err := buildPath(&c.Path)
	if err != nil {
		return err
	}
	waves, err := buildWaves(c.Waves, planes)
	if err != nil {
		return err
	}
	toolbar, err := buildToolbar(c.Toolbar, towers, c.Field.ToolbarHeight)
	if err != nil {
		return err
	}

	c.planes = planes
	c.towers = towers
	c.path = path
	c.waves = waves
	c.toolbar = toolbar
	return nil
}

func validateField(f *FieldConfig) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("field: width and height must be positive, got %vx%v", f.Width, f.Height)
	}
	if f.ToolbarHeight < 0 || f.ToolbarHeight >= f.Height {
		return fmt.Errorf("field: toolbarHeight must be in [0, height), got %v", f.ToolbarHeight)
	}
	return nil
}

func validateEconomy(e *EconomyConfig) error {
	if e.StartingCash < 0 {
		return fmt.Errorf("economy: startingCash cannot be negative, got %d", e.StartingCash)
	}
	if e.StartingHP <= 0 {
		return fmt.Errorf("economy: startingHP must be positive, got %d", e.StartingHP)
	}
	if e.UpgradeCostStep <= 0 {
		return fmt.Errorf("economy: upgradeCostStep must be positive, got %d", e.UpgradeCostStep)
	}
	return nil
}

func validatePlanes(p *PlanesConfig) (map[types.PlaneKind]PlaneStats, error) {
	if p.Size <= 0 {
		return nil, fmt.Errorf("planes: size must be positive, got %v", p.Size)
	}
	if p.SpacingFactor < 0 {
		return nil, fmt.Errorf("planes: spacingFactor cannot be negative, got %v", p.SpacingFactor)
	}
	if len(p.Kinds) == 0 {
		return nil, fmt.Errorf("planes: at least one plane kind is required")
	}

	result := make(map[types.PlaneKind]PlaneStats, len(p.Kinds))
	for _, name := range slices.Sorted(maps.Keys(p.Kinds)) {
		stats := p.Kinds[name]
		kind, ok := types.ParsePlaneKind(name)
		if !ok {
			return nil, fmt.Errorf("planes: unknown plane kind %q", name)
		}
		if _, dup := result[kind]; dup {
			return nil, fmt.Errorf("planes: plane kind %s declared twice", kind)
		}
		if stats.Speed <= 0 {
			return nil, fmt.Errorf("plane %s: speed must be positive, got %v", kind, stats.Speed)
		}
		if stats.HP <= 0 {
			return nil, fmt.Errorf("plane %s: hp must be positive, got %d", kind, stats.HP)
		}
		if stats.DamageOnEscape < 0 {
			return nil, fmt.Errorf("plane %s: damageOnEscape cannot be negative, got %d", kind, stats.DamageOnEscape)
		}
		if stats.Bounty < 0 {
			return nil, fmt.Errorf("plane %s: bounty cannot be negative, got %d", kind, stats.Bounty)
		}
		result[kind] = stats
	}
	return result, nil
}

func validateTowers(t *TowersConfig) (map[types.TowerFamily]TowerStats, error) {
	if t.Size <= 0 {
		return nil, fmt.Errorf("towers: size must be positive, got %v", t.Size)
	}
	if t.AffordanceSize <= 0 {
		return nil, fmt.Errorf("towers: affordanceSize must be positive, got %v", t.AffordanceSize)
	}
	if len(t.Families) == 0 {
		return nil, fmt.Errorf("towers: at least one tower family is required")
	}

	result := make(map[types.TowerFamily]TowerStats, len(t.Families))
	for _, name := range slices.Sorted(maps.Keys(t.Families)) {
		stats := t.Families[name]
		family, ok := types.ParseTowerFamily(name)
		if !ok {
			return nil, fmt.Errorf("towers: unknown tower family %q", name)
		}
		if _, dup := result[family]; dup {
			return nil, fmt.Errorf("towers: tower family %s declared twice", family)
		}
		if stats.Cost < 0 || stats.UpgradeCost < 0 {
			return nil, fmt.Errorf("tower %s: costs cannot be negative", family)
		}
		if stats.Range <= 0 {
			return nil, fmt.Errorf("tower %s: range must be positive, got %v", family, stats.Range)
		}
		if stats.Damage <= 0 {
			return nil, fmt.Errorf("tower %s: damage must be positive, got %d", family, stats.Damage)
		}
		if stats.CooldownMs < 0 {
			return nil, fmt.Errorf("tower %s: cooldownMs cannot be negative, got %v", family, stats.CooldownMs)
		}

		steps := make([]UpgradeStep, len(stats.Upgrades))
		for i, step := range stats.Upgrades {
			step = step.normalized()
			if err := validateUpgradeStep(step); err != nil {
				return nil, fmt.Errorf("tower %s upgrade %d: %w", family, i+1, err)
			}
			steps[i] = step
		}
		stats.Upgrades = steps
		result[family] = stats
	}
	return result, nil
}

// normalized 将未填写（0）的乘数视为 1
func (s UpgradeStep) normalized() UpgradeStep {
	if s.RangeMul == 0 {
		s.RangeMul = 1
	}
	if s.DamageMul == 0 {
		s.DamageMul = 1
	}
	if s.CooldownMul == 0 {
		s.CooldownMul = 1
	}
	return s
}

// validateUpgradeStep 每一步必须让射程或伤害严格增加，且冷却不能变长
func validateUpgradeStep(s UpgradeStep) error {
	if s.RangeMul < 1 || s.DamageMul < 1 || s.DamageAdd < 0 {
		return fmt.Errorf("range and damage must not decrease")
	}
	if s.RangeMul == 1 && s.DamageMul == 1 && s.DamageAdd == 0 {
		return fmt.Errorf("step must increase range or damage")
	}
	if s.CooldownMul <= 0 || s.CooldownMul > 1 {
		return fmt.Errorf("cooldownMul must be in (0, 1], got %v", s.CooldownMul)
	}
	return nil
}

func buildPath(p *PathConfig) (geom.Path, error) {
	turns := make([]geom.Turn, 0, len(p.Turns))
	for i, tc := range p.Turns {
		dir, ok := types.ParseDirection(tc.Direction)
		if !ok {
			return geom.Path{}, fmt.Errorf("path turn %d: unknown direction %q", i, tc.Direction)
		}
		turns = append(turns, geom.Turn{X: tc.X, Y: tc.Y, Direction: dir})
	}
	return geom.NewPath(p.EntryY, turns...), nil
}

func buildWaves(waves []WaveConfig, planes map[types.PlaneKind]PlaneStats) ([]Wave, error) {
	result := make([]Wave, 0, len(waves))
	for i, wc := range waves {
		if wc.AfterTicks < 0 {
			return nil, fmt.Errorf("wave %d: afterTicks cannot be negative, got %d", i, wc.AfterTicks)
		}
		if len(wc.Groups) == 0 {
			return nil, fmt.Errorf("wave %d: at least one spawn group is required", i)
		}
		wave := Wave{AfterTicks: wc.AfterTicks, Groups: make([]Spawn, 0, len(wc.Groups))}
		for _, g := range wc.Groups {
			kind, ok := types.ParsePlaneKind(g.Kind)
			if !ok {
				return nil, fmt.Errorf("wave %d: unknown plane kind %q", i, g.Kind)
			}
			if _, ok := planes[kind]; !ok {
				return nil, fmt.Errorf("wave %d: plane kind %s has no stats", i, kind)
			}
			if g.Count <= 0 {
				return nil, fmt.Errorf("wave %d: count must be positive, got %d", i, g.Count)
			}
			wave.Groups = append(wave.Groups, Spawn{Kind: kind, Count: g.Count})
		}
		result = append(result, wave)
	}
	return result, nil
}

func buildToolbar(buttons []ToolbarButtonConfig, towers map[types.TowerFamily]TowerStats, bandHeight float64) ([]ToolbarEntry, error) {
	result := make([]ToolbarEntry, 0, len(buttons))
	for i, bc := range buttons {
		kind, ok := types.ParseButtonKind(bc.Kind)
		if !ok {
			return nil, fmt.Errorf("toolbar button %d: unknown kind %q", i, bc.Kind)
		}
		if family, isFamily := kind.Family(); isFamily {
			if _, ok := towers[family]; !ok {
				return nil, fmt.Errorf("toolbar button %d: tower family %s has no stats", i, family)
			}
		}
		if bc.W <= 0 || bc.H <= 0 {
			return nil, fmt.Errorf("toolbar button %d: size must be positive", i)
		}
		if bc.Y < 0 || bc.Y+bc.H > bandHeight {
			return nil, fmt.Errorf("toolbar button %d: must lie inside the toolbar band (height %v)", i, bandHeight)
		}
		result = append(result, ToolbarEntry{
			Kind:  kind,
			Label: bc.Label,
			Rect:  geom.NewRect(bc.X, bc.Y, bc.W, bc.H),
		})
	}
	return result, nil
}

// PlaneStats 获取指定飞机类型的属性
// 如果类型不存在，返回零值和 false
func (c *GameConfig) PlaneStats(kind types.PlaneKind) (PlaneStats, bool) {
	stats, ok := c.planes[kind]
	return stats, ok
}

// TowerStats 获取指定家族的基础属性
// 如果家族不存在，返回零值和 false
func (c *GameConfig) TowerStats(family types.TowerFamily) (TowerStats, bool) {
	stats, ok := c.towers[family]
	return stats, ok
}

// UpgradeStep 获取从 tier 升级到下一阶的数值
// 已到顶阶或家族不存在时返回 false
func (c *GameConfig) UpgradeStep(family types.TowerFamily, tier types.Tier) (UpgradeStep, bool) {
	stats, ok := c.towers[family]
	if !ok || tier < 0 || int(tier) >= len(stats.Upgrades) {
		return UpgradeStep{}, false
	}
	return stats.Upgrades[tier], true
}

// TopTier 家族的最高阶
func (c *GameConfig) TopTier(family types.TowerFamily) types.Tier {
	return types.Tier(len(c.towers[family].Upgrades))
}

// TierName 返回某一阶的形态名（如 SuperSoaker）
func (c *GameConfig) TierName(family types.TowerFamily, tier types.Tier) string {
	stats, ok := c.towers[family]
	if !ok {
		return ""
	}
	if tier == types.TierBasic {
		return stats.Name
	}
	if int(tier) <= len(stats.Upgrades) {
		return stats.Upgrades[tier-1].Name
	}
	return ""
}

// PlacementCost 放置某家族防御塔的价格
func (c *GameConfig) PlacementCost(family types.TowerFamily) (int, bool) {
	stats, ok := c.towers[family]
	return stats.Cost, ok
}

// FlightPath 飞行路径
func (c *GameConfig) FlightPath() geom.Path {
	return c.path
}

// Wave 获取指定波次（0-based）
// 波次表耗尽后返回 false
func (c *GameConfig) Wave(round int) (Wave, bool) {
	if round < 0 || round >= len(c.waves) {
		return Wave{}, false
	}
	return c.waves[round], true
}

// WaveCount 波次总数
func (c *GameConfig) WaveCount() int {
	return len(c.waves)
}

// ToolbarEntries 工具栏按钮（按声明顺序）
func (c *GameConfig) ToolbarEntries() []ToolbarEntry {
	return slices.Clone(c.toolbar)
}
