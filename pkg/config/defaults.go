package config

// DefaultGameConfig 返回内置的默认游戏配置
// 与 data/game.yaml 内容一致，供测试和未提供数据文件时使用
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{
		Field: FieldConfig{
			Width:         DefaultFieldWidth,
			Height:        DefaultFieldHeight,
			ToolbarHeight: DefaultToolbarHeight,
		},
		Economy: EconomyConfig{
			StartingCash:    DefaultStartingCash,
			StartingHP:      DefaultStartingHP,
			UpgradeCostStep: DefaultUpgradeCostStep,
		},
		Path: PathConfig{
			EntryY: DefaultPathEntryY,
			Turns: []TurnConfig{
				{X: 400, Y: 200, Direction: "down"},
				{X: 400, Y: 500, Direction: "right"},
				{X: 900, Y: 500, Direction: "up"},
				{X: 900, Y: 250, Direction: "right"},
			},
		},
		Planes: PlanesConfig{
			Size:          DefaultPlaneSize,
			SpacingFactor: DefaultSpacingFactor,
			Kinds: map[string]PlaneStats{
				"basic":  {Speed: 1.7, HP: 40, DamageOnEscape: 1, Bounty: 5, Sprite: "plane"},
				"bullet": {Speed: 3.0, HP: 25, DamageOnEscape: 2, Bounty: 5, Sprite: "bulletPlane"},
				"glider": {Speed: 1.5, HP: 50, DamageOnEscape: 2, Bounty: 10, Sprite: "glider"},
				"blimp":  {Speed: 1.0, HP: 100, DamageOnEscape: 3, Bounty: 10, Sprite: "blimp"},
			},
		},
		Towers: TowersConfig{
			Size:           DefaultTowerSize,
			AffordanceSize: DefaultAffordanceSize,
			Families: map[string]TowerStats{
				"waterGun": {
					Name: "WaterGun", Cost: 20, UpgradeCost: 25,
					Range: 200, Damage: 10, CooldownMs: 700, Sprite: "WaterGun",
					Upgrades: []UpgradeStep{
						{Name: "SuperSoaker", RangeMul: 1.2, DamageAdd: 5, CooldownMul: 0.5},
						{Name: "ExtremeSoaker", RangeMul: 1.2, DamageAdd: 5, CooldownMul: 0.66},
					},
				},
				"acidTower": {
					Name: "AcidTower", Cost: 40, UpgradeCost: 50,
					Range: 150, Damage: 20, CooldownMs: 1500, Sprite: "AcidTower",
					Upgrades: []UpgradeStep{
						{Name: "Radioactive", RangeMul: 1.1, DamageMul: 2, CooldownMul: 0.5},
					},
				},
				"sodaMaker": {
					Name: "SodaMaker", Cost: 30, UpgradeCost: 35,
					Range: 175, Damage: 5, CooldownMs: 300, Sprite: "SodaMaker",
					Upgrades: []UpgradeStep{
						{Name: "SparklingWater", RangeMul: 1.2, DamageAdd: 10},
						{Name: "RootBeer", RangeMul: 1.2, DamageAdd: 20},
					},
				},
			},
		},
		Waves: []WaveConfig{
			{AfterTicks: 60, Groups: []SpawnGroup{{Kind: "basic", Count: 5}}},
			{AfterTicks: 600, Groups: []SpawnGroup{{Kind: "basic", Count: 8}}},
			{AfterTicks: 600, Groups: []SpawnGroup{{Kind: "basic", Count: 6}, {Kind: "bullet", Count: 4}}},
			{AfterTicks: 720, Groups: []SpawnGroup{{Kind: "glider", Count: 6}, {Kind: "basic", Count: 6}}},
			{AfterTicks: 720, Groups: []SpawnGroup{{Kind: "bullet", Count: 10}}},
			{AfterTicks: 900, Groups: []SpawnGroup{{Kind: "blimp", Count: 3}, {Kind: "glider", Count: 5}}},
			{AfterTicks: 900, Groups: []SpawnGroup{{Kind: "blimp", Count: 5}, {Kind: "bullet", Count: 10}}},
			{AfterTicks: 1200, Groups: []SpawnGroup{{Kind: "blimp", Count: 10}, {Kind: "glider", Count: 10}}},
		},
		Toolbar: []ToolbarButtonConfig{
			{Kind: "waterGun", Label: "Water Gun", X: 20, Y: 10, W: 80, H: 80},
			{Kind: "acidTower", Label: "Acid Tower", X: 120, Y: 10, W: 80, H: 80},
			{Kind: "sodaMaker", Label: "Soda Maker", X: 220, Y: 10, W: 80, H: 80},
		},
	}

	// 默认配置由代码保证合法，校验失败属于编程错误
	if err := cfg.index(); err != nil {
		panic("config: invalid built-in defaults: " + err.Error())
	}
	return cfg
}
