package systems

import (
	"github.com/rs/zerolog/log"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/config"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/entities"
	"github.com/decker502/waterguns/pkg/game"
	"github.com/decker502/waterguns/pkg/types"
)

// PointerState 一个 tick 的指针快照
type PointerState struct {
	X    float64
	Y    float64
	Down bool // 指针处于按下状态
	Up   bool // 本 tick 指针被松开
}

// PlacementResult 本 tick 由玩家输入引起的变化
type PlacementResult struct {
	Placed   ecs.EntityID // 新放置的防御塔，0 表示没有
	Upgraded bool
	Deleted  bool
	Selected bool // 工具栏或防御塔的选中状态发生了变化
}

// PlacementSystem 处理工具栏选择、防御塔放置/选中/升级/删除
//
// 所有花钱的操作都先通过 GameState.SpendCash 检查，金钱不足时不产生任何副作用。
// 多座防御塔可以同时处于 Selected 状态，这里不强制单选。
type PlacementSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.GameConfig
}

// NewPlacementSystem 创建放置系统
func NewPlacementSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig) *PlacementSystem {
	return &PlacementSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
	}
}

// Update 处理一个 tick 的指针输入
//
// 只有松开指针才会触发动作；按下期间只更新按钮的 Pressed 渲染提示。
func (s *PlacementSystem) Update(pointer PointerState) PlacementResult {
	s.updatePressed(pointer)

	if !pointer.Up {
		return PlacementResult{}
	}

	if pointer.Y < s.config.Field.ToolbarHeight {
		return s.handleToolbar(pointer)
	}
	return s.handleField(pointer)
}

// updatePressed 更新按钮按下提示
func (s *PlacementSystem) updatePressed(pointer PointerState) {
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		button.Pressed = pointer.Down && button.Rect.Contains(pointer.X, pointer.Y)
	}
}

// handleToolbar 工具栏区域内松开指针
// 选中一个放置按钮会取消其他按钮的选中；再次点击已选中的按钮则取消选择
func (s *PlacementSystem) handleToolbar(pointer PointerState) PlacementResult {
	buttons := ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager)

	var target *components.ButtonComponent
	for _, id := range buttons {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		if button.Rect.Contains(pointer.X, pointer.Y) {
			target = button
			break
		}
	}
	if target == nil {
		return PlacementResult{}
	}
	if _, ok := target.Kind.Family(); !ok {
		return PlacementResult{}
	}

	selectTarget := !target.Selected
	for _, id := range buttons {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		button.Selected = false
	}
	target.Selected = selectTarget

	log.Debug().
		Str("system", "PlacementSystem").
		Str("button", target.Kind.String()).
		Bool("selected", target.Selected).
		Msg("toolbar selection changed")
	return PlacementResult{Selected: true}
}

// handleField 场地区域内松开指针
// 优先级：升级入口 > 删除入口 > 切换防御塔选中 > 放置新防御塔
func (s *PlacementSystem) handleField(pointer PointerState) PlacementResult {
	towers := ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.entityManager)
	size := s.config.Towers.AffordanceSize

	for _, id := range towers {
		tower, pos := s.tower(id)
		if tower.Status != types.TowerSelected {
			continue
		}
		upgrade, _ := Affordances(pos.Rect, size, s.config.Field.ToolbarHeight)
		if upgrade.Contains(pointer.X, pointer.Y) {
			return PlacementResult{Upgraded: UpgradeTower(s.entityManager, s.gameState, s.config, id)}
		}
	}

	for _, id := range towers {
		tower, pos := s.tower(id)
		if tower.Status != types.TowerSelected {
			continue
		}
		_, remove := Affordances(pos.Rect, size, s.config.Field.ToolbarHeight)
		if remove.Contains(pointer.X, pointer.Y) {
			return PlacementResult{Deleted: DeleteTower(s.entityManager, s.gameState, id)}
		}
	}

	for _, id := range towers {
		tower, pos := s.tower(id)
		if tower.Status == types.TowerDeleted || !pos.Rect.Contains(pointer.X, pointer.Y) {
			continue
		}
		return PlacementResult{Selected: s.ToggleTower(id)}
	}

	family, ok := s.selectedFamily()
	if !ok {
		return PlacementResult{}
	}
	id, ok := s.PlaceTower(family, pointer.X, pointer.Y)
	if !ok {
		return PlacementResult{}
	}
	s.clearToolbarSelection()
	return PlacementResult{Placed: id}
}

// PlaceTower 在 (x, y) 放置一座基础形态的防御塔
// 金钱不足时不创建任何实体，也不扣钱
func (s *PlacementSystem) PlaceTower(family types.TowerFamily, x, y float64) (ecs.EntityID, bool) {
	cost, ok := s.config.PlacementCost(family)
	if !ok {
		return 0, false
	}
	if !s.gameState.SpendCash(cost) {
		log.Debug().
			Str("system", "PlacementSystem").
			Str("family", family.String()).
			Int("cost", cost).
			Int("cash", s.gameState.Cash()).
			Msg("not enough cash to place tower")
		return 0, false
	}

	id, err := entities.NewTowerEntity(s.entityManager, s.config, family, x, y)
	if err != nil {
		// PlacementCost 已确认家族存在，这里不会失败；失败时退款
		s.gameState.AddCash(cost)
		log.Error().Err(err).Str("system", "PlacementSystem").Msg("failed to create tower")
		return 0, false
	}

	log.Debug().
		Str("system", "PlacementSystem").
		Str("family", family.String()).
		Float64("x", x).
		Float64("y", y).
		Int("cash", s.gameState.Cash()).
		Msg("tower placed")
	return id, true
}

// ToggleTower 切换防御塔的选中状态（已删除的塔不响应）
func (s *PlacementSystem) ToggleTower(id ecs.EntityID) bool {
	tower, ok := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
	if !ok || tower.Status == types.TowerDeleted {
		return false
	}
	if tower.Status == types.TowerSelected {
		tower.Status = types.TowerNormal
	} else {
		tower.Status = types.TowerSelected
	}
	return true
}

func (s *PlacementSystem) tower(id ecs.EntityID) (*components.TowerComponent, *components.PositionComponent) {
	tower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	return tower, pos
}

// selectedFamily 返回工具栏当前选中的防御塔家族
func (s *PlacementSystem) selectedFamily() (types.TowerFamily, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		if button.Selected {
			return button.Kind.Family()
		}
	}
	return types.FamilyUnknown, false
}

func (s *PlacementSystem) clearToolbarSelection() {
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		button.Selected = false
	}
}
