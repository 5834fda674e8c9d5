package simulation

import (
	"fmt"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/systems"
	"github.com/decker502/waterguns/pkg/types"
)

// ShootingSpriteSuffix 开火闪烁期间追加在精灵名后的后缀
const ShootingSpriteSuffix = "Shooting"

// PlaneView 飞机的只读快照
type PlaneView struct {
	ID        ecs.EntityID
	Kind      types.PlaneKind
	Rect      geom.Rect
	Rotation  float64 // 角度制
	HP        int
	MaxHP     int
	HPPercent float64 // 0-100，用于血条
	SpriteKey string
}

// TowerView 防御塔的只读快照
type TowerView struct {
	ID          ecs.EntityID
	Family      types.TowerFamily
	Tier        types.Tier
	Form        string // 当前形态名，如 SuperSoaker
	Rect        geom.Rect
	Range       float64
	Damage      int
	CooldownMs  float64
	Rotation    float64 // 弧度
	Status      types.TowerStatus
	UpgradeCost int
	CanUpgrade  bool // 未到顶阶
	Firing      bool
	SpriteKey   string // 开火期间为 <精灵名>Shooting
}

// ButtonView 按钮的只读快照
// 包括工具栏按钮和选中防御塔上方的升级/删除入口
type ButtonView struct {
	Kind      types.ButtonKind
	Label     string
	Rect      geom.Rect
	SpriteKey string
	Cost      int // 放置或升级价格；删除入口为退款金额
	Selected  bool
	Pressed   bool
	// Tower 升级/删除入口所属的防御塔，工具栏按钮为 0
	Tower ecs.EntityID
}

// Caption 按钮上显示的文字
// 放置按钮显示价格；升级入口到顶阶后显示 MAX；删除入口显示退款金额
func (b ButtonView) Caption() string {
	switch b.Kind {
	case types.ButtonUpgrade:
		if b.Cost == 0 {
			return "MAX"
		}
		return fmt.Sprintf("Up $%d", b.Cost)
	case types.ButtonDelete:
		return fmt.Sprintf("Sell $%d", b.Cost)
	}
	if b.Cost > 0 {
		return fmt.Sprintf("%s $%d", b.Label, b.Cost)
	}
	return b.Label
}

// Planes 按出生顺序返回所有飞机
func (s *Simulation) Planes() []PlaneView {
	ids := ecs.GetEntitiesWith3[*components.PlaneComponent, *components.PositionComponent, *components.HealthComponent](s.entityManager)
	views := make([]PlaneView, 0, len(ids))
	for _, id := range ids {
		plane, _ := ecs.GetComponent[*components.PlaneComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)

		view := PlaneView{
			ID:        id,
			Kind:      plane.Kind,
			Rect:      pos.Rect,
			HP:        health.CurrentHealth,
			MaxHP:     health.MaxHealth,
			HPPercent: health.Percent(),
			SpriteKey: plane.SpriteKey,
		}
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id); ok {
			view.Rotation = vel.Rotation
		}
		views = append(views, view)
	}
	return views
}

// Towers 按放置顺序返回所有防御塔
func (s *Simulation) Towers() []TowerView {
	ids := ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.entityManager)
	views := make([]TowerView, 0, len(ids))
	for _, id := range ids {
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		firing := tower.IsFiring(s.nowMs)
		sprite := tower.SpriteKey
		if firing && sprite != "" {
			sprite += ShootingSpriteSuffix
		}
		views = append(views, TowerView{
			ID:          id,
			Family:      tower.Family,
			Tier:        tower.Tier,
			Form:        s.config.TierName(tower.Family, tower.Tier),
			Rect:        pos.Rect,
			Range:       tower.Range,
			Damage:      tower.Damage,
			CooldownMs:  tower.CooldownMs,
			Rotation:    tower.Rotation,
			Status:      tower.Status,
			UpgradeCost: tower.UpgradeCost,
			CanUpgrade:  tower.Tier < s.config.TopTier(tower.Family),
			Firing:      firing,
			SpriteKey:   sprite,
		})
	}
	return views
}

// Buttons 返回工具栏按钮，随后是每座选中防御塔的升级、删除入口
func (s *Simulation) Buttons() []ButtonView {
	var views []ButtonView
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		views = append(views, ButtonView{
			Kind:      button.Kind,
			Label:     button.Label,
			Rect:      button.Rect,
			SpriteKey: button.SpriteKey,
			Cost:      button.Cost,
			Selected:  button.Selected,
			Pressed:   button.Pressed,
		})
	}

	size := s.config.Towers.AffordanceSize
	for _, id := range ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.entityManager) {
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.entityManager, id)
		if tower.Status != types.TowerSelected {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		upgrade, remove := systems.Affordances(pos.Rect, size, s.config.Field.ToolbarHeight)

		upgradeView := ButtonView{Kind: types.ButtonUpgrade, Label: "Upgrade", Rect: upgrade, Tower: id}
		if tower.Tier < s.config.TopTier(tower.Family) {
			upgradeView.Cost = tower.UpgradeCost
		}
		views = append(views,
			upgradeView,
			ButtonView{Kind: types.ButtonDelete, Label: "Delete", Rect: remove, Cost: tower.UpgradeCost, Tower: id},
		)
	}
	return views
}
