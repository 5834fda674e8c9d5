package systems

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/decker502/waterguns/pkg/components"
	"github.com/decker502/waterguns/pkg/ecs"
	"github.com/decker502/waterguns/pkg/entities"
	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/types"
)

// 默认工具栏按钮中心
var (
	waterGunButton  = release(60, 50)
	acidTowerButton = release(160, 50)
	sodaMakerButton = release(260, 50)
)

func newPlacementWorld(t *testing.T, cash int) (*testWorld, *PlacementSystem) {
	t.Helper()
	w := newTestWorld(t, cash, 100)
	entities.NewToolbar(w.em, w.cfg)
	return w, NewPlacementSystem(w.em, w.gs, w.cfg)
}

func (w *testWorld) buttons(t *testing.T) map[types.ButtonKind]*components.ButtonComponent {
	t.Helper()
	result := map[types.ButtonKind]*components.ButtonComponent{}
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](w.em) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](w.em, id)
		result[button.Kind] = button
	}
	return result
}

func TestPlacement_InsufficientCash(t *testing.T) {
	w, system := newPlacementWorld(t, 15)

	system.Update(waterGunButton)
	result := system.Update(release(500, 400))

	if result.Placed != 0 {
		t.Error("tower placed without enough cash")
	}
	if w.gs.Cash() != 15 {
		t.Errorf("cash = %d, want 15", w.gs.Cash())
	}
	if w.towerCount() != 0 {
		t.Errorf("towers = %d, want 0", w.towerCount())
	}
	if !w.buttons(t)[types.ButtonWaterGun].Selected {
		t.Error("toolbar selection should survive a failed placement")
	}
}

func TestPlacement_ToolbarSelection(t *testing.T) {
	w, system := newPlacementWorld(t, 0)

	t.Run("选中按钮", func(t *testing.T) {
		result := system.Update(waterGunButton)
		if !result.Selected || !w.buttons(t)[types.ButtonWaterGun].Selected {
			t.Error("water gun button should be selected")
		}
	})

	t.Run("选择互斥", func(t *testing.T) {
		system.Update(acidTowerButton)
		buttons := w.buttons(t)
		if buttons[types.ButtonWaterGun].Selected {
			t.Error("water gun button should be deselected")
		}
		if !buttons[types.ButtonAcidTower].Selected {
			t.Error("acid tower button should be selected")
		}
	})

	t.Run("再次点击取消选择", func(t *testing.T) {
		system.Update(acidTowerButton)
		for kind, button := range w.buttons(t) {
			if button.Selected {
				t.Errorf("%v still selected", kind)
			}
		}
	})

	t.Run("点击工具栏空白处无效", func(t *testing.T) {
		system.Update(sodaMakerButton)
		result := system.Update(release(1000, 50))
		if result != (PlacementResult{}) {
			t.Errorf("result = %+v, want no-op", result)
		}
		if !w.buttons(t)[types.ButtonSodaMaker].Selected {
			t.Error("selection should be unchanged")
		}
	})
}

func TestPlacement_PlaceTower(t *testing.T) {
	w, system := newPlacementWorld(t, 50)

	system.Update(waterGunButton)
	result := system.Update(release(500, 400))

	if result.Placed == 0 {
		t.Fatal("expected a tower to be placed")
	}
	if w.gs.Cash() != 30 {
		t.Errorf("cash = %d, want 30", w.gs.Cash())
	}
	r := w.rect(t, result.Placed)
	if r.CenterX() != 500 || r.CenterY() != 400 {
		t.Errorf("tower center = (%v, %v), want (500, 400)", r.CenterX(), r.CenterY())
	}
	tower := w.tower(t, result.Placed)
	if tower.Family != types.FamilyWaterGun || tower.Tier != types.TierBasic || tower.Status != types.TowerNormal {
		t.Errorf("tower = %+v", tower)
	}
	if w.buttons(t)[types.ButtonWaterGun].Selected {
		t.Error("toolbar selection should be cleared after placing")
	}

	// 没有选中按钮时点击空地不放置
	if system.Update(release(800, 400)).Placed != 0 {
		t.Error("placed a tower without a toolbar selection")
	}
}

func TestPlacement_ToggleSelection(t *testing.T) {
	w, system := newPlacementWorld(t, 100)
	a := w.addTower(t, types.FamilyWaterGun, 400, 400)
	b := w.addTower(t, types.FamilySodaMaker, 800, 400)

	system.Update(release(400, 400))
	system.Update(release(800, 400))

	if w.tower(t, a).Status != types.TowerSelected || w.tower(t, b).Status != types.TowerSelected {
		t.Error("both towers should be selected at the same time")
	}

	system.Update(release(800, 420))
	if w.tower(t, b).Status != types.TowerNormal {
		t.Error("clicking a selected tower should deselect it")
	}
	if w.tower(t, a).Status != types.TowerSelected {
		t.Error("other selected towers are unaffected")
	}
}

func TestPlacement_ClickOnTowerTogglesInsteadOfPlacing(t *testing.T) {
	w, system := newPlacementWorld(t, 100)
	id := w.addTower(t, types.FamilyWaterGun, 500, 400)

	system.Update(waterGunButton)
	result := system.Update(release(510, 410))

	if result.Placed != 0 {
		t.Error("placed a tower on top of another one")
	}
	if w.tower(t, id).Status != types.TowerSelected {
		t.Error("existing tower should be selected")
	}
	if w.gs.Cash() != 100 {
		t.Errorf("cash = %d, want 100", w.gs.Cash())
	}
}

func TestPlacement_UpgradeLadder(t *testing.T) {
	w, system := newPlacementWorld(t, 200)

	system.Update(waterGunButton)
	id := system.Update(release(500, 400)).Placed
	system.Update(release(500, 400))

	upgradeAt := release(485, 347)

	tests := []struct {
		name        string
		rangeR      float64
		damage      int
		cooldownMs  float64
		upgradeCost int
		cash        int
	}{
		{"SuperSoaker", 240, 15, 350, 35, 155},
		{"ExtremeSoaker", 288, 20, 231, 45, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !system.Update(upgradeAt).Upgraded {
				t.Fatal("upgrade failed")
			}
			tower := w.tower(t, id)
			if math.Abs(tower.Range-tt.rangeR) > 1e-9 {
				t.Errorf("range = %v, want %v", tower.Range, tt.rangeR)
			}
			if tower.Damage != tt.damage {
				t.Errorf("damage = %d, want %d", tower.Damage, tt.damage)
			}
			if math.Abs(tower.CooldownMs-tt.cooldownMs) > 1e-9 {
				t.Errorf("cooldown = %v, want %v", tower.CooldownMs, tt.cooldownMs)
			}
			if tower.UpgradeCost != tt.upgradeCost {
				t.Errorf("upgrade cost = %d, want %d", tower.UpgradeCost, tt.upgradeCost)
			}
			if w.gs.Cash() != tt.cash {
				t.Errorf("cash = %d, want %d", w.gs.Cash(), tt.cash)
			}
			if w.cfg.TierName(tower.Family, tower.Tier) != tt.name {
				t.Errorf("form = %q, want %q", w.cfg.TierName(tower.Family, tower.Tier), tt.name)
			}
		})
	}

	t.Run("顶阶不再升级也不扣钱", func(t *testing.T) {
		if system.Update(upgradeAt).Upgraded {
			t.Error("upgraded past the top tier")
		}
		tower := w.tower(t, id)
		if tower.Tier != types.Tier3 || tower.UpgradeCost != 45 {
			t.Errorf("tower changed at top tier: %+v", tower)
		}
		if w.gs.Cash() != 120 {
			t.Errorf("cash = %d, want 120", w.gs.Cash())
		}
	})
}

func TestPlacement_UpgradeRequiresSelection(t *testing.T) {
	w, system := newPlacementWorld(t, 100)
	id := w.addTower(t, types.FamilyWaterGun, 500, 400)

	if system.Update(release(485, 347)).Upgraded {
		t.Error("a tower that is not selected was upgraded")
	}
	if UpgradeTower(w.em, w.gs, w.cfg, id) {
		t.Error("UpgradeTower should reject a tower that is not selected")
	}
	if w.gs.Cash() != 100 || w.tower(t, id).Tier != types.TierBasic {
		t.Error("state changed by a rejected upgrade")
	}
}

func TestPlacement_UpgradeInsufficientCash(t *testing.T) {
	w, system := newPlacementWorld(t, 24)
	id := w.addTower(t, types.FamilyWaterGun, 500, 400)
	system.Update(release(500, 400))

	if system.Update(release(485, 347)).Upgraded {
		t.Error("upgraded without enough cash")
	}
	tower := w.tower(t, id)
	if tower.Tier != types.TierBasic || tower.Range != 200 || tower.UpgradeCost != 25 {
		t.Errorf("tower changed: %+v", tower)
	}
	if w.gs.Cash() != 24 {
		t.Errorf("cash = %d, want 24", w.gs.Cash())
	}
}

func TestPlacement_AffordanceBeatsTowerBody(t *testing.T) {
	w, system := newPlacementWorld(t, 100)
	a := w.addTower(t, types.FamilyWaterGun, 500, 400)
	// b 的塔身覆盖 a 的升级入口
	b := w.addTower(t, types.FamilySodaMaker, 485, 300)

	system.Update(release(500, 420))
	result := system.Update(release(485, 335))

	if !result.Upgraded {
		t.Error("upgrade affordance should take priority over the tower underneath")
	}
	if w.tower(t, b).Status != types.TowerNormal {
		t.Error("tower under the affordance should not be toggled")
	}
	if w.tower(t, a).Tier != types.Tier2 {
		t.Errorf("tier = %v, want Tier2", w.tower(t, a).Tier)
	}
}

func TestAffordances(t *testing.T) {
	t.Run("放在塔的上方", func(t *testing.T) {
		upgrade, remove := Affordances(geom.NewRect(462.5, 362.5, 75, 75), 30, 100)
		if upgrade.X() != 470 || upgrade.Y() != 332.5 {
			t.Errorf("upgrade at (%v, %v), want (470, 332.5)", upgrade.X(), upgrade.Y())
		}
		if remove.X() != 500 || remove.Y() != 332.5 {
			t.Errorf("remove at (%v, %v), want (500, 332.5)", remove.X(), remove.Y())
		}
	})

	t.Run("上方进入工具栏时放在塔的下方", func(t *testing.T) {
		upgrade, remove := Affordances(geom.NewRect(562.5, 82.5, 75, 75), 30, 100)
		if upgrade.Y() != 157.5 || remove.Y() != 157.5 {
			t.Errorf("affordances at y = %v / %v, want 157.5", upgrade.Y(), remove.Y())
		}
	})
}

func TestPlacement_AffordancesBelowToolbar(t *testing.T) {
	for _, cy := range []float64{120, 140, 167} {
		w, system := newPlacementWorld(t, 1000)
		id := w.addTower(t, types.FamilyWaterGun, 600, cy)
		system.Update(release(600, cy+30))
		if w.tower(t, id).Status != types.TowerSelected {
			t.Fatalf("cy=%v: tower should be selected", cy)
		}

		upgrade, remove := Affordances(w.rect(t, id), w.cfg.Towers.AffordanceSize, w.cfg.Field.ToolbarHeight)
		if upgrade.Y() < w.cfg.Field.ToolbarHeight {
			t.Fatalf("cy=%v: upgrade affordance at y=%v reaches into the toolbar", cy, upgrade.Y())
		}

		if !system.Update(release(upgrade.CenterX(), upgrade.CenterY())).Upgraded {
			t.Errorf("cy=%v: upgrade affordance should be clickable", cy)
		}
		if w.gs.Cash() != 975 {
			t.Errorf("cy=%v: cash = %d, want 975", cy, w.gs.Cash())
		}
		if !system.Update(release(remove.CenterX(), remove.CenterY())).Deleted {
			t.Errorf("cy=%v: delete affordance should be clickable", cy)
		}
	}
}

func TestPlacement_DeleteRefunds(t *testing.T) {
	w, system := newPlacementWorld(t, 100)

	system.Update(waterGunButton)
	id := system.Update(release(500, 400)).Placed
	system.Update(release(500, 400))

	if !system.Update(release(515, 347)).Deleted {
		t.Fatal("delete failed")
	}
	if w.tower(t, id).Status != types.TowerDeleted {
		t.Error("tower should be marked deleted")
	}
	if w.gs.Cash() != 105 {
		t.Errorf("cash = %d, want 105 (80 + refund 25)", w.gs.Cash())
	}

	// 删除后、回收前点击塔身无效
	if system.Update(release(500, 400)).Selected {
		t.Error("a deleted tower responded to a click")
	}

	result := NewLifecycleSystem(w.em, w.gs, w.cfg).Update()
	if result.TowersRemoved != 1 {
		t.Errorf("towers removed = %d, want 1", result.TowersRemoved)
	}
	if w.em.IsAlive(id) {
		t.Error("deleted tower should be removed")
	}
	if w.gs.Cash() != 105 {
		t.Errorf("cash = %d after removal, refund must not repeat", w.gs.Cash())
	}
}

func TestPlacement_DeleteRefundsCurrentUpgradeCost(t *testing.T) {
	w, system := newPlacementWorld(t, 100)
	id := w.addTower(t, types.FamilyAcidTower, 500, 400)
	system.Update(release(500, 400))
	system.Update(release(485, 347)) // 升级：花费 50，升级价格变为 60

	system.Update(release(515, 347))

	if w.tower(t, id).Status != types.TowerDeleted {
		t.Fatal("tower should be deleted")
	}
	if w.gs.Cash() != 110 {
		t.Errorf("cash = %d, want 110 (100 - 50 + 60)", w.gs.Cash())
	}
}

func TestPlacement_Pressed(t *testing.T) {
	w, system := newPlacementWorld(t, 0)

	system.Update(PointerState{X: 60, Y: 50, Down: true})
	buttons := w.buttons(t)
	if !buttons[types.ButtonWaterGun].Pressed {
		t.Error("water gun button should be pressed")
	}
	if buttons[types.ButtonAcidTower].Pressed || buttons[types.ButtonSodaMaker].Pressed {
		t.Error("only the button under the pointer is pressed")
	}
	if buttons[types.ButtonWaterGun].Selected {
		t.Error("pressing alone must not select")
	}

	system.Update(PointerState{X: 600, Y: 400, Down: true})
	if w.buttons(t)[types.ButtonWaterGun].Pressed {
		t.Error("pressed flag should clear when the pointer leaves")
	}

	system.Update(PointerState{X: 60, Y: 50})
	if w.buttons(t)[types.ButtonWaterGun].Pressed {
		t.Error("pressed flag should clear when the pointer is up")
	}
}

func TestPlacement_CashNeverNegative(t *testing.T) {
	w, system := newPlacementWorld(t, 120)
	lifecycle := NewLifecycleSystem(w.em, w.gs, w.cfg)
	rng := rand.New(rand.NewPCG(7, 42))

	clicks := []PointerState{waterGunButton, acidTowerButton, sodaMakerButton}
	for step := 0; step < 2000; step++ {
		var pointer PointerState
		if rng.IntN(4) == 0 {
			pointer = clicks[rng.IntN(len(clicks))]
		} else {
			pointer = release(rng.Float64()*w.cfg.Field.Width, w.cfg.Field.ToolbarHeight+rng.Float64()*(w.cfg.Field.Height-w.cfg.Field.ToolbarHeight))
		}
		system.Update(pointer)
		lifecycle.Update()

		if w.gs.Cash() < 0 {
			t.Fatalf("cash went negative at step %d: %d", step, w.gs.Cash())
		}
		// 偶尔发放收入，让放置和升级持续发生
		if step%50 == 0 {
			w.gs.AddCash(20)
		}
	}
}
