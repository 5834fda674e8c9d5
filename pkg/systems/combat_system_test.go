package systems

import (
	"math"
	"testing"

	"github.com/decker502/waterguns/pkg/geom"
	"github.com/decker502/waterguns/pkg/types"
)

func TestCombat_CooldownExclusivity(t *testing.T) {
	w := newTestWorld(t, 0, 100)
	towerID := w.addTower(t, types.FamilyWaterGun, 500, 400)
	w.addPlane(t, types.PlaneBlimp, 450, 350) // 中心与塔重合附近，始终在射程内
	combat := NewCombatSystem(w.em)
	cooldown := w.tower(t, towerID).CooldownMs

	var hits []float64
	for tick := 0; tick < 600; tick++ {
		now := float64(tick) * tickMs
		if combat.Update(now) > 0 {
			hits = append(hits, now)
		}
	}

	if len(hits) < 2 {
		t.Fatalf("expected repeated fire, got %d shots", len(hits))
	}
	for i := 1; i < len(hits); i++ {
		if gap := hits[i] - hits[i-1]; gap <= cooldown {
			t.Errorf("shots %d and %d are %.1fms apart, cooldown is %.0fms", i-1, i, gap, cooldown)
		}
	}
	if hits[0] != 0 {
		t.Errorf("a fresh tower should fire on its first tick, first shot at %v", hits[0])
	}
}

func TestCombat_OneTargetPerWindow_FirstInOrderWins(t *testing.T) {
	w := newTestWorld(t, 0, 100)
	w.addTower(t, types.FamilyWaterGun, 500, 400)
	first := w.addPlane(t, types.PlaneBasic, 400, 375)
	second := w.addPlane(t, types.PlaneBasic, 550, 375)
	combat := NewCombatSystem(w.em)

	if shots := combat.Update(1000); shots != 1 {
		t.Fatalf("shots = %d, want 1", shots)
	}
	if w.hp(t, first) != 30 {
		t.Errorf("first plane hp = %d, want 30", w.hp(t, first))
	}
	if w.hp(t, second) != 40 {
		t.Errorf("second plane hp = %d, want 40 (untouched)", w.hp(t, second))
	}
}

func TestCombat_RangeIsStrict(t *testing.T) {
	w := newTestWorld(t, 0, 100)
	w.addTower(t, types.FamilyWaterGun, 500, 400)
	// 飞机中心 (700, 400)，距离恰好等于射程 200
	planeID := w.addPlane(t, types.PlaneBasic, 675, 375)
	combat := NewCombatSystem(w.em)

	if combat.Update(0) != 0 {
		t.Error("a plane exactly at range must not be hit")
	}
	if w.hp(t, planeID) != 40 {
		t.Errorf("hp = %d, want 40", w.hp(t, planeID))
	}
}

func TestCombat_DeletedTowerDoesNotFire(t *testing.T) {
	w := newTestWorld(t, 0, 100)
	towerID := w.addTower(t, types.FamilyWaterGun, 500, 400)
	w.addPlane(t, types.PlaneBasic, 475, 375)
	w.tower(t, towerID).Status = types.TowerDeleted

	if NewCombatSystem(w.em).Update(0) != 0 {
		t.Error("deleted tower fired")
	}
}

func TestCombat_HPMonotonicAndClamped(t *testing.T) {
	w := newTestWorld(t, 0, 100)
	w.addTower(t, types.FamilyAcidTower, 500, 400)
	w.addTower(t, types.FamilyWaterGun, 520, 400)
	planeID := w.addPlane(t, types.PlaneBullet, 475, 375)
	combat := NewCombatSystem(w.em)

	last := w.hp(t, planeID)
	for tick := 0; tick < 300; tick++ {
		combat.Update(float64(tick) * tickMs)
		hp := w.hp(t, planeID)
		if hp > last {
			t.Fatalf("hp increased from %d to %d at tick %d", last, hp, tick)
		}
		if hp < 0 {
			t.Fatalf("hp went negative: %d", hp)
		}
		last = hp
	}
	if last != 0 {
		t.Errorf("final hp = %d, want 0", last)
	}
}

func TestCombat_Resolve(t *testing.T) {
	w := newTestWorld(t, 0, 100)
	towerID := w.addTower(t, types.FamilySodaMaker, 500, 400)
	planeID := w.addPlane(t, types.PlaneBasic, 475, 300)
	combat := NewCombatSystem(w.em)

	if !combat.Resolve(towerID, 0) {
		t.Fatal("expected Resolve to fire")
	}
	if combat.Resolve(towerID, 300) {
		t.Error("fired again before cooldown elapsed (now - last must exceed cooldown)")
	}
	if !combat.Resolve(towerID, 301) {
		t.Error("expected fire once cooldown elapsed")
	}
	if w.hp(t, planeID) != 30 {
		t.Errorf("hp = %d, want 30", w.hp(t, planeID))
	}
	if w.tower(t, towerID).LastFiredAt != 301 {
		t.Errorf("LastFiredAt = %v, want 301", w.tower(t, towerID).LastFiredAt)
	}
}

func TestAimRotation(t *testing.T) {
	tower := geom.NewRectCentered(100, 100, 75, 75)

	tests := []struct {
		name  string
		plane geom.Rect
		want  float64
	}{
		{"目标在左侧", geom.NewRectCentered(0, 100, 50, 50), 1.5 * math.Pi},
		{"目标在右侧", geom.NewRectCentered(200, 100, 50, 50), 2.5 * math.Pi},
		{"目标在上方", geom.NewRectCentered(100, 0, 50, 50), 2 * math.Pi},
		{"目标在下方（镜像）", geom.NewRectCentered(100, 200, 50, 50), -math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aimRotation(tower, tt.plane, geom.CenterDistance(tower, tt.plane))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("rotation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombat_ZeroDistanceStillDamages(t *testing.T) {
	w := newTestWorld(t, 0, 100)
	towerID := w.addTower(t, types.FamilyWaterGun, 500, 400)
	planeID := w.addPlane(t, types.PlaneBasic, 475, 375) // 中心重合
	w.tower(t, towerID).Rotation = 1.25

	NewCombatSystem(w.em).Update(0)

	if w.hp(t, planeID) != 30 {
		t.Errorf("hp = %d, want 30", w.hp(t, planeID))
	}
	if w.tower(t, towerID).Rotation != 1.25 {
		t.Error("rotation should be kept when the target sits on the tower center")
	}
}

// 水枪（射程 200、伤害 10、冷却 700ms）迎面遇到一架 40 血、速度 1.7 的飞机：
// 四次命中后飞机被击落，玩家获得 5 金钱
func TestScenario_WaterGunHeadOn(t *testing.T) {
	w := newTestWorld(t, 0, 100)
	w.addTower(t, types.FamilyWaterGun, 700, 425)
	planeID := w.addPlane(t, types.PlaneBasic, 0, 400)

	combat := NewCombatSystem(w.em)
	movement := NewPathMovementSystem(w.em, geom.NewPath(400))
	lifecycle := NewLifecycleSystem(w.em, w.gs, w.cfg)

	shots, killed := 0, 0
	for tick := 0; tick < 1000 && killed == 0; tick++ {
		shots += combat.Update(float64(tick) * tickMs)
		movement.Update()
		killed += lifecycle.Update().Killed
	}

	if killed != 1 {
		t.Fatalf("plane was not shot down (shots=%d)", shots)
	}
	if shots != 4 {
		t.Errorf("shots = %d, want 4", shots)
	}
	if w.em.IsAlive(planeID) {
		t.Error("plane should be removed after being shot down")
	}
	if w.gs.Cash() != 5 {
		t.Errorf("cash = %d, want 5 (bounty)", w.gs.Cash())
	}
}
