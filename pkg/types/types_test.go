package types

import "testing"

func TestParseTowerFamily(t *testing.T) {
	tests := []struct {
		in   string
		want TowerFamily
		ok   bool
	}{
		{"waterGun", FamilyWaterGun, true},
		{"WATERGUN", FamilyWaterGun, true},
		{" acidTower ", FamilyAcidTower, true},
		{"sodamaker", FamilySodaMaker, true},
		{"cannon", FamilyUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseTowerFamily(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTowerFamily(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestButtonFamilyRoundTrip(t *testing.T) {
	for _, f := range []TowerFamily{FamilyWaterGun, FamilyAcidTower, FamilySodaMaker} {
		b := ButtonForFamily(f)
		got, ok := b.Family()
		if !ok || got != f {
			t.Errorf("ButtonForFamily(%v).Family() = %v, %v", f, got, ok)
		}
	}

	if _, ok := ButtonUpgrade.Family(); ok {
		t.Error("Upgrade button should not map to a family")
	}
	if ButtonForFamily(FamilyUnknown) != ButtonOther {
		t.Error("unknown family should map to ButtonOther")
	}
}

func TestParseDirectionAndPlaneKind(t *testing.T) {
	if d, ok := ParseDirection("Up"); !ok || d != DirectionUp {
		t.Errorf("ParseDirection(Up) = %v, %v", d, ok)
	}
	if _, ok := ParseDirection("north"); ok {
		t.Error("north should not parse")
	}
	if k, ok := ParsePlaneKind("blimp"); !ok || k != PlaneBlimp {
		t.Errorf("ParsePlaneKind(blimp) = %v, %v", k, ok)
	}
	if PlaneBullet.String() != "Bullet" {
		t.Errorf("PlaneBullet.String() = %s", PlaneBullet.String())
	}
}

func TestParseButtonKind(t *testing.T) {
	if b, ok := ParseButtonKind("Upgrade"); !ok || b != ButtonUpgrade {
		t.Errorf("ParseButtonKind(Upgrade) = %v, %v", b, ok)
	}
	if b, ok := ParseButtonKind(""); !ok || b != ButtonOther {
		t.Errorf("empty kind should default to Other, got %v, %v", b, ok)
	}
	if _, ok := ParseButtonKind("launch"); ok {
		t.Error("unknown kind should not parse")
	}
}
