package ecs

import (
	"reflect"
	"testing"
)

type testPosition struct {
	X, Y float64
}

type testHealth struct {
	HP int
}

type testTag struct{}

func TestCreateEntity_IDsStartAtOne(t *testing.T) {
	em := NewEntityManager()

	first := em.CreateEntity()
	second := em.CreateEntity()

	if first != 1 || second != 2 {
		t.Errorf("ids = (%d, %d), want (1, 2)", first, second)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestComponents_ReflectAndGenericAgree(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPosition{X: 1, Y: 2})

	t.Run("反射接口可以读到泛型写入的组件", func(t *testing.T) {
		raw, ok := em.GetComponent(id, reflect.TypeOf(&testPosition{}))
		if !ok {
			t.Fatal("component not found via reflect API")
		}
		if raw.(*testPosition).Y != 2 {
			t.Errorf("Y = %v, want 2", raw.(*testPosition).Y)
		}
	})

	t.Run("泛型接口返回同一指针", func(t *testing.T) {
		pos, ok := GetComponent[*testPosition](em, id)
		if !ok {
			t.Fatal("component not found via generic API")
		}
		pos.X = 42
		again, _ := GetComponent[*testPosition](em, id)
		if again.X != 42 {
			t.Error("expected mutation through pointer to be visible")
		}
	})

	t.Run("缺失组件返回零值", func(t *testing.T) {
		hp, ok := GetComponent[*testHealth](em, id)
		if ok || hp != nil {
			t.Errorf("GetComponent = (%v, %v), want (nil, false)", hp, ok)
		}
		if HasComponent[*testHealth](em, id) {
			t.Error("HasComponent should be false")
		}
	})

	t.Run("移除组件", func(t *testing.T) {
		RemoveComponent[*testPosition](em, id)
		if HasComponent[*testPosition](em, id) {
			t.Error("component should be removed")
		}
	})
}

func TestAddComponent_UnknownEntityIgnored(t *testing.T) {
	em := NewEntityManager()
	AddComponent(em, EntityID(99), &testTag{})

	if em.IsAlive(99) {
		t.Error("adding a component must not create an entity")
	}
}

func TestGetEntitiesWith_CreationOrder(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPosition{X: float64(i)})
		if i%3 == 0 {
			AddComponent(em, id, &testHealth{HP: i})
			want = append(want, id)
		}
	}

	// 多次查询顺序必须一致且与创建顺序相同
	for round := 0; round < 5; round++ {
		got := GetEntitiesWith2[*testPosition, *testHealth](em)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: got %v, want %v", round, got, want)
		}
	}
}

func TestDestroyEntity_Deferred(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	b := em.CreateEntity()
	c := em.CreateEntity()
	for _, id := range []EntityID{a, b, c} {
		AddComponent(em, id, &testTag{})
	}

	em.DestroyEntity(b)
	em.DestroyEntity(b)

	if !em.IsAlive(b) {
		t.Fatal("entity should stay alive until RemoveMarkedEntities")
	}
	if !em.IsMarkedForDestroy(b) {
		t.Error("entity should be marked")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("removed = %d, want 1 (duplicate marks collapse)", removed)
	}
	if em.IsAlive(b) {
		t.Error("entity should be gone after cleanup")
	}

	got := GetEntitiesWith1[*testTag](em)
	if !reflect.DeepEqual(got, []EntityID{a, c}) {
		t.Errorf("remaining = %v, want [%d %d]", got, a, c)
	}

	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("second cleanup removed %d, want 0", removed)
	}
}

func TestDestroyEntity_UnknownIgnored(t *testing.T) {
	em := NewEntityManager()
	em.DestroyEntity(7)
	if em.RemoveMarkedEntities() != 0 {
		t.Error("destroying an unknown entity must be a no-op")
	}
}

func TestGetEntitiesWith3(t *testing.T) {
	em := NewEntityManager()
	full := em.CreateEntity()
	AddComponent(em, full, &testPosition{})
	AddComponent(em, full, &testHealth{})
	AddComponent(em, full, &testTag{})

	partial := em.CreateEntity()
	AddComponent(em, partial, &testPosition{})
	AddComponent(em, partial, &testHealth{})

	got := GetEntitiesWith3[*testPosition, *testHealth, *testTag](em)
	if len(got) != 1 || got[0] != full {
		t.Errorf("got %v, want [%d]", got, full)
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 1000; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPosition{})
		if i%2 == 0 {
			AddComponent(em, id, &testHealth{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPosition, *testHealth](em)
	}
}
