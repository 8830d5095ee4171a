package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testBoxComponent struct {
	X, Y, W, H float64
}

type testScaleComponent struct {
	Scale float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}

	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestReflectAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	boxType := reflect.TypeOf(&testBoxComponent{})

	if em.HasComponent(id, boxType) {
		t.Fatal("Should not have component before adding")
	}

	em.AddComponent(id, &testBoxComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, boxType)
	if !found {
		t.Fatal("Component should be found")
	}
	if box := comp.(*testBoxComponent); box.X != 100 || box.Y != 200 {
		t.Errorf("Component data mismatch, got (%f, %f)", box.X, box.Y)
	}

	em.RemoveComponent(id, boxType)
	if em.HasComponent(id, boxType) {
		t.Error("Component should be removed")
	}
}

// TestGenericAPI 泛型 API 与反射 API 共用同一份存储
func TestGenericAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testScaleComponent{Scale: 0.8})

	if !HasComponent[*testScaleComponent](em, id) {
		t.Fatal("HasComponent 应返回 true")
	}
	if HasComponent[*testBoxComponent](em, id) {
		t.Fatal("HasComponent 应返回 false（组件不存在）")
	}

	comp, ok := GetComponent[*testScaleComponent](em, id)
	if !ok || comp.Scale != 0.8 {
		t.Fatalf("GetComponent 返回值不正确: %+v, %v", comp, ok)
	}

	// 反射 API 能看到泛型 API 添加的组件
	if !em.HasComponent(id, reflect.TypeOf(&testScaleComponent{})) {
		t.Error("反射 API 应能查到泛型添加的组件")
	}

	// 修改指针组件后再次读取
	comp.Scale = 1
	again, _ := GetComponent[*testScaleComponent](em, id)
	if again.Scale != 1 {
		t.Error("组件应以指针形式共享")
	}

	RemoveComponent[*testScaleComponent](em, id)
	if _, ok := GetComponent[*testScaleComponent](em, id); ok {
		t.Error("RemoveComponent 后组件不应存在")
	}

	if _, ok := GetComponent[*testScaleComponent](em, 999); ok {
		t.Error("不存在的实体应返回 false")
	}
}

// TestGetEntitiesWith_DocumentOrder 查询结果按创建顺序排列
func TestGetEntitiesWith_DocumentOrder(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testBoxComponent{X: float64(i)})
		if i%3 == 0 {
			AddComponent(em, id, &testScaleComponent{Scale: 1})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testBoxComponent, *testScaleComponent](em)
	if len(got) != len(want) {
		t.Fatalf("Expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	all := GetEntitiesWith1[*testBoxComponent](em)
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatal("GetEntitiesWith1 结果未排序")
		}
	}
}

func TestDestroyAndClear(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()
	for _, id := range []EntityID{id1, id2, id3} {
		AddComponent(em, id, &testBoxComponent{})
	}

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理前实体仍存在
	if !HasComponent[*testBoxComponent](em, id1) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if HasComponent[*testBoxComponent](em, id1) || HasComponent[*testBoxComponent](em, id3) {
		t.Error("id1 and id3 should be removed")
	}
	if !HasComponent[*testBoxComponent](em, id2) {
		t.Error("id2 should still exist")
	}

	em.Clear()
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities after Clear, got %d", em.EntityCount())
	}
	if next := em.CreateEntity(); next <= id3 {
		t.Errorf("ID 计数不应重置, got %d", next)
	}
}
