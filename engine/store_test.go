package engine

import (
	"testing"

	"github.com/lixenwraith/arsenal/core"
)

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore[string]()
	s.SetComponent(core.Entity(3), "c")
	s.SetComponent(core.Entity(1), "a")
	s.SetComponent(core.Entity(2), "b")
	s.SetComponent(core.Entity(1), "a2")

	got := s.GetAllEntities()
	want := []core.Entity{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
	if v, _ := s.GetComponent(1); v != "a2" {
		t.Errorf("Expected replaced value a2, got %q", v)
	}

	s.RemoveEntity(1)
	s.RemoveEntity(42)
	if s.HasEntity(1) || s.CountEntities() != 2 {
		t.Errorf("Expected entity 1 removed, count %d", s.CountEntities())
	}

	var seen []core.Entity
	s.Range(func(e core.Entity, _ string) bool {
		seen = append(seen, e)
		return false
	})
	if len(seen) != 1 || seen[0] != 3 {
		t.Errorf("Expected Range to stop after first entity, got %v", seen)
	}

	s.ClearAllComponents()
	if s.CountEntities() != 0 {
		t.Errorf("Expected empty store, got %d", s.CountEntities())
	}
}
