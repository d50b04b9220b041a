package engine

import "testing"

func TestRegistry_AddGetRemove(t *testing.T) {
	r := NewRegistry(500)

	e := &Entity{Kind: EntityKindChampion, Position: Vec2{X: 1, Y: 2}}
	id, err := r.Add(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == EntityIDInvalid {
		t.Fatalf("expected a valid id")
	}

	if got := r.Get(id); got != e {
		t.Fatalf("expected Get to return the same entity")
	}

	r.Remove(id)
	if got := r.Get(id); got != nil {
		t.Fatalf("expected nil after remove, got %v", got)
	}

	removals := r.DrainRemovals()
	if len(removals) != 1 || removals[0].EntityID != id {
		t.Fatalf("expected one removal event for %v, got %v", id, removals)
	}
}

func TestRegistry_DuplicateId(t *testing.T) {
	r := NewRegistry(500)
	e1 := &Entity{ID: 5, Kind: EntityKindTower}
	if _, err := r.Add(e1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e2 := &Entity{ID: 5, Kind: EntityKindTower}
	if _, err := r.Add(e2); err == nil {
		t.Fatalf("expected DuplicateId error")
	}
}

func TestRegistry_IdsNeverReused(t *testing.T) {
	r := NewRegistry(500)
	seen := make(map[EntityID]bool)

	for i := 0; i < 50; i++ {
		e := &Entity{Kind: EntityKindMinion}
		id, _ := r.Add(e)
		if seen[id] {
			t.Fatalf("id %v reused", id)
		}
		seen[id] = true
		r.Remove(id)
	}
}

func TestRegistry_ByKindStableOrder(t *testing.T) {
	r := NewRegistry(500)
	var ids []EntityID
	for i := 0; i < 5; i++ {
		id, _ := r.Add(&Entity{Kind: EntityKindMinion})
		ids = append(ids, id)
	}

	var iterated []EntityID
	r.ByKind(EntityKindMinion, func(e *Entity) {
		iterated = append(iterated, e.ID)
	})

	if len(iterated) != len(ids) {
		t.Fatalf("expected %d entities, got %d", len(ids), len(iterated))
	}
	for i := range ids {
		if ids[i] != iterated[i] {
			t.Fatalf("expected insertion order, got %v want %v", iterated, ids)
		}
	}
}

func TestRegistry_SpatialQuery(t *testing.T) {
	r := NewRegistry(100)
	near, _ := r.Add(&Entity{Kind: EntityKindChampion, Position: Vec2{X: 10, Y: 0}})
	far, _ := r.Add(&Entity{Kind: EntityKindChampion, Position: Vec2{X: 10000, Y: 0}})

	found := map[EntityID]bool{}
	r.SpatialQuery(Vec2{X: 0, Y: 0}, 50, func(e *Entity, _ float32) {
		found[e.ID] = true
	})

	if !found[near] {
		t.Fatalf("expected nearby entity to be found")
	}
	if found[far] {
		t.Fatalf("expected far entity to be excluded")
	}
}
