package spatial

import "testing"

func TestGrid_InsertQueryRemove(t *testing.T) {
	g := New(100)
	g.Insert(1, 0, 0)
	g.Insert(2, 1000, 1000)

	found := map[uint32]bool{}
	g.QueryRadius(0, 0, 50, func(id uint32, _, _, _ float32) {
		found[id] = true
	})
	if !found[1] || found[2] {
		t.Fatalf("expected only id 1 nearby, got %v", found)
	}

	g.Remove(1)
	found = map[uint32]bool{}
	g.QueryRadius(0, 0, 50, func(id uint32, _, _, _ float32) {
		found[id] = true
	})
	if len(found) != 0 {
		t.Fatalf("expected empty result after remove, got %v", found)
	}
}

func TestGrid_QueryRadiusBoundaryInclusive(t *testing.T) {
	g := New(50)
	g.Insert(1, 100, 0)

	found := false
	g.QueryRadius(0, 0, 100, func(id uint32, _, _, _ float32) {
		if id == 1 {
			found = true
		}
	})
	if !found {
		t.Fatalf("expected exact-boundary entity to be included")
	}
}

func TestGrid_MoveAcrossCellBoundary(t *testing.T) {
	g := New(10)
	g.Insert(1, 0, 0)
	g.Move(1, 1000, 1000)

	found := false
	g.QueryRadius(0, 0, 50, func(id uint32, _, _, _ float32) {
		found = true
	})
	if found {
		t.Fatalf("expected entity to have moved out of original cell's query range")
	}

	found = false
	g.QueryRadius(1000, 1000, 50, func(id uint32, _, _, _ float32) {
		if id == 1 {
			found = true
		}
	})
	if !found {
		t.Fatalf("expected entity to be found at new position")
	}
	if g.Count() != 1 {
		t.Fatalf("expected count to remain 1 after move, got %d", g.Count())
	}
}

func TestGrid_MoveWithinSameCell(t *testing.T) {
	g := New(1000)
	g.Insert(1, 0, 0)
	g.Move(1, 5, 5)

	if g.Count() != 1 {
		t.Fatalf("expected count unchanged, got %d", g.Count())
	}

	found := false
	g.QueryRadius(5, 5, 1, func(id uint32, _, _, _ float32) {
		if id == 1 {
			found = true
		}
	})
	if !found {
		t.Fatalf("expected updated position to be reflected in query")
	}
}

func TestGrid_NegativeCoordinates(t *testing.T) {
	g := New(100)
	g.Insert(1, -150, -150)

	found := false
	g.QueryRadius(-150, -150, 10, func(id uint32, _, _, _ float32) {
		if id == 1 {
			found = true
		}
	})
	if !found {
		t.Fatalf("expected negative-coordinate entity to be found")
	}
}
