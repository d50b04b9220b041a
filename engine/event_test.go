package engine

import "testing"

func TestEventBus_DrainPreservesOrderAndClears(t *testing.T) {
	var bus EventBus
	bus.Emit(Event{Type: EventDamage, EntityID: 1})
	bus.Emit(Event{Type: EventChampionKill, EntityID: 2})

	if bus.Len() != 2 {
		t.Fatalf("expected 2 pending events, got %d", bus.Len())
	}

	drained := bus.Drain()
	if len(drained) != 2 || drained[0].EntityID != 1 || drained[1].EntityID != 2 {
		t.Fatalf("expected generation order preserved, got %+v", drained)
	}
	if bus.Len() != 0 {
		t.Fatalf("expected bus to be empty after drain, got %d", bus.Len())
	}
	if bus.Drain() != nil {
		t.Fatalf("expected nil from draining an empty bus")
	}
}

func TestEventBus_EmitTagsReliability(t *testing.T) {
	var bus EventBus
	bus.Emit(Event{Type: EventLevelUp})
	bus.Emit(Event{Type: EventDamage})

	drained := bus.Drain()
	if !drained[0].Reliable {
		t.Fatalf("expected level-up to be tagged reliable")
	}
	if drained[1].Reliable {
		t.Fatalf("expected damage to be tagged unreliable")
	}
}
