package reliable

import (
	"testing"

	"github.com/stormline/arena/engine"
)

func TestQueue_MonotonicIDs(t *testing.T) {
	q := NewQueue(10, 2, 160, 5)
	a := q.Enqueue(engine.Event{Type: engine.EventLevelUp}, []engine.PlayerID{1}, 0)
	b := q.Enqueue(engine.Event{Type: engine.EventFirstBlood}, []engine.PlayerID{1}, 0)
	if b.ID <= a.ID {
		t.Fatalf("expected monotonically increasing event ids, got %d then %d", a.ID, b.ID)
	}
}

func TestQueue_DueRespectsResendSchedule(t *testing.T) {
	q := NewQueue(10, 2, 160, 5)
	q.Enqueue(engine.Event{Type: engine.EventLevelUp}, []engine.PlayerID{1}, 0)

	if len(q.Due(1, 0)) != 1 {
		t.Fatalf("expected event due immediately on first tick")
	}
	if len(q.Due(1, 5)) != 0 {
		t.Fatalf("expected event to not be due before the resend interval elapses")
	}
	if len(q.Due(1, 10)) != 1 {
		t.Fatalf("expected event due again once the resend interval elapses")
	}
}

func TestQueue_GeometricBackoffGrows(t *testing.T) {
	q := NewQueue(10, 2, 1000, 10)
	q.Enqueue(engine.Event{Type: engine.EventLevelUp}, []engine.PlayerID{1}, 0)

	q.Due(1, 0)   // attempt 1, next due at 0+10=10
	q.Due(1, 10)  // attempt 2, next due at 10+20=30
	if len(q.Due(1, 29)) != 0 {
		t.Fatalf("expected backoff to have grown past tick 29")
	}
	if len(q.Due(1, 30)) != 1 {
		t.Fatalf("expected event due at tick 30 after geometric backoff")
	}
}

func TestQueue_DueIsSortedByEventID(t *testing.T) {
	q := NewQueue(10, 2, 160, 5)
	var want []uint64
	for i := 0; i < 20; i++ {
		ev := q.Enqueue(engine.Event{Type: engine.EventLevelUp}, []engine.PlayerID{1}, 0)
		want = append(want, ev.ID)
	}

	for attempt := 0; attempt < 3; attempt++ {
		due := q.Due(1, 1000*engine.Tick(attempt+1))
		if len(due) != len(want) {
			t.Fatalf("attempt %d: expected %d due events, got %d", attempt, len(want), len(due))
		}
		for i, ev := range due {
			if ev.ID != want[i] {
				t.Fatalf("attempt %d: expected ascending eventId order, got %d at index %d (want %d)", attempt, ev.ID, i, want[i])
			}
		}
	}
}

func TestQueue_AckDropsAcknowledged(t *testing.T) {
	q := NewQueue(10, 2, 160, 5)
	e1 := q.Enqueue(engine.Event{Type: engine.EventLevelUp}, []engine.PlayerID{1}, 0)
	e2 := q.Enqueue(engine.Event{Type: engine.EventFirstBlood}, []engine.PlayerID{1}, 0)

	q.Ack(1, e1.ID)

	due := q.Due(1, 1000)
	if len(due) != 1 || due[0].ID != e2.ID {
		t.Fatalf("expected only the unacked event to remain, got %+v", due)
	}
}

func TestQueue_AttemptCapDropsAndReports(t *testing.T) {
	q := NewQueue(1, 1, 1, 2)
	var dropped []uint64
	q.OnDropped(func(_ engine.PlayerID, eventID uint64, _ string) {
		dropped = append(dropped, eventID)
	})

	e := q.Enqueue(engine.Event{Type: engine.EventLevelUp}, []engine.PlayerID{1}, 0)
	q.Due(1, 0) // attempt 1
	q.Due(1, 1) // attempt 2 -> hits cap, dropped

	if len(dropped) != 1 || dropped[0] != e.ID {
		t.Fatalf("expected event to be dropped after attempt cap, got %v", dropped)
	}
	if q.Pending(1) != 0 {
		t.Fatalf("expected no pending events after cap drop, got %d", q.Pending(1))
	}
}

func TestQueue_DisconnectClearsState(t *testing.T) {
	q := NewQueue(10, 2, 160, 5)
	q.Enqueue(engine.Event{Type: engine.EventLevelUp}, []engine.PlayerID{1}, 0)
	q.Disconnect(1)
	if q.Pending(1) != 0 {
		t.Fatalf("expected disconnect to clear pending events")
	}
}
