package input

import (
	"testing"

	"github.com/stormline/arena/engine"
)

type fakeValidator struct {
	targetsValid map[engine.EntityID]bool
	abilitiesOK  bool
	clampTo      *engine.Vec2
}

func (f *fakeValidator) TargetValid(_ engine.PlayerID, target engine.EntityID) bool {
	return f.targetsValid[target]
}

func (f *fakeValidator) AbilityUsable(_ engine.PlayerID, _ int) bool { return f.abilitiesOK }

func (f *fakeValidator) ClampToNavigable(dest engine.Vec2) engine.Vec2 {
	if f.clampTo != nil {
		return *f.clampTo
	}
	return dest
}

func TestPipeline_OrdersBySeq(t *testing.T) {
	p := NewPipeline(1000, engine.TickRate, 50)
	player := engine.PlayerID(1)

	p.Enqueue(player, ClientInput{Seq: 2, Type: PayloadStop}, 0)
	p.Enqueue(player, ClientInput{Seq: 1, Type: PayloadStop}, 0)
	p.Enqueue(player, ClientInput{Seq: 3, Type: PayloadStop}, 0)

	var applied []uint32
	p.Drain(player, 0, nil, func(_ engine.PlayerID, in ClientInput) {
		applied = append(applied, in.Seq)
	})

	if len(applied) != 3 || applied[0] != 1 || applied[1] != 2 || applied[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", applied)
	}
}

func TestPipeline_StaleSeqDropped(t *testing.T) {
	p := NewPipeline(1000, engine.TickRate, 50)
	player := engine.PlayerID(1)

	p.Enqueue(player, ClientInput{Seq: 1, Type: PayloadStop}, 0)
	p.Drain(player, 0, nil, func(engine.PlayerID, ClientInput) {})

	var applied []uint32
	p.Enqueue(player, ClientInput{Seq: 1, Type: PayloadStop}, 1)
	p.Drain(player, 1, nil, func(_ engine.PlayerID, in ClientInput) {
		applied = append(applied, in.Seq)
	})
	if len(applied) != 0 {
		t.Fatalf("expected stale seq to be dropped, got %v", applied)
	}

	last, ok := p.LastApplied(player)
	if !ok || last != 1 {
		t.Fatalf("expected lastApplied 1, got %v ok=%v", last, ok)
	}
}

func TestPipeline_RateLimitDropsOverflow(t *testing.T) {
	p := NewPipeline(2, engine.TickRate, 50)
	player := engine.PlayerID(1)

	var dropped []string
	p.OnDropped(func(_ engine.PlayerID, reason string) { dropped = append(dropped, reason) })

	p.Enqueue(player, ClientInput{Seq: 1, Type: PayloadStop}, 0)
	p.Enqueue(player, ClientInput{Seq: 2, Type: PayloadStop}, 0)
	p.Enqueue(player, ClientInput{Seq: 3, Type: PayloadStop}, 0)

	var applied []uint32
	p.Drain(player, 0, nil, func(_ engine.PlayerID, in ClientInput) {
		applied = append(applied, in.Seq)
	})

	if len(applied) != 2 {
		t.Fatalf("expected only 2 inputs within rate limit, got %v", applied)
	}
	found := false
	for _, r := range dropped {
		if r == "rate-limit" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a rate-limit drop to be reported, got %v", dropped)
	}
}

func TestPipeline_BufferWindowExpiryJumpsForward(t *testing.T) {
	p := NewPipeline(1000, engine.TickRate, 10)
	player := engine.PlayerID(1)

	p.Enqueue(player, ClientInput{Seq: 1, Type: PayloadStop}, 0)
	p.Drain(player, 0, nil, func(engine.PlayerID, ClientInput) {})

	// seq 2 never arrives; seq 3 arrives and sits past the window.
	p.Enqueue(player, ClientInput{Seq: 3, Type: PayloadStop}, 1)

	var applied []uint32
	p.Drain(player, 20, nil, func(_ engine.PlayerID, in ClientInput) {
		applied = append(applied, in.Seq)
	})

	if len(applied) != 1 || applied[0] != 3 {
		t.Fatalf("expected seq 3 to be applied after window expiry, got %v", applied)
	}
}

func TestPipeline_ValidationRejectsInvalidTarget(t *testing.T) {
	p := NewPipeline(1000, engine.TickRate, 10)
	player := engine.PlayerID(1)
	v := &fakeValidator{targetsValid: map[engine.EntityID]bool{}}

	p.Enqueue(player, ClientInput{Seq: 1, Type: PayloadTargetUnit, Payload: Payload{Target: engine.EntityID(7)}}, 0)

	applyCount := 0
	p.Drain(player, 0, v, func(engine.PlayerID, ClientInput) { applyCount++ })

	if applyCount != 0 {
		t.Fatalf("expected target-invalid input to be rejected, applied %d times", applyCount)
	}
	last, ok := p.LastApplied(player)
	if !ok || last != 1 {
		t.Fatalf("expected ack to still advance past a silently rejected input, got %v ok=%v", last, ok)
	}
}

func TestPipeline_MovementClamped(t *testing.T) {
	p := NewPipeline(1000, engine.TickRate, 10)
	player := engine.PlayerID(1)
	clamped := engine.Vec2{X: 100, Y: 100}
	v := &fakeValidator{clampTo: &clamped}

	p.Enqueue(player, ClientInput{Seq: 1, Type: PayloadMove, Payload: Payload{Destination: engine.Vec2{X: 99999, Y: 99999}}}, 0)

	var got engine.Vec2
	p.Drain(player, 0, v, func(_ engine.PlayerID, in ClientInput) {
		got = in.Payload.Destination
	})

	if got != clamped {
		t.Fatalf("expected destination to be clamped to %v, got %v", clamped, got)
	}
}
