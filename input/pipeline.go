package input

import "github.com/stormline/arena/engine"

// Validator is the simulation-side collaborator InputPipeline consults
// before applying an input. It is injected rather than baked in,
// since registry/visibility state belongs to the Simulation, not the
// pipeline.
type Validator interface {
	// TargetValid reports whether target is a legal target for viewer:
	// alive and visible to viewer's team.
	TargetValid(viewer engine.PlayerID, target engine.EntityID) bool
	// AbilityUsable reports whether viewer's ability in slot is off
	// cooldown and affordable.
	AbilityUsable(viewer engine.PlayerID, slot int) bool
	// ClampToNavigable rewrites dest to the nearest point inside the
	// navigable map, or returns it unchanged if already inside.
	ClampToNavigable(dest engine.Vec2) engine.Vec2
}

// Apply receives one input that passed sequencing and validation.
type Apply func(player engine.PlayerID, in ClientInput)

type pending struct {
	input   ClientInput
	arrival engine.Tick
}

type queue struct {
	lastApplied uint32
	hasApplied  bool
	pendingSeqs map[uint32]pending

	windowStart engine.Tick
	windowCount int
}

// Pipeline holds one ordered queue per player.
type Pipeline struct {
	queues map[engine.PlayerID]*queue

	rateLimitPerSecond int
	ticksPerSecond     int
	bufferWindowTicks  engine.Ticks

	onDropped func(player engine.PlayerID, reason string)
}

// NewPipeline creates a Pipeline. rateLimitPerSecond and bufferWindow are
// from the per-match Config.
func NewPipeline(rateLimitPerSecond int, ticksPerSecond int, bufferWindow engine.Ticks) *Pipeline {
	return &Pipeline{
		queues:             make(map[engine.PlayerID]*queue),
		rateLimitPerSecond: rateLimitPerSecond,
		ticksPerSecond:     ticksPerSecond,
		bufferWindowTicks:  bufferWindow,
	}
}

// OnDropped registers a debug-log hook invoked whenever an input is
// dropped, with the reason: stale seq, rate limit overflow, window
// expiry, or a validator rejection. Dropped inputs are only reported to
// this hook, never surfaced as an error.
func (p *Pipeline) OnDropped(fn func(player engine.PlayerID, reason string)) {
	p.onDropped = fn
}

func (p *Pipeline) drop(player engine.PlayerID, reason string) {
	if p.onDropped != nil {
		p.onDropped(player, reason)
	}
}

func (p *Pipeline) queueFor(player engine.PlayerID) *queue {
	q, ok := p.queues[player]
	if !ok {
		q = &queue{pendingSeqs: make(map[uint32]pending)}
		p.queues[player] = q
	}
	return q
}

// Enqueue buffers in for later draining, subject to the rate limit and
// stale-seq rejection below.
func (p *Pipeline) Enqueue(player engine.PlayerID, in ClientInput, tick engine.Tick) {
	q := p.queueFor(player)

	if q.hasApplied && in.Seq <= q.lastApplied {
		p.drop(player, "stale-seq")
		return
	}

	windowTicks := p.ticksPerSecond
	if windowTicks <= 0 {
		windowTicks = 1
	}
	if uint64(tick-q.windowStart) >= uint64(windowTicks) {
		q.windowStart = tick
		q.windowCount = 0
	}
	if p.rateLimitPerSecond > 0 && q.windowCount >= p.rateLimitPerSecond {
		p.drop(player, "rate-limit")
		return
	}
	q.windowCount++

	q.pendingSeqs[in.Seq] = pending{input: in, arrival: tick}
}

// Disconnect clears a player's queue and ack state.
func (p *Pipeline) Disconnect(player engine.PlayerID) {
	delete(p.queues, player)
}

// LastApplied returns the highest seq this player's queue has applied.
// The serializer attaches this to each outgoing StateUpdate as the ack map.
func (p *Pipeline) LastApplied(player engine.PlayerID) (uint32, bool) {
	q, ok := p.queues[player]
	if !ok {
		return 0, false
	}
	return q.lastApplied, q.hasApplied
}

// AckMap snapshots LastApplied for every tracked player.
func (p *Pipeline) AckMap() map[engine.PlayerID]uint32 {
	out := make(map[engine.PlayerID]uint32, len(p.queues))
	for player, q := range p.queues {
		if q.hasApplied {
			out[player] = q.lastApplied
		}
	}
	return out
}

// Drain applies every input ready for player in seq order, validating and
// rewriting each via v before handing it to apply. Inputs stuck behind a
// gap longer than the buffering window are given up on.
func (p *Pipeline) Drain(player engine.PlayerID, tick engine.Tick, v Validator, apply Apply) {
	q, ok := p.queues[player]
	if !ok || len(q.pendingSeqs) == 0 {
		return
	}

	p.expireStaleGap(player, q, tick)

	for {
		next := q.lastApplied + 1
		if !q.hasApplied {
			next = p.earliestSeq(q)
		}
		pend, ok := q.pendingSeqs[next]
		if !ok {
			return
		}
		delete(q.pendingSeqs, next)
		q.lastApplied = next
		q.hasApplied = true

		p.validateAndApply(player, pend.input, v, apply)
	}
}

func (p *Pipeline) earliestSeq(q *queue) uint32 {
	var min uint32
	first := true
	for seq := range q.pendingSeqs {
		if first || seq < min {
			min = seq
			first = false
		}
	}
	return min
}

// expireStaleGap gives up on a missing seq once the oldest buffered input
// has waited longer than the window, jumping lastApplied forward so the
// contiguous run behind it can proceed.
func (p *Pipeline) expireStaleGap(player engine.PlayerID, q *queue, tick engine.Tick) {
	if len(q.pendingSeqs) == 0 {
		return
	}
	oldestSeq, oldestArrival := uint32(0), engine.Tick(0)
	first := true
	for seq, pend := range q.pendingSeqs {
		if first || pend.arrival < oldestArrival {
			oldestSeq, oldestArrival = seq, pend.arrival
			first = false
		}
	}

	expected := q.lastApplied + 1
	if !q.hasApplied {
		return // nothing applied yet, nothing to gap against
	}
	if oldestSeq <= expected {
		return // no gap
	}
	if uint64(tick-oldestArrival) < uint64(p.bufferWindowTicks) {
		return // window not elapsed yet
	}

	p.drop(player, "buffer-window-expired")
	q.lastApplied = oldestSeq - 1
}

func (p *Pipeline) validateAndApply(player engine.PlayerID, in ClientInput, v Validator, apply Apply) {
	if v != nil {
		switch in.Type {
		case PayloadTargetUnit, PayloadCastAbility:
			if in.Payload.Target != engine.EntityIDInvalid && !v.TargetValid(player, in.Payload.Target) {
				p.drop(player, "target-no-longer-valid")
				return
			}
		}
		if in.Type == PayloadCastAbility {
			if !v.AbilityUsable(player, in.Payload.Slot) {
				p.drop(player, "rule-rejection")
				return
			}
		}
		if in.Type == PayloadMove || in.Type == PayloadAttackMove || in.Type == PayloadPlaceWard {
			in.Payload.Destination = v.ClampToNavigable(in.Payload.Destination)
		}
	}
	apply(player, in)
}
