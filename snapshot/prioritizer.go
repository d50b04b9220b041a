package snapshot

import "github.com/stormline/arena/engine"

// Prioritizer decides which visible entities are eligible for this tick's
// update, per viewer. It is a bandwidth-saving performance lever, not a
// correctness requirement: Serializer can be constructed with a nil
// Prioritizer to always include everything.
type Prioritizer struct {
	nearRadius, midRadius float32
	due                   map[engine.PlayerID]map[engine.EntityID]engine.Tick
}

// NewPrioritizer creates a Prioritizer with the configured near/mid
// proximity radii. Beyond midRadius is the "far" tier (every 4th tick).
func NewPrioritizer(nearRadius, midRadius float32) *Prioritizer {
	return &Prioritizer{
		nearRadius: nearRadius,
		midRadius:  midRadius,
		due:        make(map[engine.PlayerID]map[engine.EntityID]engine.Tick),
	}
}

func (p *Prioritizer) cadence(distSq float32) engine.Tick {
	switch {
	case distSq <= p.nearRadius*p.nearRadius:
		return 1
	case distSq <= p.midRadius*p.midRadius:
		return 2
	default:
		return 4
	}
}

// Eligible reports whether id is due for evaluation this tick for viewer.
// The viewer's own entity and any critical-state change (caller-determined:
// health crossing thresholds, death, targeting change) always override the
// cadence.
func (p *Prioritizer) Eligible(viewer engine.PlayerID, id engine.EntityID, tick engine.Tick, isViewerEntity, critical bool) bool {
	if isViewerEntity || critical {
		return true
	}
	m := p.due[viewer]
	if m == nil {
		return true
	}
	due, scheduled := m[id]
	return !scheduled || tick >= due
}

// MarkSent records that id was evaluated this tick for viewer, scheduling
// its next eligible tick per the proximity-derived cadence.
func (p *Prioritizer) MarkSent(viewer engine.PlayerID, id engine.EntityID, tick engine.Tick, distSq float32) {
	m := p.due[viewer]
	if m == nil {
		m = make(map[engine.EntityID]engine.Tick)
		p.due[viewer] = m
	}
	m[id] = tick + p.cadence(distSq)
}

// Forget clears a viewer's whole schedule (on disconnect), so a future
// reconnect starts fresh.
func (p *Prioritizer) Forget(viewer engine.PlayerID) {
	delete(p.due, viewer)
}
