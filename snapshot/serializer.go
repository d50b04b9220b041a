package snapshot

import "github.com/stormline/arena/engine"

// healthThresholds are the health-fraction crossings that force immediate
// inclusion regardless of priority tier.
var healthThresholds = [...]float32{0.5, 0.25, 0.1, 0}

func healthThresholdCrossed(before, after engine.EntitySnapshot) bool {
	if before.HealthMax <= 0 || after.HealthMax <= 0 {
		return false
	}
	b := before.Health / before.HealthMax
	a := after.Health / after.HealthMax
	for _, t := range healthThresholds {
		if (b > t) != (a > t) {
			return true
		}
	}
	return false
}

func isCriticalChange(before, after engine.EntitySnapshot, wasAlive, isAlive bool) bool {
	if wasAlive != isAlive {
		return true
	}
	if before.TargetEntityID != after.TargetEntityID {
		return true
	}
	return healthThresholdCrossed(before, after)
}

type viewerState struct {
	baseline map[engine.EntityID]engine.EntitySnapshot
	alive    map[engine.EntityID]bool
	visible  map[engine.EntityID]bool
}

func newViewerState() *viewerState {
	return &viewerState{
		baseline: make(map[engine.EntityID]engine.EntitySnapshot),
		alive:    make(map[engine.EntityID]bool),
		visible:  make(map[engine.EntityID]bool),
	}
}

// Serializer produces per-viewer StateUpdate messages from a caller-supplied
// visible set by prioritizing, delta-compressing against a
// per-viewer baseline, and attaching acks and events. Per-viewer
// baselines are born on first broadcast and die on disconnect.
type Serializer struct {
	prioritizer *Prioritizer
	viewers     map[engine.PlayerID]*viewerState
}

// NewSerializer creates a Serializer. prioritizer may be nil, in which case
// every visible entity is evaluated every tick.
func NewSerializer(prioritizer *Prioritizer) *Serializer {
	return &Serializer{prioritizer: prioritizer, viewers: make(map[engine.PlayerID]*viewerState)}
}

// Disconnect clears viewer's baseline, visible set, and prioritizer
// schedule.
func (s *Serializer) Disconnect(viewer engine.PlayerID) {
	delete(s.viewers, viewer)
	if s.prioritizer != nil {
		s.prioritizer.Forget(viewer)
	}
}

// VisibleEntity is one entity eligible for this viewer's broadcast, with
// the proximity used for prioritization tiering.
type VisibleEntity struct {
	Entity           *engine.Entity
	IsViewerEntity   bool
	DistSqToViewer   float32
}

// BuildUpdate computes viewer's StateUpdate for this tick via the delta
// algorithm: diff each visible entity against its last-sent baseline,
// drop entities no longer visible, and attach this tick's events and
// acks. visible must contain exactly the entities currently visible to
// viewer's team — the delta diff depends on this.
func (s *Serializer) BuildUpdate(viewer engine.PlayerID, visible []VisibleEntity, tick engine.Tick, wallTime int64, gameTime engine.Ticks, events []engine.Event, acks map[engine.PlayerID]uint32) StateUpdate {
	vs, ok := s.viewers[viewer]
	if !ok {
		vs = newViewerState()
		s.viewers[viewer] = vs
	}

	currentlyVisible := make(map[engine.EntityID]bool, len(visible))
	var deltas []EntityDelta

	for _, ve := range visible {
		e := ve.Entity
		currentlyVisible[e.ID] = true

		snap := e.Snapshot()
		baseline, hadBaseline := vs.baseline[e.ID]
		wasAlive := vs.alive[e.ID]

		critical := hadBaseline && isCriticalChange(baseline, snap, wasAlive, e.Alive)

		if s.prioritizer != nil && !s.prioritizer.Eligible(viewer, e.ID, tick, ve.IsViewerEntity, critical) {
			continue
		}
		if s.prioritizer != nil {
			s.prioritizer.MarkSent(viewer, e.ID, tick, ve.DistSqToViewer)
		}

		if !hadBaseline {
			deltas = append(deltas, EntityDelta{EntityID: e.ID, ChangeMask: engine.FieldAll, Data: snap})
			vs.baseline[e.ID] = snap
			vs.alive[e.ID] = e.Alive
			continue
		}

		mask := snap.Diff(baseline)
		if mask == 0 {
			continue
		}
		deltas = append(deltas, EntityDelta{EntityID: e.ID, ChangeMask: mask, Data: snap})
		vs.baseline[e.ID] = snap
		vs.alive[e.ID] = e.Alive
	}

	// Step 5: entities visible last broadcast but absent now get a removal
	// delta, and their baseline is cleared.
	for id := range vs.visible {
		if !currentlyVisible[id] {
			deltas = append(deltas, EntityDelta{EntityID: id, Removed: true})
			delete(vs.baseline, id)
			delete(vs.alive, id)
			if s.prioritizer != nil {
				delete(s.prioritizer.due[viewer], id)
			}
		}
	}
	vs.visible = currentlyVisible

	var lastEventID uint64
	for _, ev := range events {
		if ev.Reliable && ev.ID > lastEventID {
			lastEventID = ev.ID
		}
	}

	return StateUpdate{
		Tick:        tick,
		WallTime:    wallTime,
		GameTime:    gameTime,
		Acks:        acks,
		Deltas:      deltas,
		Events:      events,
		LastEventID: lastEventID,
	}
}

// FullSnapshot materializes every currently visible entity as a fresh
// baseline for viewer, ignoring any prior state.
func (s *Serializer) FullSnapshot(viewer engine.PlayerID, visible []VisibleEntity, tick engine.Tick, wallTime int64, gameTime engine.Ticks) FullStateSnapshot {
	vs := newViewerState()
	s.viewers[viewer] = vs
	if s.prioritizer != nil {
		s.prioritizer.Forget(viewer)
	}

	entities := make([]EntityDelta, 0, len(visible))
	for _, ve := range visible {
		e := ve.Entity
		snap := e.Snapshot()
		vs.baseline[e.ID] = snap
		vs.alive[e.ID] = e.Alive
		vs.visible[e.ID] = true
		entities = append(entities, EntityDelta{EntityID: e.ID, ChangeMask: engine.FieldAll, Data: snap})
	}

	return FullStateSnapshot{Tick: tick, WallTime: wallTime, GameTime: gameTime, Entities: entities}
}
