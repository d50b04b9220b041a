package engine

import "log"

// tickOrder is the deterministic per-tick kind ordering. Wards are not named in that ordering; they are
// stationary and order-insensitive, so they run alongside structures.
var tickOrder = []EntityKind{
	EntityKindTower,
	EntityKindNexus,
	EntityKindWard,
	EntityKindChampion,
	EntityKindMinion,
	EntityKindJungleCreature,
	EntityKindProjectile,
	EntityKindZone,
}

// Simulation ties the rules catalogue to the registry: each tick it applies
// already-validated inputs (the caller's job, via InputPipeline, before
// calling Tick), advances every living entity's State.Update in kind order,
// and reconciles one-tick-grace deaths into removal.
type Simulation struct {
	Registry     *Registry
	Events       *EventBus
	WorldRadius  float32
	AssistWindow Tick
	Logger       *log.Logger
}

// NewSimulation constructs a Simulation over an existing registry/event bus.
// assistWindow is how many ticks before a kill an earlier damage source
// still counts as an assister.
func NewSimulation(reg *Registry, events *EventBus, worldRadius float32, assistWindow Tick, logger *log.Logger) *Simulation {
	return &Simulation{Registry: reg, Events: events, WorldRadius: worldRadius, AssistWindow: assistWindow, Logger: logger}
}

// Tick advances every entity by one fixed step of size dt, in the
// deterministic kind order, and removes entities that completed their
// one-tick death grace period. A panic inside a single entity's Update is
// contained: the entity is marked dead and a removal event follows on the
// next tick.
func (s *Simulation) Tick(tick Tick, dt float32) {
	s.reapGraced(tick)

	ctx := &UpdateContext{Registry: s.Registry, Events: s.Events, Tick: tick, Dt: dt, WorldRadius: s.WorldRadius, AssistWindow: s.AssistWindow}
	for _, kind := range tickOrder {
		s.Registry.ByKind(kind, func(e *Entity) {
			s.updateOne(e, ctx)
		})
	}
}

func (s *Simulation) updateOne(e *Entity, ctx *UpdateContext) {
	if !e.Alive || e.State == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if s.Logger != nil {
				s.Logger.Printf("entity %s update panicked, removing: %v", e.ID, r)
			}
			e.Die(ctx.Tick)
		}
	}()
	e.State.Update(e, ctx)
}

// reapGraced removes every entity whose death grace tick has fully elapsed.
// An entity that died at tick T stays in the registry through tick T and is
// removed once tick > T, giving exactly one additional tick of visibility.
func (s *Simulation) reapGraced(tick Tick) {
	var dead []EntityID
	s.Registry.ForEach(func(e *Entity) {
		if e.deathPending && tick > e.deathTick {
			dead = append(dead, e.ID)
		}
	})
	for _, id := range dead {
		s.Registry.Remove(id)
	}
}
