package rules

import "github.com/stormline/arena/engine"

// wardLifespan is how long a placed ward grants vision before expiring.
const wardLifespan = engine.Ticks(150 * engine.TickRate) // 150s, a typical MOBA ward duration

// WardState is a stationary, immobile vision source. It carries no health
// and no attack; Entity.TrueSight, which Match sets when it places the
// ward, is what gives it stealth-revealing teeth.
type WardState struct {
	remaining engine.Ticks
}

func NewWardState() *WardState {
	return &WardState{remaining: wardLifespan}
}

func (w *WardState) Update(e *engine.Entity, ctx *engine.UpdateContext) {
	if !e.Alive {
		return
	}
	if w.remaining == 0 {
		e.Die(ctx.Tick)
		return
	}
	w.remaining--
}

func (w *WardState) Snapshot(e *engine.Entity) engine.EntitySnapshot {
	return engine.EntitySnapshot{}
}
