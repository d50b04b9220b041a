package match

import (
	"time"

	"github.com/stormline/arena/engine"
	"github.com/stormline/arena/snapshot"
)

// wallTimeMillis is the wall-clock timestamp attached to each StateUpdate.
func wallTimeMillis() int64 { return time.Now().UnixMilli() }

// Tick advances the match by one fixed step: drain and apply every
// viewer's due inputs, run the Simulation, refresh visibility, drain
// events, then broadcast a per-viewer StateUpdate. Run or an external Clock calls this once per period; it is
// exported directly so tests and a host's own scheduler can drive it
// without a Clock goroutine.
func (m *Match) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != statePlaying {
		return
	}

	for player, v := range m.viewers {
		if v.isBot {
			continue
		}
		m.pipeline.Drain(player, m.tick, validator{m: m, v: v}, m.applyInput(v))
	}
	m.actBots()

	m.sim.Tick(m.tick, engine.Ticks(1).Float())
	m.visibility.Update(m.registry)

	events := append(m.registry.DrainRemovals(), m.events.Drain()...)
	m.enqueueReliable(events)
	m.checkWinCondition(events)

	acks := m.pipeline.AckMap()
	for player, v := range m.viewers {
		if !v.connected || v.send == nil {
			continue
		}
		visible := m.visibleEntitiesFor(v)
		due := m.reliable.Due(player, m.tick)
		merged := mergeEvents(unreliableOnly(events, player), due)
		update := m.serializer.BuildUpdate(player, visible, m.tick, wallTimeMillis(), engine.Ticks(m.tick), merged, acks)
		v.send(update)
	}

	m.tick++
}

// enqueueReliable registers every reliable event generated this tick with
// the ReliableEventQueue, once per recipient — explicit Recipients if the
// event named them, otherwise every currently joined viewer.
func (m *Match) enqueueReliable(events []engine.Event) {
	for _, ev := range events {
		if !ev.Type.IsReliable() {
			continue
		}
		recipients := ev.Recipients
		if recipients == nil {
			recipients = m.allPlayerIDs()
		}
		m.reliable.Enqueue(ev, recipients, m.tick)
	}
}

func (m *Match) allPlayerIDs() []engine.PlayerID {
	ids := make([]engine.PlayerID, 0, len(m.viewers))
	for player := range m.viewers {
		ids = append(ids, player)
	}
	return ids
}

// unreliableOnly returns the unreliable events in events that player
// receives: those with nil Recipients and those naming player.
func unreliableOnly(events []engine.Event, player engine.PlayerID) []engine.Event {
	out := make([]engine.Event, 0, len(events))
	for _, ev := range events {
		if ev.Type.IsReliable() {
			continue
		}
		named := ev.Recipients == nil
		for _, r := range ev.Recipients {
			named = named || r == player
		}
		if named {
			out = append(out, ev)
		}
	}
	return out
}

func mergeEvents(unreliable, due []engine.Event) []engine.Event {
	if len(unreliable) == 0 {
		return due
	}
	if len(due) == 0 {
		return unreliable
	}
	return append(append([]engine.Event{}, unreliable...), due...)
}

// checkWinCondition ends the match the instant a EventNexusDestroyed event
// appears, crediting the opposing side.
func (m *Match) checkWinCondition(events []engine.Event) {
	for _, ev := range events {
		if ev.Type != engine.EventNexusDestroyed {
			continue
		}
		winner := ev.Side.Opponent()
		m.state = stateEnded
		end := GameEnd{WinningSide: winner}
		for _, v := range m.viewers {
			if v.send != nil {
				v.send(end)
			}
		}
		if m.onEnd != nil {
			m.onEnd(winner)
		}
		return
	}
}

// Run blocks, driving Tick at the configured TickRate until stop is
// closed.
// Hosts that want to drive ticks themselves — tests, a deterministic
// replay harness — can ignore Run and call Tick directly instead.
func (m *Match) Run(stop <-chan struct{}) {
	clock := engine.NewClock(time.Second / time.Duration(m.config.TickRate))
	clock.Run(stop, func(engine.Tick) { m.Tick() })
}

// visibleEntitiesFor collects every entity v's side currently sees,
// tagging which one is the viewer's own champion and its distance for the
// Prioritizer.
func (m *Match) visibleEntitiesFor(v *viewer) []snapshot.VisibleEntity {
	champ := m.registry.Get(v.championID)
	var viewerPos engine.Vec2
	if champ != nil {
		viewerPos = champ.Position
	}

	var visible []snapshot.VisibleEntity
	m.visibility.VisibleEntities(m.registry, v.side, m.config.TrueSightRadius, func(e *engine.Entity) {
		visible = append(visible, snapshot.VisibleEntity{
			Entity:         e,
			IsViewerEntity: e.ID == v.championID,
			DistSqToViewer: e.Position.DistanceSquared(viewerPos),
		})
	})
	return visible
}
