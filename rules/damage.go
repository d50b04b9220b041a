package rules

import "github.com/stormline/arena/engine"

// Damageable is implemented by every State that can take damage. ApplyDamage
// reduces health and reports whether this blow was lethal, leaving the State
// to track its own health field however it likes.
type Damageable interface {
	ApplyDamage(amount float32) (died bool)
}

// Rewarder is implemented by killable kinds that grant gold/XP to the
// killer on death (champions, minions, jungle creatures, structures).
type Rewarder interface {
	GoldReward() float32
	XPReward() float32
}

// ApplyDamage routes amount into target's State, emits the unreliable
// EventDamage notice, and on a lethal blow marks target dead, emits the
// appropriate kill event, and credits the killer with any Rewarder payout.
func ApplyDamage(target *engine.Entity, amount float32, source engine.EntityID, ctx *engine.UpdateContext) {
	if !target.Alive || amount <= 0 {
		return
	}
	d, ok := target.State.(Damageable)
	if !ok {
		return
	}

	died := d.ApplyDamage(amount)
	target.RecordDamage(source, ctx.Tick, ctx.AssistWindow)

	ctx.Events.Emit(engine.Event{
		Type:     engine.EventDamage,
		Tick:     ctx.Tick,
		EntityID: target.ID,
		Side:     target.Side,
		Payload:  map[string]interface{}{"amount": amount, "source": source},
	})

	if !died {
		return
	}
	target.Die(ctx.Tick)
	killEvent(target, source, ctx)
	creditKiller(target, source, ctx)
}

func killEvent(target *engine.Entity, source engine.EntityID, ctx *engine.UpdateContext) {
	switch target.Kind {
	case engine.EntityKindChampion:
		ctx.Events.Emit(engine.Event{Type: engine.EventChampionKill, Tick: ctx.Tick, EntityID: target.ID, Side: target.Side,
			Payload: map[string]interface{}{"killer": source}})
	case engine.EntityKindTower:
		ctx.Events.Emit(engine.Event{Type: engine.EventTowerDestroyed, Tick: ctx.Tick, EntityID: target.ID, Side: target.Side})
	case engine.EntityKindNexus:
		ctx.Events.Emit(engine.Event{Type: engine.EventNexusDestroyed, Tick: ctx.Tick, EntityID: target.ID, Side: target.Side})
	}
}

func creditKiller(target *engine.Entity, source engine.EntityID, ctx *engine.UpdateContext) {
	creditAssists(target, source, ctx)

	if source == engine.EntityIDInvalid {
		return
	}
	killer := ctx.Registry.Get(source)
	if killer == nil || !killer.Alive {
		return
	}
	rewarder, ok := target.State.(Rewarder)
	if !ok {
		return
	}

	gold, xp := rewarder.GoldReward(), rewarder.XPReward()
	if champ, ok := killer.State.(*ChampionState); ok {
		champ.Gold += gold
		champ.KillCount++
		ctx.Events.Emit(engine.Event{Type: engine.EventGoldEarned, Tick: ctx.Tick, EntityID: killer.ID, Side: killer.Side,
			Recipients: []engine.PlayerID{killer.Owner}, Payload: map[string]interface{}{"amount": gold}})
		if xp > 0 {
			champ.gainXP(xp, ctx, killer)
		}
	}
}

// creditAssists increments AssistCount for every champion that damaged
// target within ctx.AssistWindow ticks of the kill, other than source
// itself (the sole lethal-blow credit already goes through creditKiller).
func creditAssists(target *engine.Entity, source engine.EntityID, ctx *engine.UpdateContext) {
	for _, id := range target.RecentDamagers(ctx.Tick, ctx.AssistWindow, source) {
		assister := ctx.Registry.Get(id)
		if assister == nil || !assister.Alive {
			continue
		}
		if champ, ok := assister.State.(*ChampionState); ok {
			champ.AssistCount++
		}
	}
}
