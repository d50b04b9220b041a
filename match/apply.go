package match

import (
	"github.com/stormline/arena/engine"
	"github.com/stormline/arena/input"
	"github.com/stormline/arena/rules"
)

// validator implements input.Validator against the Match's live registry
// and visibility grid.
type validator struct {
	m *Match
	v *viewer
}

func (val validator) TargetValid(_ engine.PlayerID, target engine.EntityID) bool {
	e := val.m.registry.Get(target)
	if e == nil || !e.Alive {
		return false
	}
	return val.m.visibility.IsVisible(val.v.side, e.Position)
}

func (val validator) AbilityUsable(_ engine.PlayerID, slot int) bool {
	champ := val.m.registry.Get(val.v.championID)
	if champ == nil || !champ.Alive {
		return false
	}
	cs, ok := champ.State.(*rules.ChampionState)
	return ok && cs.AbilityUsable(slot)
}

func (val validator) ClampToNavigable(dest engine.Vec2) engine.Vec2 {
	r := val.m.config.WorldRadius
	if dest.LengthSquared() <= r*r {
		return dest
	}
	return dest.ClampMagnitude(r)
}

// applyInput mutates the champion/world state for one already-sequenced,
// already-validated input. It is the input.Apply
// callback Match.Tick hands to Pipeline.Drain.
func (m *Match) applyInput(v *viewer) input.Apply {
	return func(player engine.PlayerID, in input.ClientInput) {
		champ := m.registry.Get(v.championID)
		if champ == nil || !champ.Alive {
			return
		}
		cs, _ := champ.State.(*rules.ChampionState)

		switch in.Type {
		case input.PayloadMove, input.PayloadAttackMove:
			champ.Destination = in.Payload.Destination
		case input.PayloadTargetUnit:
			champ.TargetEntityID = in.Payload.Target
			if target := m.registry.Get(in.Payload.Target); target != nil {
				champ.Destination = target.Position
			}
		case input.PayloadStop:
			champ.Destination = champ.Position
			champ.TargetEntityID = engine.EntityIDInvalid
		case input.PayloadCastAbility:
			if cs != nil {
				cs.CastAbility(in.Payload.Slot)
			}
			m.events.Emit(engine.Event{
				Type: engine.EventAbilityCast, Tick: m.tick, EntityID: champ.ID, Side: champ.Side,
				Payload: map[string]interface{}{"slot": in.Payload.Slot, "target": in.Payload.Target},
			})
		case input.PayloadBuyItem:
			if cs != nil {
				cs.AddItem(in.Payload.Slot, in.Payload.ItemTag)
				m.events.Emit(engine.Event{Type: engine.EventItemPurchased, Tick: m.tick, EntityID: champ.ID, Side: champ.Side,
					Recipients: []engine.PlayerID{player}, Payload: map[string]interface{}{"item": in.Payload.ItemTag}})
			}
		case input.PayloadSellItem:
			if cs != nil {
				cs.RemoveItem(in.Payload.Slot)
			}
		case input.PayloadPlaceWard:
			m.registry.Add(&engine.Entity{
				Kind:        engine.EntityKindWard,
				Side:        champ.Side,
				Owner:       player,
				Position:    in.Payload.Destination,
				SightRadius: m.config.TrueSightRadius * 3,
				TrueSight:   true,
				State:       m.config.Catalogue.NewWardState(true),
			})
		case input.PayloadRecall, input.PayloadLevelUp, input.PayloadPing:
			// Recall/manual leveling/ping have no modeled world effect in
			// this rules catalogue; they exist so the input taxonomy is
			// complete and a richer Catalogue can hook them later.
		}
	}
}
