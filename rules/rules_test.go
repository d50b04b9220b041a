package rules

import (
	"testing"

	"github.com/stormline/arena/engine"
)

func newTestRegistry() (*engine.Registry, *engine.EventBus) {
	return engine.NewRegistry(20), &engine.EventBus{}
}

func TestChampionState_MovesTowardDestination(t *testing.T) {
	reg, bus := newTestRegistry()
	cat := NewDefault()

	champ := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideA, Position: engine.Vec2{}, Destination: engine.Vec2{X: 10}}
	champ.State = cat.NewChampionState("warrior")
	id, err := reg.Add(champ)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0 / engine.TickRate}
	for i := 0; i < engine.TickRate; i++ {
		champ.State.Update(champ, ctx)
	}

	e := reg.Get(id)
	if e.Position.X <= 0 {
		t.Fatalf("expected champion to have moved toward destination, stayed at %v", e.Position)
	}
}

func TestChampionState_AutoAttacksInRangeTarget(t *testing.T) {
	reg, bus := newTestRegistry()
	cat := NewDefault()

	attacker := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideA, State: cat.NewChampionState("warrior")}
	attacker.ID, _ = reg.Add(attacker)

	victim := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideB, Position: engine.Vec2{X: 1}, State: cat.NewChampionState("warrior")}
	victim.ID, _ = reg.Add(victim)

	attacker.TargetEntityID = victim.ID

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0 / engine.TickRate}
	attacker.State.Update(attacker, ctx)

	victimState := victim.State.(*ChampionState)
	if victimState.Health >= victimState.Stats.Health {
		t.Fatalf("expected victim to have taken damage, health is %v/%v", victimState.Health, victimState.Stats.Health)
	}
}

func TestApplyDamage_LethalBlowEmitsKillAndCreditsGold(t *testing.T) {
	reg, bus := newTestRegistry()
	cat := NewDefault()

	killer := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideA, Owner: 1, State: cat.NewChampionState("warrior")}
	killer.ID, _ = reg.Add(killer)

	victim := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideB, State: cat.NewChampionState("warrior")}
	victim.ID, _ = reg.Add(victim)

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0 / engine.TickRate}
	ApplyDamage(victim, 100000, killer.ID, ctx)

	if victim.Alive {
		t.Fatalf("expected lethal damage to kill the victim")
	}

	killerState := killer.State.(*ChampionState)
	if killerState.Gold == 0 {
		t.Fatalf("expected killer to be credited gold")
	}
	if killerState.KillCount != 1 {
		t.Fatalf("expected killer's kill count to increment, got %d", killerState.KillCount)
	}

	var sawKill bool
	for _, ev := range bus.Drain() {
		if ev.Type == engine.EventChampionKill {
			sawKill = true
		}
	}
	if !sawKill {
		t.Fatalf("expected EventChampionKill to be emitted")
	}
}

func TestApplyDamage_CreditsAssistWithinWindow(t *testing.T) {
	reg, bus := newTestRegistry()
	cat := NewDefault()

	assister := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideA, State: cat.NewChampionState("warrior")}
	assister.ID, _ = reg.Add(assister)

	killer := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideA, State: cat.NewChampionState("warrior")}
	killer.ID, _ = reg.Add(killer)

	victim := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideB, State: cat.NewChampionState("warrior")}
	victim.ID, _ = reg.Add(victim)

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0 / engine.TickRate, AssistWindow: 50}
	ApplyDamage(victim, 1, assister.ID, ctx)

	ctx.Tick = 10
	ApplyDamage(victim, 100000, killer.ID, ctx)

	if victim.Alive {
		t.Fatalf("expected lethal damage to kill the victim")
	}
	if got := assister.State.(*ChampionState).AssistCount; got != 1 {
		t.Fatalf("expected assister's assist count to increment, got %d", got)
	}
	if got := killer.State.(*ChampionState).AssistCount; got != 0 {
		t.Fatalf("expected killer to not also be credited an assist, got %d", got)
	}
}

func TestApplyDamage_NoAssistOutsideWindow(t *testing.T) {
	reg, bus := newTestRegistry()
	cat := NewDefault()

	earlyAttacker := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideA, State: cat.NewChampionState("warrior")}
	earlyAttacker.ID, _ = reg.Add(earlyAttacker)

	killer := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideA, State: cat.NewChampionState("warrior")}
	killer.ID, _ = reg.Add(killer)

	victim := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideB, State: cat.NewChampionState("warrior")}
	victim.ID, _ = reg.Add(victim)

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0 / engine.TickRate, AssistWindow: 5}
	ApplyDamage(victim, 1, earlyAttacker.ID, ctx)

	ctx.Tick = 100
	ApplyDamage(victim, 100000, killer.ID, ctx)

	if got := earlyAttacker.State.(*ChampionState).AssistCount; got != 0 {
		t.Fatalf("expected no assist credit once the damage falls outside the window, got %d", got)
	}
}

func TestChampionState_ShieldAbsorbsBeforeHealth(t *testing.T) {
	cat := NewDefault()
	state := cat.NewChampionState("warrior").(*ChampionState)
	state.Shield = 50

	died := state.ApplyDamage(30)
	if died {
		t.Fatalf("did not expect death")
	}
	if state.Shield != 20 {
		t.Fatalf("expected shield to absorb damage first, got shield=%v", state.Shield)
	}
	if state.Health != state.Stats.Health {
		t.Fatalf("expected health untouched while shield absorbs, got %v", state.Health)
	}
}

func TestProjectileState_ArrivesAndDamagesTarget(t *testing.T) {
	reg, bus := newTestRegistry()
	cat := NewDefault()

	source := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideA, State: cat.NewChampionState("mage")}
	source.ID, _ = reg.Add(source)

	target := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideB, Position: engine.Vec2{X: 2}, State: cat.NewChampionState("mage")}
	target.ID, _ = reg.Add(target)

	proj := &engine.Entity{Kind: engine.EntityKindProjectile, Position: engine.Vec2{}, State: cat.NewProjectileState(source.ID, 50, target.ID, engine.Vec2{})}
	proj.ID, _ = reg.Add(proj)

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0}
	for i := 0; i < 5 && proj.Alive; i++ {
		proj.State.Update(proj, ctx)
	}

	if proj.Alive {
		t.Fatalf("expected projectile to have arrived and despawned")
	}
	targetState := target.State.(*ChampionState)
	if targetState.Health >= targetState.Stats.Health {
		t.Fatalf("expected target to take projectile damage")
	}
}

func TestStructureState_TowerAttacksEnemyInRange(t *testing.T) {
	reg, bus := newTestRegistry()
	cat := NewDefault()

	tower := &engine.Entity{Kind: engine.EntityKindTower, Side: engine.SideA, State: cat.NewStructureState(engine.EntityKindTower)}
	tower.ID, _ = reg.Add(tower)

	enemy := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideB, Position: engine.Vec2{X: 1}, State: cat.NewChampionState("warrior")}
	enemy.ID, _ = reg.Add(enemy)

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0 / engine.TickRate}
	tower.State.Update(tower, ctx)

	enemyState := enemy.State.(*ChampionState)
	if enemyState.Health >= enemyState.Stats.Health {
		t.Fatalf("expected tower to damage the enemy in range")
	}
}

func TestStructureState_NexusNeverAttacks(t *testing.T) {
	reg, bus := newTestRegistry()
	cat := NewDefault()

	nexus := &engine.Entity{Kind: engine.EntityKindNexus, Side: engine.SideA, State: cat.NewStructureState(engine.EntityKindNexus)}
	nexus.ID, _ = reg.Add(nexus)

	enemy := &engine.Entity{Kind: engine.EntityKindChampion, Side: engine.SideB, Position: engine.Vec2{}, State: cat.NewChampionState("warrior")}
	enemy.ID, _ = reg.Add(enemy)

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0 / engine.TickRate}
	nexus.State.Update(nexus, ctx)

	enemyState := enemy.State.(*ChampionState)
	if enemyState.Health != enemyState.Stats.Health {
		t.Fatalf("expected the nexus to never auto-attack")
	}
}

func TestWardState_ExpiresAfterLifespan(t *testing.T) {
	reg, bus := newTestRegistry()

	ward := &engine.Entity{Kind: engine.EntityKindWard, State: NewWardState()}
	ward.ID, _ = reg.Add(ward)

	ctx := &engine.UpdateContext{Registry: reg, Events: bus, Tick: 1, Dt: 1.0}
	ws := ward.State.(*WardState)
	ws.remaining = 1

	ward.State.Update(ward, ctx)
	if !ward.Alive {
		t.Fatalf("expected ward to still be alive with remaining ticks")
	}
	ward.State.Update(ward, ctx)
	if ward.Alive {
		t.Fatalf("expected ward to expire once its lifespan runs out")
	}
}
