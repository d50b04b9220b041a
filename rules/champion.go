package rules

import "github.com/stormline/arena/engine"

// ChampionStats is the data-driven definition of one champion type tag.
type ChampionStats struct {
	MoveSpeed      float32
	SightRadius    float32
	Health         float32
	Resource       float32
	AttackRange    float32
	AttackDamage   float32
	AttackCooldown engine.Ticks
}

// ChampionState is the kind-specific behavior and opaque data of a
// champion entity. It moves toward Destination, auto-attacks
// TargetEntityID when in range, and levels up automatically as it
// crosses xp thresholds from kills.
type ChampionState struct {
	Stats ChampionStats

	Health, Resource       float32
	Level                  int
	KillCount, AssistCount int
	Gold                   float32
	Shield                 float32
	xp                     float32

	attackCooldownRemaining engine.Ticks
	abilities               []engine.AbilityState
	items                   []engine.ItemState
}

// NewChampionState constructs a ChampionState at full health/resource.
func NewChampionState(stats ChampionStats) *ChampionState {
	return &ChampionState{
		Stats:    stats,
		Health:   stats.Health,
		Resource: stats.Resource,
		Level:    1,
		abilities: []engine.AbilityState{
			{Slot: 0, ChargesMax: 1, ChargesCurrent: 1},
			{Slot: 1, ChargesMax: 1, ChargesCurrent: 1},
			{Slot: 2, ChargesMax: 1, ChargesCurrent: 1},
			{Slot: 3, ChargesMax: 1, ChargesCurrent: 1},
		},
	}
}

func (c *ChampionState) Update(e *engine.Entity, ctx *engine.UpdateContext) {
	if !e.Alive {
		return
	}

	if c.attackCooldownRemaining > 0 {
		c.attackCooldownRemaining--
	}
	for i := range c.abilities {
		if c.abilities[i].CooldownTicks > 0 {
			c.abilities[i].CooldownTicks--
		}
	}

	if e.TargetEntityID != engine.EntityIDInvalid {
		target := ctx.Registry.Get(e.TargetEntityID)
		if target == nil || !target.Alive {
			e.TargetEntityID = engine.EntityIDInvalid
		} else if e.Position.DistanceSquared(target.Position) <= c.Stats.AttackRange*c.Stats.AttackRange {
			c.attack(e, target, ctx)
			return
		}
	}

	e.Position = e.Position.MoveToward(e.Destination, c.Stats.MoveSpeed*ctx.Dt)
	if e.Position != e.Destination {
		e.Direction = e.Destination.Sub(e.Position).Angle()
	}
	ctx.Registry.Reposition(e.ID, e.Position)
}

func (c *ChampionState) attack(e, target *engine.Entity, ctx *engine.UpdateContext) {
	if c.attackCooldownRemaining > 0 {
		return
	}
	c.attackCooldownRemaining = c.Stats.AttackCooldown

	ctx.Events.Emit(engine.Event{Type: engine.EventBasicAttack, Tick: ctx.Tick, EntityID: e.ID, Side: e.Side})
	ApplyDamage(target, c.Stats.AttackDamage, e.ID, ctx)
}

// ApplyDamage absorbs into Shield first, then Health, reporting whether the
// blow was lethal (rules.Damageable).
func (c *ChampionState) ApplyDamage(amount float32) bool {
	if c.Shield > 0 {
		absorbed := c.Shield
		if absorbed > amount {
			absorbed = amount
		}
		c.Shield -= absorbed
		amount -= absorbed
	}
	c.Health -= amount
	if c.Health <= 0 {
		c.Health = 0
		return true
	}
	return false
}

// GoldReward and XPReward are a champion's bounty on death (rules.Rewarder).
// Exact amounts are rules-catalogue data, not core.
func (c *ChampionState) GoldReward() float32 { return 300 + 25*float32(c.Level) }
func (c *ChampionState) XPReward() float32   { return 200 + 20*float32(c.Level) }

// xpForLevel is the cumulative XP needed to reach level+1 from level,
// growing with the square of the level (100, 400, 900, ...) as a simple
// curve (exact progression is rules data).
func xpForLevel(level int) float32 {
	return 100 * float32(level) * float32(level)
}

// gainXP adds xp to the champion's experience total and emits EventLevelUp for
// each level threshold crossed.
func (c *ChampionState) gainXP(xp float32, ctx *engine.UpdateContext, e *engine.Entity) {
	c.xp += xp
	for c.Level < maxChampionLevel && c.xp >= xpForLevel(c.Level) {
		c.Level++
		ctx.Events.Emit(engine.Event{
			Type: engine.EventLevelUp, Tick: ctx.Tick, EntityID: e.ID, Side: e.Side,
			Recipients: []engine.PlayerID{e.Owner},
			Payload:    map[string]interface{}{"level": c.Level},
		})
	}
}

const maxChampionLevel = 18

// abilityCost is the flat resource cost of casting any ability; a richer
// catalogue would key this per-slot.
const abilityCost = 40

// AbilityUsable reports whether slot is off cooldown and affordable
// (input.Validator).
func (c *ChampionState) AbilityUsable(slot int) bool {
	for i := range c.abilities {
		if c.abilities[i].Slot == slot {
			return c.abilities[i].CooldownTicks == 0 && c.Resource >= abilityCost
		}
	}
	return false
}

// CastAbility puts slot on cooldown and spends its resource cost, assuming
// the caller already validated AbilityUsable.
func (c *ChampionState) CastAbility(slot int) {
	c.Resource -= abilityCost
	for i := range c.abilities {
		if c.abilities[i].Slot == slot {
			c.abilities[i].CooldownTicks = c.Stats.AttackCooldown * 5
		}
	}
}

// AddItem appends a purchased item to the inventory (buy-item input).
func (c *ChampionState) AddItem(slot int, tag string) {
	c.items = append(c.items, engine.ItemState{Slot: slot, ItemTag: tag})
}

// RemoveItem drops the inventory entry in slot, if any (sell-item input).
func (c *ChampionState) RemoveItem(slot int) {
	for i := range c.items {
		if c.items[i].Slot == slot {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *ChampionState) Snapshot(e *engine.Entity) engine.EntitySnapshot {
	return engine.EntitySnapshot{
		Health:      c.Health,
		HealthMax:   c.Stats.Health,
		Resource:    c.Resource,
		ResourceMax: c.Stats.Resource,
		Level:       c.Level,
		KillCount:   c.KillCount,
		AssistCount: c.AssistCount,
		Gold:        c.Gold,
		Shield:      c.Shield,
		Abilities:   c.abilities,
		Items:       c.items,
	}
}
