package rules

import "github.com/stormline/arena/engine"

// MinionStats is the data-driven definition of one minion-wave unit tag.
type MinionStats struct {
	MoveSpeed      float32
	SightRadius    float32
	Health         float32
	AttackRange    float32
	AttackDamage   float32
	AttackCooldown engine.Ticks
	Gold, XP       float32
}

// MinionState is a lane creep: walks its lane toward Destination, and
// auto-attacks the nearest enemy within range without needing a player
// order.
type MinionState struct {
	Stats  MinionStats
	Health float32

	attackCooldownRemaining engine.Ticks
}

func NewMinionState(stats MinionStats) *MinionState {
	return &MinionState{Stats: stats, Health: stats.Health}
}

func (m *MinionState) Update(e *engine.Entity, ctx *engine.UpdateContext) {
	if !e.Alive {
		return
	}
	if m.attackCooldownRemaining > 0 {
		m.attackCooldownRemaining--
	}

	if e.TargetEntityID == engine.EntityIDInvalid {
		m.acquireTarget(e, ctx)
	}
	if e.TargetEntityID != engine.EntityIDInvalid {
		target := ctx.Registry.Get(e.TargetEntityID)
		if target == nil || !target.Alive {
			e.TargetEntityID = engine.EntityIDInvalid
		} else if e.Position.DistanceSquared(target.Position) <= m.Stats.AttackRange*m.Stats.AttackRange {
			if m.attackCooldownRemaining == 0 {
				m.attackCooldownRemaining = m.Stats.AttackCooldown
				ApplyDamage(target, m.Stats.AttackDamage, e.ID, ctx)
			}
			return
		}
	}

	e.Position = e.Position.MoveToward(e.Destination, m.Stats.MoveSpeed*ctx.Dt)
	ctx.Registry.Reposition(e.ID, e.Position)
}

// acquireTarget picks the nearest living enemy within attack range, letting
// the minion retaliate without central targeting logic.
func (m *MinionState) acquireTarget(e *engine.Entity, ctx *engine.UpdateContext) {
	var nearest *engine.Entity
	var nearestDistSq float32
	ctx.Registry.SpatialQuery(e.Position, m.Stats.AttackRange, func(other *engine.Entity, distSq float32) {
		if other.ID == e.ID || !other.Alive || other.Side.Friendly(e.Side) || other.Side == engine.SideNone {
			return
		}
		if nearest == nil || distSq < nearestDistSq {
			nearest, nearestDistSq = other, distSq
		}
	})
	if nearest != nil {
		e.TargetEntityID = nearest.ID
	}
}

func (m *MinionState) ApplyDamage(amount float32) bool {
	m.Health -= amount
	if m.Health <= 0 {
		m.Health = 0
		return true
	}
	return false
}

func (m *MinionState) GoldReward() float32 { return m.Stats.Gold }
func (m *MinionState) XPReward() float32   { return m.Stats.XP }

func (m *MinionState) Snapshot(e *engine.Entity) engine.EntitySnapshot {
	return engine.EntitySnapshot{Health: m.Health, HealthMax: m.Stats.Health}
}
