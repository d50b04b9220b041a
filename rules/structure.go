package rules

import "github.com/stormline/arena/engine"

// StructureStats is the data-driven definition of a tower or nexus.
type StructureStats struct {
	Health         float32
	AttackRange    float32
	AttackDamage   float32
	AttackCooldown engine.Ticks
	Attacks        bool // false for the nexus, which never auto-attacks
	Gold, XP       float32
}

// StructureState is a stationary tower or nexus. Towers auto-attack the
// nearest enemy in range; a nexus just sits at 0 HP away from ending the
// match (win-condition detection is the match package's job, not this
// State's — it only tracks its own health).
type StructureState struct {
	Stats  StructureStats
	Health float32

	attackCooldownRemaining engine.Ticks
}

func NewStructureState(stats StructureStats) *StructureState {
	return &StructureState{Stats: stats, Health: stats.Health}
}

func (s *StructureState) Update(e *engine.Entity, ctx *engine.UpdateContext) {
	if !e.Alive || !s.Stats.Attacks {
		return
	}
	if s.attackCooldownRemaining > 0 {
		s.attackCooldownRemaining--
	}

	if e.TargetEntityID != engine.EntityIDInvalid {
		target := ctx.Registry.Get(e.TargetEntityID)
		if target == nil || !target.Alive || e.Position.DistanceSquared(target.Position) > s.Stats.AttackRange*s.Stats.AttackRange {
			e.TargetEntityID = engine.EntityIDInvalid
		}
	}
	if e.TargetEntityID == engine.EntityIDInvalid {
		s.acquireTarget(e, ctx)
	}
	if e.TargetEntityID != engine.EntityIDInvalid && s.attackCooldownRemaining == 0 {
		if target := ctx.Registry.Get(e.TargetEntityID); target != nil {
			s.attackCooldownRemaining = s.Stats.AttackCooldown
			ApplyDamage(target, s.Stats.AttackDamage, e.ID, ctx)
		}
	}
}

// acquireTarget prefers minions over champions, like a typical MOBA tower,
// so champions can tank tower aggro deliberately only by pulling creep
// focus away first.
func (s *StructureState) acquireTarget(e *engine.Entity, ctx *engine.UpdateContext) {
	var best *engine.Entity
	bestPriority := -1
	ctx.Registry.SpatialQuery(e.Position, s.Stats.AttackRange, func(other *engine.Entity, distSq float32) {
		if !other.Alive || other.Side.Friendly(e.Side) || other.Side == engine.SideNone {
			return
		}
		priority := 0
		if other.Kind == engine.EntityKindMinion {
			priority = 1
		}
		if priority > bestPriority {
			best, bestPriority = other, priority
		}
	})
	if best != nil {
		e.TargetEntityID = best.ID
	}
}

func (s *StructureState) ApplyDamage(amount float32) bool {
	s.Health -= amount
	if s.Health <= 0 {
		s.Health = 0
		return true
	}
	return false
}

func (s *StructureState) GoldReward() float32 { return s.Stats.Gold }
func (s *StructureState) XPReward() float32   { return s.Stats.XP }

func (s *StructureState) Snapshot(e *engine.Entity) engine.EntitySnapshot {
	return engine.EntitySnapshot{Health: s.Health, HealthMax: s.Stats.Health}
}
