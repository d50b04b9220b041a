// Package rules is the external collaborator boundary the core plugs
// into: a tagged-variant entity with a common snapshot interface, where
// kind-specific logic lives in rule functions keyed by tag. Catalogue is
// the contract; Default is a minimal but functioning implementation
// sufficient to exercise the whole simulation end to end — jungle respawn
// timers, minion-wave cadence, and exact reward amounts are explicitly
// left as rules-catalogue data, not core.
package rules

import "github.com/stormline/arena/engine"

// Catalogue supplies kind-specific engine.State factories and the data a
// Simulation needs to spawn and validate entities, without the core ever
// inspecting kind-specific fields directly.
type Catalogue interface {
	// NewChampionState returns fresh State for a champion of the given
	// type tag.
	NewChampionState(tag string) engine.State
	// NewMinionState returns fresh State for a minion-wave unit.
	NewMinionState(tag string) engine.State
	// NewStructureState returns fresh State for a tower or nexus.
	NewStructureState(kind engine.EntityKind) engine.State
	// NewProjectileState returns fresh State for a cast or basic-attack
	// projectile travelling toward target (or, if target is
	// engine.EntityIDInvalid, toward the fixed targetPoint), crediting
	// source on a lethal hit.
	NewProjectileState(source engine.EntityID, damage float32, target engine.EntityID, targetPoint engine.Vec2) engine.State
	// NewWardState returns fresh State for a placed ward.
	NewWardState(trueSight bool) engine.State

	// ChampionSightRadius is consulted by Match when spawning a champion,
	// since sightRadius lives on the common Entity, not inside State.
	// ChampionMoveSpeed reports the tag's movement speed; the core does
	// not call it.
	ChampionSightRadius(tag string) float32
	ChampionMoveSpeed(tag string) float32
}
