package rules

import "github.com/stormline/arena/engine"

// Default is a minimal but functioning Catalogue: three champion archetypes,
// two minion tags, and flat tower/nexus stats, enough to exercise the whole
// simulation end to end. A production deployment would replace this with a
// data file or a richer plugin; only match.DefaultConfig refers to Default,
// and everything else goes through the Catalogue interface.
type Default struct {
	champions map[string]ChampionStats
	minions   map[string]MinionStats
	towerStats, nexusStats StructureStats
}

// NewDefault builds the built-in stat tables.
func NewDefault() *Default {
	return &Default{
		champions: map[string]ChampionStats{
			"warrior": {MoveSpeed: 5.2, SightRadius: 15, Health: 620, Resource: 280, AttackRange: 2, AttackDamage: 62, AttackCooldown: engine.SecondsToTicks(1.0)},
			"mage":    {MoveSpeed: 4.8, SightRadius: 16, Health: 480, Resource: 420, AttackRange: 11, AttackDamage: 48, AttackCooldown: engine.SecondsToTicks(1.3)},
			"archer":  {MoveSpeed: 5.0, SightRadius: 17, Health: 520, Resource: 260, AttackRange: 13, AttackDamage: 55, AttackCooldown: engine.SecondsToTicks(0.9)},
		},
		minions: map[string]MinionStats{
			"melee":   {MoveSpeed: 4.0, SightRadius: 8, Health: 480, AttackRange: 1.5, AttackDamage: 14, AttackCooldown: engine.SecondsToTicks(1.0), Gold: 21, XP: 59},
			"caster":  {MoveSpeed: 4.0, SightRadius: 8, Health: 280, AttackRange: 6, AttackDamage: 22, AttackCooldown: engine.SecondsToTicks(1.0), Gold: 14, XP: 37},
		},
		towerStats: StructureStats{Health: 2200, AttackRange: 8.5, AttackDamage: 145, AttackCooldown: engine.SecondsToTicks(0.7), Attacks: true, Gold: 150, XP: 0},
		nexusStats: StructureStats{Health: 3500, Attacks: false},
	}
}

func (d *Default) NewChampionState(tag string) engine.State {
	stats, ok := d.champions[tag]
	if !ok {
		stats = d.champions["warrior"]
	}
	return NewChampionState(stats)
}

func (d *Default) NewMinionState(tag string) engine.State {
	stats, ok := d.minions[tag]
	if !ok {
		stats = d.minions["melee"]
	}
	return NewMinionState(stats)
}

func (d *Default) NewStructureState(kind engine.EntityKind) engine.State {
	if kind == engine.EntityKindNexus {
		return NewStructureState(d.nexusStats)
	}
	return NewStructureState(d.towerStats)
}

func (d *Default) NewProjectileState(source engine.EntityID, damage float32, target engine.EntityID, targetPoint engine.Vec2) engine.State {
	return NewProjectileState(damage, target, targetPoint, source)
}

func (d *Default) NewWardState(trueSight bool) engine.State {
	return NewWardState()
}

func (d *Default) ChampionSightRadius(tag string) float32 {
	stats, ok := d.champions[tag]
	if !ok {
		stats = d.champions["warrior"]
	}
	return stats.SightRadius
}

func (d *Default) ChampionMoveSpeed(tag string) float32 {
	stats, ok := d.champions[tag]
	if !ok {
		stats = d.champions["warrior"]
	}
	return stats.MoveSpeed
}
