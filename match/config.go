package match

import (
	"errors"

	"github.com/stormline/arena/engine"
	"github.com/stormline/arena/rules"
)

// Config enumerates every per-match tunable: tick rate, visibility and
// reliability tuning, input limits, and map geometry (lanes, spawn
// points, structure positions).
//
// NearRadius/MidRadius are the two boundaries that define the three
// cadence tiers (near, near..mid, beyond-mid) — the third tier has no
// upper bound.
type Config struct {
	TickRate            int
	VisibilityCellSize  float32
	NearRadius          float32
	MidRadius           float32
	TrueSightRadius      float32

	ReliableInitialResend engine.Tick
	ReliableFactor        float32
	ReliableMaxResend     engine.Tick
	ReliableMaxAttempts   int

	InputRateLimitPerSecond int
	InputBufferWindow       engine.Ticks

	WorldRadius float32

	// ChampionSpawn, TowerPosition, and NexusPosition are per-side map
	// geometry. Exactly one nexus per side is required.
	ChampionSpawn map[engine.Side]engine.Vec2
	TowerPosition map[engine.Side][]engine.Vec2
	NexusPosition map[engine.Side]engine.Vec2

	// Catalogue is the external rules-catalogue collaborator.
	Catalogue rules.Catalogue

	// MinViewers, if greater than the number of joined real viewers,
	// causes Start to fill the remainder with bot viewers (see JoinBot).
	MinViewers int

	// AssistWindow is how many ticks before a kill a prior damage source
	// still counts as an assister, per rules.creditKiller.
	AssistWindow engine.Tick
}

// DefaultConfig returns a Config with the default tick rate and a small
// symmetric single-lane map (two towers and a nexus per side), and otherwise sane zero-config defaults.
func DefaultConfig() Config {
	return Config{
		TickRate:                engine.TickRate,
		VisibilityCellSize:      5,
		NearRadius:              20,
		MidRadius:               50,
		TrueSightRadius:         2,
		ReliableInitialResend:   engine.Tick(engine.TickRate / 2),
		ReliableFactor:          2,
		ReliableMaxResend:       engine.Tick(engine.TickRate * 20),
		ReliableMaxAttempts:     8,
		InputRateLimitPerSecond: 60,
		InputBufferWindow:       engine.Ticks(engine.TickRate / 4),
		WorldRadius:             150,
		AssistWindow:            engine.Tick(engine.TickRate * 10),
		Catalogue:               rules.NewDefault(),
		ChampionSpawn: map[engine.Side]engine.Vec2{
			engine.SideA: {X: -140},
			engine.SideB: {X: 140},
		},
		TowerPosition: map[engine.Side][]engine.Vec2{
			engine.SideA: {{X: -120}, {X: -60}},
			engine.SideB: {{X: 120}, {X: 60}},
		},
		NexusPosition: map[engine.Side]engine.Vec2{
			engine.SideA: {X: -150},
			engine.SideB: {X: 150},
		},
	}
}

// Validate reports the first configuration error found, failing fast at
// construction time rather than deferring to first-use panics.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return errors.New("match: TickRate must be positive")
	}
	if c.VisibilityCellSize <= 0 {
		return errors.New("match: VisibilityCellSize must be positive")
	}
	if c.NearRadius <= 0 || c.MidRadius <= c.NearRadius {
		return errors.New("match: NearRadius must be positive and less than MidRadius")
	}
	if c.ReliableInitialResend <= 0 || c.ReliableMaxResend < c.ReliableInitialResend {
		return errors.New("match: reliable resend schedule is invalid")
	}
	if c.ReliableFactor < 1 {
		return errors.New("match: ReliableFactor must be at least 1")
	}
	if c.AssistWindow <= 0 {
		return errors.New("match: AssistWindow must be positive")
	}
	if c.Catalogue == nil {
		return errors.New("match: Catalogue is required")
	}
	if _, ok := c.NexusPosition[engine.SideA]; !ok {
		return errors.New("match: NexusPosition missing for SideA")
	}
	if _, ok := c.NexusPosition[engine.SideB]; !ok {
		return errors.New("match: NexusPosition missing for SideB")
	}
	return nil
}
