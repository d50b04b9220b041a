package engine

import "time"

// TickRate is the fixed simulation rate.
const TickRate = 125

// TickPeriod is dt = 1/R.
const TickPeriod = time.Second / TickRate

// Ticks counts fixed-step advances; it is the unit of in-match time.
type Ticks uint32

func (t Ticks) Float() float32 {
	return float32(t) * (float32(TickPeriod) / float32(time.Second))
}

func SecondsToTicks(seconds float32) Ticks {
	return Ticks(seconds * (float32(time.Second) / float32(TickPeriod)))
}

// Tick is the match-local, monotonically increasing tick counter T.
type Tick uint64
