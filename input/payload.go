// Package input implements the per-player InputPipeline: ordered queues
// keyed by a client-assigned sequence number, an out-of-order buffering
// window, rejection of invalid targets/abilities, movement clamping, and
// a rate limit. Each typed payload is validated against the current
// Player/Entity before being applied.
package input

import "github.com/stormline/arena/engine"

// PayloadType tags the kind of a ClientInput.
type PayloadType uint8

const (
	PayloadMove PayloadType = iota
	PayloadAttackMove
	PayloadTargetUnit
	PayloadStop
	PayloadCastAbility
	PayloadLevelUp
	PayloadBuyItem
	PayloadSellItem
	PayloadRecall
	PayloadPing
	PayloadPlaceWard
)

func (t PayloadType) String() string {
	switch t {
	case PayloadMove:
		return "move"
	case PayloadAttackMove:
		return "attack-move"
	case PayloadTargetUnit:
		return "target-unit"
	case PayloadStop:
		return "stop"
	case PayloadCastAbility:
		return "cast-ability"
	case PayloadLevelUp:
		return "level-up"
	case PayloadBuyItem:
		return "buy-item"
	case PayloadSellItem:
		return "sell-item"
	case PayloadRecall:
		return "recall"
	case PayloadPing:
		return "ping"
	case PayloadPlaceWard:
		return "place-ward"
	default:
		return "unknown"
	}
}

// Payload carries the typed, kind-specific fields of a ClientInput. Every
// field is optional — only the ones matching Type are meaningful. A
// single struct-of-optionals shape lets the core store heterogeneous
// inputs in one ordered queue.
type Payload struct {
	Destination engine.Vec2    // move, attack-move, place-ward
	Target      engine.EntityID // target-unit, cast-ability
	Slot        int             // cast-ability, level-up, buy-item, sell-item
	ItemTag     string          // buy-item
}

// ClientInput is one entry in a player's ordered input queue: a
// monotonically increasing seq, a client-reported send time, and a typed
// payload.
type ClientInput struct {
	Seq        uint32
	ClientTime int64 // client-reported send time, opaque to the core
	Type       PayloadType
	Payload    Payload
}
