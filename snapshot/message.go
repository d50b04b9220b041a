// Package snapshot implements SnapshotSerializer and EntityPrioritizer:
// per-viewer delta compression against a baseline, priority-based update
// thinning by spatial proximity, and the wire message shapes sent to the
// host.
package snapshot

import "github.com/stormline/arena/engine"

// EntityDelta is one entry of StateUpdate.deltas[]. Removed is a
// dedicated bool rather than a changeMask bit, so a removal reads
// unambiguously on the wire instead of overloading a bit that would
// otherwise mean something else.
//
// Data always carries the entity's full snapshot in memory; only
// jsoniter.go's custom encoder for this type is mask-aware, writing just
// the field families named by ChangeMask onto the wire (and neither
// ChangeMask nor Data at all when Removed). The json tags below are
// unused by that encoder and exist only for documentation and for any
// code that falls back to encoding/json directly.
type EntityDelta struct {
	EntityID   engine.EntityID       `json:"entityId"`
	ChangeMask engine.FieldFamily    `json:"changeMask,omitempty"`
	Data       engine.EntitySnapshot `json:"data"`
	Removed    bool                  `json:"removed,omitempty"`
}

// StateUpdate is sent per tick, per connected viewer.
type StateUpdate struct {
	Tick     engine.Tick                `json:"tick"`
	WallTime int64                      `json:"wallTime"`
	GameTime engine.Ticks               `json:"gameTime"`
	Acks     map[engine.PlayerID]uint32 `json:"acks"`
	Deltas   []EntityDelta              `json:"deltas"`
	Events   []engine.Event             `json:"events"`

	// LastEventID is the maximum eventId over the reliable events included
	// in this update. Zero means none.
	LastEventID uint64 `json:"lastEventId,omitempty"`
}

// FullStateSnapshot is sent once, on reconnect, ignoring any prior
// baseline.
type FullStateSnapshot struct {
	Tick     engine.Tick    `json:"tick"`
	WallTime int64          `json:"wallTime"`
	GameTime engine.Ticks   `json:"gameTime"`
	Entities []EntityDelta  `json:"entities"`
	Events   []engine.Event `json:"events"`
}
