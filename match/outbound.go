package match

import (
	"github.com/stormline/arena/chat"
	"github.com/stormline/arena/engine"
	"github.com/stormline/arena/snapshot"
)

// EntityAssignment pairs a joined player with their spawned champion
// entity.
type EntityAssignment struct {
	PlayerID   engine.PlayerID `json:"playerId"`
	ChampionID string          `json:"championId"`
	Side       engine.Side     `json:"side"`
	EntityID   engine.EntityID `json:"entityId"`
}

// GameStart is sent once, to every viewer, on the waiting→playing
// transition.
type GameStart struct {
	Assignments []EntityAssignment `json:"assignments"`
}

// GameEnd is sent once, to every viewer, when the match ends; the end
// callback fires with the winning side.
type GameEnd struct {
	WinningSide engine.Side `json:"winningSide"`
}

// Error is sent to one viewer for an unrecoverable per-player condition;
// sending it never ends the match.
type Error struct {
	Kind   FaultKind `json:"kind"`
	Detail string    `json:"detail"`
}

// outbound is implemented by every message type Match hands to a viewer's
// Send callback, so the host can type-switch without reflection.
type outbound interface{}

var (
	_ outbound = GameStart{}
	_ outbound = GameEnd{}
	_ outbound = Error{}
	_ outbound = snapshot.StateUpdate{}
	_ outbound = snapshot.FullStateSnapshot{}
	_ outbound = chat.Message{}
)
