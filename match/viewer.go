package match

import "github.com/stormline/arena/engine"

// Send delivers one outbound message to a viewer's connection. It must be
// non-blocking from the tick loop's perspective.
type Send func(message interface{})

// viewer is one joined participant: a player paired one-to-one with a
// champion entity and a side.
type viewer struct {
	player      engine.PlayerID
	side        engine.Side
	championTag string
	championID  engine.EntityID
	connected   bool
	send        Send
	isBot       bool
	bot         *botState
}
