package match

import (
	"math/rand"

	"github.com/stormline/arena/engine"
)

// JoinBot fills an empty viewer slot with a simple scripted participant;
// Config.MinViewers keeps a match playable without waiting for MinViewers
// real players. A bot has no network connection: Tick drives its
// decisions directly against the live registry instead of round-tripping
// through a StateUpdate and the InputPipeline.
func (m *Match) JoinBot(side engine.Side, championTag string) engine.PlayerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joinBotLocked(side, championTag)
}

// joinBotLocked is JoinBot's body, factored out so Start can top up to
// MinViewers while already holding m.mu.
func (m *Match) joinBotLocked(side engine.Side, championTag string) engine.PlayerID {
	player := m.nextBotID()
	m.viewers[player] = &viewer{
		player: player, side: side, championTag: championTag, connected: true, isBot: true,
		bot: &botState{r: rand.New(rand.NewSource(int64(player))), aggression: 0.5},
	}
	return player
}

// fillBotsLocked tops up the viewer roster to Config.MinViewers by
// alternating sides, so a match need not wait on real players to start.
// Caller holds m.mu.
func (m *Match) fillBotsLocked() {
	sides := [2]engine.Side{engine.SideA, engine.SideB}
	for i := 0; len(m.viewers) < m.config.MinViewers; i++ {
		m.joinBotLocked(sides[i%2], "warrior")
	}
}

// nextBotID hands out a PlayerID in a range real players never occupy:
// callers assign real PlayerIDs starting at 1, so bots count down from
// the top of the space. Caller holds m.mu.
func (m *Match) nextBotID() engine.PlayerID {
	max := ^engine.PlayerID(0)
	for max > 0 {
		if _, taken := m.viewers[max]; !taken {
			return max
		}
		max--
	}
	return engine.PlayerIDInvalid
}

// botState is a bot viewer's decision memory between ticks.
type botState struct {
	r           *rand.Rand
	destination engine.Vec2
	aggression  float32
}

// actBots drives every bot viewer's champion for this tick: wander toward
// a random point, or engage the nearest visible enemy within sight radius.
// Caller holds m.mu.
func (m *Match) actBots() {
	for _, v := range m.viewers {
		if !v.isBot {
			continue
		}
		m.actBot(v)
	}
}

func (m *Match) actBot(v *viewer) {
	champ := m.registry.Get(v.championID)
	if champ == nil || !champ.Alive {
		return
	}
	bot := v.bot

	if champ.TargetEntityID == engine.EntityIDInvalid &&
		(bot.destination == engine.Vec2{} || champ.Position.DistanceSquared(bot.destination) < 25) {
		bot.destination = engine.Vec2{
			X: (bot.r.Float32()*2 - 1) * m.config.WorldRadius * 0.8,
			Y: (bot.r.Float32()*2 - 1) * m.config.WorldRadius * 0.8,
		}
		champ.Destination = bot.destination
	}

	var closest *engine.Entity
	var closestDistSq float32
	m.registry.SpatialQuery(champ.Position, champ.SightRadius, func(e *engine.Entity, distSq float32) {
		if e.ID == champ.ID || !e.Alive || e.Side == engine.SideNone || e.Side == v.side {
			return
		}
		if !m.visibility.IsVisible(v.side, e.Position) {
			return
		}
		if closest == nil || distSq < closestDistSq {
			closest, closestDistSq = e, distSq
		}
	})

	if closest != nil && bot.r.Float32() < bot.aggression {
		champ.TargetEntityID = closest.ID
		champ.Destination = closest.Position
	} else if champ.TargetEntityID != engine.EntityIDInvalid {
		if target := m.registry.Get(champ.TargetEntityID); target == nil || !target.Alive {
			champ.TargetEntityID = engine.EntityIDInvalid
		}
	}
}
