package chat

import (
	"sync"
	"time"

	"github.com/stormline/arena/engine"
)

// Scope is who a chat message is addressed to.
type Scope uint8

const (
	ScopeAll Scope = iota
	ScopeTeam
)

// Message is one delivered (post-moderation) chat line, this package's
// own addition to the outbound message set.
type Message struct {
	Sender   engine.PlayerID `json:"sender"`
	Side     engine.Side     `json:"side"`
	Scope    Scope           `json:"scope"`
	Text     string          `json:"text"`
	SentAt   int64           `json:"sentAt"`
}

// Channel moderates and fans out chat for one match: a History per
// sender, consulted and updated on every Post. It carries no knowledge of
// viewers or delivery — Match.HandleChat (or an equivalent host hook)
// decides who actually receives a Message, since chat is explicitly an
// unreliable side-channel (a dropped line is never resent, unlike the
// gameplay events ReliableEventQueue tracks).
type Channel struct {
	mu         sync.Mutex
	histories  map[engine.PlayerID]*History
}

// NewChannel creates an empty Channel.
func NewChannel() *Channel {
	return &Channel{histories: make(map[engine.PlayerID]*History)}
}

// Post moderates text on behalf of sender and, if allowed, returns the
// Message to broadcast. ok is false if the message was blocked as spam or
// severely inappropriate and nothing should be sent.
func (c *Channel) Post(sender engine.PlayerID, side engine.Side, scope Scope, text string) (Message, bool) {
	c.mu.Lock()
	hist, ok := c.histories[sender]
	if !ok {
		hist = &History{}
		c.histories[sender] = hist
	}
	c.mu.Unlock()

	censored, allowed := hist.Submit(text)
	if !allowed {
		return Message{}, false
	}
	return Message{Sender: sender, Side: side, Scope: scope, Text: censored, SentAt: time.Now().UnixMilli()}, true
}

// Forget drops a disconnected player's moderation history, mirroring
// InputPipeline/Serializer/ReliableQueue's own per-player Disconnect
// methods — a rejoining player starts with a clean slate rather than
// inheriting a stranger's future History.
func (c *Channel) Forget(player engine.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.histories, player)
}
