package match

import (
	"log"
	"sync"

	"github.com/gofrs/uuid"

	"github.com/stormline/arena/engine"
)

// Registry is the process-wide table of live matches and which match each
// connected player belongs to: many independently created matches rather
// than one well-known arena.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*Match
	players map[engine.PlayerID]string // player -> matchId
}

// NewRegistry creates an empty match Registry.
func NewRegistry() *Registry {
	return &Registry{
		matches: make(map[string]*Match),
		players: make(map[engine.PlayerID]string),
	}
}

// Create allocates a new MatchID, constructs a Match, and registers it.
func (r *Registry) Create(cfg Config, logger *log.Logger) (*Match, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	m, err := New(id.String(), cfg, logger)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.matches[m.id] = m
	r.mu.Unlock()
	return m, nil
}

// Get looks up a match by its ID.
func (r *Registry) Get(matchID string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[matchID]
	return m, ok
}

// AssignPlayer records which match a joined player belongs to, so a later
// reconnect can be routed without the client remembering its match ID.
func (r *Registry) AssignPlayer(player engine.PlayerID, matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[player] = matchID
}

// MatchFor returns the match a player last joined, if any.
func (r *Registry) MatchFor(player engine.PlayerID) (*Match, bool) {
	r.mu.RLock()
	matchID, ok := r.players[player]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.Get(matchID)
}

// Reap removes every ended match from the table, releasing its memory and
// its players' routing entries. A host calls this periodically; it is not
// done automatically so the caller controls when results have been read.
func (r *Registry) Reap() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.matches {
		if m.Ended() {
			delete(r.matches, id)
		}
	}
	for player, matchID := range r.players {
		if _, ok := r.matches[matchID]; !ok {
			delete(r.players, player)
		}
	}
}

// DebugSnapshots returns a DebugSnapshot for every live match, for a
// host's introspection endpoint (supplemented feature).
func (r *Registry) DebugSnapshots() []DebugSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DebugSnapshot, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m.DebugSnapshot())
	}
	return out
}
