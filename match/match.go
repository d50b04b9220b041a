package match

import (
	"fmt"
	"log"
	"sync"

	"github.com/stormline/arena/chat"
	"github.com/stormline/arena/engine"
	"github.com/stormline/arena/input"
	"github.com/stormline/arena/reliable"
	"github.com/stormline/arena/snapshot"
	"github.com/stormline/arena/visibility"
)

// state is Match's lifecycle.
type state uint8

const (
	stateWaiting state = iota
	stateStarting
	statePlaying
	stateEnded
)

// Match is the per-match orchestrator: start/stop, spawn, the per-tick
// pipeline, per-viewer broadcast, disconnect/reconnect, and win detection.
// It is a mutex-guarded struct callable directly from a host's own
// connection goroutines: a single logical worker, serial within a match.
type Match struct {
	mu sync.Mutex

	id     string
	config Config
	logger *log.Logger

	state state
	tick  engine.Tick

	registry   *engine.Registry
	events     *engine.EventBus
	sim        *engine.Simulation
	visibility *visibility.Grid
	pipeline   *input.Pipeline
	serializer *snapshot.Serializer
	reliable   *reliable.Queue
	chat       *chat.Channel

	viewers map[engine.PlayerID]*viewer

	onEnd func(winningSide engine.Side)
}

// New constructs a Match in state waiting. id is the MatchRegistry-assigned
// identifier.
func New(id string, cfg Config, logger *log.Logger) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(log.Writer(), fmt.Sprintf("[match %s] ", id), log.LstdFlags)
	}

	registry := engine.NewRegistry(cfg.VisibilityCellSize)
	events := &engine.EventBus{}

	m := &Match{
		id:         id,
		config:     cfg,
		logger:     logger,
		registry:   registry,
		events:     events,
		sim:        engine.NewSimulation(registry, events, cfg.WorldRadius, cfg.AssistWindow, logger),
		visibility: visibility.New(cfg.VisibilityCellSize, engine.SideA, engine.SideB),
		pipeline:   input.NewPipeline(cfg.InputRateLimitPerSecond, cfg.TickRate, cfg.InputBufferWindow),
		serializer: snapshot.NewSerializer(snapshot.NewPrioritizer(cfg.NearRadius, cfg.MidRadius)),
		reliable:   reliable.NewQueue(cfg.ReliableInitialResend, cfg.ReliableFactor, cfg.ReliableMaxResend, cfg.ReliableMaxAttempts),
		chat:       chat.NewChannel(),
		viewers:    make(map[engine.PlayerID]*viewer),
	}
	m.pipeline.OnDropped(func(player engine.PlayerID, reason string) {
		m.logger.Printf("player %d: input dropped (%s)", player, reason)
	})
	m.reliable.OnDropped(func(recipient engine.PlayerID, eventID uint64, reason string) {
		m.logger.Printf("player %d: reliable event %d dropped (%s)", recipient, eventID, reason)
	})
	return m, nil
}

// OnEnd registers the callback fired once, with the winning side, when the
// match ends by nexus destruction.
func (m *Match) OnEnd(fn func(winningSide engine.Side)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnd = fn
}

// Join registers player as a viewer before the match starts, recording
// their side and chosen champion. Joining after start is rejected; players
// who join but never get spawned before Start has no effect.
func (m *Match) Join(player engine.PlayerID, side engine.Side, championTag string, send Send) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != stateWaiting {
		return Fault{Kind: FaultInvalidInput, Detail: "match already started"}
	}
	m.viewers[player] = &viewer{player: player, side: side, championTag: championTag, connected: true, send: send}
	return nil
}

// Start transitions waiting -> starting -> playing, spawning structures and
// every joined viewer's champion.
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != stateWaiting {
		return Fault{Kind: FaultInvalidInput, Detail: "match already started"}
	}
	m.state = stateStarting

	m.fillBotsLocked()
	m.spawnStructures()

	assignments := make([]EntityAssignment, 0, len(m.viewers))
	for _, v := range m.viewers {
		m.spawnChampion(v)
		m.visibility.Update(m.registry) // seed so GameStart recipients already have vision of their own champion
		assignments = append(assignments, EntityAssignment{
			PlayerID: v.player, ChampionID: v.championTag, Side: v.side, EntityID: v.championID,
		})
	}

	m.state = statePlaying
	start := GameStart{Assignments: assignments}
	for _, v := range m.viewers {
		if v.send != nil {
			v.send(start)
		}
	}
	return nil
}

// Stop forces a transition to ended regardless of current state.
func (m *Match) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = stateEnded
}

// Ended reports whether the match has finished.
func (m *Match) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == stateEnded
}

// HandleInput delegates to InputPipeline; ignored if not playing.
func (m *Match) HandleInput(player engine.PlayerID, in input.ClientInput) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != statePlaying {
		return
	}
	m.pipeline.Enqueue(player, in, m.tick)
}

// HandleEventAck delegates to ReliableEventQueue.
func (m *Match) HandleEventAck(player engine.PlayerID, lastEventID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reliable.Ack(player, lastEventID)
}

// HandleDisconnect marks player disconnected and clears their pipeline
// queue, serializer baseline, and reliable event queue state; the champion
// remains in the world.
func (m *Match) HandleDisconnect(player engine.PlayerID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.viewers[player]
	if !ok {
		return
	}
	v.connected = false
	v.send = nil
	m.pipeline.Disconnect(player)
	m.serializer.Disconnect(player)
	m.reliable.Disconnect(player)
	m.chat.Forget(player)
}

// HandleChat moderates and, if allowed, broadcasts a chat line from
// player — an unreliable side-channel alongside StateUpdate (supplemented
// feature: a dropped chat line is never resent, unlike gameplay events).
func (m *Match) HandleChat(player engine.PlayerID, scope chat.Scope, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.viewers[player]
	if !ok || m.state != statePlaying {
		return
	}
	message, allowed := m.chat.Post(player, v.side, scope, text)
	if !allowed {
		return
	}
	for _, rv := range m.viewers {
		if rv.send == nil {
			continue
		}
		if scope == chat.ScopeTeam && rv.side != v.side {
			continue
		}
		rv.send(message)
	}
}

// HandleReconnect marks player connected and returns a full snapshot of
// currently visible entities plus an empty event list.
func (m *Match) HandleReconnect(player engine.PlayerID, send Send) (snapshot.FullStateSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.viewers[player]
	if !ok {
		return snapshot.FullStateSnapshot{}, Fault{Kind: FaultInvalidInput, Detail: "unknown player"}
	}
	v.connected = true
	v.send = send

	visible := m.visibleEntitiesFor(v)
	return m.serializer.FullSnapshot(player, visible, m.tick, wallTimeMillis(), engine.Ticks(m.tick)), nil
}

// DebugSnapshot is a read-only introspection view for a debug/status
// endpoint.
type DebugSnapshot struct {
	MatchID      string `json:"matchId"`
	Tick         uint64 `json:"tick"`
	State        string `json:"state"`
	EntityCount  int    `json:"entityCount"`
	ViewerCount  int    `json:"viewerCount"`
}

func (m *Match) DebugSnapshot() DebugSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return DebugSnapshot{
		MatchID:     m.id,
		Tick:        uint64(m.tick),
		State:       m.state.String(),
		EntityCount: m.registry.Count(),
		ViewerCount: len(m.viewers),
	}
}

func (s state) String() string {
	switch s {
	case stateWaiting:
		return "waiting"
	case stateStarting:
		return "starting"
	case statePlaying:
		return "playing"
	case stateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

