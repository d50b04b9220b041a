package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/stormline/arena/engine"
	"github.com/stormline/arena/match"
)

// defaultChampionTag is used when a client's join request omits one.
const defaultChampionTag = "warrior"

// Host owns the process-wide match.Registry and the simple matchmaking
// that fills two-sided matches from incoming websocket connections,
// scaled out to many independent matches instead of one global arena.
type Host struct {
	registry   *match.Registry
	minViewers int

	mu          sync.Mutex
	waiting     *match.Match
	waitingStop chan struct{}
	nextSide    engine.Side

	nextPlayer uint32
}

// NewHost creates a Host backed by a fresh match.Registry.
func NewHost(minViewers int) *Host {
	return &Host{registry: match.NewRegistry(), minViewers: minViewers, nextSide: engine.SideA}
}

func (h *Host) allocatePlayer() engine.PlayerID {
	return engine.PlayerID(atomic.AddUint32(&h.nextPlayer, 1))
}

// joinWaitingMatch places a new connection's player into a match with an
// open side, creating one if none is waiting, and starts the match once
// both sides are occupied (a side-B player has joined); Start then adds
// bots up to minViewers.
func (h *Host) joinWaitingMatch(player engine.PlayerID, championTag string, send match.Send) (*match.Match, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.waiting == nil {
		cfg := match.DefaultConfig()
		cfg.MinViewers = h.minViewers
		m, err := h.registry.Create(cfg, log.Default())
		if err != nil {
			return nil, err
		}
		stop := make(chan struct{})
		m.OnEnd(func(engine.Side) {
			close(stop)
			// OnEnd runs inside Tick with the match locked, and Reap locks
			// each match, so it runs on its own goroutine.
			go h.registry.Reap()
		})
		h.waiting = m
		h.waitingStop = stop
		h.nextSide = engine.SideA
	}

	m := h.waiting
	side := h.nextSide
	if err := m.Join(player, side, championTag, send); err != nil {
		return nil, err
	}
	h.registry.AssignPlayer(player, m.DebugSnapshot().MatchID)

	if side == engine.SideA {
		h.nextSide = engine.SideB
	} else {
		h.nextSide = engine.SideA
		stop := h.waitingStop
		h.waiting = nil
		h.waitingStop = nil
		go func() {
			if err := m.Start(); err != nil {
				log.Println("arenahost: start error:", err)
				return
			}
			m.Run(stop)
		}()
	}
	return m, nil
}

// ServeWs upgrades the request to a websocket and attaches the resulting
// connection to whichever match is still accepting players.
func (h *Host) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("arenahost: upgrade error:", err)
		return
	}

	player := h.allocatePlayer()
	c := newConnection(player, conn)

	var m *match.Match
	c.onMessage = func(typ string, data []byte) {
		switch typ {
		case "join":
			var req joinRequest
			_ = json.Unmarshal(data, &req)
			if req.ChampionTag == "" {
				req.ChampionTag = defaultChampionTag
			}
			joined, err := h.joinWaitingMatch(player, req.ChampionTag, c.Send)
			if err != nil {
				c.Send(match.Error{Kind: match.FaultInvalidInput, Detail: err.Error()})
				return
			}
			m = joined
		case "input":
			if m == nil {
				return
			}
			in, err := decodeClientInput(data)
			if err != nil {
				return
			}
			m.HandleInput(player, in)
		case "chat":
			if m == nil {
				return
			}
			var req chatRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return
			}
			m.HandleChat(player, req.Scope, req.Text)
		case "ack":
			if m == nil {
				return
			}
			var req eventAckRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return
			}
			m.HandleEventAck(player, req.LastEventID)
		case "reconnect":
			if joined, ok := h.registry.MatchFor(player); ok {
				m = joined
				full, err := m.HandleReconnect(player, c.Send)
				if err != nil {
					c.Send(match.Error{Kind: match.FaultInvalidInput, Detail: err.Error()})
					return
				}
				c.Send(full)
			}
		default:
			log.Println("arenahost: unknown inbound type:", typ)
		}
	}
	c.onClose = func() {
		if m != nil {
			m.HandleDisconnect(player)
		}
	}

	c.run()
}

// ServeStatus exposes DebugSnapshot for every live match.
func (h *Host) ServeStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.registry.DebugSnapshots())
}
