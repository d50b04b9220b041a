package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stormline/arena/engine"
)

// Connection timing and size limits are tuned for a websocket game
// protocol with small, frequent frames.
const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// connection is one player's websocket: a buffered outbound channel
// drained by writePump, a readPump decoding frames into the host's
// dispatch, and a once-only Close so a bad read and a bad write can't
// both try to tear it down.
type connection struct {
	player engine.PlayerID
	conn   *websocket.Conn
	send   chan interface{}
	once   sync.Once

	onMessage func(typ string, data []byte)
	onClose   func()
}

func newConnection(player engine.PlayerID, conn *websocket.Conn) *connection {
	return &connection{player: player, conn: conn, send: make(chan interface{}, 16)}
}

// Send enqueues message for delivery; a saturated queue means the client
// fell behind and is torn down rather than left to back-pressure the
// match's tick loop.
func (c *connection) Send(message interface{}) {
	select {
	case c.send <- message:
	default:
		c.close()
	}
}

func (c *connection) close() {
	c.once.Do(func() {
		close(c.send)
		_ = c.conn.Close()
		if c.onClose != nil {
			c.onClose()
		}
	})
}

func (c *connection) run() {
	go c.writePump()
	go c.readPump()
}

func (c *connection) readPump() {
	defer c.close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("arenahost: close error:", err)
			}
			return
		}
		typ, raw, err := decodeInbound(data)
		if err != nil {
			log.Println("arenahost: decode error:", err)
			continue
		}
		if c.onMessage != nil {
			c.onMessage(typ, raw)
		}
	}
}

func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			encoded, err := encodeOutbound(message)
			if err != nil {
				log.Println("arenahost: encode error:", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, encoded); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
