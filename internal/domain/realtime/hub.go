package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"fitzone/internal/pkg/events"
	"fitzone/internal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

type client struct {
	userID int64
	admin  bool
	conn   *websocket.Conn
	send   chan []byte
}

// Hub keeps every open socket per user. A user may have several tabs open.
// Admin sockets also receive every event. Hub implements events.Publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*client]struct{}
	admins  map[*client]struct{}
	closed  bool
	log     logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[int64]map[*client]struct{}),
		admins:  make(map[*client]struct{}),
		log:     logger.OrDiscard(log),
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	if c.admin {
		h.admins[c] = struct{}{}
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	delete(h.admins, c)
	close(c.send)
}

// Connections returns the number of open sockets for userID.
func (h *Hub) Connections(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish pushes e to the owner's sockets and to admin sockets. Slow
// clients miss the event rather than blocking the caller.
func (h *Hub) Publish(_ context.Context, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.clients[e.UserID] {
		if h.push(c, data) {
			delivered++
		}
	}
	for c := range h.admins {
		if c.userID == e.UserID {
			continue
		}
		h.push(c, data)
	}
	if delivered == 0 {
		h.log.WithFields(logrus.Fields{"type": e.Type, "user_id": e.UserID}).Debug("event not delivered to any socket")
	}
	return nil
}

func (h *Hub) push(c *client, data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		h.log.WithField("user_id", c.userID).Warn("websocket send buffer full, dropping event")
		return false
	}
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
	h.admins = make(map[*client]struct{})
}

// serve runs the connection until the peer goes away.
func (h *Hub) serve(conn *websocket.Conn, userID int64, admin bool) {
	c := &client{userID: userID, admin: admin, conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	h.log.WithField("user_id", userID).Info("websocket connected")

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		h.log.WithField("user_id", c.userID).Info("websocket disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).WithField("user_id", c.userID).Warn("websocket read failed")
			}
			return
		}

		var in struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(msg, &in) != nil {
			continue
		}
		if in.Type == "ping" {
			h.mu.RLock()
			if !h.closed {
				h.push(c, []byte(`{"type":"pong"}`))
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
