// Package spectate streams live game snapshots to WebSocket spectators.
package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer      = 64
	broadcastBuffer = 256
)

// Events carried by Message.
const (
	EventSnapshot = "snapshot"
	EventClosed   = "closed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one frame sent to spectators.
type Message struct {
	SessionID string          `json:"session_id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// SessionInfo describes a live session.
type SessionInfo struct {
	ID         string    `json:"id"`
	Spectators int       `json:"spectators"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Client is one spectator connection.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type feed struct {
	latest    []byte
	updatedAt time.Time
	clients   map[*Client]bool
}

type outgoing struct {
	sessionID string
	event     string
	data      []byte
	at        time.Time
}

// Hub fans snapshots out to the spectators of each session. Publish and
// Close are safe to call from any goroutine; Run owns delivery.
type Hub struct {
	mu    sync.RWMutex
	feeds map[string]*feed

	broadcast  chan outgoing
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	logger *log.Logger
}

// NewHub creates a hub. A nil logger uses the default logger.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		feeds:      make(map[string]*feed),
		broadcast:  make(chan outgoing, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run delivers messages until ctx is cancelled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// Publish queues a snapshot for a session. It never blocks: when the queue
// is full the snapshot is dropped.
func (h *Hub) Publish(sessionID string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("cannot encode snapshot", "session", sessionID, "error", err)
		return
	}
	h.enqueue(outgoing{sessionID: sessionID, event: EventSnapshot, data: data, at: time.Now()})
}

// Close ends a session's feed and disconnects its spectators.
func (h *Hub) Close(sessionID string) {
	h.enqueue(outgoing{sessionID: sessionID, event: EventClosed, at: time.Now()})
}

func (h *Hub) enqueue(msg outgoing) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("spectator queue full, dropping message", "session", msg.sessionID, "event", msg.event)
	}
}

// Sessions lists the live sessions, most recently updated first.
func (h *Hub) Sessions() []SessionInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]SessionInfo, 0, len(h.feeds))
	for id, f := range h.feeds {
		out = append(out, SessionInfo{ID: id, Spectators: len(f.clients), UpdatedAt: f.updatedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Has reports whether a session is live.
func (h *Hub) Has(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.feeds[sessionID]
	return ok
}

// ServeWS upgrades the request and attaches a spectator to the session.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func encode(sessionID, event string, data []byte) []byte {
	//nolint:errcheck // RawMessage from json.Marshal always encodes
	b, _ := json.Marshal(Message{SessionID: sessionID, Event: event, Data: data})
	return b
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.feeds[c.sessionID]
	if !ok {
		close(c.send)
		return
	}
	f.clients[c] = true
	if f.latest != nil {
		c.send <- encode(c.sessionID, EventSnapshot, f.latest)
	}
	h.logger.Debug("spectator joined", "session", c.sessionID, "spectators", len(f.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked detaches a client. h.mu must be held.
func (h *Hub) removeLocked(c *Client) {
	f, ok := h.feeds[c.sessionID]
	if !ok || !f.clients[c] {
		return
	}
	delete(f.clients, c)
	close(c.send)
	h.logger.Debug("spectator left", "session", c.sessionID, "spectators", len(f.clients))
}

func (h *Hub) deliver(msg outgoing) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.feeds[msg.sessionID]
	if msg.event == EventClosed {
		if !ok {
			return
		}
		frame := encode(msg.sessionID, EventClosed, nil)
		for c := range f.clients {
			select {
			case c.send <- frame:
			default:
			}
			close(c.send)
		}
		delete(h.feeds, msg.sessionID)
		h.logger.Info("session feed closed", "session", msg.sessionID)
		return
	}

	if !ok {
		f = &feed{clients: make(map[*Client]bool)}
		h.feeds[msg.sessionID] = f
		h.logger.Info("session feed opened", "session", msg.sessionID)
	}
	f.latest = msg.data
	f.updatedAt = msg.at

	frame := encode(msg.sessionID, EventSnapshot, msg.data)
	for c := range f.clients {
		select {
		case c.send <- frame:
		default:
			h.removeLocked(c)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, f := range h.feeds {
		for c := range f.clients {
			close(c.send)
		}
		delete(h.feeds, id)
	}
}

// readPump keeps the connection alive and detaches the client when it goes
// away. Spectators never send anything meaningful.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket error", "session", c.sessionID, "error", err)
			}
			return
		}
	}
}

// writePump sends queued frames, one WebSocket message per frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			//nolint:errcheck // deadline errors surface on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // connection is closing anyway
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // deadline errors surface on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
