package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/gridpath/session"
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

	// Per-client and hub queue lengths.
	sendBuffer      = 256
	broadcastBuffer = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var _ session.Broadcaster = (*Hub)(nil)

// Message is the JSON frame sent to subscribers.
type Message struct {
	SessionID string      `json:"session_id"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data,omitempty"`
}

// Client is one websocket subscriber of a session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// outbound is an encoded Message on its way to the event loop.
type outbound struct {
	sessionID string
	data      []byte
}

// countQuery asks the event loop how many clients follow a session.
type countQuery struct {
	sessionID string
	reply     chan int
}

// Hub maintains the set of active clients and fans session events out to
// them. All client bookkeeping happens on the Run goroutine.
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool

	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	count      chan countQuery

	// closed when Run returns
	done chan struct{}
}

// NewHub creates a hub. Call Run to start delivering messages.
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan outbound, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan countQuery),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns nil once ctx is done, after
// closing every client connection.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.sessions {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return nil

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg)

		case q := <-h.count:
			q.reply <- len(h.sessions[q.sessionID])
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket: upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Broadcast queues an event for every client of sessionID. It never blocks:
// when the queue is full the event is dropped and logged.
func (h *Hub) Broadcast(sessionID, event string, data interface{}) {
	payload, err := json.Marshal(Message{SessionID: sessionID, Event: event, Data: data})
	if err != nil {
		log.Printf("websocket: failed to marshal %s event: %v", event, err)
		return
	}

	select {
	case h.broadcast <- outbound{sessionID: sessionID, data: payload}:
	default:
		log.Printf("websocket: queue full, dropped %s event for session %s", event, sessionID)
	}
}

// Clients returns the number of connections following sessionID, or 0 once
// the hub has stopped.
func (h *Hub) Clients(sessionID string) int {
	q := countQuery{sessionID: sessionID, reply: make(chan int, 1)}
	select {
	case h.count <- q:
		return <-q.reply
	case <-h.done:
		return 0
	}
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	log.Printf("websocket: client joined session %s (total clients: %d)",
		client.sessionID, len(h.sessions[client.sessionID]))
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}

	log.Printf("websocket: client left session %s (remaining clients: %d)",
		client.sessionID, len(clients))
}

// deliver hands msg to every client of its session. Slow clients whose
// queue is full are disconnected.
func (h *Hub) deliver(msg outbound) {
	for client := range h.sessions[msg.sessionID] {
		select {
		case client.send <- msg.data:
		default:
			h.unregisterClient(client)
		}
	}
}

// readPump discards client input and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket: read error: %v", err)
			}
			return
		}
	}
}

// writePump sends queued messages, one JSON document per frame, and keeps
// the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
