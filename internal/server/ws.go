package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Event is one emitted signal.
type Event struct {
	Loop      string `json:"loop"`
	Payload   string `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

// clientBuffer is how many events a subscriber may fall behind before new
// ones are dropped for it.
const clientBuffer = 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// EventHub broadcasts events to WebSocket subscribers. Each subscriber has
// its own writer goroutine, so Broadcast never waits on the network.
type EventHub struct {
	clients map[*client]bool
	last    Event
	hasLast bool
	mu      sync.Mutex
}

// NewEventHub creates an empty EventHub.
func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[*client]bool)}
}

// ServeHTTP upgrades the request and subscribes the connection. The latest
// event, if any, is sent right away.
func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c] = true
	if h.hasLast {
		if msg, err := json.Marshal(h.last); err == nil {
			c.send <- msg
		}
	}
	h.mu.Unlock()

	go c.writeLoop()
	defer h.remove(c)

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writeLoop is the only writer on the connection. It sends a close frame
// and closes the connection once the hub drops the client.
func (c *client) writeLoop() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
}

func (h *EventHub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast records e as the latest event and queues it for every client.
// A client whose queue is full misses the event.
func (h *EventHub) Broadcast(e Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = e
	h.hasLast = true
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Last returns the most recent event.
func (h *EventHub) Last() (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasLast
}

// Clients returns the number of subscribers.
func (h *EventHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *EventHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
