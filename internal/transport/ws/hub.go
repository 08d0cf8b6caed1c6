package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Monitor message types
const (
	MsgScreeningCompleted MessageType = "screening_completed"
	MsgStatsUpdate        MessageType = "stats_update"
	MsgError              MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the clinician dashboard connections that watch screenings
// arrive live
type Hub struct {
	monitors map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
}

// Connection represents one monitor WebSocket connection
type Connection struct {
	ClinicianID string
	Send        chan []byte
	Hub         *Hub
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		monitors:   make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.monitors[conn] = true
			h.mu.Unlock()
			log.Printf("Monitor %s connected", conn.ClinicianID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.monitors[conn] {
				delete(h.monitors, conn)
				close(conn.Send)
				log.Printf("Monitor %s disconnected", conn.ClinicianID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg)
			for conn := range h.monitors {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToMonitors sends a message to every connected dashboard
// (implements service.Broadcaster)
func (h *Hub) BroadcastToMonitors(msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &Message{
		Type:    MessageType(msgType),
		Payload: data,
	}
}
