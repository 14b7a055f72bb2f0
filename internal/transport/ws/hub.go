package ws

import (
	"encoding/json"
	"log"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgHotLead MessageType = "hot_lead"
	MsgError   MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the operator lead-feed connections
type Hub struct {
	conns map[*Connection]bool

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
}

// Connection represents a connected operator dashboard
type Connection struct {
	OperatorID string
	Send       chan []byte
	Hub        *Hub
}

// NewHub creates a new lead-feed hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[*Connection]bool),
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
			h.conns[conn] = true
			log.Printf("Operator %s connected to lead feed", conn.OperatorID)

		case conn := <-h.unregister:
			if h.conns[conn] {
				delete(h.conns, conn)
				close(conn.Send)
				log.Printf("Operator %s disconnected from lead feed", conn.OperatorID)
			}

		case msg := <-h.broadcast:
			data, _ := json.Marshal(msg)
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
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

// BroadcastHotLead pushes a hot lead event to every connected operator
// (implements service.Broadcaster)
func (h *Hub) BroadcastHotLead(payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &Message{
		Type:    MsgHotLead,
		Payload: data,
	}
}
