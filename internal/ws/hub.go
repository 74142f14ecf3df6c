package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub tracks which connections belong to which event room and fans
// broadcasts out to them. Delivery is at-most-once; a failed write drops the
// connection and the next snapshot heals the client if it reconnects.
type Hub struct {
	mu    sync.Mutex
	rooms map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(eventID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[eventID] == nil {
		h.rooms[eventID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[eventID][conn] = true
	log.Debug().Uint("event_id", eventID).Int("connections", len(h.rooms[eventID])).Msg("ws: client joined room")
}

func (h *Hub) RemoveConnection(eventID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.rooms[eventID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.rooms, eventID)
		}
		log.Debug().Uint("event_id", eventID).Msg("ws: client left room")
	}
}

// Send delivers one named event to a single connection. Writes go through
// h.mu like Broadcast's: gorilla connections allow one writer at a time.
func (h *Hub) Send(conn *websocket.Conn, event string, data interface{}) {
	payload, err := json.Marshal(WSMessage{Type: event, Data: data})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("ws: marshal failed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		log.Warn().Err(err).Msg("ws: write failed")
	}
}

// Broadcast sends one named event to every connection in the room.
func (h *Hub) Broadcast(eventID uint, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.rooms[eventID]
	if !ok {
		return
	}

	payload, err := json.Marshal(WSMessage{Type: event, Data: data})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("ws: marshal failed")
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn().Err(err).Uint("event_id", eventID).Msg("ws: write failed, dropping connection")
			conn.Close()
			delete(conns, conn)
		}
	}
}
