package handlers

import (
	"net/http"

	"github.com/michalkopec1981/saper/internal/game"
	"github.com/michalkopec1981/saper/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub  *ws.Hub
	ctrl *game.Controller
}

func NewWSHandler(hub *ws.Hub, ctrl *game.Controller) *WSHandler {
	return &WSHandler{hub: hub, ctrl: ctrl}
}

// HandleConnection upgrades the request, joins the event room and pushes the
// current state so late joiners render without waiting for the next tick.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Uint("event_id", eventID).Msg("websocket upgrade failed")
		return
	}

	h.hub.AddConnection(eventID, conn)

	if state, err := h.ctrl.FullState(eventID); err == nil {
		h.hub.Send(conn, "game_state_update", state)
	}
	if board, err := h.ctrl.Leaderboard(eventID); err == nil {
		h.hub.Send(conn, "leaderboard_update", board)
	}

	go h.readPump(eventID, conn)
}

func (h *WSHandler) readPump(eventID uint, conn *websocket.Conn) {
	defer h.hub.RemoveConnection(eventID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
