package handlers

import (
	"net/http"
	"strconv"

	"github.com/michalkopec1981/saper/internal/services"
	"github.com/michalkopec1981/saper/internal/ws"

	"github.com/gin-gonic/gin"
)

// PlayerHandler covers registration (public) and the host's player
// management panel.
type PlayerHandler struct {
	players *services.PlayerService
	hub     *ws.Hub
}

func NewPlayerHandler(players *services.PlayerService, hub *ws.Hub) *PlayerHandler {
	return &PlayerHandler{players: players, hub: hub}
}

type RegisterPlayerRequest struct {
	Name    string `json:"name" binding:"required"`
	EventID uint   `json:"event_id" binding:"required"`
}

func (h *PlayerHandler) Register(c *gin.Context) {
	var req RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	player, err := h.players.Register(req.EventID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcastLeaderboard(req.EventID)
	c.JSON(http.StatusCreated, player)
}

func (h *PlayerHandler) List(c *gin.Context) {
	eventID := c.GetUint("event_id")
	players, err := h.players.List(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

func (h *PlayerHandler) Delete(c *gin.Context) {
	eventID := c.GetUint("event_id")
	playerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	if err := h.players.Delete(eventID, uint(playerID)); err != nil {
		respondError(c, err)
		return
	}

	h.broadcastLeaderboard(eventID)
	c.JSON(http.StatusOK, MessageResponse{Message: "player deleted"})
}

func (h *PlayerHandler) Warn(c *gin.Context) {
	eventID := c.GetUint("event_id")
	playerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	warnings, err := h.players.Warn(eventID, uint(playerID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warnings": warnings})
}

func (h *PlayerHandler) broadcastLeaderboard(eventID uint) {
	players, err := h.players.List(eventID)
	if err != nil {
		return
	}
	entries := make([]gin.H, len(players))
	for i, p := range players {
		entries[i] = gin.H{"name": p.Name, "score": p.Score}
	}
	h.hub.Broadcast(eventID, "leaderboard_update", entries)
}
