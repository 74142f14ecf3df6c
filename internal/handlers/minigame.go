package handlers

import (
	"net/http"

	"github.com/michalkopec1981/saper/internal/services"
	"github.com/michalkopec1981/saper/internal/ws"

	"github.com/gin-gonic/gin"
)

type MinigameHandler struct {
	minigames *services.MinigameService
	hub       *ws.Hub
}

func NewMinigameHandler(minigames *services.MinigameService, hub *ws.Hub) *MinigameHandler {
	return &MinigameHandler{minigames: minigames, hub: hub}
}

type SetMinigameRequest struct {
	Game   string `json:"game" binding:"required"`
	Active bool   `json:"active"`
}

func (h *MinigameHandler) GetActive(c *gin.Context) {
	eventID := c.GetUint("event_id")
	active, err := h.minigames.Active(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, active)
}

func (h *MinigameHandler) SetActive(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req SetMinigameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.minigames.SetActive(eventID, req.Game, req.Active); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(eventID, "competition_state_update", gin.H{"game": req.Game, "active": req.Active})
	c.JSON(http.StatusOK, gin.H{"game": req.Game, "active": req.Active})
}

func (h *MinigameHandler) Results(c *gin.Context) {
	eventID := c.GetUint("event_id")
	results, err := h.minigames.Results(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
