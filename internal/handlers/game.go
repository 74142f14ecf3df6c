package handlers

import (
	"net/http"

	"github.com/michalkopec1981/saper/internal/game"
	"github.com/michalkopec1981/saper/internal/ws"

	"github.com/gin-gonic/gin"
)

// GameHandler exposes the host's timer and password controls. Every
// successful mutation answers with the full post-mutation state and pushes
// the same snapshot to the event room right away instead of waiting for the
// next scheduler tick.
type GameHandler struct {
	ctrl     *game.Controller
	revealer *game.Revealer
	hub      *ws.Hub
}

func NewGameHandler(ctrl *game.Controller, revealer *game.Revealer, hub *ws.Hub) *GameHandler {
	return &GameHandler{ctrl: ctrl, revealer: revealer, hub: hub}
}

type StartGameRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

type StopGameRequest struct {
	Credential string `json:"credential"`
}

type AdjustSpeedRequest struct {
	Multiplier int `json:"multiplier" binding:"required"`
}

type AdjustBonusRequest struct {
	Multiplier int `json:"multiplier" binding:"required"`
}

type AdjustDurationRequest struct {
	Minutes    int    `json:"minutes" binding:"required"`
	Credential string `json:"credential"`
}

type RevealManualRequest struct {
	Positions []int `json:"positions" binding:"required"`
}

func (h *GameHandler) GetState(c *gin.Context) {
	eventID := c.GetUint("event_id")
	state, err := h.ctrl.FullState(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) Start(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.ctrl.Start(eventID, req.Minutes)
	if err != nil {
		respondError(c, err)
		return
	}

	h.broadcastAll(eventID, state)
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) Stop(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req StopGameRequest
	// No body means no credential; a malformed one is still a client error.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	state, err := h.ctrl.Stop(eventID, req.Credential)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(eventID, "game_state_update", state)
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) PauseToggle(c *gin.Context) {
	eventID := c.GetUint("event_id")

	state, paused, err := h.ctrl.PauseToggle(eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	if paused {
		h.hub.Broadcast(eventID, "timer_paused", nil)
	} else {
		h.hub.Broadcast(eventID, "timer_started", nil)
	}
	h.hub.Broadcast(eventID, "game_state_update", state)
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) AdjustSpeed(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req AdjustSpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.ctrl.AdjustSpeed(eventID, req.Multiplier)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(eventID, "game_state_update", state)
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) AdjustBonus(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req AdjustBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.ctrl.AdjustBonus(eventID, req.Multiplier)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(eventID, "game_state_update", state)
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) AdjustDuration(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req AdjustDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.ctrl.AdjustDuration(eventID, req.Minutes, req.Credential)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(eventID, "game_state_update", state)
	c.JSON(http.StatusOK, state)
}

// RevealManual unlocks host-picked password positions.
func (h *GameHandler) RevealManual(c *gin.Context) {
	eventID := c.GetUint("event_id")
	var req RevealManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	changed, err := h.revealer.RevealManual(eventID, req.Positions)
	if err != nil {
		respondError(c, err)
		return
	}

	state, err := h.ctrl.FullState(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	if changed {
		h.hub.Broadcast(eventID, "password_update", state.Password)
		h.hub.Broadcast(eventID, "game_state_update", state)
	}
	c.JSON(http.StatusOK, state)
}

func (h *GameHandler) broadcastAll(eventID uint, state *game.FullState) {
	if entries, err := h.ctrl.Leaderboard(eventID); err == nil {
		h.hub.Broadcast(eventID, "leaderboard_update", entries)
	}
	h.hub.Broadcast(eventID, "password_update", state.Password)
	h.hub.Broadcast(eventID, "game_state_update", state)
}
