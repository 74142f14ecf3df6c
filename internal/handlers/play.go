package handlers

import (
	"net/http"

	"github.com/michalkopec1981/saper/internal/game"
	"github.com/michalkopec1981/saper/internal/services"
	"github.com/michalkopec1981/saper/internal/ws"

	"github.com/gin-gonic/gin"
)

// PlayHandler is the public player API: scanning, answering, minigames.
type PlayHandler struct {
	play *services.PlayService
	ctrl *game.Controller
	hub  *ws.Hub
}

func NewPlayHandler(play *services.PlayService, ctrl *game.Controller, hub *ws.Hub) *PlayHandler {
	return &PlayHandler{play: play, ctrl: ctrl, hub: hub}
}

type ScanRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	EventID  uint   `json:"event_id" binding:"required"`
	QRCode   string `json:"qr_code" binding:"required"`
}

type AnswerRequest struct {
	PlayerID   uint   `json:"player_id" binding:"required"`
	EventID    uint   `json:"event_id" binding:"required"`
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type CompleteMinigameRequest struct {
	PlayerID   uint   `json:"player_id" binding:"required"`
	EventID    uint   `json:"event_id" binding:"required"`
	GameType   string `json:"game_type" binding:"required"`
	ScoreDelta int    `json:"score_delta"`
}

func (h *PlayHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.play.ScanQR(req.EventID, req.PlayerID, req.QRCode)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.ScoreChanged {
		h.afterScoring(req.EventID, result.RevealChanged)
	}
	status := http.StatusOK
	if result.Status == "wait" {
		status = http.StatusTooManyRequests
	}
	c.JSON(status, result)
}

func (h *PlayHandler) Answer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.play.SubmitAnswer(req.EventID, req.PlayerID, req.QuestionID, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}

	h.afterScoring(req.EventID, result.RevealChanged)
	c.JSON(http.StatusOK, result)
}

func (h *PlayHandler) CompleteMinigame(c *gin.Context) {
	var req CompleteMinigameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.play.CompleteMinigame(req.EventID, req.PlayerID, req.GameType, req.ScoreDelta)
	if err != nil {
		respondError(c, err)
		return
	}

	h.afterScoring(req.EventID, result.RevealChanged)
	c.JSON(http.StatusOK, result)
}

func (h *PlayHandler) Leaderboard(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	entries, err := h.ctrl.Leaderboard(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// afterScoring pushes the snapshots a score change can invalidate.
func (h *PlayHandler) afterScoring(eventID uint, revealChanged bool) {
	if entries, err := h.ctrl.Leaderboard(eventID); err == nil {
		h.hub.Broadcast(eventID, "leaderboard_update", entries)
	}
	state, err := h.ctrl.FullState(eventID)
	if err != nil {
		return
	}
	if revealChanged {
		h.hub.Broadcast(eventID, "password_update", state.Password)
	}
	h.hub.Broadcast(eventID, "game_state_update", state)
}
