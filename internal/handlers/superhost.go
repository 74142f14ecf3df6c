package handlers

import (
	"net/http"

	"github.com/michalkopec1981/saper/internal/game"
	"github.com/michalkopec1981/saper/internal/models"
	"github.com/michalkopec1981/saper/internal/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SuperhostHandler struct {
	db   *gorm.DB
	ctrl *game.Controller
	hub  *ws.Hub
}

func NewSuperhostHandler(db *gorm.DB, ctrl *game.Controller, hub *ws.Hub) *SuperhostHandler {
	return &SuperhostHandler{db: db, ctrl: ctrl, hub: hub}
}

type HostEntry struct {
	EventID   uint   `json:"event_id"`
	EventName string `json:"event_name"`
	Login     string `json:"login"`
}

type UpdateHostRequest struct {
	Login     string `json:"login" binding:"required"`
	Password  string `json:"password"`
	EventName string `json:"event_name"`
}

func (h *SuperhostHandler) ListHosts(c *gin.Context) {
	var events []models.Event
	if err := h.db.Order("id ASC").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	hosts := make([]HostEntry, 0, len(events))
	for _, e := range events {
		hosts = append(hosts, HostEntry{EventID: e.ID, EventName: e.Name, Login: e.Login})
	}
	c.JSON(http.StatusOK, hosts)
}

// UpdateHost changes a host account's password or event name, creating the
// account when the login does not exist yet.
func (h *SuperhostHandler) UpdateHost(c *gin.Context) {
	var req UpdateHostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var event models.Event
	err := h.db.Where("login = ?", req.Login).First(&event).Error
	if err == gorm.ErrRecordNotFound {
		if req.Password == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password required for new host"})
			return
		}
		event = models.Event{Login: req.Login, Name: req.EventName}
		if event.Name == "" {
			event.Name = req.Login
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to hash password"})
			return
		}
		event.PasswordHash = string(hashed)
	}
	if req.EventName != "" {
		event.Name = req.EventName
	}

	if err := h.db.Save(&event).Error; err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, HostEntry{EventID: event.ID, EventName: event.Name, Login: event.Login})
}

// ResetEvent wipes one event back to its factory state.
func (h *SuperhostHandler) ResetEvent(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	if err := h.ctrl.Reset(eventID); err != nil {
		respondError(c, err)
		return
	}

	state, err := h.ctrl.FullState(eventID)
	if err == nil {
		h.hub.Broadcast(eventID, "game_state_update", state)
	}
	h.hub.Broadcast(eventID, "leaderboard_update", []game.LeaderboardEntry{})

	c.JSON(http.StatusOK, MessageResponse{Message: "event reset"})
}
