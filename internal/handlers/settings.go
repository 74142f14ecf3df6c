package handlers

import (
	"net/http"

	"github.com/michalkopec1981/saper/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

type SettingsResponse struct {
	EventName     string  `json:"event_name"`
	GamePassword  string  `json:"game_password"`
	RevealMode    string  `json:"reveal_mode"`
	RevealPercent float64 `json:"reveal_percent"`
	Languages     string  `json:"languages"`
	HasRemote     bool    `json:"has_remote_credential"`
}

type UpdateSettingsRequest struct {
	EventName      *string  `json:"event_name"`
	GamePassword   *string  `json:"game_password"`
	RevealMode     *string  `json:"reveal_mode"`
	RevealPercent  *float64 `json:"reveal_percent"`
	Languages      *string  `json:"languages"`
	RemotePassword *string  `json:"remote_password"`
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	eventID := c.GetUint("event_id")

	var event models.Event
	if err := h.db.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	}

	c.JSON(http.StatusOK, settingsOf(&event))
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	eventID := c.GetUint("event_id")

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var event models.Event
	if err := h.db.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	}

	if req.EventName != nil {
		event.Name = *req.EventName
	}
	if req.GamePassword != nil && *req.GamePassword != "" {
		event.GamePassword = *req.GamePassword
	}
	if req.RevealMode != nil {
		if *req.RevealMode != models.RevealModeAuto && *req.RevealMode != models.RevealModeManual {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reveal mode must be auto or manual"})
			return
		}
		event.RevealMode = *req.RevealMode
	}
	if req.RevealPercent != nil {
		if *req.RevealPercent < 0 || *req.RevealPercent > 100 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reveal percent must be between 0 and 100"})
			return
		}
		event.RevealPercent = *req.RevealPercent
	}
	if req.Languages != nil {
		event.Languages = *req.Languages
	}
	if req.RemotePassword != nil {
		event.RemotePassword = *req.RemotePassword
	}

	if err := h.db.Save(&event).Error; err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, settingsOf(&event))
}

func settingsOf(event *models.Event) SettingsResponse {
	return SettingsResponse{
		EventName:     event.Name,
		GamePassword:  event.GamePassword,
		RevealMode:    event.RevealMode,
		RevealPercent: event.RevealPercent,
		Languages:     event.Languages,
		HasRemote:     event.RemotePassword != "",
	}
}
