package handlers

import (
	"net/http"

	"github.com/michalkopec1981/saper/internal/services"

	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	photos *services.PhotoService
}

func NewPhotoHandler(photos *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

type SubmitPhotoRequest struct {
	PlayerID uint   `json:"player_id" binding:"required"`
	EventID  uint   `json:"event_id" binding:"required"`
	URL      string `json:"url" binding:"required"`
}

type VotePhotoRequest struct {
	VoterID uint `json:"voter_id" binding:"required"`
	EventID uint `json:"event_id" binding:"required"`
	PhotoID uint `json:"photo_id" binding:"required"`
}

func (h *PhotoHandler) Submit(c *gin.Context) {
	var req SubmitPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	photo, err := h.photos.Submit(req.EventID, req.PlayerID, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (h *PhotoHandler) Vote(c *gin.Context) {
	var req VotePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.photos.Vote(req.EventID, req.VoterID, req.PhotoID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "vote recorded"})
}

func (h *PhotoHandler) List(c *gin.Context) {
	eventID := c.GetUint("event_id")
	entries, err := h.photos.List(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
