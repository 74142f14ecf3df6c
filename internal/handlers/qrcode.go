package handlers

import (
	"net/http"
	"strconv"

	"github.com/michalkopec1981/saper/internal/services"

	"github.com/gin-gonic/gin"
)

type QRCodeHandler struct {
	qrcodes *services.QRCodeService
}

func NewQRCodeHandler(qrcodes *services.QRCodeService) *QRCodeHandler {
	return &QRCodeHandler{qrcodes: qrcodes}
}

type GenerateQRCodesRequest struct {
	WhiteCount int `json:"white_codes_count"`
	RedCount   int `json:"red_codes_count"`
}

func (h *QRCodeHandler) Generate(c *gin.Context) {
	eventID := c.GetUint("event_id")
	req := GenerateQRCodesRequest{WhiteCount: 5, RedCount: 5}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	codes, err := h.qrcodes.Generate(eventID, req.WhiteCount, req.RedCount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, codes)
}

func (h *QRCodeHandler) List(c *gin.Context) {
	eventID := c.GetUint("event_id")
	codes, err := h.qrcodes.List(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, codes)
}

// ListPublic serves the printable code sheet for an event.
func (h *QRCodeHandler) ListPublic(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	codes, err := h.qrcodes.List(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, codes)
}

// Image renders one code as a PNG.
func (h *QRCodeHandler) Image(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))

	png, err := h.qrcodes.PNG(eventID, c.Param("code"), size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
