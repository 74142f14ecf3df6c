package handlers

import (
	"net/http"
	"strconv"

	"github.com/michalkopec1981/saper/internal/apperr"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
}

// parseEventID reads the :id path parameter; on failure it writes the error
// response itself.
func parseEventID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event id"})
		return 0, false
	}
	return uint(id), true
}
