package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func stopRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewGameHandler(nil, nil, nil)
	r := gin.New()
	r.POST("/game/stop", func(c *gin.Context) {
		c.Set("event_id", uint(1))
		h.Stop(c)
	})
	return r
}

func TestStopRejectsMalformedBody(t *testing.T) {
	r := stopRouter()

	req := httptest.NewRequest(http.MethodPost, "/game/stop", strings.NewReader("{credential:"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}
