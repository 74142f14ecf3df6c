package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// newTestConn dials a real websocket against an httptest server and returns
// the server-side connection registered in the hub.
func newTestConn(t *testing.T, hub *Hub, eventID uint) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		hub.AddConnection(eventID, conn)
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	// Drain so server writes never block on a full buffer.
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	serverConn := <-connCh
	t.Cleanup(func() { hub.RemoveConnection(eventID, serverConn) })
	return serverConn
}

func TestSendAndBroadcastConcurrently(t *testing.T) {
	hub := NewHub()
	conn := newTestConn(t, hub, 1)

	// A join-time Send racing scheduler Broadcasts to the same connection
	// must not trip gorilla's concurrent-write check.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Send(conn, "leaderboard_update", []int{1, 2, 3})
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast(1, "timer_tick", map[string]float64{"time_left": 10})
		}()
	}
	wg.Wait()
}

func TestSendDelivers(t *testing.T) {
	hub := NewHub()

	upgrader := websocket.Upgrader{}
	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		connCh <- conn
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	serverConn := <-connCh
	defer serverConn.Close()

	hub.Send(serverConn, "password_update", "S___R")

	_, raw, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := `{"type":"password_update","data":"S___R"}`
	if string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}
}
