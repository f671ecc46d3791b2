package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"daleel-backend/internal/middleware"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server, *middleware.JWTAuth) {
	t.Helper()
	auth := middleware.NewJWTAuth("test-secret")
	// nil Redis: Broadcast is driven directly, no subscription spins up.
	hub := NewHub(nil, "news_updates", auth)
	server := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(server.Close)
	return hub, server, auth
}

func dialHub(t *testing.T, server *httptest.Server, auth *middleware.JWTAuth) *websocket.Conn {
	t.Helper()
	token, err := auth.GenerateToken(uuid.New(), "user", time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial hub: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitForClients polls until the hub's register/unregister goroutines settle.
func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d connected clients, got %d", want, hub.ClientCount())
}

func TestHandleWebSocket_RejectsUnauthenticated(t *testing.T) {
	auth := middleware.NewJWTAuth("test-secret")
	hub := NewHub(nil, "news_updates", auth)

	tests := []struct {
		name   string
		target string
	}{
		{"missing token", "/api/v1/ws"},
		{"garbage token", "/api/v1/ws?token=not-a-jwt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.target, nil)
			rr := httptest.NewRecorder()
			hub.HandleWebSocket(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", rr.Code)
			}
			if hub.ClientCount() != 0 {
				t.Errorf("Expected no registered clients, got %d", hub.ClientCount())
			}
		})
	}
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub, server, auth := newTestHub(t)

	conn := dialHub(t, server, auth)
	waitForClients(t, hub, 1)

	payload := []byte(`{"type":"news_published"}`)
	hub.Broadcast(payload)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Expected payload %s, got %s", payload, got)
	}
}

func TestHub_DroppedClientDoesNotAffectOthers(t *testing.T) {
	hub, server, auth := newTestHub(t)

	gone := dialHub(t, server, auth)
	stays := dialHub(t, server, auth)
	waitForClients(t, hub, 2)

	gone.Close()
	waitForClients(t, hub, 1)

	payload := []byte(`{"type":"news_updated"}`)
	hub.Broadcast(payload)

	stays.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := stays.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read broadcast on the surviving client: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Expected payload %s, got %s", payload, got)
	}
}
