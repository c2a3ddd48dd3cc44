package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarama/iuranpay/internal/pkg/eventbus"
)

func TestSocketURL(t *testing.T) {
	tests := []struct {
		name      string
		baseURL   string
		subjectID string
		token     string
		expected  string
		expectErr bool
	}{
		{
			name:      "http rewrites to ws",
			baseURL:   "http://api.example.com",
			subjectID: "user-1",
			token:     "tok",
			expected:  "ws://api.example.com/ws/user-1?token=tok",
		},
		{
			name:      "https rewrites to wss",
			baseURL:   "https://api.example.com/v1",
			subjectID: "user-2",
			token:     "tok",
			expected:  "wss://api.example.com/v1/ws/user-2?token=tok",
		},
		{
			name:      "ws scheme passes through",
			baseURL:   "ws://api.example.com",
			subjectID: "u",
			token:     "t",
			expected:  "ws://api.example.com/ws/u?token=t",
		},
		{
			name:      "unsupported scheme rejected",
			baseURL:   "ftp://api.example.com",
			subjectID: "u",
			token:     "t",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SocketURL(tt.baseURL, tt.subjectID, tt.token)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// pushServer is a websocket test backend that records connection attempts
// and pushes canned envelopes to the most recent client.
type pushServer struct {
	upgrader websocket.Upgrader
	attempts int32
	conns    chan *websocket.Conn
}

func newPushServer() *pushServer {
	return &pushServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(chan *websocket.Conn, 16),
	}
}

func (s *pushServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.attempts, 1)

		if !strings.HasPrefix(r.URL.Path, "/ws/") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("token") == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.conns <- conn

		// Keep reading to observe the close handshake.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

func (s *pushServer) waitConn(t *testing.T) *websocket.Conn {
	select {
	case conn := <-s.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for websocket connection")
		return nil
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestClient_RoutesEnvelopesByType(t *testing.T) {
	srv := newPushServer()
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	bus := eventbus.NewBus()
	client := NewClient(ts.URL, bus)

	var notifications, dashboards int32
	var connected int32
	client.Subscribe(eventbus.CategoryNotification, func(payload interface{}) {
		atomic.AddInt32(&notifications, 1)
	})
	client.Subscribe(eventbus.CategoryDashboard, func(payload interface{}) {
		atomic.AddInt32(&dashboards, 1)
	})
	client.Subscribe(eventbus.CategoryConnection, func(payload interface{}) {
		if up, ok := payload.(bool); ok && up {
			atomic.AddInt32(&connected, 1)
		}
	})

	require.NoError(t, client.Connect("user-1", "token-1"))
	conn := srv.waitConn(t)
	waitFor(t, 2*time.Second, client.IsConnected)
	assert.Equal(t, int32(1), atomic.LoadInt32(&connected))

	writeEnvelope := func(msgType string, data interface{}) {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, conn.WriteJSON(map[string]interface{}{
			"type": msgType,
			"data": json.RawMessage(raw),
		}))
	}

	writeEnvelope("notification", map[string]string{"id": "n1"})
	writeEnvelope("dashboard_update", map[string]string{"fee_id": "f1"})
	writeEnvelope("some_future_type", map[string]string{})

	// Malformed payloads are logged and dropped, not fatal.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	writeEnvelope("notification", map[string]string{"id": "n2"})

	waitFor(t, 2*time.Second, func() bool {
		return atomic.LoadInt32(&notifications) == 2 &&
			atomic.LoadInt32(&dashboards) == 1
	})

	client.Disconnect()
}

func TestClient_ConnectIsIdempotent(t *testing.T) {
	srv := newPushServer()
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	client := NewClient(ts.URL, eventbus.NewBus())
	require.NoError(t, client.Connect("user-1", "token-1"))
	srv.waitConn(t)
	waitFor(t, 2*time.Second, client.IsConnected)

	// A second connect while open must not dial again.
	require.NoError(t, client.Connect("user-1", "token-1"))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&srv.attempts))

	client.Disconnect()
}

func TestClient_ManualDisconnectPreventsReconnect(t *testing.T) {
	srv := newPushServer()
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	bus := eventbus.NewBus()
	client := NewClient(ts.URL, bus)
	client.reconnectDelay = 10 * time.Millisecond

	var downs int32
	client.Subscribe(eventbus.CategoryConnection, func(payload interface{}) {
		if up, ok := payload.(bool); ok && !up {
			atomic.AddInt32(&downs, 1)
		}
	})

	require.NoError(t, client.Connect("user-1", "token-1"))
	srv.waitConn(t)
	waitFor(t, 2*time.Second, client.IsConnected)

	client.Disconnect()

	waitFor(t, time.Second, func() bool {
		return atomic.LoadInt32(&downs) >= 1
	})

	// No reconnect may fire after an intentional teardown.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&srv.attempts))
	assert.False(t, client.IsConnected())
	assert.Equal(t, 0, client.ReconnectAttempts())
}

func TestClient_DisconnectAlwaysNotifies(t *testing.T) {
	bus := eventbus.NewBus()
	client := NewClient("http://api.example.com", bus)

	var downs int32
	client.Subscribe(eventbus.CategoryConnection, func(payload interface{}) {
		if up, ok := payload.(bool); ok && !up {
			atomic.AddInt32(&downs, 1)
		}
	})

	// Teardown notifies subscribers even when nothing was ever connected.
	client.Disconnect()
	assert.Equal(t, int32(1), atomic.LoadInt32(&downs))

	client.Disconnect()
	assert.Equal(t, int32(2), atomic.LoadInt32(&downs))
}

func TestClient_ReconnectStopsAtCeiling(t *testing.T) {
	// A server that refuses every upgrade produces a dial failure per
	// attempt.
	var attempts int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, "no", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, eventbus.NewBus())
	client.reconnectDelay = 5 * time.Millisecond

	require.NoError(t, client.Connect("user-1", "token-1"))

	// Initial dial plus at most MaxReconnectAttempts retries.
	waitFor(t, 2*time.Second, func() bool {
		return atomic.LoadInt32(&attempts) == int32(1+MaxReconnectAttempts)
	})
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1+MaxReconnectAttempts), atomic.LoadInt32(&attempts))
	assert.Equal(t, StateDisconnected, client.CurrentState())
}

func TestClient_ReconnectsAfterServerDrop(t *testing.T) {
	srv := newPushServer()
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	client := NewClient(ts.URL, eventbus.NewBus())
	client.reconnectDelay = 10 * time.Millisecond

	require.NoError(t, client.Connect("user-1", "token-1"))
	first := srv.waitConn(t)
	waitFor(t, 2*time.Second, client.IsConnected)

	// Server drops the socket; the client must come back on its own.
	first.Close()
	srv.waitConn(t)
	waitFor(t, 2*time.Second, client.IsConnected)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&srv.attempts), int32(2))

	client.Disconnect()
}

func TestClient_RejectsExpiredToken(t *testing.T) {
	client := NewClient("http://api.example.com", eventbus.NewBus())

	expired := expiredTestToken(t)
	err := client.Connect("user-1", expired)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")

	// An opaque non-JWT token is the server's problem, not ours.
	assert.NoError(t, client.Connect("user-1", "opaque-session-token"))
	client.Disconnect()
}

func expiredTestToken(t *testing.T) string {
	claims := jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}
