package realtime

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/adityarama/iuranpay/internal/pkg/constants"
	"github.com/adityarama/iuranpay/internal/pkg/eventbus"
	jwtpkg "github.com/adityarama/iuranpay/internal/pkg/jwt"
	"github.com/adityarama/iuranpay/internal/pkg/logger"
	"github.com/adityarama/iuranpay/internal/pkg/models"
)

const (
	// MaxReconnectAttempts bounds automatic reconnection per session
	MaxReconnectAttempts = 5
	// ReconnectDelay is the fixed delay before a reconnect attempt
	ReconnectDelay = 3 * time.Second
)

// State represents the connection lifecycle
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Client is the persistent push channel to the dues-portal backend. It owns
// the socket exclusively: connection state is never mutated from outside.
// Inbound {type,data} envelopes are fanned out to category subscribers via
// the event bus; connection changes are published as bool payloads on the
// connection category.
type Client struct {
	baseURL string
	bus     *eventbus.Bus
	dialer  *websocket.Dialer

	// reconnectDelay is fixed in production; tests shorten it
	reconnectDelay time.Duration

	mu         sync.Mutex
	conn       *websocket.Conn
	state      State
	subjectID  string
	token      string
	reconnects int
	manual     bool
	generation uint64
	retry      *time.Timer
}

// NewClient creates a disconnected client against the given REST base URL
func NewClient(baseURL string, bus *eventbus.Bus) *Client {
	return &Client{
		baseURL:        baseURL,
		bus:            bus,
		dialer:         websocket.DefaultDialer,
		reconnectDelay: ReconnectDelay,
	}
}

// SocketURL derives the websocket endpoint from a REST base URL by
// rewriting the scheme to its socket equivalent and appending the subject
// path and auth token.
func SocketURL(baseURL, subjectID, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// already a socket scheme
	default:
		return "", fmt.Errorf("unsupported base URL scheme: %s", u.Scheme)
	}

	u.Path = path.Join(u.Path, "ws", subjectID)
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Connect opens the push channel for the authenticated subject. Calling it
// while already connecting or connected is a no-op. The dial itself is
// fire-and-forget: open failures surface through the connection category
// and the reconnect schedule, not through the returned error.
func (c *Client) Connect(subjectID, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDisconnected {
		return nil
	}

	if err := jwtpkg.CheckExpiry(token); err != nil {
		return err
	}

	if _, err := SocketURL(c.baseURL, subjectID, token); err != nil {
		return err
	}

	c.subjectID = subjectID
	c.token = token
	c.manual = false
	c.reconnects = 0
	c.state = StateConnecting
	c.generation++

	go c.dial(c.generation)
	return nil
}

func (c *Client) dial(generation uint64) {
	c.mu.Lock()
	subjectID := c.subjectID
	wsURL, err := SocketURL(c.baseURL, c.subjectID, c.token)
	c.mu.Unlock()
	if err != nil {
		c.handleDisconnect(generation, err)
		return
	}

	conn, resp, err := c.dialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		logger.Warn("WebSocket dial failed",
			logger.String("subject_id", subjectID),
			logger.Err(err))
		c.handleDisconnect(generation, err)
		return
	}

	c.mu.Lock()
	if generation != c.generation {
		// A disconnect or reconnect superseded this dial.
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.state = StateConnected
	c.reconnects = 0
	c.mu.Unlock()

	logger.Info("WebSocket connected",
		logger.String("subject_id", subjectID))
	c.bus.Publish(eventbus.CategoryConnection, true)

	c.readLoop(conn, generation)
}

func (c *Client) readLoop(conn *websocket.Conn, generation uint64) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.handleDisconnect(generation, err)
			return
		}

		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Warn("Dropping malformed push message",
				logger.Err(err))
			continue
		}

		switch msg.Type {
		case constants.TypeNotification:
			c.bus.Publish(eventbus.CategoryNotification, msg.Data)
		case constants.TypeDashboardUpdate:
			c.bus.Publish(eventbus.CategoryDashboard, msg.Data)
		default:
			// Unrecognized types are ignored.
		}
	}
}

// handleDisconnect runs for both dial failures and closed sockets. The
// previous socket is fully closed before any reconnect is scheduled.
func (c *Client) handleDisconnect(generation uint64, cause error) {
	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		return
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.state = StateDisconnected

	subjectID := c.subjectID
	manual := c.manual || websocket.IsCloseError(cause, constants.CloseManualDisconnect)
	schedule := !manual && c.reconnects < MaxReconnectAttempts
	if schedule {
		c.reconnects++
		attempt := c.reconnects
		gen := c.generation
		c.state = StateConnecting
		c.retry = time.AfterFunc(c.reconnectDelay, func() {
			c.redial(gen, attempt)
		})
	}
	c.mu.Unlock()

	c.bus.Publish(eventbus.CategoryConnection, false)

	if !manual && !schedule {
		logger.Warn("WebSocket reconnect attempts exhausted",
			logger.String("subject_id", subjectID),
			logger.Int("attempts", MaxReconnectAttempts))
	}
}

func (c *Client) redial(generation uint64, attempt int) {
	c.mu.Lock()
	if generation != c.generation || c.manual {
		c.mu.Unlock()
		return
	}
	subjectID := c.subjectID
	c.mu.Unlock()

	logger.Info("WebSocket reconnecting",
		logger.String("subject_id", subjectID),
		logger.Int("attempt", attempt))
	c.dial(generation)
}

// Disconnect tears the channel down intentionally: closes with the manual
// sentinel code, clears held credentials, resets the reconnect counter and
// notifies subscribers. No auto-reconnect fires afterwards.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.manual = true
	c.generation++
	c.reconnects = 0
	c.token = ""
	c.subjectID = ""
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
	if c.conn != nil {
		deadline := time.Now().Add(time.Second)
		msg := websocket.FormatCloseMessage(constants.CloseManualDisconnect, "client disconnect")
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, deadline)
		c.conn.Close()
		c.conn = nil
	}
	c.state = StateDisconnected
	c.mu.Unlock()

	// Always notify, even when already disconnected: subscribers treat the
	// teardown signal as authoritative regardless of prior state.
	c.bus.Publish(eventbus.CategoryConnection, false)
}

// IsConnected reports whether the socket is currently open
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected
}

// CurrentState returns the connection lifecycle state
func (c *Client) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ReconnectAttempts returns the current reconnect counter
func (c *Client) ReconnectAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnects
}

// Subscribe registers a handler for a push category and returns an
// unsubscribe function.
func (c *Client) Subscribe(category eventbus.Category, handler eventbus.Handler) func() {
	return c.bus.Subscribe(category, handler)
}
