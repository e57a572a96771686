package realtime

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ConnState describes the client connection lifecycle.
type ConnState string

const (
	StateDisconnected ConnState = "disconnected"
	StateConnecting   ConnState = "connecting"
	StateConnected    ConnState = "connected"
	StateError        ConnState = "error"
)

const (
	// DefaultBaseInterval is the first reconnect delay; successive delays
	// grow by a factor of 1.5 per attempt.
	DefaultBaseInterval = 3 * time.Second

	// MaxAttempts caps automatic reconnects. Past the cap the client stays
	// down until Reconnect is called.
	MaxAttempts = 5

	dialTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
)

// Snapshot is a point-in-time view of the connection, delivered to the
// status listener and returned by Status.
type Snapshot struct {
	State     ConnState
	Attempt   int
	LastError error
}

// ClientOptions configures a Client. URL is required; everything else has
// a usable default.
type ClientOptions struct {
	URL          string
	BaseInterval time.Duration
	Dialer       *websocket.Dialer

	// OnMessage receives every raw inbound frame. Called from the read
	// goroutine; implementations must not block for long.
	OnMessage func(data []byte)

	// OnStatus is notified on every connection state change.
	OnStatus func(s Snapshot)
}

// Client owns at most one outbound websocket connection and recovers it
// automatically with bounded exponential backoff. All methods are safe for
// concurrent use and none of them block on network I/O.
type Client struct {
	url          string
	baseInterval time.Duration
	dialer       *websocket.Dialer
	onMessage    func([]byte)
	onStatus     func(Snapshot)

	mu         sync.Mutex
	ws         *websocket.Conn
	enabled    bool
	dialing    bool
	state      ConnState
	attempts   int
	lastErr    error
	retryTimer *time.Timer
	gen        int // bumped whenever the active socket is torn down
}

// NewClient constructs a disabled Client; call Enable to start connecting.
func NewClient(opts ClientOptions) *Client {
	c := &Client{
		url:          opts.URL,
		baseInterval: opts.BaseInterval,
		dialer:       opts.Dialer,
		onMessage:    opts.OnMessage,
		onStatus:     opts.OnStatus,
		state:        StateDisconnected,
	}
	if c.baseInterval <= 0 {
		c.baseInterval = DefaultBaseInterval
	}
	if c.dialer == nil {
		c.dialer = &websocket.Dialer{HandshakeTimeout: dialTimeout}
	}
	return c
}

// Enable turns the client on and kicks off a connection. Enabling an already
// connected client is a no-op.
func (c *Client) Enable() {
	c.mu.Lock()
	if c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = true
	c.mu.Unlock()
	c.Connect()
}

// Disable closes the active connection with a normal-closure code, cancels
// any pending reconnect timer and stops all automatic recovery.
func (c *Client) Disable() {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = false
	c.cancelRetryLocked()
	c.closeSocketLocked(websocket.CloseNormalClosure, "client disabled")
	c.attempts = 0
	c.setStateLocked(StateDisconnected, nil)
	notify := c.snapshotLocked()
	c.mu.Unlock()
	c.emitStatus(notify)
}

// Connect opens a new connection if the client is enabled and nothing is
// currently open or in flight. The dial itself runs off the calling
// goroutine; progress is reported through the status listener.
func (c *Client) Connect() {
	c.mu.Lock()
	if !c.enabled || c.ws != nil || c.dialing {
		c.mu.Unlock()
		return
	}
	c.dialing = true
	c.setStateLocked(StateConnecting, nil)
	gen := c.gen
	notify := c.snapshotLocked()
	c.mu.Unlock()
	c.emitStatus(notify)

	go c.dial(gen)
}

// Reconnect is the manual override: it discards the current connection,
// resets the attempt counter and dials immediately, bypassing any backoff.
func (c *Client) Reconnect() {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return
	}
	c.cancelRetryLocked()
	c.closeSocketLocked(websocket.CloseNormalClosure, "manual reconnect")
	c.attempts = 0
	c.mu.Unlock()
	c.Connect()
}

// Send JSON-encodes v and writes it to the active connection. It returns
// false, doing nothing, when the client is not connected; true means only
// that the write was issued, not that delivery is confirmed.
func (c *Client) Send(v any) bool {
	payload, err := json.Marshal(v)
	if err != nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected || c.ws == nil {
		return false
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.lastErr = err
		return false
	}
	return true
}

// Status returns the current connection snapshot.
func (c *Client) Status() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Connected reports whether the client currently holds a live connection.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected
}

func (c *Client) dial(gen int) {
	ws, resp, err := c.dialer.Dial(c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c.mu.Lock()
	c.dialing = false
	if gen != c.gen || !c.enabled {
		// A Disable or Reconnect raced this dial. If the client is still
		// enabled with no socket the reconnect wants a fresh dial.
		redial := c.enabled && c.ws == nil && c.retryTimer == nil
		c.mu.Unlock()
		if ws != nil {
			_ = ws.Close()
		}
		if redial {
			c.Connect()
		}
		return
	}

	if err != nil {
		c.setStateLocked(StateError, err)
		c.scheduleRetryLocked()
		notify := c.snapshotLocked()
		c.mu.Unlock()
		c.emitStatus(notify)
		return
	}

	c.ws = ws
	c.attempts = 0
	c.setStateLocked(StateConnected, nil)
	notify := c.snapshotLocked()
	c.mu.Unlock()
	c.emitStatus(notify)

	go c.readLoop(gen, ws)
}

func (c *Client) readLoop(gen int, ws *websocket.Conn) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.handleReadError(gen, err)
			return
		}

		c.mu.Lock()
		stale := gen != c.gen
		handler := c.onMessage
		c.mu.Unlock()
		if stale {
			return
		}
		if handler != nil {
			handler(data)
		}
	}
}

func (c *Client) handleReadError(gen int, err error) {
	c.mu.Lock()
	if gen != c.gen {
		// Socket was already replaced or torn down; nothing to report.
		c.mu.Unlock()
		return
	}
	c.closeSocketLocked(websocket.CloseNormalClosure, "")

	normal := websocket.IsCloseError(err, websocket.CloseNormalClosure) ||
		errors.Is(err, websocket.ErrCloseSent)
	if normal || !c.enabled {
		c.setStateLocked(StateDisconnected, nil)
	} else {
		c.setStateLocked(StateError, err)
		c.scheduleRetryLocked()
	}
	notify := c.snapshotLocked()
	c.mu.Unlock()
	c.emitStatus(notify)
}

// scheduleRetryLocked arms the single reconnect timer. At most MaxAttempts
// retries fire automatically; any previously pending timer is cleared first
// so there is never more than one in flight.
func (c *Client) scheduleRetryLocked() {
	if c.attempts >= MaxAttempts {
		return
	}
	c.cancelRetryLocked()

	delay := time.Duration(float64(c.baseInterval) * math.Pow(1.5, float64(c.attempts)))
	gen := c.gen
	c.retryTimer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if gen != c.gen || !c.enabled || c.ws != nil || c.dialing {
			c.mu.Unlock()
			return
		}
		c.attempts++
		c.retryTimer = nil
		c.mu.Unlock()
		c.Connect()
	})
}

func (c *Client) cancelRetryLocked() {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
}

func (c *Client) closeSocketLocked(code int, reason string) {
	if c.ws == nil {
		c.gen++
		return
	}
	deadline := time.Now().Add(writeTimeout)
	_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	_ = c.ws.Close()
	c.ws = nil
	c.gen++
}

func (c *Client) setStateLocked(s ConnState, err error) {
	c.state = s
	if err != nil {
		c.lastErr = err
	} else if s == StateConnected {
		c.lastErr = nil
	}
}

func (c *Client) snapshotLocked() Snapshot {
	return Snapshot{State: c.state, Attempt: c.attempts, LastError: c.lastErr}
}

func (c *Client) emitStatus(s Snapshot) {
	if c.onStatus != nil {
		c.onStatus(s)
	}
}
