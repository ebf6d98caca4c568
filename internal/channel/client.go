// Package channel reads raw chat payloads from a WebSocket push channel.
package channel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iksnae/chatwire/internal"
)

// Error represents a push-channel failure
type Error struct {
	URL string
	Op  string // "dial", "read"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("channel error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Handler receives each decoded payload
type Handler func(payload any)

// Config configures a Client
type Config struct {
	URL              string
	Headers          http.Header
	HandshakeTimeout time.Duration
	ReadLimit        int64
}

// Client is a single-connection push-channel reader
type Client struct {
	cfg    Config
	dialer *websocket.Dialer
}

// NewClient creates a Client with defaults applied
func NewClient(cfg Config) *Client {
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 45 * time.Second
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 1 << 20
	}
	return &Client{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
	}
}

// Run dials the channel and delivers every text or binary frame to handle
// until ctx is cancelled or the server closes the connection. Frames that
// are not valid JSON are logged and skipped. A normal close and
// cancellation return nil.
func (c *Client) Run(ctx context.Context, handle Handler) error {
	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, c.cfg.Headers)
	if err != nil {
		return &Error{URL: c.cfg.URL, Op: "dial", Err: err}
	}
	defer conn.Close()
	conn.SetReadLimit(c.cfg.ReadLimit)
	internal.LogInfo("Connected to %s", c.cfg.URL)

	// unblock ReadMessage on cancellation
	stop := context.AfterFunc(ctx, func() {
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = conn.Close()
	})
	defer stop()

	for frame := 0; ; frame++ {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				internal.LogInfo("Channel closed after %d frame(s)", frame)
				return nil
			}
			return &Error{URL: c.cfg.URL, Op: "read", Err: err}
		}

		payload, err := internal.DecodePayload(data)
		if err != nil {
			perr := &internal.ParseError{Source: "websocket", Key: "frame " + strconv.Itoa(frame), Err: err}
			internal.LogWarn("Skipping frame: %v", perr)
			continue
		}
		handle(payload)
	}
}

// IsDialError reports whether err came from establishing the connection
func IsDialError(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Op == "dial"
}
