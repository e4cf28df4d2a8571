package limelight

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultStreamPort is the camera's websocket results port.
const DefaultStreamPort = 5806

// StreamResults connects to the camera's websocket results feed and
// pushes every frame through the same cache-and-broadcast path as the
// poll loop. It is a push alternative to Start for callers who want
// results at the camera's native frame rate.
//
// StreamResults blocks until ctx is cancelled or the connection fails;
// run it in its own goroutine. Malformed frames are logged and skipped.
func (c *Client) StreamResults(ctx context.Context) error {
	return c.StreamResultsPort(ctx, DefaultStreamPort)
}

// StreamResultsPort is StreamResults with an explicit websocket port.
func (c *Client) StreamResultsPort(ctx context.Context, port int) error {
	c.mu.RLock()
	host := c.config.Host
	c.mu.RUnlock()

	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/",
	}

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return &TransportError{Op: "WS", URL: u.String(), Err: err}
	}
	defer conn.Close()
	c.logger.Debug("result stream connected", "url", u.String())

	// Unblock the read loop when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &TransportError{Op: "WS", URL: u.String(), Err: err}
		}

		res, err := ParseResult(frame)
		if err != nil {
			c.logger.Warn("result stream: bad frame", "err", err)
			continue
		}

		c.stateMu.Lock()
		c.latest = res
		c.stateMu.Unlock()
		c.broadcast.publish(res)
	}
}
