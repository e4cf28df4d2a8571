// Package limelight is a client for the Limelight smart camera's local
// HTTP API. It polls /results on a fixed interval, caches the latest
// parsed snapshot, fans results out to any number of subscribers, and
// wraps the camera's administrative REST surface one method per endpoint.
//
// Typical use:
//
//	client, err := limelight.New(limelight.DefaultConfig())
//	sub := client.Subscribe()
//	client.Start()
//	for res := range sub.C() {
//		// ...
//	}
package limelight

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/teslashibe/go-limelight/internal/httpc"
	ilog "github.com/teslashibe/go-limelight/internal/log"
)

// Client owns one camera connection: a background poll loop, the cached
// latest result, and the subscriber set.
//
// The poll loop is the only writer of the cached result; configuration
// and cache are each guarded by a reader/writer lock, so reads from any
// number of goroutines are safe. Administrative calls are independent
// round trips and may run concurrently with the poll loop.
type Client struct {
	mu     sync.RWMutex // guards config
	config Config

	stateMu    sync.RWMutex // guards running, generation, latest
	running    bool
	generation uint64
	latest     *Result

	http      *http.Client
	logger    *slog.Logger
	broadcast *Broadcaster
	metrics   *Metrics
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
	registry   prometheus.Registerer
	buffer     int
}

// WithHTTPClient replaces the default 100ms-timeout HTTP client. Mostly
// useful in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithLogger sets the logger. Defaults to the package-wide slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithMetrics registers the client's poll-loop collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *clientOptions) { o.registry = reg }
}

// WithSubscriberBuffer sets the per-subscriber channel capacity.
func WithSubscriberBuffer(n int) Option {
	return func(o *clientOptions) { o.buffer = n }
}

// New creates a client for the camera described by cfg. The poll loop is
// not started until Start is called.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = httpc.NewClient(httpc.RequestTimeout)
	}
	if o.logger == nil {
		o.logger = ilog.With("component", "limelight", "host", cfg.Host)
	}

	c := &Client{
		config: cfg,
		http:   o.httpClient,
		logger: o.logger,
	}
	c.broadcast = newBroadcaster(o.buffer, c.logger)
	if o.registry != nil {
		c.metrics = newMetrics(o.registry, func() float64 {
			return float64(c.broadcast.Count())
		})
		c.broadcast.onDrop = c.metrics.observeDrop
	}
	return c, nil
}

// Subscribe returns a new receive handle. Results arrive in poll order;
// a subscriber that falls behind loses its oldest unread results rather
// than slowing the poll loop. Close the subscription when done.
func (c *Client) Subscribe() *Subscription {
	return c.broadcast.Subscribe()
}

// Start launches the background poll loop. Calling Start while already
// running is a no-op.
func (c *Client) Start() error {
	c.stateMu.Lock()
	if c.running {
		c.stateMu.Unlock()
		c.logger.Debug("start ignored, already running")
		return nil
	}
	c.running = true
	c.generation++
	gen := c.generation
	c.stateMu.Unlock()

	go c.pollLoop(gen)
	return nil
}

// Stop halts the poll loop. Cooperative: the loop observes the flag on
// its next wake, so an in-flight request is allowed to finish. The
// cached latest result is kept.
func (c *Client) Stop() {
	c.stateMu.Lock()
	c.running = false
	c.stateMu.Unlock()
	c.logger.Debug("stop requested")
}

// IsRunning reports whether the poll loop is active.
func (c *Client) IsRunning() bool {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.running
}

// GetLatestResult returns the most recently polled result, or nil if no
// poll has succeeded yet. Stopping the loop does not clear the cache.
func (c *Client) GetLatestResult() *Result {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.latest
}

// GetPollRate returns the configured poll interval.
func (c *Client) GetPollRate() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config.PollInterval
}

// SetPollRate changes the poll interval. A running loop re-arms its
// timer on the next wake; no restart. Non-positive intervals are
// rejected and leave the previous value in place.
func (c *Client) SetPollRate(interval time.Duration) error {
	if interval <= 0 {
		return &ConfigError{Param: "poll interval", Reason: "must be positive"}
	}
	c.mu.Lock()
	c.config.PollInterval = interval
	c.mu.Unlock()
	c.logger.Debug("poll rate updated", "interval", interval)
	return nil
}

// GetConfig returns a copy of the current configuration.
func (c *Client) GetConfig() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// SetConfig replaces the configuration. Changing the camera address
// while running restarts the poll loop; an interval-only change is
// picked up by the running loop without one.
func (c *Client) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	prev := c.config
	c.config = cfg
	c.mu.Unlock()

	if !prev.sameEndpoint(cfg) && c.IsRunning() {
		c.logger.Debug("camera address changed, restarting poll loop")
		c.Stop()
		return c.Start()
	}
	return nil
}

// current reports whether the loop identified by gen is still the active
// one. A restarted client bumps the generation, so a superseded loop can
// never publish stale results or double-fire alongside its replacement.
func (c *Client) current(gen uint64) bool {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.running && c.generation == gen
}

func (c *Client) pollLoop(gen uint64) {
	c.mu.RLock()
	armed := c.config.PollInterval
	c.mu.RUnlock()

	ticker := time.NewTicker(armed)
	defer ticker.Stop()
	c.logger.Debug("poll loop started", "interval", armed, "generation", gen)

	for range ticker.C {
		if !c.current(gen) {
			c.logger.Debug("poll loop exiting", "generation", gen)
			return
		}

		c.mu.RLock()
		cfg := c.config
		c.mu.RUnlock()

		// Re-arm only when the configured interval actually changed, so
		// steady-state ticks do not churn the timer.
		if cfg.PollInterval != armed {
			c.logger.Debug("poll interval re-armed", "old", armed, "new", cfg.PollInterval)
			ticker.Reset(cfg.PollInterval)
			armed = cfg.PollInterval
		}

		c.pollOnce(cfg, gen)
	}
}

// pollOnce performs one fetch-cache-publish iteration. Failures are
// logged and the loop carries on; a failed poll never stops polling.
func (c *Client) pollOnce(cfg Config, gen uint64) {
	start := time.Now()
	var res Result
	err := c.getJSON(context.Background(), "results", nil, &res)
	c.metrics.observePoll(time.Since(start).Seconds(), err != nil)
	if err != nil {
		c.logger.Warn("poll failed", "err", err)
		return
	}

	c.stateMu.Lock()
	if !c.running || c.generation != gen {
		// Superseded mid-flight; discard rather than clobber the
		// replacement loop's cache.
		c.stateMu.Unlock()
		return
	}
	c.latest = &res
	c.stateMu.Unlock()

	c.broadcast.publish(&res)
}
