// Package analytics implements the reporting sink as a batching HTTP
// client. Delivery is fire-and-forget: events are buffered on a channel,
// flushed by size or interval, and failures are logged and dropped.
package analytics

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"plaza-ads/internal/config/configs"
	"plaza-ads/internal/core/port"
)

// Event is one named reporting event as sent over the wire.
type Event struct {
	Name   string         `json:"name"`
	Time   time.Time      `json:"time"`
	UserID string         `json:"user_id,omitempty"`
	Props  map[string]any `json:"props,omitempty"`
}

// Client implements port.AnalyticsSink. It is constructed once at
// application start and injected everywhere a sink is needed; the
// initialized flag lives in the client's own state rather than any
// package-level variable. Before Init every tracking method silently does
// nothing.
type Client struct {
	logger *slog.Logger
	httpc  *http.Client

	mu          sync.Mutex
	initialized bool
	userID      string

	endpoint  string
	batchSize int
	interval  time.Duration

	queue chan Event
	quit  chan struct{}
	done  chan struct{}
}

// NewClient returns an uninitialized client. It drops all events until Init
// is called.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		logger: logger,
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Init establishes the underlying delivery worker. It is idempotent: only
// the first call has effect.
func (c *Client) Init(cfg configs.Analytics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return
	}
	c.endpoint = cfg.Endpoint.String()
	c.batchSize = cfg.BatchSize
	if c.batchSize <= 0 {
		c.batchSize = 50
	}
	c.interval = cfg.FlushInterval
	if c.interval <= 0 {
		c.interval = 500 * time.Millisecond
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = 1000
	}
	c.queue = make(chan Event, buffer)
	c.quit = make(chan struct{})
	c.done = make(chan struct{})
	c.initialized = true

	go c.run()
}

// Close stops the worker, draining and flushing anything still queued. It
// is safe to call on an uninitialized client.
func (c *Client) Close() {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return
	}
	c.initialized = false
	// The queue channel is never closed: a concurrent enqueue may have read
	// it before the initialized flag flipped, and a send on a closed
	// channel panics. The worker drains whatever made it in.
	close(c.quit)
	done := c.done
	c.mu.Unlock()

	<-done
}

// TrackPageView emits a page_view event.
func (c *Client) TrackPageView(path string) {
	c.enqueue("page_view", map[string]any{"path": path})
}

// TrackEvent emits a generic named event.
func (c *Client) TrackEvent(category, action, label string, value int64) {
	props := map[string]any{"category": category, "action": action}
	if label != "" {
		props["label"] = label
	}
	if value != 0 {
		props["value"] = value
	}
	c.enqueue("event", props)
}

// TrackAdImpression emits an ad_impression event.
func (c *Client) TrackAdImpression(ev port.AdEvent) {
	c.enqueue("ad_impression", adProps(ev))
}

// TrackAdClick emits an ad_click event.
func (c *Client) TrackAdClick(ev port.AdEvent) {
	c.enqueue("ad_click", adProps(ev))
}

// SetUserID associates subsequent events with a viewer. Empty ids are
// ignored, as are calls before Init.
func (c *Client) SetUserID(id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	c.userID = id
}

func adProps(ev port.AdEvent) map[string]any {
	props := map[string]any{
		"promotion_id": ev.PromotionID,
		"page_context": ev.PageContext,
		"position":     ev.Position,
		"session_id":   ev.SessionID,
	}
	if ev.Title != "" {
		props["title"] = ev.Title
	}
	if ev.ViewerID != "" {
		props["viewer_id"] = ev.ViewerID
	}
	if ev.Destination != "" {
		props["destination"] = ev.Destination
	}
	return props
}

func (c *Client) enqueue(name string, props map[string]any) {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return
	}
	queue := c.queue
	ev := Event{Name: name, Time: time.Now().UTC(), UserID: c.userID, Props: props}
	c.mu.Unlock()

	select {
	case queue <- ev:
	default:
		// Queue full. Fire-and-forget means we drop rather than block the
		// caller.
		c.logger.Debug("analytics queue full, event dropped", slog.String("name", name))
	}
}

// run buffers events and flushes them by size or interval. On quit it
// drains the queue and flushes one final time.
func (c *Client) run() {
	defer close(c.done)

	batch := make([]Event, 0, c.batchSize)
	tick := time.NewTicker(c.interval)
	defer tick.Stop()

	for {
		select {
		case ev := <-c.queue:
			batch = append(batch, ev)
			if len(batch) >= c.batchSize {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-tick.C:
			if len(batch) > 0 {
				c.flush(batch)
				batch = batch[:0]
			}
		case <-c.quit:
			// Drain without blocking: the queue stays open, so a ranged
			// receive would never terminate.
			for {
				select {
				case ev := <-c.queue:
					batch = append(batch, ev)
				default:
					c.flush(batch)
					return
				}
			}
		}
	}
}

func (c *Client) flush(batch []Event) {
	if len(batch) == 0 {
		return
	}
	body, err := json.Marshal(batch)
	if err != nil {
		c.logger.Error("analytics batch encode failed", slog.Any("error", err))
		return
	}
	resp, err := c.httpc.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		c.logger.Debug("analytics flush failed", slog.Any("error", err))
		return
	}
	// Response content is never consumed.
	resp.Body.Close()
}
