package analytics

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"plaza-ads/internal/config/configs"
	"plaza-ads/internal/core/port"
)

type capture struct {
	mu     sync.Mutex
	events []Event
}

func (c *capture) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var batch []Event
	_ = json.Unmarshal(body, &batch)
	c.mu.Lock()
	c.events = append(c.events, batch...)
	c.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (c *capture) all() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(endpoint string) configs.Analytics {
	u, _ := url.Parse(endpoint)
	return configs.Analytics{
		Enabled:       true,
		Endpoint:      *u,
		Buffer:        100,
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
	}
}

func TestClientNoopBeforeInit(t *testing.T) {
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	c := NewClient(discardLogger())
	c.TrackPageView("/events")
	c.TrackAdImpression(port.AdEvent{PromotionID: "p1"})
	c.SetUserID("u1")
	c.Close()

	require.Empty(t, rec.all(), "an uninitialized sink must drop everything")
}

func TestClientBatchesAndFlushesOnClose(t *testing.T) {
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	c := NewClient(discardLogger())
	c.Init(testConfig(srv.URL))
	c.Init(testConfig("http://ignored.invalid")) // second Init has no effect

	c.SetUserID("u1")
	c.TrackPageView("/events")
	c.TrackAdImpression(port.AdEvent{PromotionID: "p1", Position: 10, SessionID: "s1"})
	c.TrackAdClick(port.AdEvent{PromotionID: "p1", Destination: "https://example.com"})
	c.TrackEvent("ads", "create", "", 0)
	c.Close()

	events := rec.all()
	require.Len(t, events, 4)

	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.Name
		require.Equal(t, "u1", ev.UserID)
	}
	require.Equal(t, []string{"page_view", "ad_impression", "ad_click", "event"}, names)

	require.Equal(t, "p1", events[1].Props["promotion_id"])
	require.Equal(t, float64(10), events[1].Props["position"])
	require.Equal(t, "https://example.com", events[2].Props["destination"])
}

func TestClientIntervalFlush(t *testing.T) {
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	c := NewClient(discardLogger())
	c.Init(testConfig(srv.URL))
	defer c.Close()

	c.TrackPageView("/artists")

	require.Eventually(t, func() bool {
		return len(rec.all()) == 1
	}, time.Second, 5*time.Millisecond, "interval flush should deliver without Close")
}

func TestClientCloseDuringConcurrentEnqueue(t *testing.T) {
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	c := NewClient(discardLogger())
	c.Init(testConfig(srv.URL))

	// Hammer the sink from several goroutines while Close races them. A
	// send that loses the race against shutdown must be dropped, never
	// panic.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.TrackPageView("/events")
			}
		}()
	}
	c.Close()
	wg.Wait()

	// The sink is back to no-op after Close.
	c.TrackPageView("/after-close")
	for _, ev := range rec.all() {
		require.NotEqual(t, "/after-close", ev.Props["path"])
	}
}

func TestClientSetUserIDIgnoresEmpty(t *testing.T) {
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer srv.Close()

	c := NewClient(discardLogger())
	c.Init(testConfig(srv.URL))
	c.SetUserID("u1")
	c.SetUserID("")
	c.TrackPageView("/venues")
	c.Close()

	events := rec.all()
	require.Len(t, events, 1)
	require.Equal(t, "u1", events[0].UserID, "empty id must not clear the viewer")
}
