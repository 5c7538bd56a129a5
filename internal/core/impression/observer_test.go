package impression

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"plaza-ads/internal/core/port"
)

// fakeClock hands out timers that fire only when the test advances time.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) advance(d time.Duration) {
	c.now += d
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			t.f()
		}
	}
}

type recordingTracker struct {
	calls []port.TrackReq
}

func (r *recordingTracker) TrackImpression(_ context.Context, req port.TrackReq) {
	r.calls = append(r.calls, req)
}

func newTestObserver(clock *fakeClock, tracker Tracker) *Observer {
	return NewObserver(context.Background(), tracker, clock, Config{
		Req: port.TrackReq{PromotionID: "p1", PageContext: "events", Position: 10, SessionID: "s1"},
	})
}

func TestImpressionFiresOnceAfterDwell(t *testing.T) {
	clock := &fakeClock{}
	tracker := &recordingTracker{}
	obs := newTestObserver(clock, tracker)

	obs.VisibilityChanged(0.6)
	clock.advance(999 * time.Millisecond)
	require.Empty(t, tracker.calls, "no impression before the dwell elapses")

	clock.advance(1 * time.Millisecond)
	require.Len(t, tracker.calls, 1)
	require.Equal(t, "p1", tracker.calls[0].PromotionID)
	require.Equal(t, 10, tracker.calls[0].Position)
	require.True(t, obs.Tracked())

	// Continued or repeated visibility never fires again.
	obs.VisibilityChanged(1.0)
	obs.VisibilityChanged(0.0)
	obs.VisibilityChanged(1.0)
	clock.advance(5 * time.Second)
	require.Len(t, tracker.calls, 1)
}

func TestImpressionCancelledBeforeThreshold(t *testing.T) {
	clock := &fakeClock{}
	tracker := &recordingTracker{}
	obs := newTestObserver(clock, tracker)

	obs.VisibilityChanged(0.8)
	clock.advance(999 * time.Millisecond)
	obs.VisibilityChanged(0.3)
	clock.advance(10 * time.Second)
	require.Empty(t, tracker.calls, "interrupted dwell writes nothing")

	// A fresh crossing restarts the timer from zero.
	obs.VisibilityChanged(0.7)
	clock.advance(999 * time.Millisecond)
	require.Empty(t, tracker.calls)
	clock.advance(1 * time.Millisecond)
	require.Len(t, tracker.calls, 1)
}

func TestImpressionBelowThresholdNeverDwells(t *testing.T) {
	clock := &fakeClock{}
	tracker := &recordingTracker{}
	obs := newTestObserver(clock, tracker)

	obs.VisibilityChanged(0.49)
	clock.advance(10 * time.Second)
	require.Empty(t, tracker.calls)
	require.Empty(t, clock.timers)
}

func TestImpressionCloseCancelsPendingDwell(t *testing.T) {
	clock := &fakeClock{}
	tracker := &recordingTracker{}
	obs := newTestObserver(clock, tracker)

	obs.VisibilityChanged(0.9)
	obs.Close()
	clock.advance(10 * time.Second)
	require.Empty(t, tracker.calls)
	require.False(t, obs.Tracked())
}
