// Package impression implements the dwell-time state machine that decides
// when a displayed promotion counts as viewed. One Observer is bound to one
// mounted promotion card; it fires at most one impression per mount.
package impression

import (
	"context"
	"sync"
	"time"

	"plaza-ads/internal/core/port"
)

const (
	// VisibleThreshold is the visible fraction of the card's bounding box
	// required to start the dwell timer.
	VisibleThreshold = 0.5
	// DwellTime is how long the threshold must hold continuously before an
	// impression is recorded.
	DwellTime = time.Second
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The production implementation delegates to
// time.AfterFunc; tests substitute a fake to control time.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// SystemClock returns a Clock backed by time.AfterFunc.
func SystemClock() Clock { return realClock{} }

// Tracker receives the impression once the dwell completes.
type Tracker interface {
	TrackImpression(ctx context.Context, req port.TrackReq)
}

type state int

const (
	stateIdle state = iota
	stateDwelling
	stateTracked
)

// Config holds the per-mount parameters of an Observer. Threshold and Dwell
// fall back to the package defaults when zero.
type Config struct {
	Req       port.TrackReq
	Threshold float64
	Dwell     time.Duration
}

// Observer tracks visibility of one mounted promotion card.
//
//	Idle -> Dwelling   visible fraction crosses the threshold
//	Dwelling -> Idle   fraction drops before the timer fires; timer cancelled
//	Dwelling -> Tracked  timer elapses; impression recorded once, terminal
//
// Tracked is irreversible for the mount: later visibility changes do
// nothing. Close cancels a pending timer without recording.
type Observer struct {
	ctx     context.Context
	clock   Clock
	tracker Tracker
	cfg     Config

	mu    sync.Mutex
	state state
	timer Timer
}

// NewObserver binds an observer to one mounted card. ctx scopes the
// eventual tracking write so teardown can cancel in-flight work.
func NewObserver(ctx context.Context, tracker Tracker, clock Clock, cfg Config) *Observer {
	if cfg.Threshold == 0 {
		cfg.Threshold = VisibleThreshold
	}
	if cfg.Dwell == 0 {
		cfg.Dwell = DwellTime
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Observer{ctx: ctx, clock: clock, tracker: tracker, cfg: cfg}
}

// VisibilityChanged feeds the current visible fraction of the card.
func (o *Observer) VisibilityChanged(ratio float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case stateIdle:
		if ratio >= o.cfg.Threshold {
			o.state = stateDwelling
			o.timer = o.clock.AfterFunc(o.cfg.Dwell, o.dwellElapsed)
		}
	case stateDwelling:
		if ratio < o.cfg.Threshold {
			o.timer.Stop()
			o.timer = nil
			o.state = stateIdle
		}
	case stateTracked:
		// Terminal; nothing restarts the timer.
	}
}

// Close cancels any pending dwell timer. A dwell that never completed is
// not recorded.
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	if o.state == stateDwelling {
		o.state = stateIdle
	}
}

// Tracked reports whether the impression for this mount has fired.
func (o *Observer) Tracked() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state == stateTracked
}

func (o *Observer) dwellElapsed() {
	o.mu.Lock()
	if o.state != stateDwelling {
		// Cancelled between firing and acquiring the lock.
		o.mu.Unlock()
		return
	}
	o.state = stateTracked
	o.timer = nil
	o.mu.Unlock()

	o.tracker.TrackImpression(o.ctx, o.cfg.Req)
}
