package port

import (
	"context"
	"time"

	"plaza-ads/internal/core/domain"
)

// PlacementUseCase defines the business operations of the placement and
// tracking subsystem. This interface is the primary port into the
// application domain.
type PlacementUseCase interface {
	// BuildFeed loads events and eligible promotions and returns the
	// interleaved placement sequence for one listing render.
	BuildFeed(ctx context.Context, req FeedReq) ([]domain.PlacementSlot, error)

	// TrackImpression records one qualifying view of a promotion. The
	// data-store write and the analytics emission are independent
	// best-effort operations; a failure in either is logged and swallowed
	// and never surfaces to the viewer.
	TrackImpression(ctx context.Context, req TrackReq)

	// TrackClick records one activation of a promotion card and returns
	// the destination URL. The destination is always returned even when
	// the record write fails: tracking never blocks navigation. An error
	// is returned only when the promotion itself cannot be resolved.
	TrackClick(ctx context.Context, req TrackReq) (string, error)

	// GetStats returns aggregated impression and click counts for the
	// specified promotion (optional) and time period.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// FeedReq describes one feed request.
type FeedReq struct {
	PageContext string
	Limit       int
}

// TrackReq carries the fields persisted on impression and click records.
// ViewerID is nil for anonymous viewers.
type TrackReq struct {
	PromotionID string
	ViewerID    *string
	PageContext string
	Position    int
	SessionID   string
}

// StatsReq selects the period and optional promotion for aggregation.
type StatsReq struct {
	From        time.Time
	To          time.Time
	PromotionID *string
}

// StatsResp contains aggregated event counts.
type StatsResp struct {
	Impressions int64
	Clicks      int64
}
