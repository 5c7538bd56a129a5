package usecase

import (
	"context"
	"log/slog"
	"time"

	"plaza-ads/internal/core/domain"
	"plaza-ads/internal/core/port"
	"plaza-ads/internal/core/rotation"
)

// DefaultFeedLimit caps a feed request that does not specify its own limit.
const DefaultFeedLimit = 50

// PlacementUseCase provides business logic for feed assembly and ad
// tracking. It orchestrates the repository, the rotation algorithm and the
// analytics sink to implement the PlacementUseCase interface.
type PlacementUseCase struct {
	repo   port.TrackingRepository
	sink   port.AnalyticsSink
	logger *slog.Logger

	// now is swappable so eligibility windows are testable.
	now func() time.Time
}

// NewPlacementUseCase creates a usecase with the provided collaborators.
func NewPlacementUseCase(repo port.TrackingRepository, sink port.AnalyticsSink, logger *slog.Logger) *PlacementUseCase {
	return &PlacementUseCase{repo: repo, sink: sink, logger: logger, now: time.Now}
}

// BuildFeed loads upcoming events and currently eligible promotions and
// returns the interleaved placement sequence. A promotion fetch failure
// degrades to a content-only feed: ads must never break the listing.
func (u *PlacementUseCase) BuildFeed(ctx context.Context, req port.FeedReq) ([]domain.PlacementSlot, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	events, err := u.repo.ListEvents(ctx, limit)
	if err != nil {
		return nil, err
	}

	at := u.now()
	promos, err := u.repo.GetEligiblePromotions(ctx, at)
	if err != nil {
		u.logger.Error("eligible promotions fetch failed", slog.Any("error", err))
		promos = nil
	}

	// Only promotions with completed payment and an open window may be
	// shown, whatever the store returned.
	eligible := make([]domain.Promotion, 0, len(promos))
	for _, p := range promos {
		if p.EligibleAt(at) {
			eligible = append(eligible, p)
		}
	}

	return rotation.Interleave(events, eligible), nil
}

// TrackImpression records one qualifying view. The record write and the
// analytics emission are independent best-effort operations: a failure in
// either is logged and swallowed, and neither gates the other.
func (u *PlacementUseCase) TrackImpression(ctx context.Context, req port.TrackReq) {
	rec := &domain.ImpressionRecord{
		PromotionID: req.PromotionID,
		ViewerID:    req.ViewerID,
		PageContext: req.PageContext,
		Position:    req.Position,
		SessionID:   req.SessionID,
	}
	if err := u.repo.InsertImpression(ctx, rec); err != nil {
		u.logger.Error("impression write failed",
			slog.String("promotion_id", req.PromotionID), slog.Any("error", err))
	}

	// Best-effort title resolution; the event is still emitted without one
	// when the lookup fails.
	title := ""
	if promo, err := u.repo.GetPromotion(ctx, req.PromotionID); err == nil {
		title = promo.Headline
	}
	u.sink.TrackAdImpression(adEvent(req, title, ""))
}

// TrackClick records one activation and returns the destination URL. The
// record write is best-effort; the destination is returned regardless so
// the caller can always navigate. Only an unresolvable promotion is an
// error, since there is nowhere to send the viewer.
func (u *PlacementUseCase) TrackClick(ctx context.Context, req port.TrackReq) (string, error) {
	promo, err := u.repo.GetPromotion(ctx, req.PromotionID)
	if err != nil {
		return "", err
	}

	rec := &domain.ClickRecord{
		PromotionID: req.PromotionID,
		ViewerID:    req.ViewerID,
		PageContext: req.PageContext,
		Position:    req.Position,
		SessionID:   req.SessionID,
	}
	if err := u.repo.InsertClick(ctx, rec); err != nil {
		u.logger.Error("click write failed",
			slog.String("promotion_id", req.PromotionID), slog.Any("error", err))
	}

	u.sink.TrackAdClick(adEvent(req, promo.Headline, promo.CTAURL))

	return promo.CTAURL, nil
}

// GetStats returns aggregated impression and click counts for a period.
func (u *PlacementUseCase) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	return u.repo.GetStats(ctx, req)
}

func adEvent(req port.TrackReq, title, destination string) port.AdEvent {
	ev := port.AdEvent{
		PromotionID: req.PromotionID,
		Title:       title,
		PageContext: req.PageContext,
		Position:    req.Position,
		SessionID:   req.SessionID,
		Destination: destination,
	}
	if req.ViewerID != nil {
		ev.ViewerID = *req.ViewerID
	}
	return ev
}
