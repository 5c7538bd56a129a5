package port

import (
	"context"
	"errors"
	"time"

	"plaza-ads/internal/core/domain"
)

var ErrPromotionNotFound = errors.New("promotion not found")

// TrackingRepository defines the persistence layer for the placement
// subsystem. It is an outbound port in hexagonal architecture. Impression
// and click inserts are append-only; nothing in this subsystem mutates or
// deletes a record once written.
type TrackingRepository interface {
	// GetEligiblePromotions returns promotions whose payment has completed
	// and whose scheduling window contains at, in creation order.
	GetEligiblePromotions(ctx context.Context, at time.Time) ([]domain.Promotion, error)
	// GetPromotion returns a promotion by id regardless of eligibility.
	// Returns ErrPromotionNotFound when no row exists.
	GetPromotion(ctx context.Context, id string) (*domain.Promotion, error)
	// ListEvents returns upcoming events ordered by start time.
	ListEvents(ctx context.Context, limit int) ([]domain.Event, error)
	// InsertImpression stores one impression record.
	InsertImpression(ctx context.Context, rec *domain.ImpressionRecord) error
	// InsertClick stores one click record.
	InsertClick(ctx context.Context, rec *domain.ClickRecord) error
	// GetStats returns aggregated event counts for a period.
	GetStats(ctx context.Context, req StatsReq) (*StatsResp, error)
}
