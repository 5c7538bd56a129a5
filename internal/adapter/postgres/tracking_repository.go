package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"plaza-ads/internal/core/domain"
	"plaza-ads/internal/core/port"
)

// TrackingRepository implements port.TrackingRepository using pgxpool for
// PostgreSQL.
type TrackingRepository struct {
	pool *pgxpool.Pool
}

// NewTrackingRepository returns a new repository instance.
func NewTrackingRepository(pool *pgxpool.Pool) *TrackingRepository {
	return &TrackingRepository{pool: pool}
}

const promotionColumns = `id, headline, body, image_url, cta_label, cta_url,
    start_date, duration_days, status, payment_status, price_cents, created_at, updated_at`

func scanPromotion(row pgx.CollectableRow) (domain.Promotion, error) {
	var p domain.Promotion
	err := row.Scan(
		&p.ID,
		&p.Headline,
		&p.Body,
		&p.ImageURL,
		&p.CTALabel,
		&p.CTAURL,
		&p.StartDate,
		&p.DurationDays,
		&p.Status,
		&p.PaymentStatus,
		&p.PriceCents,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// GetEligiblePromotions returns promotions with completed payment whose
// scheduling window contains at. The window end is derived from start_date
// plus duration_days; expired promotions fall out of this query with no
// explicit destroy.
func (r *TrackingRepository) GetEligiblePromotions(ctx context.Context, at time.Time) ([]domain.Promotion, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM promotions
        WHERE payment_status = 'completed'
          AND start_date <= $1
          AND start_date + make_interval(days => duration_days) > $1
        ORDER BY created_at`, promotionColumns)
	rows, err := r.pool.Query(ctx, query, at)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanPromotion)
}

// GetPromotion returns a promotion by id regardless of eligibility.
func (r *TrackingRepository) GetPromotion(ctx context.Context, id string) (*domain.Promotion, error) {
	query := fmt.Sprintf(`SELECT %s FROM promotions WHERE id = $1`, promotionColumns)
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	p, err := pgx.CollectOneRow(rows, scanPromotion)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrPromotionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListEvents returns upcoming events ordered by start time.
func (r *TrackingRepository) ListEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, title, venue, image_url, starts_at, created_at
        FROM events
        WHERE starts_at >= now()
        ORDER BY starts_at
        LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Event, error) {
		var e domain.Event
		err := row.Scan(&e.ID, &e.Title, &e.Venue, &e.ImageURL, &e.StartsAt, &e.CreatedAt)
		return e, err
	})
}

// InsertImpression stores one append-only impression record.
func (r *TrackingRepository) InsertImpression(ctx context.Context, rec *domain.ImpressionRecord) error {
	rec.CreatedAt = time.Now().UTC()
	return r.pool.QueryRow(ctx, `
        INSERT INTO ad_impressions (promotion_id, viewer_id, page_context, position, session_id, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`,
		rec.PromotionID, rec.ViewerID, rec.PageContext, rec.Position, rec.SessionID, rec.CreatedAt,
	).Scan(&rec.ID)
}

// InsertClick stores one append-only click record.
func (r *TrackingRepository) InsertClick(ctx context.Context, rec *domain.ClickRecord) error {
	rec.CreatedAt = time.Now().UTC()
	return r.pool.QueryRow(ctx, `
        INSERT INTO ad_clicks (promotion_id, viewer_id, page_context, position, session_id, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`,
		rec.PromotionID, rec.ViewerID, rec.PageContext, rec.Position, rec.SessionID, rec.CreatedAt,
	).Scan(&rec.ID)
}

// GetStats returns aggregated impression and click counts for a period.
func (r *TrackingRepository) GetStats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []interface{}{req.From, req.To}
	wherePromotion := ""
	if req.PromotionID != nil {
		wherePromotion = "AND promotion_id = $3"
		args = append(args, *req.PromotionID)
	}

	var resp port.StatsResp
	impQuery := fmt.Sprintf(`SELECT count(*) FROM ad_impressions
        WHERE created_at >= $1 AND created_at <= $2 %s`, wherePromotion)
	if err := r.pool.QueryRow(ctx, impQuery, args...).Scan(&resp.Impressions); err != nil {
		return nil, err
	}

	clickQuery := fmt.Sprintf(`SELECT count(*) FROM ad_clicks
        WHERE created_at >= $1 AND created_at <= $2 %s`, wherePromotion)
	if err := r.pool.QueryRow(ctx, clickQuery, args...).Scan(&resp.Clicks); err != nil {
		return nil, err
	}
	return &resp, nil
}
