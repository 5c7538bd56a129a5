package domain

import "time"

// ImpressionRecord is an append-only fact: one qualifying view of a
// promotion. ViewerID is nil for anonymous viewers. Position is the
// content-relative position the promotion occupied in the listing.
type ImpressionRecord struct {
	ID          int64
	PromotionID string
	ViewerID    *string
	PageContext string
	Position    int
	SessionID   string
	CreatedAt   time.Time
}

// ClickRecord is an append-only fact: one activation of a promotion card.
type ClickRecord struct {
	ID          int64
	PromotionID string
	ViewerID    *string
	PageContext string
	Position    int
	SessionID   string
	CreatedAt   time.Time
}
