package domain

import "time"

// Promotion payment statuses. A promotion is invisible until payment
// completes.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Promotion lifecycle statuses.
const (
	StatusDraft  = "draft"
	StatusActive = "active"
)

// Promotion represents one paid placement shown interleaved with events.
// Price is stored in integer minor currency units (e.g. cents).
type Promotion struct {
	ID            string
	Headline      string
	Body          string
	ImageURL      string
	CTALabel      string
	CTAURL        string
	StartDate     time.Time
	DurationDays  int
	Status        string
	PaymentStatus string
	PriceCents    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EndDate returns the first instant the promotion is no longer displayable.
// The window is [StartDate, StartDate + DurationDays).
func (p Promotion) EndDate() time.Time {
	return p.StartDate.AddDate(0, 0, p.DurationDays)
}

// EligibleAt reports whether the promotion may be displayed at t: payment
// must be completed and t must fall inside the scheduling window. Expiry is
// implicit; nothing ever deletes a promotion.
func (p Promotion) EligibleAt(t time.Time) bool {
	if p.PaymentStatus != PaymentCompleted {
		return false
	}
	return !t.Before(p.StartDate) && t.Before(p.EndDate())
}
