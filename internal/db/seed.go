package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo events and promotions for local development. It is
// idempotent on reruns only in the sense that duplicates are harmless demo
// rows.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	venues := []string{"Civic Hall", "Riverside Park", "The Foundry", "Union Square"}
	for i := 1; i <= 40; i++ {
		id := uuid.NewString()
		title := fmt.Sprintf("Community Event %d", i)
		venue := venues[r.Intn(len(venues))]
		imageURL := fmt.Sprintf("https://example.com/events/%d.jpg", i)
		startsAt := time.Now().AddDate(0, 0, 1+r.Intn(30))
		_, err := pool.Exec(ctx, `INSERT INTO events (id, title, venue, image_url, starts_at)
VALUES ($1,$2,$3,$4,$5)`, id, title, venue, imageURL, startsAt)
		if err != nil {
			return err
		}
	}

	for i := 1; i <= 4; i++ {
		id := uuid.NewString()
		headline := fmt.Sprintf("Sponsored Spot %d", i)
		body := "Support local happenings around the plaza."
		imageURL := fmt.Sprintf("https://example.com/ads/%d.jpg", i)
		ctaURL := fmt.Sprintf("https://example.com/sponsors/%d", i)
		start := time.Now().AddDate(0, 0, -1)
		_, err := pool.Exec(ctx, `INSERT INTO promotions
    (id, headline, body, image_url, cta_label, cta_url, start_date, duration_days,
     status, payment_status, price_cents)
VALUES ($1,$2,$3,$4,'Learn more',$5,$6,30,'active','completed',5000)`,
			id, headline, body, imageURL, ctaURL, start)
		if err != nil {
			return err
		}
	}
	return nil
}
