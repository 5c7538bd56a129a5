package domain

import "time"

// Event is a directory listing entry. The placement subsystem treats it as
// opaque beyond its stable identifier; display fields are carried through
// for rendering only.
type Event struct {
	ID        string
	Title     string
	Venue     string
	ImageURL  string
	StartsAt  time.Time
	CreatedAt time.Time
}
