package domain

// Viewer identifies an authenticated user. Tracking works for anonymous
// viewers too, so everything that consumes a Viewer accepts nil.
type Viewer struct {
	ID    string
	Email string
}
