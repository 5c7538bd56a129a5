package port

// AdEvent carries the fields of one named ad-tracking analytics event.
type AdEvent struct {
	PromotionID string `json:"promotion_id"`
	Title       string `json:"title"`
	PageContext string `json:"page_context"`
	Position    int    `json:"position"`
	SessionID   string `json:"session_id"`
	ViewerID    string `json:"viewer_id,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// AnalyticsSink forwards named events to a reporting endpoint. Every method
// is a no-op until the sink has been initialized, and emission is
// fire-and-forget: callers never learn whether delivery succeeded.
type AnalyticsSink interface {
	TrackPageView(path string)
	TrackEvent(category, action, label string, value int64)
	TrackAdImpression(ev AdEvent)
	TrackAdClick(ev AdEvent)
	// SetUserID associates subsequent events with a viewer. Empty ids are
	// ignored.
	SetUserID(id string)
}
