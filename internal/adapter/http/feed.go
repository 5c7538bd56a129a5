package httpadapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"plaza-ads/internal/core/domain"
	"plaza-ads/internal/core/port"
)

type eventDTO struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Venue    string    `json:"venue,omitempty"`
	ImageURL string    `json:"image_url,omitempty"`
	StartsAt time.Time `json:"starts_at"`
}

type promotionDTO struct {
	ID       string `json:"id"`
	Headline string `json:"headline"`
	Body     string `json:"body,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	CTALabel string `json:"cta_label"`
	// ClickURL routes the activation through the click tracker before the
	// destination opens.
	ClickURL string `json:"click_url"`
}

type feedSlot struct {
	Type      string        `json:"type"`
	Position  int           `json:"position"`
	Event     *eventDTO     `json:"event,omitempty"`
	Promotion *promotionDTO `json:"promotion,omitempty"`
}

// handleFeed returns the interleaved placement sequence for one listing
// render. The optional `context` parameter tags which page requested the
// feed and flows into every tracking record; `limit` caps the content
// items. Internal errors produce HTTP 500.
func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageContext := q.Get("context")
	if pageContext == "" {
		pageContext = "events"
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	slots, err := h.svc.BuildFeed(r.Context(), port.FeedReq{PageContext: pageContext, Limit: limit})
	if err != nil {
		h.logger.Error("feed error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]feedSlot, 0, len(slots))
	for _, s := range slots {
		slot := feedSlot{Type: string(s.Type), Position: s.Position}
		switch s.Type {
		case domain.SlotContent:
			slot.Event = &eventDTO{
				ID:       s.Event.ID,
				Title:    s.Event.Title,
				Venue:    s.Event.Venue,
				ImageURL: s.Event.ImageURL,
				StartsAt: s.Event.StartsAt,
			}
		case domain.SlotPromotion:
			slot.Promotion = &promotionDTO{
				ID:       s.Promotion.ID,
				Headline: s.Promotion.Headline,
				Body:     s.Promotion.Body,
				ImageURL: s.Promotion.ImageURL,
				CTALabel: s.Promotion.CTALabel,
				ClickURL: fmt.Sprintf("/api/v1/ad/click/%s?position=%d&context=%s",
					s.Promotion.ID, s.Position, url.QueryEscape(pageContext)),
			}
		}
		out = append(out, slot)
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(out); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
