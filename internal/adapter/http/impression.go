package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"plaza-ads/internal/core/impression"
)

// maxObservers bounds the live mount registry.
//
// TODO: evict observers whose mount never unmounts cleanly (tab crash); a
// TTL sweep over last-update times would cover it.
const maxObservers = 10000

type impressionBody struct {
	PromotionID string `json:"promotion_id"`
	PageContext string `json:"page_context"`
	Position    int    `json:"position"`
}

// handleAdImpression records a completed-dwell impression reported by a
// client that runs its own visibility observation. The write is best-effort
// and the response never depends on it, so the status is 202 regardless.
func (h *Handler) handleAdImpression(w http.ResponseWriter, r *http.Request) {
	var body impressionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if body.PromotionID == "" {
		http.Error(w, "missing promotion_id", http.StatusBadRequest)
		return
	}

	h.svc.TrackImpression(r.Context(), h.trackReq(r, body.PromotionID, body.PageContext, body.Position))
	w.WriteHeader(http.StatusAccepted)
}

type visibilityBody struct {
	MountID     string  `json:"mount_id"`
	PromotionID string  `json:"promotion_id"`
	PageContext string  `json:"page_context"`
	Position    int     `json:"position"`
	Ratio       float64 `json:"ratio"`
}

// handleAdVisibility feeds one visibility sample into the dwell state
// machine for a mounted promotion card. The first sample for a mount id
// creates its observer; the observer then enforces the threshold, the
// continuous dwell requirement and the at-most-once impression for the
// lifetime of the mount.
func (h *Handler) handleAdVisibility(w http.ResponseWriter, r *http.Request) {
	var body visibilityBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if body.MountID == "" || body.PromotionID == "" {
		http.Error(w, "missing mount_id or promotion_id", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	obs, ok := h.observers[body.MountID]
	if !ok {
		if len(h.observers) >= maxObservers {
			h.mu.Unlock()
			http.Error(w, "too many live mounts", http.StatusServiceUnavailable)
			return
		}
		// The observer outlives this request: its tracking write may fire
		// from a later dwell-timer callback.
		obs = impression.NewObserver(context.Background(), h.svc, h.clock, impression.Config{
			Req: h.trackReq(r, body.PromotionID, body.PageContext, body.Position),
		})
		h.observers[body.MountID] = obs
	}
	h.mu.Unlock()

	obs.VisibilityChanged(body.Ratio)
	w.WriteHeader(http.StatusAccepted)
}

// handleAdUnmount closes the observer for a mount. A dwell that never
// completed writes nothing.
func (h *Handler) handleAdUnmount(w http.ResponseWriter, r *http.Request) {
	mountID := chi.URLParam(r, "mountID")

	h.mu.Lock()
	obs, ok := h.observers[mountID]
	delete(h.observers, mountID)
	h.mu.Unlock()

	if ok {
		obs.Close()
	}
	w.WriteHeader(http.StatusNoContent)
}
