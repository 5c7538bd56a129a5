package httpadapter

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleAdClick records a click and redirects to the promotion's
// destination. Tracking is subordinate to navigation: a failed record write
// is logged inside the usecase and the redirect still happens. Only an
// unresolvable promotion produces HTTP 404, since there is nowhere to send
// the viewer.
func (h *Handler) handleAdClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing promotion id", http.StatusBadRequest)
		return
	}
	position := 0
	if raw := r.URL.Query().Get("position"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid position", http.StatusBadRequest)
			return
		}
		position = n
	}
	pageContext := r.URL.Query().Get("context")

	destination, err := h.svc.TrackClick(r.Context(), h.trackReq(r, id, pageContext, position))
	if err != nil {
		h.logger.Error("click error", slog.Any("error", err))
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, destination, http.StatusFound)
}
