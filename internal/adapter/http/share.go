package httpadapter

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// handleEventQR renders a QR code PNG pointing at an event's public page,
// for print flyers and share sheets. The optional `size` parameter sets the
// image dimension in pixels and is clamped to a sane range.
func (h *Handler) handleEventQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing event id", http.StatusBadRequest)
		return
	}

	size := 256
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
		size = n
	}
	if size < 64 {
		size = 64
	}
	if size > 1024 {
		size = 1024
	}

	shareURL := fmt.Sprintf("%s/events/%s", h.publicURL, id)
	png, err := qrcode.Encode(shareURL, qrcode.Medium, size)
	if err != nil {
		h.logger.Error("qr encode error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err = w.Write(png); err != nil {
		h.logger.Error("qr write error", slog.Any("error", err))
	}
}
