package httpadapter

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"log/slog"

	"plaza-ads/internal/core/impression"
	"plaza-ads/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the placement usecase, the identity provider and a logger,
// plus the registry of live impression observers keyed by client mount id.
// Routes are registered on a chi.Router for convenient method handling.
type Handler struct {
	svc       port.PlacementUseCase
	identity  port.IdentityProvider
	logger    *slog.Logger
	router    chi.Router
	publicURL string
	clock     impression.Clock

	mu        sync.Mutex
	observers map[string]*impression.Observer
}

// NewHandler creates a handler with all routes configured. publicURL is the
// externally visible base URL used when building share links.
func NewHandler(svc port.PlacementUseCase, identity port.IdentityProvider, logger *slog.Logger, publicURL string) *Handler {
	h := &Handler{
		svc:       svc,
		identity:  identity,
		logger:    logger,
		publicURL: publicURL,
		clock:     impression.SystemClock(),
		observers: make(map[string]*impression.Observer),
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.sessionMiddleware)
		r.Get("/feed", h.handleFeed)
		r.Post("/ad/impression", h.handleAdImpression)
		r.Post("/ad/visibility", h.handleAdVisibility)
		r.Delete("/ad/visibility/{mountID}", h.handleAdUnmount)
		r.Get("/ad/click/{id}", h.handleAdClick)
		r.Get("/stats/overview", h.handleStatsOverview)
		r.Get("/events/{id}/qr", h.handleEventQR)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// trackReq assembles the fields every tracking record carries from the
// request context and parsed parameters.
func (h *Handler) trackReq(r *http.Request, promotionID, pageContext string, position int) port.TrackReq {
	req := port.TrackReq{
		PromotionID: promotionID,
		PageContext: pageContext,
		Position:    position,
		SessionID:   sessionID(r.Context()),
	}
	if viewer := h.identity.CurrentViewer(r.Context()); viewer != nil {
		req.ViewerID = &viewer.ID
	}
	return req
}
