package httpadapter

import (
	"context"
	"net/http"

	"plaza-ads/internal/core/session"
)

type contextKey string

const sessionContextKey contextKey = "session_id"

// sessionMiddleware guarantees every request carries a session id, minting
// and persisting one in a cookie on first contact. The cookie plays the
// role of tab-scoped storage: it is never expired by us and a new id
// appears only when the client's cookie jar is cleared externally.
func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := &cookieStore{r: r, w: w}
		id := session.NewManager(store, nil).ID()
		ctx := context.WithValue(r.Context(), sessionContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID returns the session id placed in ctx by sessionMiddleware.
func sessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionContextKey).(string)
	return id
}

// cookieStore adapts one request/response pair to session.Store.
type cookieStore struct {
	r *http.Request
	w http.ResponseWriter
}

func (s *cookieStore) Get(key string) (string, bool) {
	c, err := s.r.Cookie(key)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *cookieStore) Set(key, value string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}
