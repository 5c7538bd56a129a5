// Package auth resolves viewer identity from bearer tokens. Identity is
// strictly optional here: tracking records accept anonymous viewers, so any
// missing or invalid token resolves to nil rather than an error.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"plaza-ads/internal/core/domain"
)

type contextKey string

const viewerContextKey contextKey = "viewer"

// Claims are the JWT claims issued by the auth provider.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTProvider implements port.IdentityProvider over bearer tokens stored in
// request context by Middleware.
type JWTProvider struct {
	secret []byte
}

// NewJWTProvider creates a provider with the given signing secret. An empty
// secret disables verification: every viewer resolves as anonymous.
func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret)}
}

// Middleware parses the Authorization header and stores the resolved viewer
// in the request context. It never rejects a request; unauthenticated
// traffic is first-class.
func (p *JWTProvider) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if viewer := p.viewerFromRequest(r); viewer != nil {
			ctx := context.WithValue(r.Context(), viewerContextKey, viewer)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentViewer returns the viewer placed in ctx by Middleware, or nil.
func (p *JWTProvider) CurrentViewer(ctx context.Context) *domain.Viewer {
	viewer, _ := ctx.Value(viewerContextKey).(*domain.Viewer)
	return viewer
}

func (p *JWTProvider) viewerFromRequest(r *http.Request) *domain.Viewer {
	if len(p.secret) == 0 {
		return nil
	}
	authHeader := r.Header.Get("Authorization")
	scheme, tokenString, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil
	}
	return &domain.Viewer{ID: claims.Subject, Email: claims.Email}
}
