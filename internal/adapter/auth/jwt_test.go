package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"plaza-ads/internal/core/domain"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "viewer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func resolve(t *testing.T, p *JWTProvider, authHeader string) *domain.Viewer {
	t.Helper()
	var viewer *domain.Viewer
	h := p.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer = p.CurrentViewer(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return viewer
}

func TestCurrentViewerFromBearerToken(t *testing.T) {
	p := NewJWTProvider("secret")

	viewer := resolve(t, p, "Bearer "+signToken(t, "secret", "u42"))
	require.NotNil(t, viewer)
	require.Equal(t, "u42", viewer.ID)
	require.Equal(t, "viewer@example.com", viewer.Email)
}

func TestCurrentViewerAnonymous(t *testing.T) {
	p := NewJWTProvider("secret")

	require.Nil(t, resolve(t, p, ""), "missing header")
	require.Nil(t, resolve(t, p, "Bearer not-a-token"), "garbage token")
	require.Nil(t, resolve(t, p, "Bearer "+signToken(t, "other", "u42")), "wrong secret")
	require.Nil(t, resolve(t, NewJWTProvider(""), "Bearer "+signToken(t, "secret", "u42")),
		"verification disabled")
}

func TestCurrentViewerRejectsOtherSigningMethods(t *testing.T) {
	p := NewJWTProvider("secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS384, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	require.Nil(t, resolve(t, p, "Bearer "+signed),
		"only HS256 tokens are accepted, even with the right secret")
}
