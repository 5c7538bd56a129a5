package port

import (
	"context"

	"plaza-ads/internal/core/domain"
)

// IdentityProvider resolves the current viewer from request context. It is
// consumed read-only; a nil viewer means anonymous and is always valid.
type IdentityProvider interface {
	CurrentViewer(ctx context.Context) *domain.Viewer
}
