package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
)

// identityKey is the key used to store the authenticated caller's identity in
// the request context.
const identityKey = contextKey("identity")

// WithIdentity returns a context carrying the authenticated identity. The
// identity is an explicit request-scoped value; nothing in the codebase reads
// it from a global holder.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromCtx retrieves the authenticated identity from a standard
// context. It returns the identity and a boolean indicating if it was found.
func GetIdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin
// context.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	return GetIdentityFromCtx(c.Request.Context())
}
