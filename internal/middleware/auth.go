package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

// TokenValidator validates a raw bearer token and resolves the identity it
// carries. The local implementation (auth service) checks the token store
// directly; every other service validates through a remote call to the auth
// service. Both must be behaviorally equivalent: signature, expiry and
// revocation are always checked.
//
// Errors: apperrors.ErrUnauthorized for anything wrong with the token itself,
// apperrors.ErrServiceUnavailable when the validating service is unreachable.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, rawToken string) (domain.Identity, error)
}

// AuthorizationFilter gates every inbound request against the configured
// route rules. Requests matching no rule pass through unauthenticated.
// Matching requests must carry a valid bearer credential whose role is in the
// rule's allow-list; any failure terminates the pipeline before the handler
// runs.
func AuthorizationFilter(rules []RouteRule, validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule, required := matchRule(rules, c.Request.URL.Path, c.Request.Method)
		if !required {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortWithStatus(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			abortWithStatus(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		identity, err := validator.ValidateAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, apperrors.ErrServiceUnavailable) {
				logger.Error("Token validation service unreachable", slog.String("error", err.Error()))
				abortWithStatus(c, http.StatusServiceUnavailable, "Authentication service is currently unavailable. Please try again later.")
				return
			}
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			abortWithStatus(c, http.StatusUnauthorized, err.Error())
			return
		}

		if !rule.Allows(identity.Role) {
			logger.Warn("Insufficient authority",
				slog.String("authority", identity.Authority()),
				slog.String("path", c.Request.URL.Path))
			abortWithStatus(c, http.StatusForbidden, "Insufficient authority for this resource")
			return
		}

		// Establish the request-scoped identity and enrich the logger.
		ctx := WithIdentity(c.Request.Context(), identity)
		enrichedLogger := logger.With(
			slog.String("user_id", identity.Email),
			slog.String("authority", identity.Authority()),
		)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortWithStatus(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.StatusResponse{Status: status, Message: message})
}
