package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/middleware"
)

// respondError maps a service error onto the wire error contract. Sentinel
// errors translate to their HTTP status; anything unrecognized is logged and
// reported as a generic 500 so internals never leak to the caller.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrRefreshTokenExpired):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
		message = err.Error()
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code != 0 {
			status = appErr.Code
			message = appErr.Message
		}
	}

	if status >= http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()))
	}

	c.JSON(status, dto.StatusResponse{Status: status, Message: message})
}

// respondBindError reports a request binding failure.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.StatusResponse{
		Status:  http.StatusBadRequest,
		Message: "Invalid request: " + err.Error(),
	})
}

// requireIdentity fetches the identity established by the authorization
// filter, responding 401 when the route was somehow reached without one.
func requireIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.StatusResponse{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}
	return identity, ok
}
