package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/memoboard/memo-api/internal/api/metrics"
	"github.com/memoboard/memo-api/internal/core/domain"
)

// errorResponse is the canonical rejection envelope for all API errors:
// {"status":"<code>","message":"<reason>"}.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the stable envelope on every rejection.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Status: strconv.Itoa(code), Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Token validation failures are all terminal 400 rejections; the message
	// does not distinguish the cause beyond "not valid".
	switch {
	case errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrMalformedToken),
		errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrTokenExpired):
		return http.StatusBadRequest, "token is not valid"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		// Uniform message for unknown user and wrong password alike.
		return http.StatusUnauthorized, "login failed"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too many failed login attempts"
	case errors.Is(err, domain.ErrInvalidSignup):
		return http.StatusBadRequest, "username or password format is invalid"
	case errors.Is(err, domain.ErrBadAdminToken):
		return http.StatusBadRequest, "admin registration token mismatch"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, domain.ErrUserNotFound):
		// Surfaced by the auth filter when the subject no longer exists.
		return http.StatusBadRequest, "token is not valid"
	case errors.Is(err, domain.ErrPermissionDenied):
		metrics.PermissionDenialsTotal.WithLabelValues(resourceLabel(c.Path())).Inc()
		return http.StatusForbidden, "you do not have permission to modify this resource"
	case errors.Is(err, domain.ErrMemoNotFound):
		return http.StatusNotFound, "memo not found"
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "comment not found"
	}

	// Unexpected error (user store unreachable and friends): log the real
	// cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func resourceLabel(routePath string) string {
	switch {
	case strings.HasPrefix(routePath, "/api/memos"):
		return "memo"
	case strings.HasPrefix(routePath, "/api/comment"):
		return "comment"
	default:
		return "other"
	}
}
