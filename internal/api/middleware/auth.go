package middleware

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/memoboard/memo-api/internal/api/metrics"
	"github.com/memoboard/memo-api/internal/core/domain"
	"github.com/memoboard/memo-api/internal/core/ports"
	"github.com/memoboard/memo-api/internal/core/token"
)

// Auth validates the credential on every non-exempt request and attaches the
// resolved principal to the request context. Per request it ends in one of
// three states: pass-through (exempt route), authenticated (principal
// attached, chain continues), or rejected (chain halted, structured error).
func Auth(codec *token.Codec, users ports.UserRepository, exempt ExemptionTable, audit ports.AuditSink, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if exempt.Exempt(req.Method, req.URL.Path) {
				return next(c)
			}

			raw, ok := token.FromRequest(req)
			if !ok {
				return reject(c, audit, "", "missing", domain.ErrMissingToken)
			}

			claims, err := codec.Parse(raw)
			if err != nil {
				return reject(c, audit, "", rejectionReason(err), err)
			}

			user, err := users.FindByUsername(req.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Account deleted after the token was issued.
					return reject(c, audit, claims.Subject, "unknown_user", domain.ErrUserNotFound)
				}
				log.Error().Err(err).Str("subject", claims.Subject).Msg("user store lookup failed")
				return err
			}

			SetPrincipal(c, domain.Principal{Username: user.Username, Role: user.Role})
			return next(c)
		}
	}
}

func reject(c echo.Context, audit ports.AuditSink, username, reason string, err error) error {
	metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
	audit.Record(domain.AuditEvent{
		Username:  username,
		Action:    domain.AuditTokenRejected,
		Detail:    reason,
		Path:      c.Request().URL.Path,
		Timestamp: time.Now().UTC(),
	})
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
