package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/memoboard/memo-api/internal/core/domain"
)

// principalKey is the echo context key under which the authenticated
// principal is stored. All access goes through the typed helpers below so the
// principal's shape is enforced by the type system rather than an untyped
// attribute bag.
const principalKey = "auth.principal"

// SetPrincipal attaches the authenticated principal to the request context.
// Called exactly once per request, by the Auth middleware.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal attached by the Auth middleware.
// The second return is false on exempt routes that never authenticated.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
