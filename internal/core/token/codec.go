// Package token issues and parses the signed, expiring credentials that stand
// in for server-side sessions. A credential is an HS256 JWT carrying the
// subject username and role; it is validated purely by signature and expiry.
package token

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/memoboard/memo-api/internal/core/domain"
)

const (
	// HeaderName is the authoritative credential carrier.
	HeaderName = "Authorization"
	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
	// CookieName is the fallback carrier set at login.
	CookieName = "Authorization"
)

// Claims is the typed payload of a credential.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec creates and validates credentials with a fixed symmetric secret and
// TTL, both set once at startup and never rotated during the process lifetime.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret; tokens expire after ttl.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue encodes subject and role into a compact signed string with
// iat=now and exp=now+TTL.
func (c *Codec) Issue(subject string, role domain.Role) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse validates raw and returns its claims. Failures map onto the domain
// taxonomy: structural problems to ErrMalformedToken, signature or algorithm
// mismatches to ErrInvalidSignature, and a passed expiry to ErrTokenExpired.
func (c *Codec) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	},
		// Strict decoding rejects non-canonical base64, so no two distinct
		// encoded strings map to the same credential.
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrInvalidSignature
		default:
			return nil, domain.ErrMalformedToken
		}
	}
	if !tkn.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return nil, domain.ErrMalformedToken
	}
	return claims, nil
}

// FromRequest extracts the bare token from its carrier. The Authorization
// header takes precedence over the cookie; a header without a well-formed
// Bearer prefix yields nothing. Absence of any carrier is not an error, it
// signals an unauthenticated attempt handled by the caller.
func FromRequest(r *http.Request) (string, bool) {
	if h := r.Header.Get(HeaderName); h != "" {
		if len(h) > len(BearerPrefix) && strings.EqualFold(h[:len(BearerPrefix)], BearerPrefix) {
			return h[len(BearerPrefix):], true
		}
		return "", false
	}
	if ck, err := r.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value, true
	}
	return "", false
}
