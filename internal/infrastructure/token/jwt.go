// Package token implements the bearer-token issuer/verifier on HS256 JWTs.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wanderly/auth-service/internal/api/metrics"
	"github.com/wanderly/auth-service/internal/core/domain"
	"github.com/wanderly/auth-service/internal/core/ports"
)

// DefaultTTL is the token lifetime. Tokens are stateless: once issued they
// stay valid until this expiry, logout only discards the client's copy.
const DefaultTTL = 7 * 24 * time.Hour

type jwtClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTProvider implements ports.TokenProvider with a process-wide HMAC secret.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTProvider(secret string, ttl time.Duration) *JWTProvider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTProvider{secret: []byte(secret), ttl: ttl}
}

func (p *JWTProvider) Issue(claims ports.Claims) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	})
	return t.SignedString(p.secret)
}

// Verify parses and validates raw, returning the embedded claims. It never
// touches the record store; resolving the subject is the caller's job.
func (p *JWTProvider) Verify(raw string) (ports.Claims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
			return ports.Claims{}, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
			return ports.Claims{}, domain.ErrTokenMalformed
		default:
			metrics.TokenVerificationsTotal.WithLabelValues("bad_signature").Inc()
			return ports.Claims{}, domain.ErrTokenBadSignature
		}
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return ports.Claims{UserID: claims.UserID, Email: claims.Email}, nil
}
