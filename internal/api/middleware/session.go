package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/api/metrics"
	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
	"github.com/nourtech/storefront/internal/infrastructure/session"
)

const principalKey = "principal"

// SessionVerifier checks a session token and returns its principal.
type SessionVerifier interface {
	Verify(token string) (domain.Principal, bool)
}

// Session resolves the session cookie into a principal stored on the echo
// context. Missing, invalid, expired and revoked tokens leave the request
// anonymous; this middleware never rejects a request on its own.
func Session(verifier SessionVerifier, revocations ports.RevocationStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := session.TokenFromRequest(c.Request())
			if token == "" {
				return next(c)
			}

			p, ok := verifier.Verify(token)
			if !ok {
				metrics.SessionsRejectedTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}
			if isRevoked(c.Request().Context(), revocations, p, log) {
				metrics.SessionsRejectedTotal.WithLabelValues("revoked").Inc()
				return next(c)
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// isRevoked reports whether p was issued at or before its user's latest
// revocation. Lookup failures are logged and the token is honoured.
func isRevoked(ctx context.Context, revocations ports.RevocationStore, p domain.Principal, log zerolog.Logger) bool {
	if revocations == nil {
		return false
	}
	at, ok, err := revocations.RevokedSince(ctx, p.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", p.UserID).Msg("revocation check failed, honouring session")
		return false
	}
	return ok && !p.IssuedAt.After(at)
}

// PrincipalFrom returns the principal resolved by Session, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
