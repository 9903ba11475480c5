// Package session issues and verifies the signed, self-contained tokens
// carried in the storefront's session cookie.
//
// A token is a compact HS256 JWT whose payload holds the principal:
//
//	{"sub": <user id>, "username", "role", "fullName", "iat", "exp"}
//
// Verification needs nothing but the server secret; no session state is held
// server-side.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nourtech/storefront/internal/core/domain"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 12 * time.Hour

var ErrEmptySecret = errors.New("session: secret must not be empty")

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// Codec implements ports.SessionCodec.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*Codec)

// WithClock overrides the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls back
// to DefaultTTL.
func NewCodec(secret string, ttl time.Duration, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

func (c *Codec) TTL() time.Duration { return c.ttl }

func (c *Codec) Issue(p domain.Principal) (string, domain.Principal, error) {
	now := c.now().Truncate(time.Second)
	p.IssuedAt = now
	p.ExpiresAt = now.Add(c.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: p.Username,
		Role:     p.Role,
		FullName: p.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(p.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(p.ExpiresAt),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", domain.Principal{}, err
	}
	return signed, p, nil
}

func (c *Codec) Verify(token string) (domain.Principal, bool) {
	if token == "" {
		return domain.Principal{}, false
	}

	var cl claims
	parsed, err := c.parser.ParseWithClaims(token, &cl, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Principal{}, false
	}
	if cl.Subject == "" || !domain.IsRole(cl.Role) {
		return domain.Principal{}, false
	}

	p := domain.Principal{
		UserID:    cl.Subject,
		Username:  cl.Username,
		Role:      cl.Role,
		FullName:  cl.FullName,
		ExpiresAt: cl.ExpiresAt.Time,
	}
	if cl.IssuedAt != nil {
		p.IssuedAt = cl.IssuedAt.Time
	}
	return p, true
}
