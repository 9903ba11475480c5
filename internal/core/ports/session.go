package ports

import (
	"context"
	"time"

	"github.com/nourtech/storefront/internal/core/domain"
)

// SessionCodec issues and verifies signed session tokens.
type SessionCodec interface {
	// Issue signs a token for p, stamping it with the current time and the
	// codec's TTL. It returns the token and the principal as signed.
	Issue(p domain.Principal) (string, domain.Principal, error)
	// Verify returns the principal carried by a valid, unexpired token. Any
	// defect in the token yields ok == false.
	Verify(token string) (p domain.Principal, ok bool)
	TTL() time.Duration
}

// PasswordHasher derives and checks password digests.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
	// NeedsRehash reports whether hash was produced by an outdated scheme.
	NeedsRehash(hash string) bool
}

// RevocationStore records the moment a user's sessions were revoked. Tokens
// issued at or before that moment are no longer honoured.
type RevocationStore interface {
	RevokeUser(ctx context.Context, userID string, at time.Time) error
	RevokedSince(ctx context.Context, userID string) (time.Time, bool, error)
	Ping(ctx context.Context) error
}
