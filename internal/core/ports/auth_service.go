package ports

import (
	"context"
	"time"

	"github.com/nourtech/storefront/internal/core/domain"
)

type SignupInput struct {
	Username string
	Password string
	FullName string
}

// IssuedSession is the outcome of a successful signup or login.
type IssuedSession struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*IssuedSession, error)
	Login(ctx context.Context, username, password string) (*IssuedSession, error)
	// CurrentUser resolves the latest account record behind a principal.
	CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error)
	SessionTTL() time.Duration
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	// Delete removes the account and revokes its outstanding sessions.
	Delete(ctx context.Context, id string) error
}
