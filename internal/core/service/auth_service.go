package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

// maxPasswordBytes is the longest password bcrypt will hash.
const maxPasswordBytes = 72

// AuthService implements signup, login and session issuance.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	codec  ports.SessionCodec
	logger zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, codec ports.SessionCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec, logger: logger}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.codec.TTL()
}

// Signup creates a customer account and signs the new user in.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.IssuedSession, error) {
	username := domain.NormalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user signed up")
	return s.issue(created)
}

// Login checks credentials and issues a session. Unknown usernames and wrong
// passwords both yield domain.ErrInvalidCredentials after comparable work.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.IssuedSession, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.Verify(s.dummy(), password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, password)
	}

	return s.issue(user)
}

// CurrentUser returns the stored account behind p, or domain.ErrUserNotFound
// when it has been deleted since the token was issued.
func (s *AuthService) CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.users.FindByID(ctx, p.UserID)
}

// EnsureAdmin creates an admin account with the given credentials unless the
// username already exists. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return false, domain.ErrMissingCredentials
	}
	if len(password) > maxPasswordBytes {
		return false, domain.ErrPasswordTooLong
	}

	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("admin lookup: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		Username:     username,
		FullName:     "Administrator",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.logger.Info().Str("username", username).Msg("bootstrap admin created")
	return true, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.IssuedSession, error) {
	token, signed, err := s.codec.Issue(domain.PrincipalFor(user))
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &ports.IssuedSession{User: user, Token: token, ExpiresAt: signed.ExpiresAt}, nil
}

// rehash upgrades an outdated digest. Failures are logged; the login itself
// has already succeeded.
func (s *AuthService) rehash(ctx context.Context, user *domain.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("password rehash failed")
		return
	}
	user.PasswordHash = hash
	s.logger.Info().Str("user_id", user.ID).Msg("password digest upgraded")
}

// dummy is a digest verified against when the username is unknown, so both
// failure paths cost a hash comparison.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("no-such-user-placeholder")
		if err != nil {
			s.logger.Warn().Err(err).Msg("dummy digest unavailable")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
