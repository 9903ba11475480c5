package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

// UserService lets admins list and remove accounts.
type UserService struct {
	users       ports.UserRepository
	revocations ports.RevocationStore
	logger      zerolog.Logger
	now         func() time.Time
}

func NewUserService(users ports.UserRepository, revocations ports.RevocationStore, logger zerolog.Logger) *UserService {
	return &UserService{users: users, revocations: revocations, logger: logger, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Delete revokes every session issued to the account so far, then removes
// it. The account stays in place when revocation fails so the call can be
// retried.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.revocations.RevokeUser(ctx, id, s.now()); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("session revocation failed")
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted, sessions revoked")
	return nil
}
