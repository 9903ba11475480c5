package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

type ContactService struct {
	repo ports.ContactRepository
}

func NewContactService(repo ports.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Get returns the saved contact details, or the defaults when none exist.
func (s *ContactService) Get(ctx context.Context) (*domain.Contact, error) {
	c, err := s.repo.Get(ctx)
	if errors.Is(err, domain.ErrContactNotFound) {
		return domain.DefaultContact(), nil
	}
	return c, err
}

func (s *ContactService) Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	availability := make([]string, 0, len(c.Availability))
	for _, line := range c.Availability {
		if line = strings.TrimSpace(line); line != "" {
			availability = append(availability, line)
		}
	}

	next := &domain.Contact{
		SalesHotline: strings.TrimSpace(c.SalesHotline),
		WhatsApp:     strings.TrimSpace(c.WhatsApp),
		SupportEmail: strings.TrimSpace(c.SupportEmail),
		Address:      strings.TrimSpace(c.Address),
		Availability: availability,
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	return s.Get(ctx)
}
