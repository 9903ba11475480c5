package ports

import (
	"context"

	"github.com/nourtech/storefront/internal/core/domain"
)

type ContactRepository interface {
	// Get returns domain.ErrContactNotFound until details have been saved.
	Get(ctx context.Context) (*domain.Contact, error)
	Save(ctx context.Context, contact *domain.Contact) error
}
