package ports

import (
	"context"

	"github.com/nourtech/storefront/internal/core/domain"
)

type ContactService interface {
	Get(ctx context.Context) (*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
}
