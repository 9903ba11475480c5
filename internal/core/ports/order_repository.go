package ports

import (
	"context"

	"github.com/nourtech/storefront/internal/core/domain"
)

// OrderQuery filters an order listing. Empty fields match everything.
type OrderQuery struct {
	UserID string
	Status domain.OrderStatus
}

type OrderRepository interface {
	// List returns matching orders, newest first.
	List(ctx context.Context, q OrderQuery) ([]*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}
