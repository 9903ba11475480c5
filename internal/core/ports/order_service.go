package ports

import (
	"context"

	"github.com/nourtech/storefront/internal/core/domain"
)

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	Items        []OrderItemInput
	CustomerName string
	Phone        string
	Email        string
	Address      string
	Notes        string
}

type OrderService interface {
	// List returns every order for admins and the caller's own orders otherwise.
	List(ctx context.Context, p domain.Principal, status string) ([]*domain.Order, error)
	Create(ctx context.Context, p domain.Principal, input CreateOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}
