package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

type OrderService struct {
	orders  ports.OrderRepository
	catalog ports.ProductService
	logger  zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, catalog ports.ProductService, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, logger: logger}
}

// List returns orders visible to p, newest first, with products attached.
func (s *OrderService) List(ctx context.Context, p domain.Principal, status string) ([]*domain.Order, error) {
	q := ports.OrderQuery{Status: domain.OrderStatus(strings.ToLower(strings.TrimSpace(status)))}
	if !p.IsAdmin() {
		q.UserID = p.UserID
	}

	orders, err := s.orders.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, orders...); err != nil {
		return nil, err
	}
	return orders, nil
}

// Create places a pending order for p. Every referenced product must exist.
func (s *OrderService) Create(ctx context.Context, p domain.Principal, input ports.CreateOrderInput) (*domain.Order, error) {
	phone := strings.TrimSpace(input.Phone)
	address := strings.TrimSpace(input.Address)
	if len(input.Items) == 0 || phone == "" || address == "" {
		return nil, domain.NewValidationError("missing items, phone, or address")
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		id := strings.TrimSpace(it.ProductID)
		if id == "" {
			continue
		}
		items = append(items, domain.OrderItem{ProductID: id, Quantity: max(1, it.Quantity)})
	}
	if len(items) == 0 {
		return nil, domain.NewValidationError("missing product IDs")
	}

	customerName := strings.TrimSpace(input.CustomerName)
	if customerName == "" {
		customerName = p.DisplayName()
	}

	order := &domain.Order{
		UserID:       p.UserID,
		CustomerName: customerName,
		Phone:        phone,
		Email:        strings.TrimSpace(input.Email),
		Address:      address,
		Status:       domain.OrderPending,
		Notes:        input.Notes,
		Items:        items,
		CreatedAt:    time.Now().UTC(),
	}

	ids := order.ProductIDs()
	products, err := s.catalog.List(ctx, ports.ListProductsInput{IDs: ids})
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, domain.ErrProductsNotFound
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	attachProducts(products, order)

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Int("items", len(order.Items)).
		Msg("order placed")
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	next := domain.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if next == "" {
		return nil, domain.NewValidationError("missing status update")
	}
	if !next.IsValid() {
		return nil, domain.NewValidationError("unsupported order status")
	}

	order, err := s.orders.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", id).Str("status", string(next)).Msg("order status updated")
	return order, nil
}

// hydrate attaches current product records to every order item. Items whose
// product has since been deleted keep a nil Product.
func (s *OrderService) hydrate(ctx context.Context, orders ...*domain.Order) error {
	seen := make(map[string]struct{})
	var ids []string
	for _, o := range orders {
		for _, id := range o.ProductIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	products, err := s.catalog.List(ctx, ports.ListProductsInput{IDs: ids})
	if err != nil {
		return err
	}
	attachProducts(products, orders...)
	return nil
}

func attachProducts(products []*domain.Product, orders ...*domain.Order) {
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, o := range orders {
		for i := range o.Items {
			o.Items[i].Product = byID[o.Items[i].ProductID]
		}
	}
}
