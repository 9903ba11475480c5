package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

func TestOrderHandler_Create_Items(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, p domain.Principal, in ports.CreateOrderInput) (*domain.Order, error) {
			if p.UserID != customer.UserID {
				t.Fatalf("unexpected principal %+v", p)
			}
			if len(in.Items) != 2 || in.Items[0].Quantity != 2 || in.Items[1].ProductID != "p2" || in.Items[1].Quantity != 1 {
				t.Fatalf("unexpected items %+v", in.Items)
			}
			return &domain.Order{
				ID: "o1", UserID: p.UserID, Status: domain.OrderPending, CreatedAt: time.Unix(0, 0),
				Items: []domain.OrderItem{
					{ProductID: "p1", Quantity: 2, Product: sampleLaptop()},
					{ProductID: "p2", Quantity: 1},
				},
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	body := `{"items":[{"productId":"p1","quantity":"2"},{"laptopId":"p2"}],"phone":"0100","address":"Cairo"}`
	c, rec := newJSONContext(http.MethodPost, "/api/orders", body, customer)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decode[orderResponse](t, rec)
	if resp.Status != "pending" || len(resp.Items) != 2 {
		t.Fatalf("unexpected order %+v", resp)
	}
	if resp.Items[0].Product == nil || resp.Items[1].Product != nil {
		t.Fatalf("expected first item hydrated and second null: %+v", resp.Items)
	}
}

func TestOrderHandler_Create_LegacySingleItem(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, p domain.Principal, in ports.CreateOrderInput) (*domain.Order, error) {
			if len(in.Items) != 1 || in.Items[0].ProductID != "lap-1" || in.Items[0].Quantity != 3 {
				t.Fatalf("unexpected items %+v", in.Items)
			}
			return &domain.Order{ID: "o1", Status: domain.OrderPending}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/orders", `{"laptopId":"lap-1","quantity":3,"phone":"1","address":"x"}`, customer)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestOrderHandler_Create_RequiresPrincipal(t *testing.T) {
	handler := NewOrderHandler(&stubOrderService{})

	c, _ := newJSONContext(http.MethodPost, "/api/orders", `{}`, nil)
	if err := handler.Create(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestOrderHandler_Create_InvalidEmail(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(context.Context, domain.Principal, ports.CreateOrderInput) (*domain.Order, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/orders", `{"productId":"p1","phone":"1","address":"x","email":"nope"}`, customer)
	var ve *domain.ValidationError
	if err := handler.Create(c); !errors.As(err, &ve) || ve.Msg != "email must be a valid email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestOrderHandler_ListAndUpdate(t *testing.T) {
	stub := &stubOrderService{
		listFn: func(ctx context.Context, p domain.Principal, status string) ([]*domain.Order, error) {
			if !p.IsAdmin() || status != "pending" {
				t.Fatalf("unexpected args %+v %q", p, status)
			}
			return []*domain.Order{{ID: "o1"}, {ID: "o2"}}, nil
		},
		updateFn: func(ctx context.Context, id, status string) (*domain.Order, error) {
			if id != "o1" || status != "confirmed" {
				t.Fatalf("unexpected args %s %s", id, status)
			}
			return &domain.Order{ID: id, Status: domain.OrderConfirmed}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/orders?status=pending", "", admin)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if orders := decode[[]orderResponse](t, rec); len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}

	c, rec = newJSONContext(http.MethodPatch, "/api/orders/o1", `{"status":"confirmed"}`, admin)
	c.SetParamNames("id")
	c.SetParamValues("o1")
	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode[orderResponse](t, rec).Status != "confirmed" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
