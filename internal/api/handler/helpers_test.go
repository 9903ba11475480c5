package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

// newJSONContext builds an echo context for method/target with an optional
// JSON body and principal.
func newJSONContext(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set("principal", *p)
	}
	return c, rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

var (
	admin    = &domain.Principal{UserID: "admin-1", Username: "admin", Role: domain.RoleAdmin}
	customer = &domain.Principal{UserID: "cust-1", Username: "alice", FullName: "Alice", Role: domain.RoleCustomer}
)

// --- Service stubs ---

type stubAuthService struct {
	signupFn      func(ctx context.Context, input ports.SignupInput) (*ports.IssuedSession, error)
	loginFn       func(ctx context.Context, username, password string) (*ports.IssuedSession, error)
	currentUserFn func(ctx context.Context, p domain.Principal) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.IssuedSession, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.IssuedSession, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error) {
	return s.currentUserFn(ctx, p)
}

func (s *stubAuthService) SessionTTL() time.Duration { return time.Hour }

type stubProductService struct {
	listFn   func(ctx context.Context, input ports.ListProductsInput) ([]*domain.Product, error)
	getFn    func(ctx context.Context, id, category string) (*domain.Product, error)
	createFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubProductService) List(ctx context.Context, input ports.ListProductsInput) ([]*domain.Product, error) {
	return s.listFn(ctx, input)
}

func (s *stubProductService) Get(ctx context.Context, id, category string) (*domain.Product, error) {
	return s.getFn(ctx, id, category)
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubOrderService struct {
	listFn   func(ctx context.Context, p domain.Principal, status string) ([]*domain.Order, error)
	createFn func(ctx context.Context, p domain.Principal, input ports.CreateOrderInput) (*domain.Order, error)
	updateFn func(ctx context.Context, id, status string) (*domain.Order, error)
}

func (s *stubOrderService) List(ctx context.Context, p domain.Principal, status string) ([]*domain.Order, error) {
	return s.listFn(ctx, p, status)
}

func (s *stubOrderService) Create(ctx context.Context, p domain.Principal, input ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, p, input)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	return s.updateFn(ctx, id, status)
}

type stubContactService struct {
	contact *domain.Contact
}

func (s *stubContactService) Get(context.Context) (*domain.Contact, error) {
	if s.contact == nil {
		return domain.DefaultContact(), nil
	}
	return s.contact, nil
}

func (s *stubContactService) Update(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	s.contact = c
	return c, nil
}

type stubUploadService struct {
	uploadFn func(ctx context.Context, input ports.UploadImageInput) (string, error)
}

func (s *stubUploadService) Upload(ctx context.Context, input ports.UploadImageInput) (string, error) {
	return s.uploadFn(ctx, input)
}
