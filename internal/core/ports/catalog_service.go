package ports

import (
	"context"

	"github.com/nourtech/storefront/internal/core/domain"
)

type CreateBrandInput struct {
	Name        string
	Description string
}

type BrandService interface {
	List(ctx context.Context) ([]*domain.Brand, error)
	Create(ctx context.Context, input CreateBrandInput) (*domain.Brand, error)
	// Delete removes the brand together with all of its products.
	Delete(ctx context.Context, id string) error
}

// ListProductsInput carries the raw listing filters. Category accepts plural
// aliases; unknown categories are ignored.
type ListProductsInput struct {
	IDs      []string
	Category string
	BrandID  string
	Search   string
	MinPrice *float64
	MaxPrice *float64
}

type CreateProductInput struct {
	Category    string
	BrandID     string
	ShortName   string
	Title       string
	Price       *float64
	Description string
	Images      []string
	Warranty    int
	Specs       domain.LaptopSpecs
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Category    *string
	BrandID     *string
	ShortName   *string
	Title       *string
	Price       *float64
	Description *string
	Images      *[]string
	Warranty    *int
	GPU         *string
	CPU         *string
	RAM         *string
	Storage     *string
	Display     *string
}

type ProductService interface {
	List(ctx context.Context, input ListProductsInput) ([]*domain.Product, error)
	// Get returns a product; when category is non-empty the product must
	// belong to it.
	Get(ctx context.Context, id, category string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
