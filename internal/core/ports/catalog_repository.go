package ports

import (
	"context"

	"github.com/nourtech/storefront/internal/core/domain"
)

type BrandRepository interface {
	// List returns every brand sorted by name.
	List(ctx context.Context) ([]*domain.Brand, error)
	FindByID(ctx context.Context, id string) (*domain.Brand, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Brand, error)
	Create(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id string) error
}

// ProductQuery holds the filters a repository can apply natively.
type ProductQuery struct {
	IDs     []string
	Type    domain.ProductType
	BrandID string
}

type ProductRepository interface {
	// Find returns matching products sorted by title.
	Find(ctx context.Context, q ProductQuery) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	// Delete removes a product and returns the removed record.
	Delete(ctx context.Context, id string) (*domain.Product, error)
	// DeleteByBrand removes every product of a brand and returns them.
	DeleteByBrand(ctx context.Context, brandID string) ([]*domain.Product, error)
}
