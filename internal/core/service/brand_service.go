package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

type BrandService struct {
	brands   ports.BrandRepository
	products ports.ProductRepository
	cleaner  ports.ImageCleaner
	logger   zerolog.Logger
}

func NewBrandService(brands ports.BrandRepository, products ports.ProductRepository, cleaner ports.ImageCleaner, logger zerolog.Logger) *BrandService {
	return &BrandService{brands: brands, products: products, cleaner: cleaner, logger: logger}
}

func (s *BrandService) List(ctx context.Context) ([]*domain.Brand, error) {
	return s.brands.List(ctx)
}

func (s *BrandService) Create(ctx context.Context, input ports.CreateBrandInput) (*domain.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("missing brand name")
	}

	brand := &domain.Brand{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, err
	}

	s.logger.Info().Str("brand_id", brand.ID).Str("name", brand.Name).Msg("brand created")
	return brand, nil
}

// Delete removes the brand's products first, then the brand, and queues the
// products' stored images for deletion.
func (s *BrandService) Delete(ctx context.Context, id string) error {
	if _, err := s.brands.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.products.DeleteByBrand(ctx, id)
	if err != nil {
		return fmt.Errorf("delete brand products: %w", err)
	}
	if err := s.brands.Delete(ctx, id); err != nil {
		return err
	}

	var images []string
	for _, p := range removed {
		images = append(images, p.Images...)
	}
	s.cleaner.Enqueue(images...)

	s.logger.Info().Str("brand_id", id).Int("products_removed", len(removed)).Msg("brand deleted")
	return nil
}
