package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

type ProductService struct {
	products ports.ProductRepository
	brands   ports.BrandRepository
	cleaner  ports.ImageCleaner
	logger   zerolog.Logger
}

func NewProductService(products ports.ProductRepository, brands ports.BrandRepository, cleaner ports.ImageCleaner, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, brands: brands, cleaner: cleaner, logger: logger}
}

// List returns products matching the input, each with its brand attached,
// sorted by title.
func (s *ProductService) List(ctx context.Context, input ports.ListProductsInput) ([]*domain.Product, error) {
	filter := domain.ProductFilter{
		IDs:      input.IDs,
		Type:     domain.NormalizeProductType(input.Category),
		BrandID:  input.BrandID,
		Search:   strings.TrimSpace(input.Search),
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
	}

	products, err := s.products.Find(ctx, ports.ProductQuery{
		IDs:     filter.IDs,
		Type:    filter.Type,
		BrandID: filter.BrandID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachBrands(ctx, products); err != nil {
		return nil, err
	}

	matched := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *ProductService) Get(ctx context.Context, id, category string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if want := domain.NormalizeProductType(category); want != "" && p.Type != want {
		return nil, domain.ErrProductNotFound
	}
	if err := s.attachBrands(ctx, []*domain.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	title := strings.TrimSpace(input.Title)
	if strings.TrimSpace(input.Category) == "" || input.BrandID == "" || title == "" || input.Price == nil {
		return nil, domain.NewValidationError("missing category, companyId, title, or price")
	}
	productType := domain.NormalizeProductType(input.Category)
	if productType == "" {
		return nil, domain.ErrUnsupportedCategory
	}
	if *input.Price < 0 {
		return nil, domain.NewValidationError("price must not be negative")
	}

	brand, err := s.brands.FindByID(ctx, input.BrandID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		Type:        productType,
		BrandID:     brand.ID,
		ShortName:   strings.TrimSpace(input.ShortName),
		Title:       title,
		Price:       *input.Price,
		Description: input.Description,
		Images:      cleanImages(input.Images),
		Warranty:    input.Warranty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.IsLaptop() {
		p.Specs = input.Specs
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Brand = brand

	s.logger.Info().Str("product_id", p.ID).Str("type", string(p.Type)).Msg("product created")
	return p, nil
}

// Update applies a partial update. A product's category is fixed at creation;
// laptop spec fields are ignored for other categories.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	current, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		next := domain.NormalizeProductType(*input.Category)
		if next != "" && next != current.Type {
			return nil, domain.ErrCategoryChange
		}
	}

	patch := domain.ProductPatch{
		ShortName:   input.ShortName,
		Title:       input.Title,
		Description: input.Description,
		Warranty:    input.Warranty,
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domain.NewValidationError("price must not be negative")
		}
		patch.Price = input.Price
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, domain.NewValidationError("title must not be empty")
	}
	if input.BrandID != nil && *input.BrandID != "" {
		if _, err := s.brands.FindByID(ctx, *input.BrandID); err != nil {
			return nil, err
		}
		patch.BrandID = input.BrandID
	}
	if input.Images != nil {
		patch.Images = cleanImages(*input.Images)
		patch.ImagesSet = true
	}
	if current.IsLaptop() {
		patch.GPU, patch.CPU, patch.RAM = input.GPU, input.CPU, input.RAM
		patch.Storage, patch.Display = input.Storage, input.Display
	}

	updated := current
	if !patch.IsEmpty() {
		updated, err = s.products.Update(ctx, id, patch)
		if err != nil {
			return nil, err
		}
	}

	if patch.ImagesSet {
		s.cleaner.Enqueue(removedImages(current.Images, updated.Images)...)
	}
	if err := s.attachBrands(ctx, []*domain.Product{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	removed, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.cleaner.Enqueue(removed.Images...)

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// attachBrands resolves each product's brand with a single lookup.
func (s *ProductService) attachBrands(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		if p.BrandID != "" && !slices.Contains(ids, p.BrandID) {
			ids = append(ids, p.BrandID)
		}
	}

	brands, err := s.brands.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.Brand, len(brands))
	for _, b := range brands {
		byID[b.ID] = b
	}
	for _, p := range products {
		p.Brand = byID[p.BrandID]
	}
	return nil
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

// removedImages returns the entries of before that are absent from after.
func removedImages(before, after []string) []string {
	var removed []string
	for _, img := range before {
		if !slices.Contains(after, img) {
			removed = append(removed, img)
		}
	}
	return removed
}
