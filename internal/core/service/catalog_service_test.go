package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

func ptr[T any](v T) *T { return &v }

type catalogFixture struct {
	brands   *stubBrandRepo
	products *stubProductRepo
	cleaner  *recordingCleaner
	svc      *ProductService
}

func newCatalogFixture() *catalogFixture {
	brands := newStubBrandRepo(
		&domain.Brand{ID: "lenovo", Name: "Lenovo"},
		&domain.Brand{ID: "nvidia", Name: "NVIDIA"},
	)
	products := newStubProductRepo(
		&domain.Product{ID: "x1", Type: domain.TypeLaptop, BrandID: "lenovo", Title: "ThinkPad X1", Price: 45000,
			Images: []string{"https://cdn.test/x1.png"}, Specs: domain.LaptopSpecs{GPU: "Iris Xe"}},
		&domain.Product{ID: "rtx", Type: domain.TypeGPU, BrandID: "nvidia", Title: "RTX 4070", Price: 30000},
		&domain.Product{ID: "legion", Type: domain.TypeLaptop, BrandID: "lenovo", Title: "Legion 5", Price: 60000,
			Specs: domain.LaptopSpecs{GPU: "RTX 4060"}},
	)
	cleaner := &recordingCleaner{}
	return &catalogFixture{
		brands:   brands,
		products: products,
		cleaner:  cleaner,
		svc:      NewProductService(products, brands, cleaner, zerolog.Nop()),
	}
}

func titles(products []*domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func TestProductService_List(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		input ports.ListProductsInput
		want  []string
	}{
		{"all sorted by title", ports.ListProductsInput{}, []string{"Legion 5", "RTX 4070", "ThinkPad X1"}},
		{"plural category", ports.ListProductsInput{Category: "Laptops"}, []string{"Legion 5", "ThinkPad X1"}},
		{"unknown category ignored", ports.ListProductsInput{Category: "keyboards"}, []string{"Legion 5", "RTX 4070", "ThinkPad X1"}},
		{"brand", ports.ListProductsInput{BrandID: "nvidia"}, []string{"RTX 4070"}},
		{"search brand name", ports.ListProductsInput{Search: "lenovo"}, []string{"Legion 5", "ThinkPad X1"}},
		{"search laptop spec", ports.ListProductsInput{Search: "rtx 4060"}, []string{"Legion 5"}},
		{"price range", ports.ListProductsInput{MinPrice: ptr(31000.0), MaxPrice: ptr(50000.0)}, []string{"ThinkPad X1"}},
		{"ids", ports.ListProductsInput{IDs: []string{"rtx", "missing"}}, []string{"RTX 4070"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.svc.List(ctx, tc.input)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			names := titles(got)
			if len(names) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, names)
			}
			for i := range names {
				if names[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, names)
				}
			}
		})
	}
}

func TestProductService_ListAttachesBrands(t *testing.T) {
	f := newCatalogFixture()

	got, err := f.svc.List(context.Background(), ports.ListProductsInput{IDs: []string{"rtx"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].Brand == nil || got[0].Brand.Name != "NVIDIA" {
		t.Fatalf("expected brand attached, got %+v", got[0].Brand)
	}
}

func TestProductService_GetForcedCategory(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	if _, err := f.svc.Get(ctx, "x1", "laptop"); err != nil {
		t.Fatalf("expected laptop, got %v", err)
	}
	if _, err := f.svc.Get(ctx, "rtx", "laptop"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for gpu on laptop route, got %v", err)
	}
	if _, err := f.svc.Get(ctx, "missing", ""); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Create(t *testing.T) {
	f := newCatalogFixture()

	p, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Category: "gpus",
		BrandID:  "nvidia",
		Title:    " RTX 4080 ",
		Price:    ptr(55000.0),
		Images:   []string{" a.png ", "", "b.png"},
		Specs:    domain.LaptopSpecs{GPU: "ignored"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Type != domain.TypeGPU || p.Title != "RTX 4080" {
		t.Fatalf("unexpected product %+v", p)
	}
	if len(p.Images) != 2 || p.Images[0] != "a.png" {
		t.Fatalf("expected cleaned images, got %v", p.Images)
	}
	if p.Specs.GPU != "" {
		t.Fatalf("expected specs dropped for non-laptop")
	}
	if p.Brand == nil || p.Brand.ID != "nvidia" {
		t.Fatalf("expected brand attached")
	}
}

func TestProductService_CreateValidation(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	cases := map[string]ports.CreateProductInput{
		"no category": {BrandID: "nvidia", Title: "x", Price: ptr(1.0)},
		"no brand":    {Category: "gpu", Title: "x", Price: ptr(1.0)},
		"no title":    {Category: "gpu", BrandID: "nvidia", Price: ptr(1.0)},
		"no price":    {Category: "gpu", BrandID: "nvidia", Title: "x"},
		"bad type":    {Category: "keyboard", BrandID: "nvidia", Title: "x", Price: ptr(1.0)},
		"negative":    {Category: "gpu", BrandID: "nvidia", Title: "x", Price: ptr(-1.0)},
	}
	for name, in := range cases {
		if _, err := f.svc.Create(ctx, in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}

	_, err := f.svc.Create(ctx, ports.CreateProductInput{Category: "gpu", BrandID: "amd", Title: "x", Price: ptr(0.0)})
	if !errors.Is(err, domain.ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}
}

func TestProductService_Update(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	p, err := f.svc.Update(ctx, "x1", ports.UpdateProductInput{
		Category: ptr("laptops"),
		Price:    ptr(42000.0),
		Images:   &[]string{"https://cdn.test/new.png"},
		RAM:      ptr("32GB"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Price != 42000 || p.Specs.RAM != "32GB" || p.Title != "ThinkPad X1" {
		t.Fatalf("unexpected product %+v", p)
	}
	if len(f.cleaner.urls) != 1 || f.cleaner.urls[0] != "https://cdn.test/x1.png" {
		t.Fatalf("expected replaced image queued for cleanup, got %v", f.cleaner.urls)
	}
}

func TestProductService_UpdateRejections(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	if _, err := f.svc.Update(ctx, "x1", ports.UpdateProductInput{Category: ptr("gpu")}); !errors.Is(err, domain.ErrCategoryChange) {
		t.Fatalf("expected ErrCategoryChange, got %v", err)
	}
	if _, err := f.svc.Update(ctx, "x1", ports.UpdateProductInput{BrandID: ptr("amd")}); !errors.Is(err, domain.ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}
	if _, err := f.svc.Update(ctx, "missing", ports.UpdateProductInput{}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_UpdateIgnoresSpecsForNonLaptops(t *testing.T) {
	f := newCatalogFixture()

	p, err := f.svc.Update(context.Background(), "rtx", ports.UpdateProductInput{GPU: ptr("changed")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Specs.GPU != "" {
		t.Fatalf("expected spec ignored, got %q", p.Specs.GPU)
	}
	if f.products.updates != 0 {
		t.Fatalf("expected empty patch to skip the write")
	}
}

func TestProductService_DeleteQueuesImages(t *testing.T) {
	f := newCatalogFixture()

	if err := f.svc.Delete(context.Background(), "x1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.cleaner.urls) != 1 {
		t.Fatalf("expected image queued, got %v", f.cleaner.urls)
	}
	if err := f.svc.Delete(context.Background(), "x1"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestBrandService_CreateAndList(t *testing.T) {
	f := newCatalogFixture()
	svc := NewBrandService(f.brands, f.products, f.cleaner, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateBrandInput{Name: "  "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	b, err := svc.Create(context.Background(), ports.CreateBrandInput{Name: " ASUS ", Description: "Taiwan"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == "" || b.Name != "ASUS" {
		t.Fatalf("unexpected brand %+v", b)
	}

	all, _ := svc.List(context.Background())
	if len(all) != 3 || all[0].Name != "ASUS" {
		t.Fatalf("expected brands sorted by name, got %+v", all)
	}
}

func TestBrandService_DeleteCascades(t *testing.T) {
	f := newCatalogFixture()
	svc := NewBrandService(f.brands, f.products, f.cleaner, zerolog.Nop())

	if err := svc.Delete(context.Background(), "lenovo"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.brands.byID["lenovo"]; ok {
		t.Fatalf("expected brand removed")
	}
	if len(f.products.byID) != 1 {
		t.Fatalf("expected only the nvidia product to remain, got %d", len(f.products.byID))
	}
	if len(f.cleaner.urls) != 1 || f.cleaner.urls[0] != "https://cdn.test/x1.png" {
		t.Fatalf("expected product images queued, got %v", f.cleaner.urls)
	}

	if err := svc.Delete(context.Background(), "lenovo"); !errors.Is(err, domain.ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}
}
