package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

func sampleLaptop() *domain.Product {
	return &domain.Product{
		ID: "p1", Type: domain.TypeLaptop, BrandID: "b1", Title: "ThinkPad", Price: 45000,
		Specs: domain.LaptopSpecs{CPU: "i7", RAM: "16GB"},
		Brand: &domain.Brand{ID: "b1", Name: "Lenovo"},
	}
}

func TestProductHandler_List_Filters(t *testing.T) {
	stub := &stubProductService{
		listFn: func(ctx context.Context, in ports.ListProductsInput) ([]*domain.Product, error) {
			if len(in.IDs) != 2 || in.IDs[0] != "p1" || in.IDs[1] != "p2" {
				t.Fatalf("unexpected ids %v", in.IDs)
			}
			if in.Category != "gpus" || in.BrandID != "b1" || in.Search != "rtx" {
				t.Fatalf("unexpected input %+v", in)
			}
			if in.MinPrice == nil || *in.MinPrice != 0 || in.MaxPrice != nil {
				t.Fatalf("unexpected price bounds %v %v", in.MinPrice, in.MaxPrice)
			}
			return []*domain.Product{{ID: "p2", Type: domain.TypeGPU, Title: "RTX"}}, nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/api/products?ids=p1,%20p2,&type=gpus&companyId=b1&search=+rtx+&minPrice=0", "", nil)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	products := decode[[]map[string]any](t, rec)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	p := products[0]
	if p["currency"] != "EGP" || p["company"] != nil {
		t.Fatalf("unexpected product %+v", p)
	}
	if _, ok := p["gpu"]; ok {
		t.Fatalf("non-laptop must not carry spec fields: %+v", p)
	}
	if images, ok := p["images"].([]any); !ok || len(images) != 0 {
		t.Fatalf("expected empty images array, got %v", p["images"])
	}
}

func TestProductHandler_List_BadPrice(t *testing.T) {
	handler := NewProductHandler(&stubProductService{})

	c, _ := newJSONContext(http.MethodGet, "/api/products?maxPrice=cheap", "", nil)
	if err := handler.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProductHandler_Get_LaptopShape(t *testing.T) {
	stub := &stubProductService{
		getFn: func(ctx context.Context, id, category string) (*domain.Product, error) {
			if id != "p1" || category != "laptop" {
				t.Fatalf("unexpected args %s %s", id, category)
			}
			return sampleLaptop(), nil
		},
	}
	handler := NewProductHandler(stub).ForCategory(domain.TypeLaptop)

	c, rec := newJSONContext(http.MethodGet, "/api/laptops/p1", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	p := decode[map[string]any](t, rec)
	if p["companyId"] != "b1" || p["cpu"] != "i7" || p["gpu"] != "" {
		t.Fatalf("unexpected laptop payload %+v", p)
	}
	company, ok := p["company"].(map[string]any)
	if !ok || company["name"] != "Lenovo" {
		t.Fatalf("expected hydrated company, got %v", p["company"])
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	stub := &stubProductService{
		getFn: func(context.Context, string, string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	handler := NewProductHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/api/products/nope", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := handler.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_Create_FlexibleFields(t *testing.T) {
	stub := &stubProductService{
		createFn: func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
			if in.Category != "laptop" {
				t.Fatalf("expected category forced to laptop, got %q", in.Category)
			}
			if in.Price == nil || *in.Price != 1999.5 || in.Warranty != 12 {
				t.Fatalf("unexpected numbers %v %d", in.Price, in.Warranty)
			}
			if len(in.Images) != 3 || in.Images[2] != "c.png" {
				t.Fatalf("unexpected images %v", in.Images)
			}
			if in.Specs.RAM != "32GB" {
				t.Fatalf("unexpected specs %+v", in.Specs)
			}
			return sampleLaptop(), nil
		},
	}
	handler := NewProductHandler(stub).ForCategory(domain.TypeLaptop)

	body := `{"companyId":"b1","title":"X1","price":"1999.5","warranty":12,"images":"a.png, b.png\nc.png","ram":"32GB"}`
	c, rec := newJSONContext(http.MethodPost, "/api/laptops", body, admin)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProductHandler_Update_PartialFields(t *testing.T) {
	stub := &stubProductService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
			if in.Title == nil || *in.Title != "New" {
				t.Fatalf("expected title, got %v", in.Title)
			}
			if in.Price != nil || in.Category != nil || in.BrandID != nil {
				t.Fatalf("absent fields must stay nil: %+v", in)
			}
			if in.Images == nil || len(*in.Images) != 0 {
				t.Fatalf("expected explicit empty images, got %v", in.Images)
			}
			return sampleLaptop(), nil
		},
	}
	handler := NewProductHandler(stub)

	c, rec := newJSONContext(http.MethodPatch, "/api/products/p1", `{"title":"New","images":[]}`, admin)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProductHandler_Delete_PinnedCategoryMismatch(t *testing.T) {
	stub := &stubProductService{
		getFn: func(context.Context, string, string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
		deleteFn: func(context.Context, string) error {
			t.Fatalf("delete must not run for a product outside the category")
			return nil
		},
	}
	handler := NewProductHandler(stub).ForCategory(domain.TypeLaptop)

	c, _ := newJSONContext(http.MethodDelete, "/api/laptops/gpu-1", "", admin)
	c.SetParamNames("id")
	c.SetParamValues("gpu-1")
	if err := handler.Delete(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
