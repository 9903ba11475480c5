package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

// ProductHandler serves /api/products. When category is set (the /api/laptops
// alias) every operation is pinned to that category.
type ProductHandler struct {
	service  ports.ProductService
	category domain.ProductType
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ForCategory returns a copy of the handler pinned to category.
func (h *ProductHandler) ForCategory(category domain.ProductType) *ProductHandler {
	return &ProductHandler{service: h.service, category: category}
}

// List handles GET /api/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        ids        query     string  false  "Comma separated product IDs"
// @Param        category   query     string  false  "Category (laptop, gpu, cpu, hdd, motherboard)"
// @Param        companyId  query     string  false  "Brand ID"
// @Param        search     query     string  false  "Free-text search"
// @Param        minPrice   query     number  false  "Minimum price"
// @Param        maxPrice   query     number  false  "Maximum price"
// @Success      200        {array}   productResponse
// @Failure      400        {object}  errorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	minPrice, err := priceParam(c, "minPrice")
	if err != nil {
		return err
	}
	maxPrice, err := priceParam(c, "maxPrice")
	if err != nil {
		return err
	}

	category := c.QueryParam("category")
	if category == "" {
		category = c.QueryParam("type")
	}
	if h.category != "" {
		category = string(h.category)
	}

	products, err := h.service.List(c.Request().Context(), ports.ListProductsInput{
		IDs:      splitIDs(c.QueryParam("ids")),
		Category: category,
		BrandID:  c.QueryParam("companyId"),
		Search:   strings.TrimSpace(c.QueryParam("search")),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(products, toProductResponse))
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"), string(h.category))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Create handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if h.category != "" && req.Category == "" && req.Type == "" {
		req.Category = string(h.category)
	}

	product, err := h.service.Create(c.Request().Context(), toCreateProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Update handles PATCH /api/products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	id := c.Param("id")
	if h.category != "" {
		if _, err := h.service.Get(c.Request().Context(), id, string(h.category)); err != nil {
			return err
		}
	}

	product, err := h.service.Update(c.Request().Context(), id, toUpdateProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /api/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if h.category != "" {
		if _, err := h.service.Get(c.Request().Context(), id, string(h.category)); err != nil {
			return err
		}
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func priceParam(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domain.NewValidationError(name + " must be a number")
	}
	return &v, nil
}
