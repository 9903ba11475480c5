package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nourtech/storefront/internal/core/ports"
)

// BrandHandler serves /api/companies.
type BrandHandler struct {
	service ports.BrandService
}

func NewBrandHandler(service ports.BrandService) *BrandHandler {
	return &BrandHandler{service: service}
}

// List handles GET /api/companies.
//
// @Summary      List brands
// @Tags         companies
// @Produce      json
// @Success      200  {array}   brandResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/companies [get]
func (h *BrandHandler) List(c echo.Context) error {
	brands, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(brands, toBrandResponse))
}

// Create handles POST /api/companies.
//
// @Summary      Create a brand
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      createBrandRequest  true  "Brand"
// @Success      201   {object}  brandResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/companies [post]
func (h *BrandHandler) Create(c echo.Context) error {
	var req createBrandRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	brand, err := h.service.Create(c.Request().Context(), ports.CreateBrandInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBrandResponse(brand))
}

// Delete handles DELETE /api/companies/:id, removing the brand's products too.
//
// @Summary      Delete a brand and its products
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Brand ID"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/companies/{id} [delete]
func (h *BrandHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
