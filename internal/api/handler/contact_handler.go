package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nourtech/storefront/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Get handles GET /api/contact.
//
// @Summary      Store contact details
// @Tags         contact
// @Produce      json
// @Success      200  {object}  contactResponse
// @Router       /api/contact [get]
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

// Update handles PUT /api/contact.
//
// @Summary      Replace store contact details
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact details"
// @Success      200   {object}  contactResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/contact [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req contactRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Update(c.Request().Context(), toContact(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContactResponse(contact))
}
