package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nourtech/storefront/internal/api/middleware"
	"github.com/nourtech/storefront/internal/core/domain"
)

// ctxPrincipal returns the principal resolved by the Session middleware.
// Routes behind RequireAuth always have one; the check keeps handlers safe
// when mounted without it.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}

// bind decodes the request body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
