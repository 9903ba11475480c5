package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/nourtech/storefront/internal/core/domain"
)

// RequireRole admits authenticated principals holding one of allowedRoles.
// With no roles given, any authenticated principal is admitted. Anonymous
// requests get 401, principals with another role get 403.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if len(allowed) > 0 {
				if _, ok := allowed[p.Role]; !ok {
					return domain.ErrForbidden
				}
			}
			return next(c)
		}
	}
}

// RequireAuth admits any authenticated principal.
func RequireAuth() echo.MiddlewareFunc {
	return RequireRole()
}

// RequireAdmin admits admins only.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleAdmin)
}
