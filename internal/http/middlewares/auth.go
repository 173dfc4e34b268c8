package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"task-service.com/task-service/internal/auth"
	apperrors "task-service.com/task-service/internal/errors"
	"task-service.com/task-service/internal/tenant"
)

// Authenticate verifies the bearer token and binds its principal and tenant
// to the request context.
func Authenticate(verifier *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperrors.ErrNotAuthenticated.Because("missing authorization header")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return apperrors.ErrNotAuthenticated.Because("invalid authorization header format")
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				return err
			}

			ctx := auth.WithPrincipal(c.Request().Context(), principal)
			ctx = tenant.WithID(ctx, principal.TenantID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := auth.PrincipalFrom(c.Request().Context())
			if !ok {
				return apperrors.ErrNotAuthenticated
			}
			if !principal.HasRole(role) {
				return apperrors.ErrForbidden
			}

			return next(c)
		}
	}
}
