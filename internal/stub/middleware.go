package stub

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// requireAuth validates the Bearer token and injects the subject and
// role claims into the request context for downstream handlers.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
		}
		raw := strings.TrimPrefix(auth, "Bearer ")

		claims, err := parseToken(s.secret, raw)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
		}

		sub, _ := claims["sub"].(string)
		c.Set("username", sub)
		c.Set("role", claimRole(claims))
		return next(c)
	}
}

// requireAdmin aborts with a 403 unless the authenticated role is the
// admin role. Assumes requireAuth ran earlier in the chain.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("role").(model.Role)
		if !ok || !role.IsAdmin() {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "admin role required"})
		}
		return next(c)
	}
}
