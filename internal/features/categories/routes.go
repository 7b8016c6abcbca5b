package categories

import (
	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/features/auth"
)

// RegisterRoutes sets up the category routes. Creation requires a session;
// reads are public.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/categories")

	g.POST("", h.Create, auth.RequireAuth(authService))
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
}
