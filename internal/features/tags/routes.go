package tags

import (
	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/features/auth"
)

// RegisterRoutes sets up the tag routes. Creation requires a session; reads
// are public.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/tags")

	g.POST("", h.Create, auth.RequireAuth(authService))
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
}
