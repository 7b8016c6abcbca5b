package books

import (
	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/features/auth"
)

// RegisterRoutes sets up the catalog routes. Reads of the public catalog
// need no token; everything that writes or scopes to the requester does.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/book")
	authed := auth.RequireAuth(authService)

	// Public reads.
	g.GET("/all", h.ListAll)
	g.GET("/:id", h.GetByID)

	// Authenticated.
	g.POST("", h.Create, authed)
	g.GET("/my", h.ListMine, authed)
	g.PUT("/:id", h.Update, authed)
	g.DELETE("/:id", h.Delete, authed)
}
