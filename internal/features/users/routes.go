package users

import (
	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/features/auth"
)

// RegisterRoutes sets up the profile routes. Both require a valid session.
func RegisterRoutes(e *echo.Echo, h *Handler, authService auth.AuthService) {
	g := e.Group("/user", auth.RequireAuth(authService))

	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}
