package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/middleware"
)

// RegisterRoutes sets up all auth routes on the given Echo instance.
// Credential endpoints are rate-limited to slow down brute-force and
// credential stuffing; the limiter is best effort (in-memory, per process).
func RegisterRoutes(e *echo.Echo, h *Handler, service AuthService) {
	g := e.Group("/auth")

	// Public routes -- no token required.
	g.POST("/register", h.Register, middleware.RateLimit(5, time.Minute))
	g.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
	g.POST("/forget-password", h.ForgetPassword, middleware.RateLimit(5, time.Minute))
	g.POST("/reset-password", h.ResetPassword, middleware.RateLimit(5, time.Minute))

	// Routes below require a valid session token.
	g.POST("/logout", h.Logout, RequireAuth(service))
	g.PUT("/change-password", h.ChangePassword, RequireAuth(service))
}
