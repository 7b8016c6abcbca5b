package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/features/auth"
	"github.com/codexlibris/bookshop/internal/features/books"
	"github.com/codexlibris/bookshop/internal/features/categories"
	"github.com/codexlibris/bookshop/internal/features/tags"
	"github.com/codexlibris/bookshop/internal/features/users"
	"github.com/codexlibris/bookshop/internal/token"
)

// RegisterRoutes builds every feature's repository/service/handler stack on
// the shared DB and Redis handles and mounts the routes. This is the single
// place where all routes are aggregated.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for container orchestration. Verifies both
	// backing stores so a wedged dependency takes the instance out of
	// rotation instead of serving 500s.
	e.GET("/healthz", a.healthz)

	tokens := token.NewManager(a.Config.Auth.SecretKey, a.Config.Auth.TokenTTL)

	userRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(userRepo, a.Redis, tokens,
		a.Config.Auth.SessionTTL, a.Config.Auth.OTPTTL)
	auth.RegisterRoutes(e, auth.NewHandler(authService), authService)

	profileService := users.NewProfileService(users.NewProfileRepository(a.DB))
	users.RegisterRoutes(e, users.NewHandler(profileService), authService)

	bookService := books.NewBookService(books.NewBookRepository(a.DB))
	books.RegisterRoutes(e, books.NewHandler(bookService), authService)

	categoryService := categories.NewCategoryService(categories.NewCategoryRepository(a.DB))
	categories.RegisterRoutes(e, categories.NewHandler(categoryService), authService)

	tagService := tags.NewTagService(tags.NewTagRepository(a.DB))
	tags.RegisterRoutes(e, tags.NewHandler(tagService), authService)
}

// healthz reports liveness of the process and its backing stores.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := a.DB.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	return c.JSON(status, echo.Map{
		"status": state,
		"checks": checks,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
