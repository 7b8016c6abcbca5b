package users

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/apperror"
	"github.com/codexlibris/bookshop/internal/features/auth"
)

// Handler handles HTTP requests for the user profile.
type Handler struct {
	service ProfileService
}

// NewHandler creates a new profile handler with the given service.
func NewHandler(service ProfileService) *Handler {
	return &Handler{service: service}
}

// GetProfile returns the authenticated user's profile (GET /user/profile).
func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.service.GetProfile(c.Request().Context(), auth.CurrentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"user": profile})
}

// UpdateProfile applies a partial update to the authenticated user's
// profile (PUT /user/profile).
func (h *Handler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), auth.CurrentUserID(c), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "user updated",
		"user":    profile,
	})
}
