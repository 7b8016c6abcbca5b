package categories

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// Handler handles HTTP requests for categories.
type Handler struct {
	service CategoryService
}

// NewHandler creates a new category handler with the given service.
func NewHandler(service CategoryService) *Handler {
	return &Handler{service: service}
}

// Create adds a new category (POST /categories).
func (h *Handler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "category created successfully",
		"category": category,
	})
}

// List returns all categories (GET /categories).
func (h *Handler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// GetByID returns a single category (GET /categories/:id).
func (h *Handler) GetByID(c echo.Context) error {
	category, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"category": category})
}
