package tags

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/apperror"
)

// Handler handles HTTP requests for tags.
type Handler struct {
	service TagService
}

// NewHandler creates a new tag handler with the given service.
func NewHandler(service TagService) *Handler {
	return &Handler{service: service}
}

// Create adds a new tag (POST /tags).
func (h *Handler) Create(c echo.Context) error {
	var req CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "tag created successfully",
		"tag":     tag,
	})
}

// List returns all tags (GET /tags).
func (h *Handler) List(c echo.Context) error {
	tags, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}

// GetByID returns a single tag (GET /tags/:id).
func (h *Handler) GetByID(c echo.Context) error {
	tag, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"tag": tag})
}
