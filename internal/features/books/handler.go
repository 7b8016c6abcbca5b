package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codexlibris/bookshop/internal/apperror"
	"github.com/codexlibris/bookshop/internal/features/auth"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service BookService
}

// NewHandler creates a new book handler with the given service.
func NewHandler(service BookService) *Handler {
	return &Handler{service: service}
}

// Create adds a new book authored by the authenticated user (POST /book).
func (h *Handler) Create(c echo.Context) error {
	var req CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.service.Create(c.Request().Context(), auth.CurrentUserID(c), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "book created successfully",
		"book":    book,
	})
}

// ListMine lists the authenticated user's books (GET /book/my).
func (h *Handler) ListMine(c echo.Context) error {
	opts := listOptionsFromQuery(c)
	opts.AuthorID = auth.CurrentUserID(c)

	result, err := h.service.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// ListAll lists the whole catalog (GET /book/all, public).
func (h *Handler) ListAll(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), listOptionsFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// GetByID returns a single denormalized book (GET /book/:id, public).
func (h *Handler) GetByID(c echo.Context) error {
	row, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"book": row})
}

// Update applies a partial update, author only (PUT /book/:id).
func (h *Handler) Update(c echo.Context) error {
	var req UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	row, err := h.service.Update(c.Request().Context(), auth.CurrentUserID(c), c.Param("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "book updated successfully",
		"book":    row,
	})
}

// Delete removes a book, author only (DELETE /book/:id).
func (h *Handler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), auth.CurrentUserID(c), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "book deleted successfully",
	})
}

// listOptionsFromQuery parses the shared listing query parameters:
// page, limit, search, sort, sortBy, categoryId, minPrice, maxPrice.
// Malformed numbers fall back to defaults rather than erroring -- listing
// filters are forgiving by contract.
func listOptionsFromQuery(c echo.Context) ListOptions {
	opts := ListOptions{
		Page:       1,
		Limit:      DefaultLimit,
		Search:     c.QueryParam("search"),
		CategoryID: c.QueryParam("categoryId"),
		SortBy:     DefaultSortBy,
		Sort:       SortAsc,
	}

	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if sortBy := c.QueryParam("sortBy"); sortBy != "" {
		opts.SortBy = sortBy
	}
	if c.QueryParam("sort") == SortDesc {
		opts.Sort = SortDesc
	}
	if v, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64); err == nil {
		opts.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64); err == nil {
		opts.MaxPrice = &v
	}

	return opts
}
