package handler

import (
	"ministry/internal/delivery/api/response"
	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/usecase"

	"github.com/labstack/echo/v4"
)

// BlogHandler serves blog posts.
type BlogHandler struct {
	blogUC usecase.BlogUsecase
}

// NewBlogHandler is the constructor for BlogHandler
func NewBlogHandler(blogUC usecase.BlogUsecase) *BlogHandler {
	return &BlogHandler{blogUC: blogUC}
}

// List handles GET /blog
func (h *BlogHandler) List(c echo.Context) error {
	var input usecase.ListBlogPostsInput
	err := bindPage(echo.QueryParamsBinder(c), &input.PageInput).
		String("category", &input.Category).
		String("tag", &input.Tag).
		BindError()
	if err != nil {
		return response.HandleAppError(c, queryBindError(err))
	}
	if err := c.Validate(&input); err != nil {
		return response.HandleAppError(c, err)
	}

	posts, err := h.blogUC.List(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, posts)
}

// GetBySlug handles GET /blog/:slug
func (h *BlogHandler) GetBySlug(c echo.Context) error {
	post, err := h.blogUC.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, post)
}

// Create handles POST /blog
func (h *BlogHandler) Create(c echo.Context) error {
	var input usecase.CreateBlogPostInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	post, err := h.blogUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, post)
}

// Update handles PATCH /blog/:id
func (h *BlogHandler) Update(c echo.Context) error {
	id, err := pathID(c, domainerrors.ErrBlogPostNotFound)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateBlogPostInput
	if err := bindBody(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	post, err := h.blogUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, post)
}
