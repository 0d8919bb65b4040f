package post_http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
)

type PublishedPostsReader interface {
	ListPublished(ctx context.Context) ([]*model.PostDetailed, error)
	GetBySlug(ctx context.Context, slug string) (*model.PostDetailed, error)
}

// PublicPostsHandler serves the anonymous read API.
type PublicPostsHandler struct {
	postService PublishedPostsReader
	log         ports.Logger
}

func NewPublicPostsHandler(postService PublishedPostsReader, log ports.Logger) *PublicPostsHandler {
	return &PublicPostsHandler{postService: postService, log: log}
}

func (h *PublicPostsHandler) ListPublished(c echo.Context) error {
	posts, err := h.postService.ListPublished(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PublicPostsHandler) GetBySlug(c echo.Context) error {
	post, err := h.postService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, post)
}
