package post_http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/inbound/http/middleware"
)

type OwnPostsLister interface {
	ListOwn(ctx context.Context, callerID int64) ([]*model.Post, error)
}

type ListOwnPostsHandler struct {
	postService OwnPostsLister
	log         ports.Logger
}

func NewListOwnPostsHandler(postService OwnPostsLister, log ports.Logger) *ListOwnPostsHandler {
	return &ListOwnPostsHandler{postService: postService, log: log}
}

func (h *ListOwnPostsHandler) ListOwnPosts(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	posts, err := h.postService.ListOwn(c.Request().Context(), callerID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.log.Debug("Listed own posts", slog.Int64("user_id", callerID), slog.Int("count", len(posts)))
	return c.JSON(http.StatusOK, posts)
}
