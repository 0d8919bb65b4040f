package post_http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog-post-service/internal/custom_errors"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/inbound/http/middleware"
)

type PostDeleter interface {
	Delete(ctx context.Context, callerID, postID int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{postService: postService, log: log}
}

func (h *DeletePostHandler) DeletePost(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	postID, ok := parseID(c)
	if !ok {
		return respondError(c, h.log, custom_errors.ErrPostNotFound)
	}

	if err := h.postService.Delete(c.Request().Context(), callerID, postID); err != nil {
		return respondError(c, h.log, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/admin/posts")
	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted"})
}
