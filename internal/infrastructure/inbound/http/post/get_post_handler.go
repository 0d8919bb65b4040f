package post_http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/inbound/http/middleware"
)

type PostGetter interface {
	Get(ctx context.Context, callerID, postID int64) (*model.PostDetailed, error)
}

type GetPostHandler struct {
	postService PostGetter
	log         ports.Logger
}

func NewGetPostHandler(postService PostGetter, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{postService: postService, log: log}
}

func (h *GetPostHandler) GetPost(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	postID, ok := parseID(c)
	if !ok {
		return respondError(c, h.log, custom_errors.ErrPostNotFound)
	}

	post, err := h.postService.Get(c.Request().Context(), callerID, postID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, post)
}
