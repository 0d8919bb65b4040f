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

type PostCreator interface {
	Create(ctx context.Context, callerID int64, input *model.PostInput) (*model.PostDetailed, error)
}

type CreatePostHandler struct {
	postService PostCreator
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{postService: postService, log: log}
}

func (h *CreatePostHandler) CreatePost(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	input, err := bindPostInput(c)
	if err != nil {
		h.log.Debug("Create post form rejected", slog.Int64("user_id", callerID), slog.String("error", err.Error()))
		return respondError(c, h.log, err)
	}

	h.log.Debug("Received create post request",
		slog.Int64("user_id", callerID),
		slog.String("title", input.Title),
		slog.Int("tags_count", len(input.TagIDs)),
		slog.Bool("has_image", input.Image != nil))

	post, err := h.postService.Create(c.Request().Context(), callerID, input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, postLocation(post.Post.ID))
	return c.JSON(http.StatusCreated, post)
}
