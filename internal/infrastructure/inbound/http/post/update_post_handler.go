package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/inbound/http/middleware"
)

type PostUpdater interface {
	Get(ctx context.Context, callerID, postID int64) (*model.PostDetailed, error)
	Update(ctx context.Context, callerID, postID int64, input *model.PostInput) (*model.PostDetailed, error)
}

type UpdatePostHandler struct {
	postService PostUpdater
	log         ports.Logger
}

func NewUpdatePostHandler(postService PostUpdater, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{postService: postService, log: log}
}

func (h *UpdatePostHandler) UpdatePost(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	postID, ok := parseID(c)
	if !ok {
		return respondError(c, h.log, custom_errors.ErrPostNotFound)
	}

	input, err := bindPostInput(c)
	if err != nil {
		// Missing post and foreign owner win over unparseable fields.
		var verr *custom_errors.ValidationError
		if errors.As(err, &verr) {
			if _, ownErr := h.postService.Get(c.Request().Context(), callerID, postID); ownErr != nil {
				return respondError(c, h.log, ownErr)
			}
		}
		return respondError(c, h.log, err)
	}

	h.log.Debug("Received update post request",
		slog.Int64("post_id", postID),
		slog.Int64("user_id", callerID),
		slog.Int("tags_count", len(input.TagIDs)),
		slog.Bool("has_image", input.Image != nil))

	post, err := h.postService.Update(c.Request().Context(), callerID, postID, input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, postLocation(post.Post.ID))
	return c.JSON(http.StatusOK, post)
}
